package repositories

// RepositoryContainer groups the stateless repositories handed to services.
type RepositoryContainer struct {
	User         UserRepository
	Profile      ProfileRepository
	Subscription SubscriptionRepository
	Event        EventRepository
	Application  ApplicationRepository
	Attendance   AttendanceRepository
}

func NewRepositoryContainer() *RepositoryContainer {
	return &RepositoryContainer{
		User:         NewUserRepository(),
		Profile:      NewProfileRepository(),
		Subscription: NewSubscriptionRepository(),
		Event:        NewEventRepository(),
		Application:  NewApplicationRepository(),
		Attendance:   NewAttendanceRepository(),
	}
}

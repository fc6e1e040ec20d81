package services

// ServiceContainer holds every service the handlers and workers use.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	SubscriptionService SubscriptionService
	EventService        EventService
	ApplicationService  ApplicationService
	AttendanceService   AttendanceService
	DashboardService    DashboardService
}

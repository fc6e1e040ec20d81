package handlers

type AppHandlers struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	SubscriptionHandler *SubscriptionHandler
	EventHandler        *EventHandler
	ApplicationHandler  *ApplicationHandler
	AttendanceHandler   *AttendanceHandler
	DashboardHandler    *DashboardHandler
	HealthHandler       *HealthHandler
	WSHandler           *WSHandler
}

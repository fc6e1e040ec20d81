package services_test

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/messaging"
	"eventstaff_backend/internal/metrics"
	"eventstaff_backend/internal/models"
	"eventstaff_backend/internal/repositories"
	"eventstaff_backend/internal/services"
	"eventstaff_backend/internal/testutil"
	"eventstaff_backend/internal/validator"
)

type harness struct {
	db        *gorm.DB
	clock     *testutil.Clock
	repos     *repositories.RepositoryContainer
	publisher *messaging.MemoryPublisher
	metrics   *metrics.Registry
	sessions  *auth.MemorySessionStore
	notifier  *auth.Notifier
	svc       *services.ServiceContainer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		db:        testutil.NewDB(t),
		clock:     testutil.NewClock(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)),
		repos:     repositories.NewRepositoryContainer(),
		publisher: messaging.NewMemoryPublisher(),
		metrics:   metrics.NewRegistry(),
		sessions:  auth.NewMemorySessionStore(),
	}
	h.notifier = auth.NewNotifier(h.publisher)

	v := validator.New()
	market := services.DefaultMarketplace()
	now := h.clock.Now
	tokens := auth.NewTokenIssuer("test-secret", 24*time.Hour, now)
	cache := auth.NewProfileCache(time.Minute)

	h.svc = &services.ServiceContainer{
		AuthService:         services.NewAuthService(h.repos, tokens, h.sessions, cache, h.notifier, v, h.metrics, now),
		ProfileService:      services.NewProfileService(h.repos.Profile, cache, v),
		SubscriptionService: services.NewSubscriptionService(h.repos.Subscription, market, now),
		EventService:        services.NewEventService(h.repos, nil, h.publisher, v, h.metrics, market, now),
		ApplicationService:  services.NewApplicationService(h.repos, h.publisher, v, h.metrics, now),
		AttendanceService:   services.NewAttendanceService(h.repos, h.publisher, h.metrics, market, time.UTC, now),
		DashboardService:    services.NewDashboardService(h.repos, market, now),
	}
	return h
}

func sessionFor(p *models.Profile) *auth.Session {
	return &auth.Session{ID: "session-" + p.ID, UserID: p.ID, Profile: p}
}

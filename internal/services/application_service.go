package services

import (
	"time"

	"gorm.io/gorm"

	"eventstaff_backend/internal/appErrors"
	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/messaging"
	"eventstaff_backend/internal/metrics"
	"eventstaff_backend/internal/models"
	"eventstaff_backend/internal/repositories"
	"eventstaff_backend/internal/services/dto"
	"eventstaff_backend/internal/validator"
)

type ApplicationService interface {
	Apply(db *gorm.DB, session *auth.Session, eventID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error)
	ListMine(db *gorm.DB, session *auth.Session) ([]dto.ApplicationResponse, error)
	ListForEvent(db *gorm.DB, session *auth.Session, eventID string) ([]dto.ApplicationResponse, error)
}

// ApplicationSubmitted is published on applications.submitted.
type ApplicationSubmitted struct {
	ApplicationID string    `json:"application_id"`
	EventID       string    `json:"event_id"`
	ClientID      string    `json:"client_id"`
	StaffID       string    `json:"staff_id"`
	Role          string    `json:"role"`
	AppliedAt     time.Time `json:"applied_at"`
}

type ApplicationServiceImpl struct {
	repos     *repositories.RepositoryContainer
	publisher messaging.Publisher
	validator *validator.Validator
	metrics   *metrics.Registry
	now       func() time.Time
}

func NewApplicationService(
	repos *repositories.RepositoryContainer,
	publisher messaging.Publisher,
	v *validator.Validator,
	m *metrics.Registry,
	now func() time.Time,
) ApplicationService {
	return &ApplicationServiceImpl{repos: repos, publisher: publisher, validator: v, metrics: m, now: now}
}

// Apply records a pending application. The (event, staff) unique index is
// the only duplicate check.
func (s *ApplicationServiceImpl) Apply(db *gorm.DB, session *auth.Session, eventID string, req *dto.ApplyRequest) (*dto.ApplicationResponse, error) {
	if err := requireStaff(session); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	event, err := s.repos.Event.FindByID(db, eventID)
	if err != nil {
		return nil, repoError(err)
	}
	if event.Status != models.EventStatusActive {
		return nil, appErrors.ErrEventNotActive
	}
	if _, ok := event.Role(req.Role); !ok {
		return nil, appErrors.ErrUnknownRole.WithDetails(map[string]string{"role": req.Role})
	}

	app := &models.Application{
		EventID:   event.ID,
		StaffID:   session.UserID,
		Role:      req.Role,
		Status:    models.ApplicationStatusPending,
		AppliedAt: s.now(),
	}
	if err := s.repos.Application.Create(db, app); err != nil {
		outcome := "error"
		appErr := repoError(err)
		if appErrors.Is(appErr, appErrors.ErrAlreadyApplied) {
			outcome = "duplicate"
		}
		s.metrics.ApplicationsTotal.WithLabelValues(outcome).Inc()
		return nil, appErr
	}
	s.metrics.ApplicationsTotal.WithLabelValues("submitted").Inc()

	ctx := contextOf(db)
	logger.CtxInfo(ctx, "application submitted", "event_id", event.ID, "role", app.Role)

	msg := ApplicationSubmitted{
		ApplicationID: app.ID,
		EventID:       event.ID,
		ClientID:      event.ClientID,
		StaffID:       app.StaffID,
		Role:          app.Role,
		AppliedAt:     app.AppliedAt,
	}
	if err := s.publisher.Publish(ctx, messaging.SubjectApplicationSubmitted, msg); err != nil {
		logger.CtxWithError(ctx, "failed to publish application submitted", err, "application_id", app.ID)
	}

	app.Event = event
	out := dto.NewApplicationResponse(app)
	return &out, nil
}

func (s *ApplicationServiceImpl) ListMine(db *gorm.DB, session *auth.Session) ([]dto.ApplicationResponse, error) {
	if err := requireStaff(session); err != nil {
		return nil, err
	}
	apps, err := s.repos.Application.ListByStaff(db, session.UserID, 0)
	if err != nil {
		return nil, repoError(err)
	}
	return dto.NewApplicationResponses(apps), nil
}

// ListForEvent is restricted to the client who owns the event.
func (s *ApplicationServiceImpl) ListForEvent(db *gorm.DB, session *auth.Session, eventID string) ([]dto.ApplicationResponse, error) {
	if _, err := ownedEvent(db, s.repos, session, eventID); err != nil {
		return nil, err
	}
	apps, err := s.repos.Application.ListByEvent(db, eventID)
	if err != nil {
		return nil, repoError(err)
	}
	return dto.NewApplicationResponses(apps), nil
}

func ownedEvent(db *gorm.DB, repos *repositories.RepositoryContainer, session *auth.Session, eventID string) (*models.Event, error) {
	if err := requireClient(session); err != nil {
		return nil, err
	}
	event, err := repos.Event.FindByID(db, eventID)
	if err != nil {
		return nil, repoError(err)
	}
	if event.ClientID != session.UserID {
		return nil, appErrors.ErrForbidden
	}
	return event, nil
}

package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"eventstaff_backend/internal/appErrors"
	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/messaging"
	"eventstaff_backend/internal/metrics"
	"eventstaff_backend/internal/models"
	"eventstaff_backend/internal/repositories"
	"eventstaff_backend/internal/search"
	"eventstaff_backend/internal/services/dto"
	"eventstaff_backend/internal/validator"
)

type EventService interface {
	PostEvent(db *gorm.DB, session *auth.Session, req *dto.PostEventRequest) (*dto.PostEventResponse, error)
	Get(db *gorm.DB, id string) (*dto.EventResponse, error)
	ListMine(db *gorm.DB, session *auth.Session) ([]dto.EventResponse, error)
	Browse(db *gorm.DB, query *dto.BrowseEventsQuery) ([]dto.EventResponse, error)
	Reindex(db *gorm.DB) (int, error)
}

// EventPosted is published on events.posted.
type EventPosted struct {
	EventID       string    `json:"event_id"`
	ClientID      string    `json:"client_id"`
	City          string    `json:"city"`
	ShiftDate     time.Time `json:"shift_date"`
	TotalRequired int       `json:"total_required"`
	IsUrgent      bool      `json:"is_urgent"`
}

type EventServiceImpl struct {
	repos     *repositories.RepositoryContainer
	index     search.EventIndex
	publisher messaging.Publisher
	validator *validator.Validator
	metrics   *metrics.Registry
	market    Marketplace
	now       func() time.Time
}

// NewEventService takes a nil index when search is not configured.
func NewEventService(
	repos *repositories.RepositoryContainer,
	index search.EventIndex,
	publisher messaging.Publisher,
	v *validator.Validator,
	m *metrics.Registry,
	market Marketplace,
	now func() time.Time,
) EventService {
	return &EventServiceImpl{
		repos:     repos,
		index:     index,
		publisher: publisher,
		validator: v,
		metrics:   m,
		market:    market,
		now:       now,
	}
}

// PostEvent inserts the event and bumps the monthly counter in one
// transaction. A free client at the quota gets UPGRADE_REQUIRED and nothing
// is written.
func (s *EventServiceImpl) PostEvent(db *gorm.DB, session *auth.Session, req *dto.PostEventRequest) (*dto.PostEventResponse, error) {
	if err := requireClient(session); err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	shiftDate, err := time.Parse("2006-01-02", req.ShiftDate)
	if err != nil {
		return nil, appErrors.ValidationError(map[string]string{"shift_date": "Must match the layout 2006-01-02"})
	}

	now := s.now()
	event := &models.Event{
		ClientID:             session.UserID,
		Title:                req.Title,
		City:                 req.City,
		Area:                 req.Area,
		Venue:                req.Venue,
		VenueAddress:         req.VenueAddress,
		ShiftDate:            shiftDate,
		ShiftStart:           req.ShiftStart,
		ShiftEnd:             req.ShiftEnd,
		Roles:                req.Roles,
		TotalRequired:        models.TotalRequired(req.Roles),
		FilledCount:          0,
		Status:               models.EventStatusActive,
		IsUrgent:             req.IsUrgent,
		UrgentBonus:          req.UrgentBonus,
		DressCode:            req.DressCode,
		ReportingTime:        req.ReportingTime,
		MeetingPoint:         req.MeetingPoint,
		LanguageRequirements: req.LanguageRequirements,
		FoodProvided:         req.FoodProvided,
		TravelAllowance:      req.TravelAllowance,
		SpecialInstructions:  req.SpecialInstructions,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, appErrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	err = s.repos.Subscription.IncrementPostCounter(tx, session.UserID, now, s.market.FreeMonthlyPosts)
	if errors.Is(err, repositories.ErrQuotaExceeded) {
		s.metrics.UpgradePrompts.Inc()
		return nil, upgradeRequired(s.market)
	}
	if err != nil {
		return nil, repoError(err)
	}

	if err := s.repos.Event.Create(tx, event); err != nil {
		return nil, repoError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, appErrors.DatabaseError(err)
	}
	s.metrics.EventsPosted.Inc()

	ctx := contextOf(db)
	logger.CtxInfo(ctx, "event posted", "event_id", event.ID, "total_required", event.TotalRequired)

	event.Client = session.Profile
	s.announce(db, event)

	sub, err := s.repos.Subscription.FindByClientID(db, session.UserID)
	if err != nil {
		return nil, repoError(err)
	}

	return &dto.PostEventResponse{
		Event:        dto.NewEventResponse(event),
		Subscription: dto.NewSubscriptionResponse(sub, now, s.market.FreeMonthlyPosts),
	}, nil
}

// announce publishes and indexes a committed event. Failures are logged
// only; the post already succeeded.
func (s *EventServiceImpl) announce(db *gorm.DB, event *models.Event) {
	ctx := contextOf(db)

	msg := EventPosted{
		EventID:       event.ID,
		ClientID:      event.ClientID,
		City:          event.City,
		ShiftDate:     event.ShiftDate,
		TotalRequired: event.TotalRequired,
		IsUrgent:      event.IsUrgent,
	}
	if err := s.publisher.Publish(ctx, messaging.SubjectEventPosted, msg); err != nil {
		logger.CtxWithError(ctx, "failed to publish event posted", err, "event_id", event.ID)
	}

	if s.index != nil {
		if err := s.index.Index(ctx, event); err != nil {
			logger.CtxWithError(ctx, "failed to index event", err, "event_id", event.ID)
		}
	}
}

func (s *EventServiceImpl) Get(db *gorm.DB, id string) (*dto.EventResponse, error) {
	event, err := s.repos.Event.FindByID(db, id)
	if err != nil {
		return nil, repoError(err)
	}
	out := dto.NewEventResponse(event)
	return &out, nil
}

func (s *EventServiceImpl) ListMine(db *gorm.DB, session *auth.Session) ([]dto.EventResponse, error) {
	if err := requireClient(session); err != nil {
		return nil, err
	}
	events, err := s.repos.Event.ListByClient(db, session.UserID)
	if err != nil {
		return nil, repoError(err)
	}
	return dto.NewEventResponses(events), nil
}

// Browse lists upcoming active events. With a search index the matching ids
// come from Elasticsearch and rows are loaded from the database; if the
// index fails the database query answers instead.
func (s *EventServiceImpl) Browse(db *gorm.DB, query *dto.BrowseEventsQuery) ([]dto.EventResponse, error) {
	if err := validate(s.validator, query); err != nil {
		return nil, err
	}

	page, pageSize := query.Page, query.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	today := s.now()

	if s.index != nil {
		ids, err := s.index.Search(contextOf(db), search.Query{
			City:       query.City,
			UrgentOnly: query.UrgentOnly,
			MinPay:     query.MinPay,
			Role:       query.Role,
			Today:      today,
			From:       (page - 1) * pageSize,
			Size:       pageSize,
		})
		if err == nil {
			events, err := s.repos.Event.FindByIDs(db, ids)
			if err != nil {
				return nil, repoError(err)
			}
			return dto.NewEventResponses(events), nil
		}
		logger.CtxWithError(contextOf(db), "search index unavailable, browsing from database", err)
	}

	events, err := s.repos.Event.Browse(db, repositories.BrowseFilter{
		City:       query.City,
		UrgentOnly: query.UrgentOnly,
		MinPay:     query.MinPay,
		Role:       query.Role,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	}, today)
	if err != nil {
		return nil, repoError(err)
	}
	return dto.NewEventResponses(events), nil
}

// Reindex pushes every active event to the search index.
func (s *EventServiceImpl) Reindex(db *gorm.DB) (int, error) {
	if s.index == nil {
		return 0, errors.New("search index is not configured")
	}
	events, err := s.repos.Event.ListActive(db)
	if err != nil {
		return 0, err
	}

	ctx := contextOf(db)
	for i := range events {
		if err := s.index.Index(ctx, &events[i]); err != nil {
			return i, err
		}
	}
	return len(events), nil
}

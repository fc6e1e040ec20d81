package repositories

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"eventstaff_backend/internal/models"
)

// BrowseFilter narrows the staff-facing event list. Zero values mean no filter.
type BrowseFilter struct {
	City       string
	UrgentOnly bool
	MinPay     float64
	Role       string
	Limit      int
	Offset     int
}

// Matches applies the role-level filters, which live inside the roles JSON.
func (f BrowseFilter) Matches(e *models.Event) bool {
	if f.MinPay > 0 && e.MaxPay() < f.MinPay {
		return false
	}
	if f.Role != "" {
		if _, ok := e.Role(f.Role); !ok {
			return false
		}
	}
	return true
}

type EventRepository interface {
	Create(db *gorm.DB, event *models.Event) error
	FindByID(db *gorm.DB, id string) (*models.Event, error)
	FindByIDs(db *gorm.DB, ids []string) ([]models.Event, error)
	ListByClient(db *gorm.DB, clientID string) ([]models.Event, error)
	Browse(db *gorm.DB, filter BrowseFilter, today time.Time) ([]models.Event, error)
	ListActive(db *gorm.DB) ([]models.Event, error)
}

type EventRepositoryImpl struct{}

func NewEventRepository() EventRepository {
	return &EventRepositoryImpl{}
}

func (r *EventRepositoryImpl) Create(db *gorm.DB, event *models.Event) error {
	return db.Omit("Client").Create(event).Error
}

func (r *EventRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Event, error) {
	var event models.Event
	if err := db.Preload("Client").First(&event, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrEventNotFound)
	}
	return &event, nil
}

// FindByIDs keeps the order of ids and skips ids that no longer exist.
func (r *EventRepositoryImpl) FindByIDs(db *gorm.DB, ids []string) ([]models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []models.Event
	if err := db.Preload("Client").Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]models.Event, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}
	events := make([]models.Event, 0, len(found))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			events = append(events, e)
		}
	}
	return events, nil
}

func (r *EventRepositoryImpl) ListByClient(db *gorm.DB, clientID string) ([]models.Event, error) {
	var events []models.Event
	err := db.Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&events).Error
	return events, err
}

// Browse returns active events from today on, soonest first. City and urgency
// are filtered in SQL; pay and role are checked against the decoded roles so
// the query stays portable across Postgres and SQLite.
func (r *EventRepositoryImpl) Browse(db *gorm.DB, filter BrowseFilter, today time.Time) ([]models.Event, error) {
	q := db.Preload("Client").
		Where("status = ? AND shift_date >= ?", models.EventStatusActive, models.DateOnly(today))

	if city := strings.TrimSpace(filter.City); city != "" {
		q = q.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	if filter.UrgentOnly {
		q = q.Where("is_urgent = ?", true)
	}

	var candidates []models.Event
	if err := q.Order("shift_date ASC, created_at ASC").Find(&candidates).Error; err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(candidates))
	for i := range candidates {
		if filter.Matches(&candidates[i]) {
			events = append(events, candidates[i])
		}
	}
	return paginate(events, filter.Offset, filter.Limit), nil
}

// ListActive feeds the search reindex.
func (r *EventRepositoryImpl) ListActive(db *gorm.DB) ([]models.Event, error) {
	var events []models.Event
	err := db.Preload("Client").
		Where("status = ?", models.EventStatusActive).
		Order("shift_date ASC").
		Find(&events).Error
	return events, err
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	if offset > 0 {
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

package search

import (
	"strings"
	"time"

	"eventstaff_backend/internal/models"
)

// Query mirrors the browse filters.
type Query struct {
	City       string
	UrgentOnly bool
	MinPay     float64
	Role       string
	Today      time.Time
	From       int
	Size       int
}

// EventDocument is the indexed shape of an event.
type EventDocument struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Title     string    `json:"title,omitempty"`
	City      string    `json:"city"`
	CityLower string    `json:"city_lower"`
	Area      string    `json:"area"`
	Venue     string    `json:"venue"`
	ShiftDate time.Time `json:"shift_date"`
	Status    string    `json:"status"`
	IsUrgent  bool      `json:"is_urgent"`
	RoleNames []string  `json:"role_names"`
	MaxPay    float64   `json:"max_pay"`
	CreatedAt time.Time `json:"created_at"`
}

func NewEventDocument(e *models.Event) EventDocument {
	doc := EventDocument{
		ID:        e.ID,
		ClientID:  e.ClientID,
		City:      e.City,
		CityLower: strings.ToLower(e.City),
		Area:      e.Area,
		Venue:     e.Venue,
		ShiftDate: models.DateOnly(e.ShiftDate),
		Status:    string(e.Status),
		IsUrgent:  e.IsUrgent,
		MaxPay:    e.MaxPay(),
		CreatedAt: e.CreatedAt,
	}
	if e.Title != nil {
		doc.Title = *e.Title
	}
	for _, r := range e.Roles {
		doc.RoleNames = append(doc.RoleNames, r.Name)
	}
	return doc
}

// BuildQuery renders q as an Elasticsearch bool query with the same
// semantics as the database browse.
func BuildQuery(q Query) map[string]interface{} {
	filters := []interface{}{
		map[string]interface{}{"term": map[string]interface{}{"status": string(models.EventStatusActive)}},
		map[string]interface{}{"range": map[string]interface{}{
			"shift_date": map[string]interface{}{"gte": models.DateOnly(q.Today).Format("2006-01-02")},
		}},
	}

	if city := strings.ToLower(strings.TrimSpace(q.City)); city != "" {
		filters = append(filters, map[string]interface{}{
			"wildcard": map[string]interface{}{"city_lower": map[string]interface{}{"value": "*" + city + "*"}},
		})
	}
	if q.UrgentOnly {
		filters = append(filters, map[string]interface{}{"term": map[string]interface{}{"is_urgent": true}})
	}
	if q.MinPay > 0 {
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{"max_pay": map[string]interface{}{"gte": q.MinPay}},
		})
	}
	if q.Role != "" {
		filters = append(filters, map[string]interface{}{"term": map[string]interface{}{"role_names": q.Role}})
	}

	size := q.Size
	if size <= 0 {
		size = 20
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": filters},
		},
		"sort": []interface{}{
			map[string]interface{}{"shift_date": "asc"},
			map[string]interface{}{"created_at": "asc"},
		},
		"from":    q.From,
		"size":    size,
		"_source": []string{"id"},
	}
}

package search

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventstaff_backend/internal/models"
)

func TestBuildQueryFilters(t *testing.T) {
	today := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	raw, err := json.Marshal(BuildQuery(Query{
		City:       " Pune ",
		UrgentOnly: true,
		MinPay:     1500,
		Role:       "Security",
		Today:      today,
	}))
	require.NoError(t, err)
	body := string(raw)

	assert.Contains(t, body, `"gte":"2026-09-01"`)
	assert.Contains(t, body, `"value":"*pune*"`)
	assert.Contains(t, body, `{"term":{"is_urgent":true}}`)
	assert.Contains(t, body, `{"range":{"max_pay":{"gte":1500}}}`)
	assert.Contains(t, body, `{"term":{"role_names":"Security"}}`)
	assert.Contains(t, body, `"size":20`)
}

func TestBuildQueryWithoutOptionalFilters(t *testing.T) {
	q := BuildQuery(Query{Today: time.Now(), Size: 5})

	filters := q["query"].(map[string]interface{})["bool"].(map[string]interface{})["filter"].([]interface{})
	assert.Len(t, filters, 2)
	assert.Equal(t, 5, q["size"])
}

func TestNewEventDocument(t *testing.T) {
	title := "Wedding reception"
	e := &models.Event{
		City:  "Navi Mumbai",
		Title: &title,
		Roles: []models.EventRole{
			{Name: "Server", Count: 3, Gender: models.GenderAny, Pay: 1200},
			{Name: "Security", Count: 1, Gender: models.GenderMale, Pay: 1800},
		},
	}

	doc := NewEventDocument(e)
	assert.Equal(t, "navi mumbai", doc.CityLower)
	assert.Equal(t, []string{"Server", "Security"}, doc.RoleNames)
	assert.Equal(t, 1800.0, doc.MaxPay)
	assert.Equal(t, title, doc.Title)
}

package repositories_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventstaff_backend/internal/models"
	"eventstaff_backend/internal/repositories"
	"eventstaff_backend/internal/testutil"
)

func TestBrowseFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewEventRepository()
	client := testutil.CreateClient(t, db, "client@example.in")

	today := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

	past := testutil.CreateEvent(t, db, client.ID, today.AddDate(0, 0, -1))
	soon := testutil.CreateEvent(t, db, client.ID, today.AddDate(0, 0, 1))
	later := testutil.CreateEvent(t, db, client.ID, today.AddDate(0, 0, 5),
		models.EventRole{Name: "Bartender", Count: 2, Gender: models.GenderAny, Pay: 2500})
	require.NoError(t, db.Model(later).Update("is_urgent", true).Error)
	require.NoError(t, db.Model(&models.Event{}).Where("id = ?", later.ID).Update("city", "Pune").Error)

	tests := []struct {
		name   string
		filter repositories.BrowseFilter
		want   []string
	}{
		{"all upcoming in date order", repositories.BrowseFilter{}, []string{soon.ID, later.ID}},
		{"city substring any case", repositories.BrowseFilter{City: "pun"}, []string{later.ID}},
		{"urgent only", repositories.BrowseFilter{UrgentOnly: true}, []string{later.ID}},
		{"min pay", repositories.BrowseFilter{MinPay: 2000}, []string{later.ID}},
		{"role", repositories.BrowseFilter{Role: "Security"}, []string{soon.ID}},
		{"limit", repositories.BrowseFilter{Limit: 1}, []string{soon.ID}},
		{"offset past end", repositories.BrowseFilter{Offset: 5}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repo.Browse(db, tt.filter, today)
			require.NoError(t, err)

			ids := make([]string, 0, len(events))
			for _, e := range events {
				ids = append(ids, e.ID)
				assert.NotEqual(t, past.ID, e.ID)
				require.NotNil(t, e.Client)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFindByIDsKeepsOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewEventRepository()
	client := testutil.CreateClient(t, db, "client@example.in")

	a := testutil.CreateEvent(t, db, client.ID, time.Now())
	b := testutil.CreateEvent(t, db, client.ID, time.Now())

	events, err := repo.FindByIDs(db, []string{b.ID, "missing", a.ID})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, b.ID, events[0].ID)
	assert.Equal(t, a.ID, events[1].ID)
}

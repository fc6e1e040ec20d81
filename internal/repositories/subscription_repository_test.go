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

func TestIncrementPostCounter(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewSubscriptionRepository()
	client := testutil.CreateClient(t, db, "client@example.in")

	march := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.IncrementPostCounter(db, client.ID, march, 2))
	require.NoError(t, repo.IncrementPostCounter(db, client.ID, march, 2))

	err := repo.IncrementPostCounter(db, client.ID, march, 2)
	assert.ErrorIs(t, err, repositories.ErrQuotaExceeded)

	sub, err := repo.FindByClientID(db, client.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.EventsPostedThisMonth)
	assert.Equal(t, "2026-03", sub.CounterPeriod)

	t.Run("rolls over in a new month", func(t *testing.T) {
		april := time.Date(2026, 4, 1, 0, 5, 0, 0, time.UTC)
		require.NoError(t, repo.IncrementPostCounter(db, client.ID, april, 2))

		sub, err := repo.FindByClientID(db, client.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, sub.EventsPostedThisMonth)
		assert.Equal(t, "2026-04", sub.CounterPeriod)
	})

	t.Run("premium is unlimited", func(t *testing.T) {
		april := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Upgrade(db, client.ID, april.Add(30*24*time.Hour)))
		for i := 0; i < 5; i++ {
			require.NoError(t, repo.IncrementPostCounter(db, client.ID, april, 2))
		}
	})
}

func TestIncrementPostCounterWithoutSubscription(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewSubscriptionRepository()

	err := repo.IncrementPostCounter(db, "00000000-0000-0000-0000-000000000000", time.Now(), 2)
	assert.ErrorIs(t, err, repositories.ErrSubscriptionNotFound)
}

func TestExpirePremiumAndResetCounters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewSubscriptionRepository()
	client := testutil.CreateClient(t, db, "c@example.in")

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.IncrementPostCounter(db, client.ID, start, 2))
	require.NoError(t, repo.Upgrade(db, client.ID, start.Add(24*time.Hour)))

	expired, err := repo.ExpirePremium(db, start.Add(48*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, expired)

	reset, err := repo.ResetStaleCounters(db, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 1, reset)

	sub, err := repo.FindByClientID(db, client.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, sub.Plan)
	assert.Nil(t, sub.PremiumExpiresAt)
	assert.Equal(t, 0, sub.EventsPostedThisMonth)
	assert.Equal(t, "2026-06", sub.CounterPeriod)
}

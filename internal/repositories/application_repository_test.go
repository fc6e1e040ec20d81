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

func TestApplicationUniquePerEventAndStaff(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewApplicationRepository()

	client := testutil.CreateClient(t, db, "client@example.in")
	staff := testutil.CreateStaff(t, db, "staff@example.in")
	event := testutil.CreateEvent(t, db, client.ID, time.Now().AddDate(0, 0, 3))

	first := &models.Application{EventID: event.ID, StaffID: staff.ID, Role: "Server", Status: models.ApplicationStatusPending, AppliedAt: time.Now()}
	require.NoError(t, repo.Create(db, first))

	second := &models.Application{EventID: event.ID, StaffID: staff.ID, Role: "Security", Status: models.ApplicationStatusPending, AppliedAt: time.Now()}
	assert.ErrorIs(t, repo.Create(db, second), repositories.ErrApplicationExists)

	found, err := repo.FindByEventAndStaff(db, event.ID, staff.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Server", found.Role)

	mine, err := repo.ListByStaff(db, staff.ID, 10)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Event)
	require.NotNil(t, mine[0].Event.Client)
	assert.Equal(t, "Test Events Pvt Ltd", mine[0].Event.Client.Client.CompanyName)
}

func TestFindApplicationMissing(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewApplicationRepository()

	app, err := repo.FindByEventAndStaff(db, "e", "s")
	assert.NoError(t, err)
	assert.Nil(t, app)
}

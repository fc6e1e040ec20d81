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

func TestFindAttendanceBeforeCheckIn(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAttendanceRepository()

	client := testutil.CreateClient(t, db, "client@example.in")
	staff := testutil.CreateStaff(t, db, "staff@example.in")
	event := testutil.CreateEvent(t, db, client.ID, time.Now())

	att, err := repo.FindByEventAndStaff(db, event.ID, staff.ID)
	require.NoError(t, err)
	assert.Nil(t, att)

	require.NoError(t, repo.Create(db, &models.Attendance{
		EventID: event.ID, StaffID: staff.ID, CheckInTime: time.Now(), PaymentStatus: models.PaymentStatusPending,
	}))

	att, err = repo.FindByEventAndStaff(db, event.ID, staff.ID)
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.Equal(t, staff.ID, att.StaffID)
	assert.Nil(t, att.CheckOutTime)
}

func TestAttendanceCheckOutIsConditional(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAttendanceRepository()

	client := testutil.CreateClient(t, db, "client@example.in")
	staff := testutil.CreateStaff(t, db, "staff@example.in")
	event := testutil.CreateEvent(t, db, client.ID, time.Now())

	in := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	att := &models.Attendance{EventID: event.ID, StaffID: staff.ID, CheckInTime: in, AmountEarned: 1200, PaymentStatus: models.PaymentStatusPending}
	require.NoError(t, repo.Create(db, att))

	dup := &models.Attendance{EventID: event.ID, StaffID: staff.ID, CheckInTime: in, PaymentStatus: models.PaymentStatusPending}
	assert.ErrorIs(t, repo.Create(db, dup), repositories.ErrAttendanceExists)

	out := in.Add(150 * time.Minute)
	ok, err := repo.CheckOut(db, att.ID, out, 2.5, out.Add(48*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.CheckOut(db, att.ID, out.Add(time.Hour), 3.5, out.Add(49*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.FindByEventAndStaff(db, event.ID, staff.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.HoursWorked)
	assert.Equal(t, 2.5, *stored.HoursWorked)

	byClient, err := repo.ListByClient(db, client.ID)
	require.NoError(t, err)
	require.Len(t, byClient, 1)
	assert.Equal(t, att.ID, byClient[0].ID)
}

func TestOverdueNotifiedOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAttendanceRepository()

	client := testutil.CreateClient(t, db, "client@example.in")
	staff := testutil.CreateStaff(t, db, "staff@example.in")
	event := testutil.CreateEvent(t, db, client.ID, time.Now())

	in := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	out := in.Add(8 * time.Hour)
	due := out.Add(48 * time.Hour)
	hours := 8.0
	require.NoError(t, repo.Create(db, &models.Attendance{
		EventID: event.ID, StaffID: staff.ID, CheckInTime: in, CheckOutTime: &out,
		HoursWorked: &hours, PaymentDueAt: &due, PaymentStatus: models.PaymentStatusPending,
	}))

	rows, err := repo.FindOverdue(db, due.Add(-time.Minute), 10)
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = repo.FindOverdue(db, due.Add(time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Event)
	assert.Equal(t, client.ID, rows[0].Event.Client.ID)

	claimed, err := repo.MarkOverdueNotified(db, rows[0].ID, due.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = repo.MarkOverdueNotified(db, rows[0].ID, due.Add(2*time.Minute))
	require.NoError(t, err)
	assert.False(t, claimed)

	rows, err = repo.FindOverdue(db, due.Add(time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

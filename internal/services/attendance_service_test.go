package services_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"eventstaff_backend/internal/appErrors"
	"eventstaff_backend/internal/messaging"
	"eventstaff_backend/internal/models"
	"eventstaff_backend/internal/services/dto"
	tu "eventstaff_backend/internal/testutil"
)

func TestCheckInCheckOut(t *testing.T) {
	h := newHarness(t)
	client := tu.CreateClient(t, h.db, "client@example.in")
	staff := tu.CreateStaff(t, h.db, "staff@example.in")
	event := tu.CreateEvent(t, h.db, client.ID, h.clock.Now())
	session := sessionFor(staff)

	state, err := h.svc.AttendanceService.Get(h.db, session, event.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.AttendanceNotCheckedIn, state.State)

	_, err = h.svc.AttendanceService.CheckOut(h.db, session, event.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotCheckedIn)

	t0 := h.clock.Now()
	in, err := h.svc.AttendanceService.CheckIn(h.db, session, event.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.AttendanceCheckedIn, in.State)
	assert.Equal(t, models.PaymentStatusPending, in.Attendance.PaymentStatus)
	assert.Equal(t, 1200.0, in.Attendance.AmountEarned, "no application falls back to the first role")

	_, err = h.svc.AttendanceService.CheckIn(h.db, session, event.ID)
	assert.ErrorIs(t, err, appErrors.ErrAlreadyCheckedIn)

	h.clock.Advance(2*time.Hour + 30*time.Minute)
	out, err := h.svc.AttendanceService.CheckOut(h.db, session, event.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.AttendanceCheckedOut, out.State)
	require.NotNil(t, out.Attendance.HoursWorked)
	assert.Equal(t, 2.50, *out.Attendance.HoursWorked)
	require.NotNil(t, out.Attendance.PaymentDueAt)
	assert.Equal(t, t0.Add(2*time.Hour+30*time.Minute+48*time.Hour), *out.Attendance.PaymentDueAt)

	stored, err := h.repos.Attendance.FindByEventAndStaff(h.db, event.ID, staff.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CheckOutTime)
	assert.False(t, stored.CheckOutTime.Before(stored.CheckInTime))
	assert.WithinDuration(t, stored.CheckOutTime.Add(48*time.Hour), *stored.PaymentDueAt, time.Millisecond)

	_, err = h.svc.AttendanceService.CheckOut(h.db, session, event.ID)
	assert.ErrorIs(t, err, appErrors.ErrAlreadyCheckedOut)

	assert.Equal(t, []string{
		messaging.SubjectAttendanceCheckedIn,
		messaging.SubjectAttendanceCheckedOut,
	}, h.publisher.Subjects())
}

func TestCheckInPaysAppliedRole(t *testing.T) {
	h := newHarness(t)
	client := tu.CreateClient(t, h.db, "client@example.in")
	staff := tu.CreateStaff(t, h.db, "staff@example.in")
	event := tu.CreateEvent(t, h.db, client.ID, h.clock.Now())
	session := sessionFor(staff)

	_, err := h.svc.ApplicationService.Apply(h.db, session, event.ID, &dto.ApplyRequest{Role: "Security"})
	require.NoError(t, err)

	in, err := h.svc.AttendanceService.CheckIn(h.db, session, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1800.0, in.Attendance.AmountEarned)
}

func TestAttendanceForOwner(t *testing.T) {
	h := newHarness(t)
	client := tu.CreateClient(t, h.db, "client@example.in")
	other := tu.CreateClient(t, h.db, "other@example.in")
	staff := tu.CreateStaff(t, h.db, "staff@example.in")
	event := tu.CreateEvent(t, h.db, client.ID, h.clock.Now())

	_, err := h.svc.AttendanceService.CheckIn(h.db, sessionFor(staff), event.ID)
	require.NoError(t, err)

	rows, err := h.svc.AttendanceService.ListForEvent(h.db, sessionFor(client), event.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Test Staff", rows[0].Staff.FullName)

	_, err = h.svc.AttendanceService.ListForEvent(h.db, sessionFor(other), event.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	var buf bytes.Buffer
	require.NoError(t, h.svc.AttendanceService.ExportForEvent(h.db, sessionFor(client), event.ID, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	name, err := f.GetCellValue("Attendance", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Test Staff", name)
}

package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"eventstaff_backend/internal/models"
)

func TestWriteAttendanceSheet(t *testing.T) {
	in := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	out := in.Add(150 * time.Minute)
	due := out.Add(48 * time.Hour)
	worked := 2.5

	event := &models.Event{City: "Mumbai", Venue: "Hall A", ShiftDate: in}
	rows := []models.Attendance{
		{
			Staff:         models.NewStaffProfile("s1", "Asha", "+911", "Mumbai", nil),
			CheckInTime:   in,
			CheckOutTime:  &out,
			HoursWorked:   &worked,
			AmountEarned:  1200,
			PaymentStatus: models.PaymentStatusPending,
			PaymentDueAt:  &due,
		},
		{
			Staff:         models.NewStaffProfile("s2", "Vikram", "+912", "Mumbai", nil),
			CheckInTime:   in.Add(time.Hour),
			AmountEarned:  1800,
			PaymentStatus: models.PaymentStatusPending,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAttendanceSheet(&buf, event, rows, time.UTC))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(attendanceSheet)
	require.NoError(t, err)
	require.Len(t, got, 7)

	assert.Equal(t, "Hall A, Mumbai on 2026-07-01", got[0][0])
	assert.Equal(t, "Staff", got[2][0])
	assert.Equal(t, []string{"Asha", "+911", "2026-07-01 10:00", "2026-07-01 12:30", "2.5", "1200", "pending", "2026-07-03 12:30"}, got[3])
	assert.Equal(t, "Vikram", got[4][0])
	assert.Equal(t, "", got[4][3])
	assert.Equal(t, "Total", got[6][0])
	assert.Equal(t, "3000", got[6][5])
}

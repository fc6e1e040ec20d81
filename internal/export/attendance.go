package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"eventstaff_backend/internal/models"
)

const attendanceSheet = "Attendance"

var attendanceHeader = []interface{}{
	"Staff", "Phone", "Check in", "Check out", "Hours", "Amount (INR)", "Payment status", "Payment due",
}

const timeLayout = "2006-01-02 15:04"

// WriteAttendanceSheet writes one row per attendance record for event as an
// .xlsx workbook.
func WriteAttendanceSheet(w io.Writer, event *models.Event, rows []models.Attendance, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", attendanceSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	title := fmt.Sprintf("%s, %s on %s", event.Venue, event.City, event.ShiftDate.Format("2006-01-02"))
	if event.Title != nil && *event.Title != "" {
		title = *event.Title + ": " + title
	}
	if err := f.SetCellValue(attendanceSheet, "A1", title); err != nil {
		return err
	}
	if err := f.SetSheetRow(attendanceSheet, "A3", &attendanceHeader); err != nil {
		return err
	}

	var totalHours, totalAmount float64
	for i, a := range rows {
		row := []interface{}{
			staffName(a.Staff), staffPhone(a.Staff),
			a.CheckInTime.In(loc).Format(timeLayout),
			formatTime(a.CheckOutTime, loc),
			hours(a.HoursWorked),
			a.AmountEarned,
			string(a.PaymentStatus),
			formatTime(a.PaymentDueAt, loc),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+4)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(attendanceSheet, cell, &row); err != nil {
			return err
		}
		totalHours += hours(a.HoursWorked)
		totalAmount += a.AmountEarned
	}

	totalCell, err := excelize.CoordinatesToCellName(1, len(rows)+5)
	if err != nil {
		return err
	}
	totals := []interface{}{"Total", "", "", "", totalHours, totalAmount}
	if err := f.SetSheetRow(attendanceSheet, totalCell, &totals); err != nil {
		return err
	}

	if err := f.SetColWidth(attendanceSheet, "A", "H", 18); err != nil {
		return err
	}
	return f.Write(w)
}

func staffName(p *models.Profile) string {
	if p == nil {
		return ""
	}
	return p.FullName
}

func staffPhone(p *models.Profile) string {
	if p == nil {
		return ""
	}
	return p.Phone
}

func formatTime(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format(timeLayout)
}

func hours(h *float64) float64 {
	if h == nil {
		return 0
	}
	return *h
}

package dto

import (
	"eventstaff_backend/internal/models"
)

type AttendanceState string

const (
	AttendanceNotCheckedIn AttendanceState = "not_checked_in"
	AttendanceCheckedIn    AttendanceState = "checked_in"
	AttendanceCheckedOut   AttendanceState = "checked_out"
)

// AttendanceResponse is the caller's state for one event.
type AttendanceResponse struct {
	State      AttendanceState    `json:"state"`
	Attendance *models.Attendance `json:"attendance,omitempty"`
}

func NewAttendanceResponse(a *models.Attendance) AttendanceResponse {
	switch {
	case a == nil:
		return AttendanceResponse{State: AttendanceNotCheckedIn}
	case a.CheckedOut():
		return AttendanceResponse{State: AttendanceCheckedOut, Attendance: a}
	default:
		return AttendanceResponse{State: AttendanceCheckedIn, Attendance: a}
	}
}

// EventAttendanceRow is one line of a client's attendance list.
type EventAttendanceRow struct {
	models.Attendance
	Staff *StaffSummary `json:"staff,omitempty"`
}

func NewEventAttendanceRows(rows []models.Attendance) []EventAttendanceRow {
	out := make([]EventAttendanceRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, EventAttendanceRow{Attendance: r, Staff: NewStaffSummary(r.Staff)})
	}
	return out
}

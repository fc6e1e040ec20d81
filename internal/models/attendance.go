package models

import (
	"math"
	"time"
)

// Attendance is the check-in/check-out and payment record for one shift.
type Attendance struct {
	BaseModel
	EventID           string        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_event_staff" json:"event_id"`
	StaffID           string        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_event_staff;index" json:"staff_id"`
	CheckInTime       time.Time     `gorm:"not null" json:"check_in_time"`
	CheckOutTime      *time.Time    `json:"check_out_time,omitempty"`
	HoursWorked       *float64      `json:"hours_worked,omitempty"`
	AmountEarned      float64       `gorm:"not null;default:0" json:"amount_earned"`
	PaymentStatus     PaymentStatus `gorm:"type:varchar(10);not null;default:'pending';index" json:"payment_status"`
	PaymentDueAt      *time.Time    `gorm:"index" json:"payment_due_at,omitempty"`
	OverdueNotifiedAt *time.Time    `json:"-"`

	Event *Event   `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Staff *Profile `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

func (Attendance) TableName() string { return "attendance" }

func (a *Attendance) CheckedOut() bool { return a.CheckOutTime != nil }

// HoursBetween is the wall-clock delta in hours rounded to two decimals.
func HoursBetween(in, out time.Time) float64 {
	h := out.Sub(in).Hours()
	return math.Round(h*100) / 100
}

package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EventRole is one staffing slot on an event.
type EventRole struct {
	Name   string  `json:"name" validate:"required,max=64"`
	Count  int     `json:"count" validate:"required,min=1,max=500"`
	Gender string  `json:"gender" validate:"required,is-role-gender"`
	Pay    float64 `json:"pay" validate:"gte=0"`
}

type Event struct {
	BaseModel
	ClientID     string                        `gorm:"type:uuid;not null;index" json:"client_id"`
	Title        *string                       `json:"title,omitempty"`
	City         string                        `gorm:"not null;index" json:"city"`
	Area         string                        `gorm:"not null" json:"area"`
	Venue        string                        `gorm:"not null" json:"venue"`
	VenueAddress string                        `json:"venue_address"`
	ShiftDate    time.Time                     `gorm:"type:date;not null;index" json:"shift_date"`
	ShiftStart   string                        `gorm:"type:varchar(5)" json:"shift_start"`
	ShiftEnd     string                        `gorm:"type:varchar(5)" json:"shift_end"`
	Roles        datatypes.JSONSlice[EventRole] `gorm:"not null" json:"roles"`

	TotalRequired int         `gorm:"not null" json:"total_required"`
	FilledCount   int         `gorm:"not null;default:0" json:"filled_count"`
	Status        EventStatus `gorm:"type:varchar(10);not null;default:'active';index" json:"status"`
	IsUrgent      bool        `gorm:"not null;default:false" json:"is_urgent"`
	UrgentBonus   *float64    `json:"urgent_bonus,omitempty"`

	DressCode            string                     `json:"dress_code"`
	ReportingTime        string                     `json:"reporting_time"`
	MeetingPoint         string                     `json:"meeting_point"`
	LanguageRequirements datatypes.JSONSlice[string] `json:"language_requirements,omitempty"`
	FoodProvided         bool                       `gorm:"default:false" json:"food_provided"`
	TravelAllowance      *float64                   `json:"travel_allowance,omitempty"`
	SpecialInstructions  *string                    `json:"special_instructions,omitempty"`

	Client *Profile `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

// TotalRequired sums the head count over all roles.
func TotalRequired(roles []EventRole) int {
	total := 0
	for _, r := range roles {
		total += r.Count
	}
	return total
}

// BeforeSave keeps shift dates as UTC midnight so date comparisons line up
// across drivers.
func (e *Event) BeforeSave(_ *gorm.DB) error {
	e.ShiftDate = DateOnly(e.ShiftDate)
	return nil
}

// Role looks up a role by name.
func (e *Event) Role(name string) (EventRole, bool) {
	for _, r := range e.Roles {
		if r.Name == name {
			return r, true
		}
	}
	return EventRole{}, false
}

// MaxPay is the best pay across the event's roles.
func (e *Event) MaxPay() float64 {
	var best float64
	for _, r := range e.Roles {
		if r.Pay > best {
			best = r.Pay
		}
	}
	return best
}

// IsUpcoming reports whether the shift falls on today or later.
func (e *Event) IsUpcoming(now time.Time) bool {
	return !DateOnly(e.ShiftDate).Before(DateOnly(now))
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

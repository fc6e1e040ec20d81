package models

import "time"

// Application is unique per (event, staff); the index enforces it.
type Application struct {
	BaseModel
	EventID   string            `gorm:"type:uuid;not null;uniqueIndex:idx_applications_event_staff" json:"event_id"`
	StaffID   string            `gorm:"type:uuid;not null;uniqueIndex:idx_applications_event_staff;index" json:"staff_id"`
	Role      string            `gorm:"not null" json:"role"`
	Status    ApplicationStatus `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	AppliedAt time.Time         `gorm:"not null;index" json:"applied_at"`

	Event *Event   `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Staff *Profile `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

package dto

import (
	"eventstaff_backend/internal/models"
)

type ApplyRequest struct {
	Role string `json:"role" validate:"required,max=64"`
}

// ApplicationResponse carries the event and client summary for staff lists.
type ApplicationResponse struct {
	models.Application
	Event *EventResponse `json:"event,omitempty"`
	Staff *StaffSummary  `json:"staff,omitempty"`
}

// StaffSummary is what a client sees about an applicant.
type StaffSummary struct {
	ID              string   `json:"id"`
	FullName        string   `json:"full_name"`
	City            string   `json:"city"`
	IsVerified      bool     `json:"is_verified"`
	RatingAvg       float64  `json:"rating_avg"`
	EventsCompleted int      `json:"events_completed"`
	PreferredRoles  []string `json:"preferred_roles,omitempty"`
}

func NewStaffSummary(p *models.Profile) *StaffSummary {
	if p == nil {
		return nil
	}
	return &StaffSummary{
		ID:              p.ID,
		FullName:        p.FullName,
		City:            p.City,
		IsVerified:      p.IsVerified,
		RatingAvg:       p.RatingAvg,
		EventsCompleted: p.EventsCompleted,
		PreferredRoles:  p.Staff.Roles(),
	}
}

func NewApplicationResponse(a *models.Application) ApplicationResponse {
	resp := ApplicationResponse{Application: *a, Staff: NewStaffSummary(a.Staff)}
	if a.Event != nil {
		ev := NewEventResponse(a.Event)
		resp.Event = &ev
	}
	return resp
}

func NewApplicationResponses(apps []models.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		out = append(out, NewApplicationResponse(&apps[i]))
	}
	return out
}

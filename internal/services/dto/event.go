package dto

import (
	"eventstaff_backend/internal/models"
)

// PostEventRequest is the post-event form.
type PostEventRequest struct {
	Title        *string `json:"title" validate:"omitempty,max=160"`
	City         string  `json:"city" validate:"required,max=80"`
	Area         string  `json:"area" validate:"required,max=120"`
	Venue        string  `json:"venue" validate:"required,max=160"`
	VenueAddress string  `json:"venue_address" validate:"omitempty,max=300"`

	ShiftDate  string `json:"shift_date" validate:"required,datetime=2006-01-02"`
	ShiftStart string `json:"shift_start" validate:"required,datetime=15:04"`
	ShiftEnd   string `json:"shift_end" validate:"required,datetime=15:04"`

	Roles []models.EventRole `json:"roles" validate:"required,min=1,max=20,dive"`

	IsUrgent    bool     `json:"is_urgent"`
	UrgentBonus *float64 `json:"urgent_bonus" validate:"omitempty,gte=0"`

	DressCode            string   `json:"dress_code" validate:"omitempty,max=200"`
	ReportingTime        string   `json:"reporting_time" validate:"omitempty,datetime=15:04"`
	MeetingPoint         string   `json:"meeting_point" validate:"omitempty,max=200"`
	LanguageRequirements []string `json:"language_requirements" validate:"omitempty,max=10,dive,required,max=40"`
	FoodProvided         bool     `json:"food_provided"`
	TravelAllowance      *float64 `json:"travel_allowance" validate:"omitempty,gte=0"`
	SpecialInstructions  *string  `json:"special_instructions" validate:"omitempty,max=1000"`
}

// BrowseEventsQuery filters the staff browse list.
type BrowseEventsQuery struct {
	City       string  `form:"city" json:"city" validate:"omitempty,max=80"`
	UrgentOnly bool    `form:"urgent_only" json:"urgent_only"`
	MinPay     float64 `form:"min_pay" json:"min_pay" validate:"gte=0"`
	Role       string  `form:"role" json:"role" validate:"omitempty,max=64"`
	Page       int     `form:"page" json:"page" validate:"omitempty,min=1"`
	PageSize   int     `form:"page_size" json:"page_size" validate:"omitempty,min=1,max=100"`
}

// ClientSummary is what staff see about the organizer of an event.
type ClientSummary struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	CompanyName  string  `json:"company_name"`
	IsVerified   bool    `json:"is_verified"`
	RatingAvg    float64 `json:"rating_avg"`
	PaymentScore float64 `json:"payment_score"`
}

func NewClientSummary(p *models.Profile) *ClientSummary {
	if p == nil {
		return nil
	}
	s := &ClientSummary{
		ID:           p.ID,
		FullName:     p.FullName,
		IsVerified:   p.IsVerified,
		RatingAvg:    p.RatingAvg,
		PaymentScore: p.PaymentScore,
	}
	if p.Client != nil {
		s.CompanyName = p.Client.CompanyName
	}
	return s
}

// EventResponse is an event with its client summary in place of the full
// client profile.
type EventResponse struct {
	models.Event
	Client *ClientSummary `json:"client,omitempty"`
}

func NewEventResponse(e *models.Event) EventResponse {
	return EventResponse{Event: *e, Client: NewClientSummary(e.Client)}
}

func NewEventResponses(events []models.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for i := range events {
		out = append(out, NewEventResponse(&events[i]))
	}
	return out
}

type PostEventResponse struct {
	Event        EventResponse        `json:"event"`
	Subscription SubscriptionResponse `json:"subscription"`
}

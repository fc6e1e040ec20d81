package dto

import (
	"time"

	"eventstaff_backend/internal/models"
)

// UpdateProfileRequest changes only the fields that are sent. Variant fields
// that do not match the caller's user type are rejected.
type UpdateProfileRequest struct {
	FullName       *string  `json:"full_name" validate:"omitempty,min=1,max=120"`
	Phone          *string  `json:"phone" validate:"omitempty,max=20"`
	City           *string  `json:"city" validate:"omitempty,min=1,max=80"`
	CompanyName    *string  `json:"company_name" validate:"omitempty,max=160"`
	PreferredRoles []string `json:"preferred_roles" validate:"omitempty,max=20,dive,required,max=64"`
}

// PublicProfile omits contact details.
type PublicProfile struct {
	ID              string          `json:"id"`
	UserType        models.UserType `json:"user_type"`
	FullName        string          `json:"full_name"`
	City            string          `json:"city"`
	CompanyName     string          `json:"company_name,omitempty"`
	PreferredRoles  []string        `json:"preferred_roles,omitempty"`
	IsVerified      bool            `json:"is_verified"`
	RatingAvg       float64         `json:"rating_avg"`
	RatingCount     int             `json:"rating_count"`
	PaymentScore    float64         `json:"payment_score,omitempty"`
	EventsCompleted int             `json:"events_completed"`
	MemberSince     time.Time       `json:"member_since"`
}

func NewPublicProfile(p *models.Profile) PublicProfile {
	out := PublicProfile{
		ID:              p.ID,
		UserType:        p.UserType,
		FullName:        p.FullName,
		City:            p.City,
		IsVerified:      p.IsVerified,
		RatingAvg:       p.RatingAvg,
		RatingCount:     p.RatingCount,
		EventsCompleted: p.EventsCompleted,
		MemberSince:     p.CreatedAt,
	}
	if p.IsClient() {
		out.PaymentScore = p.PaymentScore
		if p.Client != nil {
			out.CompanyName = p.Client.CompanyName
		}
	}
	if p.IsStaff() {
		out.PreferredRoles = p.Staff.Roles()
	}
	return out
}

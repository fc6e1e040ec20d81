package dto

import (
	"time"

	"eventstaff_backend/internal/models"
)

// SignUpRequest creates a user together with its profile.
type SignUpRequest struct {
	Email    string          `json:"email" validate:"required,email,max=254"`
	Password string          `json:"password" validate:"required,min=8,max=72"`
	UserType models.UserType `json:"user_type" validate:"required,is-user-type"`

	FullName string `json:"full_name" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	City     string `json:"city" validate:"required,max=80"`

	// Client only
	CompanyName string `json:"company_name" validate:"required_if=UserType client,max=160"`
	// Staff only
	PreferredRoles []string `json:"preferred_roles" validate:"omitempty,max=20,dive,required,max=64"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// AuthResponse is returned by sign-up and sign-in.
type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
	SessionID   string          `json:"session_id"`
	User        UserResponse    `json:"user"`
	Profile     *models.Profile `json:"profile"`
}

// MeResponse bootstraps a client app from an existing token.
type MeResponse struct {
	User      UserResponse    `json:"user"`
	Profile   *models.Profile `json:"profile"`
	SessionID string          `json:"session_id"`
	ExpiresAt time.Time       `json:"expires_at"`
}

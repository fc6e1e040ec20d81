package auth

import (
	"context"
	"time"

	"eventstaff_backend/internal/models"
)

// Session is the authenticated caller for one request.
type Session struct {
	ID        string          `json:"session_id"`
	UserID    string          `json:"user_id"`
	Email     string          `json:"email"`
	Profile   *models.Profile `json:"profile"`
	ExpiresAt time.Time       `json:"expires_at"`
}

func (s *Session) UserType() models.UserType {
	if s == nil || s.Profile == nil {
		return ""
	}
	return s.Profile.UserType
}

type sessionKeyType struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKeyType{}, s)
}

// FromContext returns the session injected by the auth middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKeyType{}).(*Session)
	return s, ok && s != nil
}

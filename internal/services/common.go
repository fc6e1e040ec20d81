package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"eventstaff_backend/internal/appErrors"
	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/config"
	"eventstaff_backend/internal/repositories"
	"eventstaff_backend/internal/validator"
)

// Marketplace holds the business constants services need.
type Marketplace struct {
	FreeMonthlyPosts int
	PremiumDays      int
	PremiumPriceINR  int
	PaymentDue       time.Duration
}

func MarketplaceFromConfig(cfg *config.Config) Marketplace {
	return Marketplace{
		FreeMonthlyPosts: cfg.Marketplace.FreeMonthlyPosts,
		PremiumDays:      cfg.Marketplace.PremiumDays,
		PremiumPriceINR:  cfg.Marketplace.PremiumPriceINR,
		PaymentDue:       cfg.PaymentDue(),
	}
}

// DefaultMarketplace is the published pricing.
func DefaultMarketplace() Marketplace {
	return Marketplace{
		FreeMonthlyPosts: 2,
		PremiumDays:      30,
		PremiumPriceINR:  150,
		PaymentDue:       48 * time.Hour,
	}
}

// contextOf returns the request context the handler attached to db.
func contextOf(db *gorm.DB) context.Context {
	if db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}

func validate(v *validator.Validator, req interface{}) error {
	err := v.Validate(req)
	if err == nil {
		return nil
	}
	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		return appErrors.ValidationError(vErr.Errors)
	}
	return appErrors.InternalError(err)
}

func requireClient(s *auth.Session) error {
	if s == nil || s.Profile == nil {
		return appErrors.ErrUnauthorized
	}
	if !s.Profile.IsClient() {
		return appErrors.ErrClientOnly
	}
	return nil
}

func requireStaff(s *auth.Session) error {
	if s == nil || s.Profile == nil {
		return appErrors.ErrUnauthorized
	}
	if !s.Profile.IsStaff() {
		return appErrors.ErrStaffOnly
	}
	return nil
}

// repoError maps repository sentinels to AppErrors; anything else is a
// database failure.
func repoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrUserNotFound):
		return appErrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrProfileNotFound):
		return appErrors.ErrProfileNotFound
	case errors.Is(err, repositories.ErrEventNotFound):
		return appErrors.ErrEventNotFound
	case errors.Is(err, repositories.ErrSubscriptionNotFound):
		return appErrors.ErrSubscriptionNotFound
	case errors.Is(err, repositories.ErrUserAlreadyExists):
		return appErrors.ErrEmailAlreadyExists
	case errors.Is(err, repositories.ErrApplicationExists):
		return appErrors.ErrAlreadyApplied
	case errors.Is(err, repositories.ErrAttendanceExists):
		return appErrors.ErrAlreadyCheckedIn
	default:
		return appErrors.DatabaseError(err)
	}
}

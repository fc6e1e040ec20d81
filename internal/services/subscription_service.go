package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"eventstaff_backend/internal/appErrors"
	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/repositories"
	"eventstaff_backend/internal/services/dto"
)

type SubscriptionService interface {
	Get(db *gorm.DB, session *auth.Session) (*dto.SubscriptionResponse, error)
	Upgrade(db *gorm.DB, session *auth.Session) (*dto.SubscriptionResponse, error)
	UpgradeOffer() dto.UpgradeOffer
}

type SubscriptionServiceImpl struct {
	subscriptions repositories.SubscriptionRepository
	market        Marketplace
	now           func() time.Time
}

func NewSubscriptionService(subs repositories.SubscriptionRepository, market Marketplace, now func() time.Time) SubscriptionService {
	return &SubscriptionServiceImpl{subscriptions: subs, market: market, now: now}
}

func (s *SubscriptionServiceImpl) Get(db *gorm.DB, session *auth.Session) (*dto.SubscriptionResponse, error) {
	if err := requireClient(session); err != nil {
		return nil, err
	}
	sub, err := s.subscriptions.FindByClientID(db, session.UserID)
	if err != nil {
		return nil, repoError(err)
	}
	out := dto.NewSubscriptionResponse(sub, s.now(), s.market.FreeMonthlyPosts)
	return &out, nil
}

// Upgrade activates premium for PremiumDays from now. There is no payment
// gateway; activation is explicit.
func (s *SubscriptionServiceImpl) Upgrade(db *gorm.DB, session *auth.Session) (*dto.SubscriptionResponse, error) {
	if err := requireClient(session); err != nil {
		return nil, err
	}

	expiresAt := s.now().AddDate(0, 0, s.market.PremiumDays)
	if err := s.subscriptions.Upgrade(db, session.UserID, expiresAt); err != nil {
		return nil, repoError(err)
	}
	logger.CtxInfo(contextOf(db), "subscription upgraded", "client_id", session.UserID, "expires_at", expiresAt)

	return s.Get(db, session)
}

// UpgradeOffer is the payload of an UPGRADE_REQUIRED error.
func (s *SubscriptionServiceImpl) UpgradeOffer() dto.UpgradeOffer {
	return upgradeOffer(s.market)
}

func upgradeOffer(m Marketplace) dto.UpgradeOffer {
	return dto.UpgradeOffer{
		NeedsUpgrade:     true,
		FreeMonthlyPosts: m.FreeMonthlyPosts,
		PremiumPriceINR:  m.PremiumPriceINR,
		PremiumDays:      m.PremiumDays,
		Message: fmt.Sprintf("Free plan allows %d events per month. Upgrade to Premium for ₹%d per %d days.",
			m.FreeMonthlyPosts, m.PremiumPriceINR, m.PremiumDays),
	}
}

func upgradeRequired(m Marketplace) *appErrors.AppError {
	return appErrors.ErrUpgradeRequired.WithDetails(upgradeOffer(m))
}

package dto

import (
	"time"

	"eventstaff_backend/internal/models"
)

type SubscriptionResponse struct {
	Plan                  models.SubscriptionPlan   `json:"plan"`
	Status                models.SubscriptionStatus `json:"status"`
	EventsPostedThisMonth int                       `json:"events_posted_this_month"`
	PremiumExpiresAt      *time.Time                `json:"premium_expires_at,omitempty"`
	NeedsUpgrade          bool                      `json:"needs_upgrade"`
	// RemainingPosts is -1 on premium.
	RemainingPosts int `json:"remaining_posts"`
}

func NewSubscriptionResponse(s *models.Subscription, now time.Time, freeLimit int) SubscriptionResponse {
	return SubscriptionResponse{
		Plan:                  s.Plan,
		Status:                s.Status,
		EventsPostedThisMonth: s.PostsThisPeriod(now),
		PremiumExpiresAt:      s.PremiumExpiresAt,
		NeedsUpgrade:          s.NeedsUpgrade(now, freeLimit),
		RemainingPosts:        s.RemainingPosts(now, freeLimit),
	}
}

// UpgradeOffer is attached to UPGRADE_REQUIRED errors.
type UpgradeOffer struct {
	NeedsUpgrade     bool   `json:"needs_upgrade"`
	FreeMonthlyPosts int    `json:"free_monthly_posts"`
	PremiumPriceINR  int    `json:"premium_price_inr"`
	PremiumDays      int    `json:"premium_days"`
	Message          string `json:"message"`
}

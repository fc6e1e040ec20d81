package models

import "time"

// Subscription tracks a client's plan and how many events they posted in the
// current counter period (YYYY-MM).
type Subscription struct {
	BaseModel
	ClientID              string             `gorm:"type:uuid;uniqueIndex;not null" json:"client_id"`
	Plan                  SubscriptionPlan   `gorm:"type:varchar(10);not null;default:'free'" json:"plan"`
	Status                SubscriptionStatus `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	EventsPostedThisMonth int                `gorm:"not null;default:0" json:"events_posted_this_month"`
	CounterPeriod         string             `gorm:"type:varchar(7);not null" json:"counter_period"`
	PremiumExpiresAt      *time.Time         `json:"premium_expires_at,omitempty"`
}

// CounterPeriod formats the period key used for the monthly post counter.
func CounterPeriod(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// PostsThisPeriod returns the counter as seen in the period containing now.
// A counter from an earlier month counts as zero.
func (s *Subscription) PostsThisPeriod(now time.Time) int {
	if s.CounterPeriod != CounterPeriod(now) {
		return 0
	}
	return s.EventsPostedThisMonth
}

// NeedsUpgrade reports whether a free client has used up the monthly quota.
func (s *Subscription) NeedsUpgrade(now time.Time, freeLimit int) bool {
	return s.Plan == PlanFree && s.PostsThisPeriod(now) >= freeLimit
}

// RemainingPosts is -1 for unlimited plans.
func (s *Subscription) RemainingPosts(now time.Time, freeLimit int) int {
	if s.Plan != PlanFree {
		return -1
	}
	left := freeLimit - s.PostsThisPeriod(now)
	if left < 0 {
		return 0
	}
	return left
}

package repositories

import (
	"time"

	"gorm.io/gorm"

	"eventstaff_backend/internal/models"
)

type SubscriptionRepository interface {
	Create(db *gorm.DB, sub *models.Subscription) error
	FindByClientID(db *gorm.DB, clientID string) (*models.Subscription, error)
	IncrementPostCounter(db *gorm.DB, clientID string, now time.Time, freeLimit int) error
	Upgrade(db *gorm.DB, clientID string, expiresAt time.Time) error
	ExpirePremium(db *gorm.DB, now time.Time) (int64, error)
	ResetStaleCounters(db *gorm.DB, now time.Time) (int64, error)
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

func (r *SubscriptionRepositoryImpl) Create(db *gorm.DB, sub *models.Subscription) error {
	if sub.CounterPeriod == "" {
		sub.CounterPeriod = models.CounterPeriod(time.Now())
	}
	return db.Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) FindByClientID(db *gorm.DB, clientID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := db.First(&sub, "client_id = ?", clientID).Error; err != nil {
		return nil, notFound(err, ErrSubscriptionNotFound)
	}
	return &sub, nil
}

// IncrementPostCounter bumps the monthly counter in one conditional UPDATE.
// A counter from an earlier period restarts at 1. Free plans at the limit
// match no row and get ErrQuotaExceeded, so two concurrent posts cannot both
// take the last slot.
func (r *SubscriptionRepositoryImpl) IncrementPostCounter(db *gorm.DB, clientID string, now time.Time, freeLimit int) error {
	period := models.CounterPeriod(now)

	result := db.Exec(`
		UPDATE subscriptions
		SET events_posted_this_month = CASE WHEN counter_period = ? THEN events_posted_this_month + 1 ELSE 1 END,
		    counter_period = ?,
		    updated_at = ?
		WHERE client_id = ?
		  AND (plan = ? OR counter_period <> ? OR events_posted_this_month < ?)`,
		period, period, now, clientID, models.PlanPremium, period, freeLimit,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	// No row matched: either the client has no subscription or is at the limit.
	if _, err := r.FindByClientID(db, clientID); err != nil {
		return err
	}
	return ErrQuotaExceeded
}

func (r *SubscriptionRepositoryImpl) Upgrade(db *gorm.DB, clientID string, expiresAt time.Time) error {
	result := db.Model(&models.Subscription{}).
		Where("client_id = ?", clientID).
		Updates(map[string]interface{}{
			"plan":               models.PlanPremium,
			"status":             models.SubscriptionStatusActive,
			"premium_expires_at": expiresAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

// ExpirePremium moves lapsed premium plans back to free.
func (r *SubscriptionRepositoryImpl) ExpirePremium(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Subscription{}).
		Where("plan = ? AND premium_expires_at IS NOT NULL AND premium_expires_at < ?", models.PlanPremium, now).
		Updates(map[string]interface{}{
			"plan":               models.PlanFree,
			"premium_expires_at": nil,
		})
	return result.RowsAffected, result.Error
}

// ResetStaleCounters zeroes counters left over from earlier months.
func (r *SubscriptionRepositoryImpl) ResetStaleCounters(db *gorm.DB, now time.Time) (int64, error) {
	period := models.CounterPeriod(now)
	result := db.Model(&models.Subscription{}).
		Where("counter_period <> ?", period).
		Updates(map[string]interface{}{
			"events_posted_this_month": 0,
			"counter_period":           period,
		})
	return result.RowsAffected, result.Error
}

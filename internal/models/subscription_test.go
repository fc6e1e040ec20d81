package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionQuota(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	free := &Subscription{Plan: PlanFree, EventsPostedThisMonth: 2, CounterPeriod: "2026-10"}
	assert.True(t, free.NeedsUpgrade(now, 2))
	assert.Equal(t, 0, free.RemainingPosts(now, 2))

	stale := &Subscription{Plan: PlanFree, EventsPostedThisMonth: 2, CounterPeriod: "2026-09"}
	assert.False(t, stale.NeedsUpgrade(now, 2), "last month's posts do not count")
	assert.Equal(t, 2, stale.RemainingPosts(now, 2))

	premium := &Subscription{Plan: PlanPremium, EventsPostedThisMonth: 40, CounterPeriod: "2026-10"}
	assert.False(t, premium.NeedsUpgrade(now, 2))
	assert.Equal(t, -1, premium.RemainingPosts(now, 2))
}

func TestProfileVariants(t *testing.T) {
	c := NewClientProfile("c1", "Asha Rao", "9800000000", "Mumbai", "Rao Events")
	assert.True(t, c.IsClient())
	assert.Nil(t, c.Staff)
	assert.Equal(t, "Rao Events", c.Client.CompanyName)

	s := NewStaffProfile("s1", "Vikram", "9800000001", "Pune", []string{"Server", "Security"})
	assert.True(t, s.IsStaff())
	assert.Nil(t, s.Client)
	assert.Equal(t, []string{"Server", "Security"}, s.Staff.Roles())

	// a loaded row has both pointers allocated by the ORM
	loaded := &Profile{UserType: UserTypeStaff, Client: &ClientDetails{}, Staff: &StaffDetails{}}
	loaded.normalizeVariant()
	assert.Nil(t, loaded.Client)
	assert.NotNil(t, loaded.Staff)
}

package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventstaff_backend/internal/models"
)

var now = time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC)

func event(status models.EventStatus, shift time.Time) models.Event {
	return models.Event{Status: status, ShiftDate: shift}
}

func TestClientStats(t *testing.T) {
	snap := ClientSnapshot{
		Events: []models.Event{
			event(models.EventStatusActive, now),                   // today counts as upcoming
			event(models.EventStatusActive, now.AddDate(0, 0, 3)),  // upcoming
			event(models.EventStatusActive, now.AddDate(0, 0, -2)), // active but past
			event(models.EventStatusCompleted, now.AddDate(0, 0, 5)),
			event(models.EventStatusCancelled, now.AddDate(0, 0, 1)),
		},
		Attendance: []models.Attendance{
			{PaymentStatus: models.PaymentStatusPending},
			{PaymentStatus: models.PaymentStatusPending},
			{PaymentStatus: models.PaymentStatusPaid},
		},
		Subscription: &models.Subscription{
			Plan:                  models.PlanFree,
			EventsPostedThisMonth: 2,
			CounterPeriod:         "2026-06",
		},
	}

	got := Client(snap, now, 2)

	assert.Equal(t, ClientStats{
		ActiveEvents:    3,
		UpcomingEvents:  2,
		TotalStaffHired: 3,
		PendingPayments: 2,
		NeedsUpgrade:    true,
		RemainingPosts:  0,
	}, got)
}

func TestClientStatsStaleCounter(t *testing.T) {
	snap := ClientSnapshot{Subscription: &models.Subscription{
		Plan:                  models.PlanFree,
		EventsPostedThisMonth: 2,
		CounterPeriod:         "2026-05",
	}}

	got := Client(snap, now, 2)
	assert.False(t, got.NeedsUpgrade)
	assert.Equal(t, 2, got.RemainingPosts)
}

func TestStaffStats(t *testing.T) {
	snap := StaffSnapshot{
		Applications: []models.Application{
			{Status: models.ApplicationStatusPending},
			{Status: models.ApplicationStatusPending},
			{Status: models.ApplicationStatusAccepted},
			{Status: models.ApplicationStatusRejected},
		},
		Attendance: []models.Attendance{
			{AmountEarned: 1200, PaymentStatus: models.PaymentStatusPaid},
			{AmountEarned: 1800, PaymentStatus: models.PaymentStatusPending},
		},
	}

	assert.Equal(t, StaffStats{
		PendingApplications: 2,
		UpcomingShifts:      1,
		TotalEarnings:       3000,
		EventsCompleted:     1,
	}, Staff(snap))
}

func TestAggregationIsIdempotent(t *testing.T) {
	client := ClientSnapshot{
		Events:     []models.Event{event(models.EventStatusActive, now)},
		Attendance: []models.Attendance{{PaymentStatus: models.PaymentStatusPending}},
	}
	staff := StaffSnapshot{
		Applications: []models.Application{{Status: models.ApplicationStatusPending}},
		Attendance:   []models.Attendance{{AmountEarned: 500}},
	}

	assert.Equal(t, Client(client, now, 2), Client(client, now, 2))
	assert.Equal(t, Staff(staff), Staff(staff))
}

func TestRecentApplications(t *testing.T) {
	var apps []models.Application
	for i := 0; i < 12; i++ {
		apps = append(apps, models.Application{Role: string(rune('a' + i)), AppliedAt: now.Add(time.Duration(i) * time.Hour)})
	}

	recent := RecentApplications(apps, RecentApplicationsLimit)
	require.Len(t, recent, 10)
	assert.Equal(t, "l", recent[0].Role)
	assert.Equal(t, "c", recent[9].Role)
	assert.Equal(t, "a", apps[0].Role)
}

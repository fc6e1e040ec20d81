// Package dashboard derives client and staff dashboard numbers from a
// snapshot of rows. Every function here is pure: the same snapshot and now
// always give the same result.
package dashboard

import (
	"sort"
	"time"

	"eventstaff_backend/internal/models"
)

// RecentApplicationsLimit caps the staff dashboard's application list.
const RecentApplicationsLimit = 10

type ClientSnapshot struct {
	Events       []models.Event
	Attendance   []models.Attendance
	Subscription *models.Subscription
}

type ClientStats struct {
	ActiveEvents    int  `json:"active_events"`
	UpcomingEvents  int  `json:"upcoming_events"`
	TotalStaffHired int  `json:"total_staff_hired"`
	PendingPayments int  `json:"pending_payments"`
	NeedsUpgrade    bool `json:"needs_upgrade"`
	RemainingPosts  int  `json:"remaining_posts"`
}

// Client summarises a client's events. freeLimit is the monthly post quota
// of the free plan.
func Client(s ClientSnapshot, now time.Time, freeLimit int) ClientStats {
	var stats ClientStats

	for i := range s.Events {
		e := &s.Events[i]
		if e.Status != models.EventStatusActive {
			continue
		}
		stats.ActiveEvents++
		if e.IsUpcoming(now) {
			stats.UpcomingEvents++
		}
	}

	stats.TotalStaffHired = len(s.Attendance)
	for _, a := range s.Attendance {
		if a.PaymentStatus == models.PaymentStatusPending {
			stats.PendingPayments++
		}
	}

	if s.Subscription != nil {
		stats.NeedsUpgrade = s.Subscription.NeedsUpgrade(now, freeLimit)
		stats.RemainingPosts = s.Subscription.RemainingPosts(now, freeLimit)
	}
	return stats
}

type StaffSnapshot struct {
	Applications []models.Application
	Attendance   []models.Attendance
}

type StaffStats struct {
	PendingApplications int     `json:"pending_applications"`
	UpcomingShifts      int     `json:"upcoming_shifts"`
	TotalEarnings       float64 `json:"total_earnings"`
	EventsCompleted     int     `json:"events_completed"`
}

func Staff(s StaffSnapshot) StaffStats {
	var stats StaffStats

	for _, a := range s.Applications {
		switch a.Status {
		case models.ApplicationStatusPending:
			stats.PendingApplications++
		case models.ApplicationStatusAccepted:
			stats.UpcomingShifts++
		}
	}

	for _, a := range s.Attendance {
		stats.TotalEarnings += a.AmountEarned
		if a.PaymentStatus == models.PaymentStatusPaid {
			stats.EventsCompleted++
		}
	}
	return stats
}

// RecentApplications returns up to limit applications, newest first. The
// input is not modified.
func RecentApplications(apps []models.Application, limit int) []models.Application {
	out := append([]models.Application(nil), apps...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppliedAt.After(out[j].AppliedAt)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

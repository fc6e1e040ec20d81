package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventstaff_backend/internal/appErrors"
	"eventstaff_backend/internal/services/dto"
	tu "eventstaff_backend/internal/testutil"
)

func TestClientDashboard(t *testing.T) {
	h := newHarness(t)
	client := tu.CreateClient(t, h.db, "client@example.in")
	staff := tu.CreateStaff(t, h.db, "staff@example.in")

	today := tu.CreateEvent(t, h.db, client.ID, h.clock.Now())
	tu.CreateEvent(t, h.db, client.ID, h.clock.Now().AddDate(0, 0, -5))

	_, err := h.svc.AttendanceService.CheckIn(h.db, sessionFor(staff), today.ID)
	require.NoError(t, err)

	first, err := h.svc.DashboardService.Client(h.db, sessionFor(client))
	require.NoError(t, err)
	assert.Equal(t, 2, first.Stats.ActiveEvents)
	assert.Equal(t, 1, first.Stats.UpcomingEvents)
	assert.Equal(t, 1, first.Stats.TotalStaffHired)
	assert.Equal(t, 1, first.Stats.PendingPayments)
	assert.False(t, first.Stats.NeedsUpgrade)
	require.NotNil(t, first.Subscription)

	second, err := h.svc.DashboardService.Client(h.db, sessionFor(client))
	require.NoError(t, err)
	assert.Equal(t, first.Stats, second.Stats)

	_, err = h.svc.DashboardService.Client(h.db, sessionFor(staff))
	assert.ErrorIs(t, err, appErrors.ErrClientOnly)
}

func TestStaffDashboard(t *testing.T) {
	h := newHarness(t)
	client := tu.CreateClient(t, h.db, "client@example.in")
	staff := tu.CreateStaff(t, h.db, "staff@example.in")
	session := sessionFor(staff)

	for i := 0; i < 12; i++ {
		event := tu.CreateEvent(t, h.db, client.ID, h.clock.Now().AddDate(0, 0, i))
		_, err := h.svc.ApplicationService.Apply(h.db, session, event.ID, &dto.ApplyRequest{Role: "Server"})
		require.NoError(t, err)
		h.clock.Advance(time.Minute)
	}

	resp, err := h.svc.DashboardService.Staff(h.db, session)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Stats.PendingApplications)
	assert.Zero(t, resp.Stats.TotalEarnings)
	require.Len(t, resp.RecentApplications, 10)
	assert.True(t, resp.RecentApplications[0].AppliedAt.After(resp.RecentApplications[9].AppliedAt))
}

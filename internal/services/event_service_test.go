package services_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventstaff_backend/internal/appErrors"
	"eventstaff_backend/internal/messaging"
	"eventstaff_backend/internal/models"
	"eventstaff_backend/internal/services/dto"
	tu "eventstaff_backend/internal/testutil"
)

func postEventRequest() *dto.PostEventRequest {
	return &dto.PostEventRequest{
		City:       "Mumbai",
		Area:       "Bandra",
		Venue:      "Sea View Lawns",
		ShiftDate:  "2026-10-20",
		ShiftStart: "17:00",
		ShiftEnd:   "23:30",
		Roles: []models.EventRole{
			{Name: "Server", Count: 3, Gender: models.GenderAny, Pay: 1200},
			{Name: "Security", Count: 1, Gender: models.GenderMale, Pay: 1800},
		},
	}
}

func TestPostEvent(t *testing.T) {
	h := newHarness(t)
	client := tu.CreateClient(t, h.db, "client@example.in")

	resp, err := h.svc.EventService.PostEvent(h.db, sessionFor(client), postEventRequest())
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Event.TotalRequired)
	assert.Equal(t, 0, resp.Event.FilledCount)
	assert.Equal(t, models.EventStatusActive, resp.Event.Status)
	assert.Equal(t, 1, resp.Subscription.EventsPostedThisMonth)
	assert.Equal(t, 1, resp.Subscription.RemainingPosts)
	assert.Equal(t, []string{messaging.SubjectEventPosted}, h.publisher.Subjects())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.EventsPosted))
}

func TestThirdFreePostNeedsUpgrade(t *testing.T) {
	h := newHarness(t)
	client := tu.CreateClient(t, h.db, "client@example.in")
	session := sessionFor(client)

	for i := 0; i < 2; i++ {
		_, err := h.svc.EventService.PostEvent(h.db, session, postEventRequest())
		require.NoError(t, err)
	}

	_, err := h.svc.EventService.PostEvent(h.db, session, postEventRequest())
	require.Error(t, err)

	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.CodeUpgradeRequired, appErr.Code)
	offer, ok := appErr.Details.(dto.UpgradeOffer)
	require.True(t, ok)
	assert.True(t, offer.NeedsUpgrade)
	assert.Equal(t, 150, offer.PremiumPriceINR)

	var count int64
	require.NoError(t, h.db.Model(&models.Event{}).Where("client_id = ?", client.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count, "refused post must not insert")
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.UpgradePrompts))

	sub, err := h.svc.SubscriptionService.Get(h.db, session)
	require.NoError(t, err)
	assert.True(t, sub.NeedsUpgrade)

	t.Run("premium lifts the cap", func(t *testing.T) {
		_, err := h.svc.SubscriptionService.Upgrade(h.db, session)
		require.NoError(t, err)

		_, err = h.svc.EventService.PostEvent(h.db, session, postEventRequest())
		assert.NoError(t, err)
	})
}

func TestPostEventValidation(t *testing.T) {
	h := newHarness(t)
	client := tu.CreateClient(t, h.db, "client@example.in")

	req := postEventRequest()
	req.Venue = ""
	req.Roles[0].Count = 0

	_, err := h.svc.EventService.PostEvent(h.db, sessionFor(client), req)
	var appErr *appErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.CodeValidationFailed, appErr.Code)

	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "venue")
	assert.Contains(t, details, "roles[0].count")

	sub, err := h.repos.Subscription.FindByClientID(h.db, client.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, sub.EventsPostedThisMonth)
}

func TestPostEventStaffForbidden(t *testing.T) {
	h := newHarness(t)
	staff := tu.CreateStaff(t, h.db, "staff@example.in")

	_, err := h.svc.EventService.PostEvent(h.db, sessionFor(staff), postEventRequest())
	assert.ErrorIs(t, err, appErrors.ErrClientOnly)
}

func TestBrowseFromDatabase(t *testing.T) {
	h := newHarness(t)
	client := tu.CreateClient(t, h.db, "client@example.in")
	today := h.clock.Now()

	tu.CreateEvent(t, h.db, client.ID, today.AddDate(0, 0, 3))
	tu.CreateEvent(t, h.db, client.ID, today.AddDate(0, 0, -1))
	tu.CreateEvent(t, h.db, client.ID, today.AddDate(0, 0, 1),
		models.EventRole{Name: "Promoter", Count: 2, Gender: models.GenderFemale, Pay: 900})

	events, err := h.svc.EventService.Browse(h.db, &dto.BrowseEventsQuery{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].ShiftDate.Before(events[1].ShiftDate), "ordered by shift date")
	require.NotNil(t, events[0].Client)
	assert.Equal(t, "Test Events Pvt Ltd", events[0].Client.CompanyName)

	events, err = h.svc.EventService.Browse(h.db, &dto.BrowseEventsQuery{MinPay: 1500})
	require.NoError(t, err)
	require.Len(t, events, 1)
	_, ok := events[0].Role("Security")
	assert.True(t, ok)
}

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

func TestApplyTwiceIsRejected(t *testing.T) {
	h := newHarness(t)
	client := tu.CreateClient(t, h.db, "client@example.in")
	staff := tu.CreateStaff(t, h.db, "staff@example.in")
	event := tu.CreateEvent(t, h.db, client.ID, h.clock.Now().AddDate(0, 0, 2))

	resp, err := h.svc.ApplicationService.Apply(h.db, sessionFor(staff), event.ID, &dto.ApplyRequest{Role: "Server"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, resp.Status)
	assert.Equal(t, h.clock.Now(), resp.AppliedAt)

	_, err = h.svc.ApplicationService.Apply(h.db, sessionFor(staff), event.ID, &dto.ApplyRequest{Role: "Security"})
	assert.ErrorIs(t, err, appErrors.ErrAlreadyApplied)

	assert.Equal(t, []string{messaging.SubjectApplicationSubmitted}, h.publisher.Subjects())
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ApplicationsTotal.WithLabelValues("submitted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.ApplicationsTotal.WithLabelValues("duplicate")))
}

func TestApplyGuards(t *testing.T) {
	h := newHarness(t)
	client := tu.CreateClient(t, h.db, "client@example.in")
	staff := tu.CreateStaff(t, h.db, "staff@example.in")
	event := tu.CreateEvent(t, h.db, client.ID, h.clock.Now().AddDate(0, 0, 2))

	cancelled := tu.CreateEvent(t, h.db, client.ID, h.clock.Now().AddDate(0, 0, 2))
	require.NoError(t, h.db.Model(cancelled).Update("status", models.EventStatusCancelled).Error)

	tests := []struct {
		name    string
		session *models.Profile
		eventID string
		role    string
		want    *appErrors.AppError
	}{
		{"client cannot apply", client, event.ID, "Server", appErrors.ErrStaffOnly},
		{"unknown event", staff, "00000000-0000-0000-0000-000000000000", "Server", appErrors.ErrEventNotFound},
		{"inactive event", staff, cancelled.ID, "Server", appErrors.ErrEventNotActive},
		{"unknown role", staff, event.ID, "Bartender", appErrors.ErrUnknownRole},
		{"missing role", staff, event.ID, "", appErrors.ErrValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.ApplicationService.Apply(h.db, sessionFor(tt.session), tt.eventID, &dto.ApplyRequest{Role: tt.role})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestListApplications(t *testing.T) {
	h := newHarness(t)
	client := tu.CreateClient(t, h.db, "client@example.in")
	other := tu.CreateClient(t, h.db, "other@example.in")
	staff := tu.CreateStaff(t, h.db, "staff@example.in")
	event := tu.CreateEvent(t, h.db, client.ID, h.clock.Now().AddDate(0, 0, 2))

	_, err := h.svc.ApplicationService.Apply(h.db, sessionFor(staff), event.ID, &dto.ApplyRequest{Role: "Server"})
	require.NoError(t, err)

	mine, err := h.svc.ApplicationService.ListMine(h.db, sessionFor(staff))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Event)
	require.NotNil(t, mine[0].Event.Client)
	assert.Equal(t, "Test Events Pvt Ltd", mine[0].Event.Client.CompanyName)

	forEvent, err := h.svc.ApplicationService.ListForEvent(h.db, sessionFor(client), event.ID)
	require.NoError(t, err)
	require.Len(t, forEvent, 1)
	require.NotNil(t, forEvent[0].Staff)
	assert.Equal(t, "Test Staff", forEvent[0].Staff.FullName)

	_, err = h.svc.ApplicationService.ListForEvent(h.db, sessionFor(other), event.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

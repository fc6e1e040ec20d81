package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventstaff_backend/internal/appErrors"
	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/messaging"
	"eventstaff_backend/internal/models"
	"eventstaff_backend/internal/services/dto"
)

func clientSignUp() *dto.SignUpRequest {
	return &dto.SignUpRequest{
		Email:       "Organizer@Example.in",
		Password:    "password123",
		UserType:    models.UserTypeClient,
		FullName:    "Asha Rao",
		City:        "Pune",
		CompanyName: "Rao Weddings",
	}
}

func TestSignUpCreatesClientWithFreePlan(t *testing.T) {
	h := newHarness(t)

	resp, err := h.svc.AuthService.SignUp(h.db, clientSignUp())
	require.NoError(t, err)
	assert.Equal(t, "organizer@example.in", resp.User.Email)
	assert.Equal(t, "Bearer", resp.TokenType)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "Rao Weddings", resp.Profile.Client.CompanyName)

	sub, err := h.repos.Subscription.FindByClientID(h.db, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlanFree, sub.Plan)

	_, err = h.svc.AuthService.SignUp(h.db, clientSignUp())
	assert.ErrorIs(t, err, appErrors.ErrEmailAlreadyExists)
}

func TestSignUpRejections(t *testing.T) {
	h := newHarness(t)

	weak := clientSignUp()
	weak.Password = "short"
	_, err := h.svc.AuthService.SignUp(h.db, weak)
	assert.ErrorIs(t, err, appErrors.ErrWeakPassword)

	noCompany := clientSignUp()
	noCompany.CompanyName = ""
	_, err = h.svc.AuthService.SignUp(h.db, noCompany)
	assert.ErrorIs(t, err, appErrors.ErrValidationFailed)

	var users int64
	require.NoError(t, h.db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestSessionLifecycle(t *testing.T) {
	h := newHarness(t)
	changes, cancel := h.notifier.Subscribe(4)
	defer cancel()

	staff := &dto.SignUpRequest{
		Email:          "staff@example.in",
		Password:       "password123",
		UserType:       models.UserTypeStaff,
		FullName:       "Ravi Kumar",
		City:           "Mumbai",
		PreferredRoles: []string{"Server", "Usher"},
	}
	_, err := h.svc.AuthService.SignUp(h.db, staff)
	require.NoError(t, err)

	_, err = h.svc.AuthService.SignIn(h.db, &dto.SignInRequest{Email: "staff@example.in", Password: "wrong-password"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	signedIn, err := h.svc.AuthService.SignIn(h.db, &dto.SignInRequest{Email: "staff@example.in", Password: "password123"})
	require.NoError(t, err)

	session, err := h.svc.AuthService.Authenticate(h.db, signedIn.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, signedIn.SessionID, session.ID)
	assert.Equal(t, models.UserTypeStaff, session.UserType())

	me, err := h.svc.AuthService.Me(h.db, session)
	require.NoError(t, err)
	assert.Equal(t, []string{"Server", "Usher"}, me.Profile.Staff.Roles())

	require.NoError(t, h.svc.AuthService.SignOut(h.db, session))

	_, err = h.svc.AuthService.Authenticate(h.db, signedIn.AccessToken)
	assert.ErrorIs(t, err, appErrors.ErrSessionExpired)

	_, err = h.svc.AuthService.Authenticate(h.db, "not-a-token")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	var kinds []auth.SessionChangeKind
	for i := 0; i < 3; i++ {
		kinds = append(kinds, (<-changes).Kind)
	}
	assert.Equal(t, []auth.SessionChangeKind{auth.SignedIn, auth.SignedIn, auth.SignedOut}, kinds)
	assert.Contains(t, h.publisher.Subjects(), messaging.SubjectSessionChanged)
}

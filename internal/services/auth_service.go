package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventstaff_backend/internal/appErrors"
	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/metrics"
	"eventstaff_backend/internal/models"
	"eventstaff_backend/internal/repositories"
	"eventstaff_backend/internal/services/dto"
	"eventstaff_backend/internal/validator"
)

type AuthService interface {
	SignUp(db *gorm.DB, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	SignIn(db *gorm.DB, req *dto.SignInRequest) (*dto.AuthResponse, error)
	SignOut(db *gorm.DB, session *auth.Session) error
	Me(db *gorm.DB, session *auth.Session) (*dto.MeResponse, error)
	Authenticate(db *gorm.DB, token string) (*auth.Session, error)
}

type AuthServiceImpl struct {
	repos        *repositories.RepositoryContainer
	tokens       *auth.TokenIssuer
	sessions     auth.SessionStore
	profileCache *auth.ProfileCache
	notifier     *auth.Notifier
	validator    *validator.Validator
	metrics      *metrics.Registry
	now          func() time.Time
}

func NewAuthService(
	repos *repositories.RepositoryContainer,
	tokens *auth.TokenIssuer,
	sessions auth.SessionStore,
	profileCache *auth.ProfileCache,
	notifier *auth.Notifier,
	v *validator.Validator,
	m *metrics.Registry,
	now func() time.Time,
) AuthService {
	return &AuthServiceImpl{
		repos:        repos,
		tokens:       tokens,
		sessions:     sessions,
		profileCache: profileCache,
		notifier:     notifier,
		validator:    v,
		metrics:      m,
		now:          now,
	}
}

// SignUp writes the user, profile and (for clients) the free subscription in
// one transaction, then opens a session.
func (s *AuthServiceImpl) SignUp(db *gorm.DB, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.ErrWeakPassword
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}
	if !req.UserType.Valid() {
		return nil, appErrors.ErrInvalidUserType
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, appErrors.DatabaseError(tx.Error)
	}
	defer tx.Rollback()

	user := &models.User{Email: req.Email, PasswordHash: hash}
	if err := s.repos.User.Create(tx, user); err != nil {
		return nil, repoError(err)
	}

	var profile *models.Profile
	if req.UserType == models.UserTypeClient {
		profile = models.NewClientProfile(user.ID, req.FullName, req.Phone, req.City, req.CompanyName)
	} else {
		profile = models.NewStaffProfile(user.ID, req.FullName, req.Phone, req.City, req.PreferredRoles)
	}
	if err := s.repos.Profile.Create(tx, profile); err != nil {
		return nil, repoError(err)
	}

	if profile.IsClient() {
		sub := &models.Subscription{
			ClientID:      user.ID,
			Plan:          models.PlanFree,
			Status:        models.SubscriptionStatusActive,
			CounterPeriod: models.CounterPeriod(s.now()),
		}
		if err := s.repos.Subscription.Create(tx, sub); err != nil {
			return nil, repoError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, appErrors.DatabaseError(err)
	}

	logger.CtxInfo(contextOf(db), "user signed up", "user_id", user.ID, "user_type", profile.UserType)
	return s.openSession(db, user, profile)
}

func (s *AuthServiceImpl) SignIn(db *gorm.DB, req *dto.SignInRequest) (*dto.AuthResponse, error) {
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	user, err := s.repos.User.FindByEmail(db, req.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, repoError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}
	if user.Profile == nil {
		return nil, appErrors.ErrProfileNotFound
	}

	return s.openSession(db, user, user.Profile)
}

func (s *AuthServiceImpl) openSession(db *gorm.DB, user *models.User, profile *models.Profile) (*dto.AuthResponse, error) {
	ctx := contextOf(db)
	sessionID := uuid.NewString()

	token, expiresAt, err := s.tokens.Issue(user.ID, sessionID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	rec := &auth.SessionRecord{
		ID:        sessionID,
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: s.now(),
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Save(ctx, rec, s.tokens.TTL()); err != nil {
		return nil, appErrors.ServiceUnavailable(err, "Could not start session")
	}

	s.notifier.Notify(ctx, auth.SessionChange{
		UserID:    user.ID,
		SessionID: sessionID,
		Kind:      auth.SignedIn,
		At:        rec.CreatedAt,
	})
	s.metrics.SessionsTotal.WithLabelValues(string(auth.SignedIn)).Inc()

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		SessionID:   sessionID,
		User:        dto.NewUserResponse(user),
		Profile:     profile,
	}, nil
}

// SignOut ends the session and drops the cached profile.
func (s *AuthServiceImpl) SignOut(db *gorm.DB, session *auth.Session) error {
	if session == nil {
		return appErrors.ErrUnauthorized
	}
	ctx := contextOf(db)

	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return appErrors.ServiceUnavailable(err, "Could not end session")
	}
	s.profileCache.Invalidate(session.UserID)

	s.notifier.Notify(ctx, auth.SessionChange{
		UserID:    session.UserID,
		SessionID: session.ID,
		Kind:      auth.SignedOut,
		At:        s.now(),
	})
	s.metrics.SessionsTotal.WithLabelValues(string(auth.SignedOut)).Inc()
	return nil
}

func (s *AuthServiceImpl) Me(db *gorm.DB, session *auth.Session) (*dto.MeResponse, error) {
	if session == nil {
		return nil, appErrors.ErrUnauthorized
	}
	user, err := s.repos.User.FindByID(db, session.UserID)
	if err != nil {
		return nil, repoError(err)
	}
	return &dto.MeResponse{
		User:      dto.NewUserResponse(user),
		Profile:   user.Profile,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Authenticate resolves a bearer token to a live session. A valid token whose
// session was signed out is rejected.
func (s *AuthServiceImpl) Authenticate(db *gorm.DB, token string) (*auth.Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	rec, err := s.sessions.Get(contextOf(db), claims.SessionID())
	if errors.Is(err, auth.ErrSessionNotFound) {
		return nil, appErrors.ErrSessionExpired
	}
	if err != nil {
		return nil, appErrors.ServiceUnavailable(err, "Session store unavailable")
	}
	if rec.UserID != claims.UserID() {
		return nil, appErrors.ErrInvalidToken
	}

	profile, err := s.profileCache.Get(rec.UserID, func() (*models.Profile, error) {
		return s.repos.Profile.FindByID(db, rec.UserID)
	})
	if err != nil {
		return nil, repoError(err)
	}

	return &auth.Session{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Email:     rec.Email,
		Profile:   profile,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

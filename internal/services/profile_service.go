package services

import (
	"gorm.io/gorm"

	"eventstaff_backend/internal/appErrors"
	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/models"
	"eventstaff_backend/internal/repositories"
	"eventstaff_backend/internal/services/dto"
	"eventstaff_backend/internal/validator"
)

type ProfileService interface {
	Get(db *gorm.DB, id string) (*dto.PublicProfile, error)
	UpdateMine(db *gorm.DB, session *auth.Session, req *dto.UpdateProfileRequest) (*models.Profile, error)
}

type ProfileServiceImpl struct {
	profiles     repositories.ProfileRepository
	profileCache *auth.ProfileCache
	validator    *validator.Validator
}

func NewProfileService(profiles repositories.ProfileRepository, cache *auth.ProfileCache, v *validator.Validator) ProfileService {
	return &ProfileServiceImpl{profiles: profiles, profileCache: cache, validator: v}
}

func (s *ProfileServiceImpl) Get(db *gorm.DB, id string) (*dto.PublicProfile, error) {
	profile, err := s.profiles.FindByID(db, id)
	if err != nil {
		return nil, repoError(err)
	}
	out := dto.NewPublicProfile(profile)
	return &out, nil
}

// UpdateMine edits the caller's own profile. The user type never changes and
// the other variant's fields are refused.
func (s *ProfileServiceImpl) UpdateMine(db *gorm.DB, session *auth.Session, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	if session == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByID(db, session.UserID)
	if err != nil {
		return nil, repoError(err)
	}

	if req.CompanyName != nil && !profile.IsClient() {
		return nil, appErrors.NewBadRequestError("company_name applies to client profiles only")
	}
	if req.PreferredRoles != nil && !profile.IsStaff() {
		return nil, appErrors.NewBadRequestError("preferred_roles applies to staff profiles only")
	}

	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.City != nil {
		profile.City = *req.City
	}
	if req.CompanyName != nil {
		profile.Client.CompanyName = *req.CompanyName
	}
	if req.PreferredRoles != nil {
		profile.Staff.SetRoles(req.PreferredRoles)
	}

	if err := s.profiles.UpdateDetails(db, profile); err != nil {
		return nil, repoError(err)
	}
	s.profileCache.Invalidate(profile.ID)

	return s.profiles.FindByID(db, profile.ID)
}

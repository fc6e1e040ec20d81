package repositories

import (
	"gorm.io/gorm"

	"eventstaff_backend/internal/models"
)

type ProfileRepository interface {
	Create(db *gorm.DB, profile *models.Profile) error
	FindByID(db *gorm.DB, id string) (*models.Profile, error)
	UpdateDetails(db *gorm.DB, profile *models.Profile) error
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) Create(db *gorm.DB, profile *models.Profile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		return nil, notFound(err, ErrProfileNotFound)
	}
	return &profile, nil
}

// UpdateDetails writes the editable columns only. user_type is create-only on
// the model, so it cannot change here either.
func (r *ProfileRepositoryImpl) UpdateDetails(db *gorm.DB, profile *models.Profile) error {
	updates := map[string]interface{}{
		"full_name": profile.FullName,
		"phone":     profile.Phone,
		"city":      profile.City,
	}
	switch {
	case profile.IsClient() && profile.Client != nil:
		updates["company_name"] = profile.Client.CompanyName
	case profile.IsStaff() && profile.Staff != nil:
		updates["preferred_roles"] = profile.Staff.PreferredRoles
	}

	result := db.Model(&models.Profile{}).Where("id = ?", profile.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

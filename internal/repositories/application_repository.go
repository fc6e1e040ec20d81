package repositories

import (
	"gorm.io/gorm"

	"eventstaff_backend/internal/models"
)

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	FindByEventAndStaff(db *gorm.DB, eventID, staffID string) (*models.Application, error)
	ListByStaff(db *gorm.DB, staffID string, limit int) ([]models.Application, error)
	ListByEvent(db *gorm.DB, eventID string) ([]models.Application, error)
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

// Create maps the (event_id, staff_id) unique index to ErrApplicationExists.
func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, app *models.Application) error {
	if err := db.Omit("Event", "Staff").Create(app).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrApplicationExists
		}
		return err
	}
	return nil
}

// FindByEventAndStaff returns nil, nil when the staff member never applied.
func (r *ApplicationRepositoryImpl) FindByEventAndStaff(db *gorm.DB, eventID, staffID string) (*models.Application, error) {
	var apps []models.Application
	err := db.Where("event_id = ? AND staff_id = ?", eventID, staffID).Limit(1).Find(&apps).Error
	if err != nil || len(apps) == 0 {
		return nil, err
	}
	return &apps[0], nil
}

// ListByStaff returns newest first; limit <= 0 means all.
func (r *ApplicationRepositoryImpl) ListByStaff(db *gorm.DB, staffID string, limit int) ([]models.Application, error) {
	q := db.Preload("Event").Preload("Event.Client").
		Where("staff_id = ?", staffID).
		Order("applied_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var apps []models.Application
	err := q.Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepositoryImpl) ListByEvent(db *gorm.DB, eventID string) ([]models.Application, error) {
	var apps []models.Application
	err := db.Preload("Staff").
		Where("event_id = ?", eventID).
		Order("applied_at ASC").
		Find(&apps).Error
	return apps, err
}

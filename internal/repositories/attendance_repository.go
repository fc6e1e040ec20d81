package repositories

import (
	"time"

	"gorm.io/gorm"

	"eventstaff_backend/internal/models"
)

type AttendanceRepository interface {
	Create(db *gorm.DB, att *models.Attendance) error
	FindByEventAndStaff(db *gorm.DB, eventID, staffID string) (*models.Attendance, error)
	CheckOut(db *gorm.DB, id string, checkOut time.Time, hours float64, dueAt time.Time) (bool, error)
	ListByEvent(db *gorm.DB, eventID string) ([]models.Attendance, error)
	ListByClient(db *gorm.DB, clientID string) ([]models.Attendance, error)
	ListByStaff(db *gorm.DB, staffID string) ([]models.Attendance, error)
	FindOverdue(db *gorm.DB, now time.Time, limit int) ([]models.Attendance, error)
	MarkOverdueNotified(db *gorm.DB, id string, now time.Time) (bool, error)
}

type AttendanceRepositoryImpl struct{}

func NewAttendanceRepository() AttendanceRepository {
	return &AttendanceRepositoryImpl{}
}

// Create maps the (event_id, staff_id) unique index to ErrAttendanceExists.
func (r *AttendanceRepositoryImpl) Create(db *gorm.DB, att *models.Attendance) error {
	if err := db.Omit("Event", "Staff").Create(att).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrAttendanceExists
		}
		return err
	}
	return nil
}

// FindByEventAndStaff returns nil, nil when the staff member has not checked in.
func (r *AttendanceRepositoryImpl) FindByEventAndStaff(db *gorm.DB, eventID, staffID string) (*models.Attendance, error) {
	var rows []models.Attendance
	err := db.Where("event_id = ? AND staff_id = ?", eventID, staffID).Limit(1).Find(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

// CheckOut only touches a row that is still open. false means another
// request closed it first.
func (r *AttendanceRepositoryImpl) CheckOut(db *gorm.DB, id string, checkOut time.Time, hours float64, dueAt time.Time) (bool, error) {
	result := db.Model(&models.Attendance{}).
		Where("id = ? AND check_out_time IS NULL", id).
		Updates(map[string]interface{}{
			"check_out_time": checkOut,
			"hours_worked":   hours,
			"payment_due_at": dueAt,
		})
	return result.RowsAffected == 1, result.Error
}

func (r *AttendanceRepositoryImpl) ListByEvent(db *gorm.DB, eventID string) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := db.Preload("Staff").
		Where("event_id = ?", eventID).
		Order("check_in_time ASC").
		Find(&rows).Error
	return rows, err
}

// ListByClient returns attendance across every event the client posted.
func (r *AttendanceRepositoryImpl) ListByClient(db *gorm.DB, clientID string) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := db.Select("attendance.*").
		Joins("JOIN events ON events.id = attendance.event_id").
		Where("events.client_id = ?", clientID).
		Order("attendance.check_in_time DESC").
		Find(&rows).Error
	return rows, err
}

func (r *AttendanceRepositoryImpl) ListByStaff(db *gorm.DB, staffID string) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := db.Where("staff_id = ?", staffID).
		Order("check_in_time DESC").
		Find(&rows).Error
	return rows, err
}

// FindOverdue returns unpaid rows past their due time that have not been
// reminded yet, with the event and its client loaded.
func (r *AttendanceRepositoryImpl) FindOverdue(db *gorm.DB, now time.Time, limit int) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := db.Preload("Event").Preload("Event.Client").Preload("Staff").
		Where("payment_status = ? AND payment_due_at IS NOT NULL AND payment_due_at < ? AND overdue_notified_at IS NULL",
			models.PaymentStatusPending, now).
		Order("payment_due_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// MarkOverdueNotified claims the reminder for one row; false means another
// watcher already sent it.
func (r *AttendanceRepositoryImpl) MarkOverdueNotified(db *gorm.DB, id string, now time.Time) (bool, error) {
	result := db.Model(&models.Attendance{}).
		Where("id = ? AND overdue_notified_at IS NULL", id).
		Update("overdue_notified_at", now)
	return result.RowsAffected == 1, result.Error
}

package services

import (
	"io"
	"time"

	"gorm.io/gorm"

	"eventstaff_backend/internal/appErrors"
	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/export"
	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/messaging"
	"eventstaff_backend/internal/metrics"
	"eventstaff_backend/internal/models"
	"eventstaff_backend/internal/repositories"
	"eventstaff_backend/internal/services/dto"
)

type AttendanceService interface {
	CheckIn(db *gorm.DB, session *auth.Session, eventID string) (*dto.AttendanceResponse, error)
	CheckOut(db *gorm.DB, session *auth.Session, eventID string) (*dto.AttendanceResponse, error)
	Get(db *gorm.DB, session *auth.Session, eventID string) (*dto.AttendanceResponse, error)
	ListForEvent(db *gorm.DB, session *auth.Session, eventID string) ([]dto.EventAttendanceRow, error)
	ExportForEvent(db *gorm.DB, session *auth.Session, eventID string, w io.Writer) error
}

// AttendanceChanged is published on attendance.checked_in and
// attendance.checked_out.
type AttendanceChanged struct {
	AttendanceID string     `json:"attendance_id"`
	EventID      string     `json:"event_id"`
	StaffID      string     `json:"staff_id"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	HoursWorked  *float64   `json:"hours_worked,omitempty"`
	AmountEarned float64    `json:"amount_earned"`
	PaymentDueAt *time.Time `json:"payment_due_at,omitempty"`
}

func newAttendanceChanged(a *models.Attendance) AttendanceChanged {
	return AttendanceChanged{
		AttendanceID: a.ID,
		EventID:      a.EventID,
		StaffID:      a.StaffID,
		CheckInTime:  a.CheckInTime,
		CheckOutTime: a.CheckOutTime,
		HoursWorked:  a.HoursWorked,
		AmountEarned: a.AmountEarned,
		PaymentDueAt: a.PaymentDueAt,
	}
}

type AttendanceServiceImpl struct {
	repos     *repositories.RepositoryContainer
	publisher messaging.Publisher
	metrics   *metrics.Registry
	market    Marketplace
	loc       *time.Location
	now       func() time.Time
}

// NewAttendanceService uses loc for the times written to exported sheets.
func NewAttendanceService(
	repos *repositories.RepositoryContainer,
	publisher messaging.Publisher,
	m *metrics.Registry,
	market Marketplace,
	loc *time.Location,
	now func() time.Time,
) AttendanceService {
	return &AttendanceServiceImpl{repos: repos, publisher: publisher, metrics: m, market: market, loc: loc, now: now}
}

func (s *AttendanceServiceImpl) CheckIn(db *gorm.DB, session *auth.Session, eventID string) (*dto.AttendanceResponse, error) {
	if err := requireStaff(session); err != nil {
		return nil, err
	}

	event, err := s.repos.Event.FindByID(db, eventID)
	if err != nil {
		return nil, repoError(err)
	}

	existing, err := s.repos.Attendance.FindByEventAndStaff(db, eventID, session.UserID)
	if err != nil {
		return nil, repoError(err)
	}
	if existing != nil {
		return nil, appErrors.ErrAlreadyCheckedIn
	}

	amount, err := s.shiftPay(db, event, session.UserID)
	if err != nil {
		return nil, err
	}

	att := &models.Attendance{
		EventID:       event.ID,
		StaffID:       session.UserID,
		CheckInTime:   s.now(),
		AmountEarned:  amount,
		PaymentStatus: models.PaymentStatusPending,
	}
	if err := s.repos.Attendance.Create(db, att); err != nil {
		return nil, repoError(err)
	}
	s.metrics.CheckInsTotal.Inc()

	ctx := contextOf(db)
	logger.CtxInfo(ctx, "staff checked in", "event_id", event.ID, "amount", amount)
	if err := s.publisher.Publish(ctx, messaging.SubjectAttendanceCheckedIn, newAttendanceChanged(att)); err != nil {
		logger.CtxWithError(ctx, "failed to publish check-in", err, "attendance_id", att.ID)
	}

	out := dto.NewAttendanceResponse(att)
	return &out, nil
}

// shiftPay is the pay of the role the staff member applied for, or the
// event's first role when there is no application. Before applications
// carried a role, every check-in was paid roles[0].
func (s *AttendanceServiceImpl) shiftPay(db *gorm.DB, event *models.Event, staffID string) (float64, error) {
	app, err := s.repos.Application.FindByEventAndStaff(db, event.ID, staffID)
	if err != nil {
		return 0, repoError(err)
	}
	if app != nil {
		if role, ok := event.Role(app.Role); ok {
			return role.Pay, nil
		}
	}
	if len(event.Roles) == 0 {
		return 0, nil
	}
	return event.Roles[0].Pay, nil
}

// CheckOut closes the shift. The update only applies while check_out_time is
// still null, so a concurrent second check-out loses.
func (s *AttendanceServiceImpl) CheckOut(db *gorm.DB, session *auth.Session, eventID string) (*dto.AttendanceResponse, error) {
	if err := requireStaff(session); err != nil {
		return nil, err
	}

	att, err := s.repos.Attendance.FindByEventAndStaff(db, eventID, session.UserID)
	if err != nil {
		return nil, repoError(err)
	}
	if att == nil {
		return nil, appErrors.ErrNotCheckedIn
	}
	if att.CheckedOut() {
		return nil, appErrors.ErrAlreadyCheckedOut
	}

	out := s.now()
	if out.Before(att.CheckInTime) {
		out = att.CheckInTime
	}
	hours := models.HoursBetween(att.CheckInTime, out)
	due := out.Add(s.market.PaymentDue)

	ok, err := s.repos.Attendance.CheckOut(db, att.ID, out, hours, due)
	if err != nil {
		return nil, repoError(err)
	}
	if !ok {
		return nil, appErrors.ErrAlreadyCheckedOut
	}
	s.metrics.CheckOutsTotal.Inc()

	att.CheckOutTime = &out
	att.HoursWorked = &hours
	att.PaymentDueAt = &due

	ctx := contextOf(db)
	logger.CtxInfo(ctx, "staff checked out", "event_id", eventID, "hours", hours, "payment_due_at", due)
	if err := s.publisher.Publish(ctx, messaging.SubjectAttendanceCheckedOut, newAttendanceChanged(att)); err != nil {
		logger.CtxWithError(ctx, "failed to publish check-out", err, "attendance_id", att.ID)
	}

	resp := dto.NewAttendanceResponse(att)
	return &resp, nil
}

func (s *AttendanceServiceImpl) Get(db *gorm.DB, session *auth.Session, eventID string) (*dto.AttendanceResponse, error) {
	if err := requireStaff(session); err != nil {
		return nil, err
	}
	if _, err := s.repos.Event.FindByID(db, eventID); err != nil {
		return nil, repoError(err)
	}
	att, err := s.repos.Attendance.FindByEventAndStaff(db, eventID, session.UserID)
	if err != nil {
		return nil, repoError(err)
	}
	out := dto.NewAttendanceResponse(att)
	return &out, nil
}

func (s *AttendanceServiceImpl) ListForEvent(db *gorm.DB, session *auth.Session, eventID string) ([]dto.EventAttendanceRow, error) {
	if _, err := ownedEvent(db, s.repos, session, eventID); err != nil {
		return nil, err
	}
	rows, err := s.repos.Attendance.ListByEvent(db, eventID)
	if err != nil {
		return nil, repoError(err)
	}
	return dto.NewEventAttendanceRows(rows), nil
}

// ExportForEvent writes the event's attendance sheet as xlsx to w.
func (s *AttendanceServiceImpl) ExportForEvent(db *gorm.DB, session *auth.Session, eventID string, w io.Writer) error {
	event, err := ownedEvent(db, s.repos, session, eventID)
	if err != nil {
		return err
	}
	rows, err := s.repos.Attendance.ListByEvent(db, eventID)
	if err != nil {
		return repoError(err)
	}
	if err := export.WriteAttendanceSheet(w, event, rows, s.loc); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

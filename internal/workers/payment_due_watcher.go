package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"eventstaff_backend/internal/email"
	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/messaging"
	"eventstaff_backend/internal/metrics"
	"eventstaff_backend/internal/models"
	"eventstaff_backend/internal/repositories"
)

const (
	paymentWatcherName = "payment_due"
	overdueBatchSize   = 100
)

// PaymentOverdue is published on attendance.payment_overdue.
type PaymentOverdue struct {
	AttendanceID string    `json:"attendance_id"`
	EventID      string    `json:"event_id"`
	ClientID     string    `json:"client_id"`
	StaffID      string    `json:"staff_id"`
	Amount       float64   `json:"amount"`
	PaymentDueAt time.Time `json:"payment_due_at"`
}

// PaymentDueWatcher reminds clients of unpaid shifts past the 48 hour
// window. Each row is reminded once; payment_status is never touched.
type PaymentDueWatcher struct {
	db        *gorm.DB
	repos     *repositories.RepositoryContainer
	publisher messaging.Publisher
	mailer    email.Provider
	metrics   *metrics.Registry
	interval  time.Duration
	now       func() time.Time

	wg   sync.WaitGroup
	stop context.CancelFunc
}

func NewPaymentDueWatcher(
	db *gorm.DB,
	repos *repositories.RepositoryContainer,
	publisher messaging.Publisher,
	mailer email.Provider,
	m *metrics.Registry,
	interval time.Duration,
	now func() time.Time,
) *PaymentDueWatcher {
	return &PaymentDueWatcher{
		db:        db,
		repos:     repos,
		publisher: publisher,
		mailer:    mailer,
		metrics:   m,
		interval:  interval,
		now:       now,
	}
}

func (w *PaymentDueWatcher) Start(ctx context.Context) {
	ctx, w.stop = context.WithCancel(ctx)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		runEvery(ctx, w.interval, func() { w.RunOnce(ctx) })
		logger.Info("payment due watcher stopped")
	}()
}

func (w *PaymentDueWatcher) Stop() {
	if w.stop != nil {
		w.stop()
	}
	w.wg.Wait()
}

// RunOnce reminds every overdue row it can claim and returns the number of
// reminders sent.
func (w *PaymentDueWatcher) RunOnce(ctx context.Context) (int64, error) {
	db := w.db.WithContext(ctx)
	now := w.now()

	rows, err := w.repos.Attendance.FindOverdue(db, now, overdueBatchSize)
	if err != nil {
		logger.WorkerLog(paymentWatcherName, "find_overdue", 0, err)
		w.metrics.WorkerRun(paymentWatcherName, err)
		return 0, err
	}

	var sent int64
	for i := range rows {
		claimed, err := w.repos.Attendance.MarkOverdueNotified(db, rows[i].ID, now)
		if err != nil {
			logger.WorkerLog(paymentWatcherName, "mark_notified", sent, err)
			w.metrics.WorkerRun(paymentWatcherName, err)
			return sent, err
		}
		if !claimed {
			continue
		}
		w.remind(ctx, db, &rows[i])
		sent++
	}

	w.metrics.OverdueRemindersSent.Add(float64(sent))
	logger.WorkerLog(paymentWatcherName, "remind", sent, nil)
	w.metrics.WorkerRun(paymentWatcherName, nil)
	return sent, nil
}

// remind publishes and mails one claimed row. Delivery failures are logged;
// the claim stands so the client is not mailed twice.
func (w *PaymentDueWatcher) remind(ctx context.Context, db *gorm.DB, att *models.Attendance) {
	if att.Event == nil || att.PaymentDueAt == nil {
		return
	}

	msg := PaymentOverdue{
		AttendanceID: att.ID,
		EventID:      att.EventID,
		ClientID:     att.Event.ClientID,
		StaffID:      att.StaffID,
		Amount:       att.AmountEarned,
		PaymentDueAt: *att.PaymentDueAt,
	}
	if err := w.publisher.Publish(ctx, messaging.SubjectPaymentOverdue, msg); err != nil {
		logger.CtxWithError(ctx, "failed to publish payment overdue", err, "attendance_id", att.ID)
	}

	client, err := w.repos.User.FindByID(db, att.Event.ClientID)
	if err != nil {
		logger.CtxWithError(ctx, "failed to load client for reminder", err, "attendance_id", att.ID)
		return
	}

	data := email.TemplateData{
		"ClientName": displayName(att.Event.Client),
		"StaffName":  displayName(att.Staff),
		"EventName":  eventName(att.Event),
		"Amount":     att.AmountEarned,
		"DueAt":      att.PaymentDueAt.Format("02 Jan 2006 15:04 MST"),
	}
	subject := fmt.Sprintf("Payment overdue for %s", eventName(att.Event))
	if err := w.mailer.SendTemplate([]string{client.Email}, subject, email.TemplatePaymentOverdue, data); err != nil {
		logger.CtxWithError(ctx, "failed to send overdue reminder", err, "attendance_id", att.ID)
	}
}

func displayName(p *models.Profile) string {
	if p == nil {
		return ""
	}
	return p.FullName
}

func eventName(e *models.Event) string {
	if e.Title != nil && *e.Title != "" {
		return *e.Title
	}
	return fmt.Sprintf("%s, %s (%s)", e.Venue, e.City, e.ShiftDate.Format("02 Jan 2006"))
}

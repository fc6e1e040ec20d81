package workers

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"eventstaff_backend/internal/logger"
	"eventstaff_backend/internal/metrics"
	"eventstaff_backend/internal/repositories"
)

const subscriptionWorkerName = "subscription"

// SubscriptionWorker rolls expired premium plans back to free and zeroes
// post counters left over from an earlier month.
type SubscriptionWorker struct {
	db       *gorm.DB
	subs     repositories.SubscriptionRepository
	metrics  *metrics.Registry
	interval time.Duration
	now      func() time.Time

	wg   sync.WaitGroup
	stop context.CancelFunc
}

func NewSubscriptionWorker(
	db *gorm.DB,
	subs repositories.SubscriptionRepository,
	m *metrics.Registry,
	interval time.Duration,
	now func() time.Time,
) *SubscriptionWorker {
	return &SubscriptionWorker{db: db, subs: subs, metrics: m, interval: interval, now: now}
}

// Start runs one pass immediately and then one per interval until ctx is
// cancelled or Stop is called.
func (w *SubscriptionWorker) Start(ctx context.Context) {
	ctx, w.stop = context.WithCancel(ctx)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		runEvery(ctx, w.interval, func() { w.RunOnce(ctx) })
		logger.Info("subscription worker stopped")
	}()
}

func (w *SubscriptionWorker) Stop() {
	if w.stop != nil {
		w.stop()
	}
	w.wg.Wait()
}

// RunOnce performs a single pass and returns how many plans expired and how
// many counters were reset.
func (w *SubscriptionWorker) RunOnce(ctx context.Context) (expired, reset int64, err error) {
	db := w.db.WithContext(ctx)
	now := w.now()

	expired, err = w.subs.ExpirePremium(db, now)
	logger.WorkerLog(subscriptionWorkerName, "expire_premium", expired, err)
	if err != nil {
		w.metrics.WorkerRun(subscriptionWorkerName, err)
		return expired, 0, err
	}

	reset, err = w.subs.ResetStaleCounters(db, now)
	logger.WorkerLog(subscriptionWorkerName, "reset_counters", reset, err)
	w.metrics.WorkerRun(subscriptionWorkerName, err)
	return expired, reset, err
}

func runEvery(ctx context.Context, interval time.Duration, fn func()) {
	fn()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

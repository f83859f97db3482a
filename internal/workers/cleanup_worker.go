package workers

import (
	"context"
	"time"

	"github.com/gitprofile/insight/internal/repositories"
	"github.com/gitprofile/insight/pkg/logger"
)

// CleanupWorker periodically purges insight records older than the
// configured TTL. A stale assessment is worse than no assessment, so the
// history never outlives the TTL by more than one sweep interval.
type CleanupWorker struct {
	*BaseWorker
	insightRepo *repositories.InsightRepository
	ttl         time.Duration
	interval    time.Duration
}

// NewCleanupWorker creates a new cleanup worker.
func NewCleanupWorker(workerID string, insightRepo *repositories.InsightRepository, ttl time.Duration) *CleanupWorker {
	return &CleanupWorker{
		BaseWorker:  NewBaseWorker(workerID),
		insightRepo: insightRepo,
		ttl:         ttl,
		interval:    time.Hour,
	}
}

// Start begins the cleanup worker process
func (w *CleanupWorker) Start(ctx context.Context) error {
	w.Running = true
	logger.Infof("Cleanup worker %s started", w.WorkerID)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep()

	for {
		select {
		case <-ctx.Done():
			logger.Infof("Cleanup worker %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			logger.Infof("Cleanup worker %s stopping", w.WorkerID)
			return nil
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *CleanupWorker) sweep() {
	deleted, err := w.insightRepo.DeleteOlderThan(time.Now().Add(-w.ttl))
	if err != nil {
		logger.WithError(err).Errorf("Cleanup worker %s sweep failed", w.WorkerID)
		return
	}
	if deleted > 0 {
		logger.Infof("Cleanup worker %s purged %d expired insights", w.WorkerID, deleted)
	}
}

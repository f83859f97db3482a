package workers

import (
	"context"
	"sync"
	"time"

	"github.com/gitprofile/insight/internal/repositories"
	"github.com/gitprofile/insight/pkg/logger"
)

// WorkerManager manages the background workers
type WorkerManager struct {
	workers []Worker
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewWorkerManager creates a new worker manager
func NewWorkerManager(insightRepo *repositories.InsightRepository, insightTTL time.Duration) *WorkerManager {
	ctx, cancel := context.WithCancel(context.Background())

	manager := &WorkerManager{
		ctx:    ctx,
		cancel: cancel,
	}
	manager.workers = append(manager.workers, NewCleanupWorker("cleanup-1", insightRepo, insightTTL))

	return manager
}

// StartAll starts all workers
func (wm *WorkerManager) StartAll() error {
	for _, worker := range wm.workers {
		wm.startWorker(worker)
	}
	logger.Infof("Started %d total workers", len(wm.workers))
	return nil
}

// StopAll gracefully stops all workers
func (wm *WorkerManager) StopAll() error {
	logger.Info("Stopping all workers...")

	// Cancel the context to signal all workers to stop
	wm.cancel()

	for _, worker := range wm.workers {
		if err := worker.Stop(); err != nil {
			logger.WithError(err).Errorf("Failed to stop worker %s", worker.GetWorkerID())
		}
	}

	wm.wg.Wait()
	logger.Info("All workers stopped")
	return nil
}

func (wm *WorkerManager) startWorker(worker Worker) {
	wm.wg.Add(1)
	go func() {
		defer wm.wg.Done()
		if err := worker.Start(wm.ctx); err != nil && err != context.Canceled {
			logger.WithError(err).Errorf("Worker %s exited with error", worker.GetWorkerID())
		}
	}()
}

package jobs

import (
	"fmt"
	"log/slog"

	"github.com/GhostBC/SistemaLogistica/internal/core/application/usecases/commands"
	"github.com/GhostBC/SistemaLogistica/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderSyncJob   *OrderSyncJob
	dailyTargetJob *DailyTargetCaptureJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	syncHandler commands.SyncOrdersCommandHandler,
	uowFactory ports.UnitOfWorkFactory,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderSyncJob:   NewOrderSyncJob(syncHandler, logger),
		dailyTargetJob: NewDailyTargetCaptureJob(uowFactory, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderSyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start order sync job: %w", err)
	}

	if err := jm.dailyTargetJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.orderSyncJob.Stop()
		return fmt.Errorf("failed to start daily target capture job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dailyTargetJob.Stop()
	jm.orderSyncJob.Stop()
}

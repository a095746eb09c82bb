package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/GhostBC/SistemaLogistica/internal/core/application/usecases/commands"
)

// orderSyncSchedule fires every 30 minutes. The handler's own throttle
// decides whether a run actually hits the feed.
const orderSyncSchedule = "*/30 * * * *"

// OrderSyncJob periodically pulls open orders from the marketplace feed.
type OrderSyncJob struct {
	handler commands.SyncOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderSyncJob creates the periodic feed sync job.
func NewOrderSyncJob(handler commands.SyncOrdersCommandHandler, logger *slog.Logger) *OrderSyncJob {
	return &OrderSyncJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "order_sync_job"),
	}
}

// Start schedules the sync run.
func (j *OrderSyncJob) Start() error {
	_, err := j.cron.AddFunc(orderSyncSchedule, func() {
		ctx := context.Background()

		cmd, err := commands.NewSyncOrdersCommand(false)
		if err != nil {
			j.logger.ErrorContext(ctx, "order sync command rejected", "error", err)
			return
		}

		result, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "order sync run failed", "error", err)
			return
		}
		if result.Skipped {
			return
		}

		j.logger.InfoContext(ctx, "order sync run completed",
			"pages", result.Pages,
			"created", result.Created,
			"updated", result.Updated,
			"pruned", result.Pruned)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "order sync job started (every 30 minutes)")
	return nil
}

// Stop stops the sync job.
func (j *OrderSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "order sync job stopped")
}

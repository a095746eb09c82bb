package jobs

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/GhostBC/SistemaLogistica/internal/core/ports"
	"github.com/GhostBC/SistemaLogistica/internal/pkg/errs"
)

// dailyTargetSchedule fires once per day at 07:50 local time, after the
// morning feed sync has had a chance to run.
const dailyTargetSchedule = "50 7 * * *"

// System setting keys written by the capture.
const (
	DailyTargetDateKey  = "daily_target_date"
	DailyTargetValueKey = "daily_target_value"
)

// DailyTargetCaptureJob snapshots the number of open orders each morning as
// the day's fulfillment target. The capture is idempotent per calendar day:
// a second trigger on the same date leaves the stored value alone.
type DailyTargetCaptureJob struct {
	uowFactory ports.UnitOfWorkFactory
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDailyTargetCaptureJob creates the morning target capture job.
func NewDailyTargetCaptureJob(uowFactory ports.UnitOfWorkFactory, logger *slog.Logger) *DailyTargetCaptureJob {
	return &DailyTargetCaptureJob{
		uowFactory: uowFactory,
		cron:       cron.New(),
		logger:     logger.With("component", "daily_target_job"),
	}
}

// Start schedules the capture.
func (j *DailyTargetCaptureJob) Start() error {
	_, err := j.cron.AddFunc(dailyTargetSchedule, func() {
		ctx := context.Background()
		if err := j.Capture(ctx, time.Now()); err != nil {
			j.logger.ErrorContext(ctx, "daily target capture failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "daily target capture job started (07:50)")
	return nil
}

// Stop stops the capture job.
func (j *DailyTargetCaptureJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "daily target capture job stopped")
}

// Capture stores today's open-order count as the daily target, unless a
// capture for the same date already exists.
func (j *DailyTargetCaptureJob) Capture(ctx context.Context, now time.Time) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	today := now.Format("2006-01-02")

	settings := uow.SyncStateRepository()
	capturedDate, err := settings.GetSetting(ctx, DailyTargetDateKey)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}
	if capturedDate == today {
		return nil
	}

	openNumbers, err := uow.OrderRepository().GetOpenOrderNumbers(ctx)
	if err != nil {
		return err
	}
	target := len(openNumbers)

	if err = settings.SetSetting(ctx, DailyTargetDateKey, today,
		"date of the last 07:50 target capture"); err != nil {
		return err
	}
	if err = settings.SetSetting(ctx, DailyTargetValueKey, strconv.Itoa(target),
		"daily target captured at 07:50"); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	j.logger.InfoContext(ctx, "daily target captured",
		"date", today,
		"target", target)
	return nil
}

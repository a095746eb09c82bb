// Package jobs provides the scheduled background tasks of the fulfillment
// system, built on github.com/robfig/cron/v3.
//
// Two jobs run in production:
//
//  1. OrderSyncJob pulls open orders from the marketplace feed every 30
//     minutes. The sync handler itself throttles: a non-forced run is
//     skipped while the last completed sync is still fresh, so overlapping
//     triggers (cron plus the manual sync endpoint) stay cheap.
//  2. DailyTargetCaptureJob snapshots the open-order count at 07:50 as the
//     day's fulfillment target. The dashboard compares the day's finalized
//     count against this captured value.
//
// Jobs are managed through JobManager:
//
//	jobManager := jobs.NewJobManager(syncHandler, uowFactory, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs

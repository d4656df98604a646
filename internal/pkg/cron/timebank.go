package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timebank"
)

const JobProcessPendingTimeRecords = "process_pending_time_records"

// TimeBankJobs feeds unprocessed clock-outs to the record processor.
type TimeBankJobs struct {
	timeBankService timebank.TimeBankService
	interval        time.Duration
	batchSize       int
	now             func() time.Time
}

func NewTimeBankJobs(timeBankService timebank.TimeBankService, interval time.Duration, batchSize int) *TimeBankJobs {
	return &TimeBankJobs{
		timeBankService: timeBankService,
		interval:        interval,
		batchSize:       batchSize,
		now:             time.Now,
	}
}

func (j *TimeBankJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.Add(Job{
		Name:     JobProcessPendingTimeRecords,
		Interval: j.interval,
		Timeout:  j.interval,
		Fn:       j.ProcessPendingTimeRecords,
	})
}

// ProcessPendingTimeRecords drains one batch of unprocessed clock-outs.
func (j *TimeBankJobs) ProcessPendingTimeRecords(ctx context.Context) error {
	summary, err := j.timeBankService.ProcessPendingRecords(ctx, j.now(), j.batchSize)
	if err != nil {
		return fmt.Errorf("failed to process pending time records: %w", err)
	}

	if summary.Scanned == 0 {
		slog.Debug("Cron: no pending clock-outs")
		return nil
	}

	slog.Info("Cron: processed pending clock-outs",
		"scanned", summary.Scanned,
		"credited", summary.Credited,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d time records failed to process", summary.Failed, summary.Scanned)
	}
	return nil
}

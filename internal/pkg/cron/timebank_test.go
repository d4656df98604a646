package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timebank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTimeBankService struct {
	timebank.TimeBankService

	summary timebank.ProcessSummary
	err     error
	before  time.Time
	limit   int
}

func (s *stubTimeBankService) ProcessPendingRecords(ctx context.Context, before time.Time, limit int) (timebank.ProcessSummary, error) {
	s.before, s.limit = before, limit
	return s.summary, s.err
}

func TestProcessPendingTimeRecords(t *testing.T) {
	now := time.Date(2024, 3, 4, 21, 0, 0, 0, time.UTC)
	svc := &stubTimeBankService{summary: timebank.ProcessSummary{Scanned: 3, Credited: 2, Skipped: 1}}

	jobs := NewTimeBankJobs(svc, time.Minute, 50)
	jobs.now = func() time.Time { return now }

	require.NoError(t, jobs.ProcessPendingTimeRecords(context.Background()))
	assert.Equal(t, now, svc.before)
	assert.Equal(t, 50, svc.limit)
}

func TestProcessPendingTimeRecords_ReportsFailures(t *testing.T) {
	svc := &stubTimeBankService{summary: timebank.ProcessSummary{Scanned: 2, Credited: 1, Failed: 1}}
	jobs := NewTimeBankJobs(svc, time.Minute, 10)

	assert.Error(t, jobs.ProcessPendingTimeRecords(context.Background()))

	svc.summary = timebank.ProcessSummary{}
	svc.err = errors.New("connection refused")
	assert.Error(t, jobs.ProcessPendingTimeRecords(context.Background()))
}

func TestScheduler_RunNow(t *testing.T) {
	scheduler := NewScheduler()
	svc := &stubTimeBankService{}
	NewTimeBankJobs(svc, time.Hour, 25).RegisterJobs(scheduler)

	require.NoError(t, scheduler.RunNow(context.Background(), JobProcessPendingTimeRecords))
	assert.Equal(t, 25, svc.limit)

	assert.Error(t, scheduler.RunNow(context.Background(), "unknown"))
}

func TestScheduler_TimeoutBoundsRun(t *testing.T) {
	scheduler := NewScheduler()
	scheduler.Add(Job{
		Name:     "slow",
		Interval: time.Hour,
		Timeout:  10 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})

	err := scheduler.RunNow(context.Background(), "slow")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

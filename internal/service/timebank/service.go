package timebank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timebank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/timebank-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ExpiringWindowDays is the horizon reported by GetBalanceSummary.
const ExpiringWindowDays = 30

type timeBankServiceImpl struct {
	db                     *database.DB
	entryRepo              timebank.EntryRepository
	timeRecordRepo         timerecord.TimeRecordRepository
	resolver               schedule.Resolver
	loc                    *time.Location
	overtimeExpirationDays int
	now                    func() time.Time
}

func NewTimeBankService(
	db *database.DB,
	entryRepo timebank.EntryRepository,
	timeRecordRepo timerecord.TimeRecordRepository,
	resolver schedule.Resolver,
	loc *time.Location,
	overtimeExpirationDays int,
) timebank.TimeBankService {
	return &timeBankServiceImpl{
		db:                     db,
		entryRepo:              entryRepo,
		timeRecordRepo:         timeRecordRepo,
		resolver:               resolver,
		loc:                    loc,
		overtimeExpirationDays: overtimeExpirationDays,
		now:                    time.Now,
	}
}

func (s *timeBankServiceImpl) today() time.Time {
	return schedule.DateOf(s.now().In(s.loc))
}

// CreateEntry implements timebank.TimeBankService.
func (s *timeBankServiceImpl) CreateEntry(ctx context.Context, req timebank.CreateEntryRequest) (timebank.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timebank.EntryResponse{}, err
	}

	created, err := s.entryRepo.Create(ctx, req.ToEntity())
	if err != nil {
		return timebank.EntryResponse{}, fmt.Errorf("failed to create time bank entry: %w", err)
	}
	metrics.TimeBankEntriesPosted.WithLabelValues(string(created.Type)).Inc()

	slog.Info("time bank entry created",
		"entry_id", created.ID,
		"user_id", created.UserID,
		"type", created.Type,
		"hours", created.HoursBalance.String(),
	)
	return timebank.NewEntryResponse(created), nil
}

// GetBalance implements timebank.TimeBankService.
func (s *timeBankServiceImpl) GetBalance(ctx context.Context, userID int64) (int64, error) {
	sum, err := s.entryRepo.SumAvailableMinutes(ctx, userID, s.today())
	if err != nil {
		return 0, fmt.Errorf("failed to sum time bank balance: %w", err)
	}
	return sum.Round(0).IntPart(), nil
}

// GetBalanceSummary implements timebank.TimeBankService.
func (s *timeBankServiceImpl) GetBalanceSummary(ctx context.Context, userID int64) (timebank.BalanceSummary, error) {
	today := s.today()

	entries, err := s.entryRepo.ListAvailable(ctx, userID, today)
	if err != nil {
		return timebank.BalanceSummary{}, fmt.Errorf("failed to list available entries: %w", err)
	}

	return timebank.Summarize(userID, entries, today, ExpiringWindowDays), nil
}

// ListEntries implements timebank.TimeBankService.
func (s *timeBankServiceImpl) ListEntries(ctx context.Context, filter timebank.EntryFilter) (timebank.ListEntryResponse, error) {
	if err := filter.Validate(); err != nil {
		return timebank.ListEntryResponse{}, err
	}

	entries, total, err := s.entryRepo.List(ctx, filter)
	if err != nil {
		return timebank.ListEntryResponse{}, fmt.Errorf("failed to list time bank entries: %w", err)
	}

	resp := timebank.ListEntryResponse{
		Page:    pagination.NewPage(filter.Params, total, len(entries)),
		Entries: make([]timebank.EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, timebank.NewEntryResponse(e))
	}
	return resp, nil
}

// CompensateHours implements timebank.Compensator. The balance check and the
// FIFO consumption run under the user's time bank lock, joining the caller's
// transaction when there is one.
func (s *timeBankServiceImpl) CompensateHours(ctx context.Context, req timebank.CompensateRequest) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, err
	}

	var compensated bool
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := postgresql.LockUser(txCtx, s.db, postgresql.LockNamespaceTimeBank, req.UserID); err != nil {
			return err
		}

		today := s.today()

		available, err := s.entryRepo.SumAvailableMinutes(txCtx, req.UserID, today)
		if err != nil {
			return fmt.Errorf("failed to sum time bank balance: %w", err)
		}
		if !timebank.Covers(available, req.Minutes) {
			metrics.TimeBankCompensations.WithLabelValues(metrics.ResultInsufficientBalance).Inc()
			return timebank.ErrInsufficientBalance
		}

		credits, err := s.entryRepo.ListCreditsForUpdate(txCtx, req.UserID, today)
		if err != nil {
			return fmt.Errorf("failed to lock time bank credits: %w", err)
		}

		plan, ok := timebank.PlanCompensation(credits, req.Minutes, req.CompensationDate, req.Description, req.CreatedBy)
		if !ok {
			metrics.TimeBankCompensations.WithLabelValues(metrics.ResultNothingConsumed).Inc()
			return nil
		}

		if err := s.entryRepo.MarkCompensated(txCtx, plan.Consumed, plan.Debit.Date); err != nil {
			return fmt.Errorf("failed to mark entries compensated: %w", err)
		}

		if plan.Remainder != nil {
			if _, err := s.entryRepo.Create(txCtx, *plan.Remainder); err != nil {
				return fmt.Errorf("failed to post compensation remainder: %w", err)
			}
			metrics.TimeBankEntriesPosted.WithLabelValues(string(plan.Remainder.Type)).Inc()
		}

		if _, err := s.entryRepo.Create(txCtx, plan.Debit); err != nil {
			return fmt.Errorf("failed to post compensation debit: %w", err)
		}
		metrics.TimeBankEntriesPosted.WithLabelValues(string(plan.Debit.Type)).Inc()
		metrics.TimeBankCompensations.WithLabelValues(metrics.ResultCompensated).Inc()

		compensated = true
		return nil
	})
	if err != nil {
		return false, err
	}

	slog.Info("time bank compensation",
		"user_id", req.UserID,
		"minutes", req.Minutes,
		"compensated", compensated,
	)
	return compensated, nil
}

// ProcessTimeRecord implements timebank.TimeBankService. Processed records
// are skipped and report false, so concurrent or repeated calls credit once.
func (s *timeBankServiceImpl) ProcessTimeRecord(ctx context.Context, recordID, adminID int64) (bool, error) {
	var (
		credited bool
		outcome  string
	)

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		record, err := s.timeRecordRepo.GetByIDForUpdate(txCtx, recordID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return timerecord.ErrTimeRecordNotFound
			}
			return fmt.Errorf("failed to lock time record: %w", err)
		}

		if record.ProcessedForTimeBank {
			outcome = metrics.OutcomeAlreadyDone
			return nil
		}
		if record.Type != timerecord.RecordTypeOut {
			return timerecord.ErrNotClockOut
		}

		clockIn, err := s.timeRecordRepo.GetPrecedingIn(txCtx, record.UserID, record.Timestamp)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("failed to get preceding clock-in: %w", err)
			}
			outcome = metrics.OutcomeNoClockIn
			return s.markProcessed(txCtx, record.ID, nil)
		}

		clockOut := record.Timestamp.In(s.loc)
		day, sfd, err := s.shiftSchedule(txCtx, record.UserID, clockIn.Timestamp.In(s.loc), clockOut)
		if err != nil {
			return fmt.Errorf("failed to resolve schedule: %w", err)
		}
		if !sfd.IsWorkingDay() {
			outcome = metrics.OutcomeUnscheduled
			return s.markProcessed(txCtx, record.ID, nil)
		}

		_, scheduledEnd := sfd.Detail.Bounds(day, s.loc)
		minutes, hours := timebank.Overtime(clockOut, scheduledEnd)
		if minutes == 0 {
			outcome = metrics.OutcomeNoOvertime
			return s.markProcessed(txCtx, record.ID, nil)
		}

		createdBy := adminID
		if createdBy <= 0 {
			createdBy = record.UserID
		}
		recordRef := record.ID
		expiration := s.today().AddDate(0, 0, s.overtimeExpirationDays)

		entry, err := s.entryRepo.Create(txCtx, timebank.Entry{
			UserID:          record.UserID,
			Date:            day,
			HoursBalance:    hours,
			Description:     fmt.Sprintf("Hora extra em %s (%d min)", day.Format("02/01/2006"), minutes),
			Type:            timebank.EntryTypeOvertime,
			RelatedRecordID: &recordRef,
			ExpirationDate:  &expiration,
			CreatedBy:       createdBy,
		})
		if err != nil {
			return fmt.Errorf("failed to post overtime credit: %w", err)
		}
		metrics.TimeBankEntriesPosted.WithLabelValues(string(entry.Type)).Inc()

		if err := s.markProcessed(txCtx, record.ID, &hours); err != nil {
			return err
		}

		outcome = metrics.OutcomeOvertimePosted
		credited = true
		return nil
	})
	if err != nil {
		return false, err
	}

	metrics.TimeRecordsProcessed.WithLabelValues(outcome).Inc()
	slog.Debug("time record processed", "record_id", recordID, "outcome", outcome)
	return credited, nil
}

// shiftSchedule picks the day whose schedule governs a clock-out. That is the
// clock-out's own day, except when the matching clock-in falls on an earlier
// day with an overnight shift, which then owns the clock-out.
func (s *timeBankServiceImpl) shiftSchedule(ctx context.Context, userID int64, clockIn, clockOut time.Time) (time.Time, schedule.ScheduleForDate, error) {
	day := schedule.DateOf(clockOut)

	if inDay := schedule.DateOf(clockIn); inDay.Before(day) {
		sfd, err := s.resolver.GetScheduleForDate(ctx, userID, inDay)
		if err != nil {
			return time.Time{}, schedule.ScheduleForDate{}, err
		}
		if sfd.IsWorkingDay() && sfd.Detail.IsOvernight() {
			return inDay, sfd, nil
		}
	}

	sfd, err := s.resolver.GetScheduleForDate(ctx, userID, day)
	if err != nil {
		return time.Time{}, schedule.ScheduleForDate{}, err
	}
	return day, sfd, nil
}

// ProcessPendingRecords implements timebank.TimeBankService. A failing record
// is logged and counted; the rest of the batch still runs.
func (s *timeBankServiceImpl) ProcessPendingRecords(ctx context.Context, before time.Time, limit int) (timebank.ProcessSummary, error) {
	ids, err := s.timeRecordRepo.ListPendingClockOuts(ctx, before, limit)
	if err != nil {
		return timebank.ProcessSummary{}, fmt.Errorf("failed to list pending clock-outs: %w", err)
	}

	summary := timebank.ProcessSummary{Scanned: len(ids)}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		credited, err := s.ProcessTimeRecord(ctx, id, 0)
		switch {
		case err != nil:
			summary.Failed++
			slog.Error("failed to process time record", "record_id", id, "error", err)
		case credited:
			summary.Credited++
		default:
			summary.Skipped++
		}
	}

	return summary, nil
}

func (s *timeBankServiceImpl) markProcessed(ctx context.Context, recordID int64, overtime *decimal.Decimal) error {
	if err := s.timeRecordRepo.MarkProcessed(ctx, recordID, overtime); err != nil {
		return fmt.Errorf("failed to mark time record processed: %w", err)
	}
	return nil
}

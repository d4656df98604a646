package timerecord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
)

type timeRecordServiceImpl struct {
	timeRecordRepo timerecord.TimeRecordRepository
	resolver       schedule.Resolver
	loc            *time.Location
	now            func() time.Time
}

func NewTimeRecordService(
	timeRecordRepo timerecord.TimeRecordRepository,
	resolver schedule.Resolver,
	loc *time.Location,
) timerecord.TimeRecordService {
	return &timeRecordServiceImpl{
		timeRecordRepo: timeRecordRepo,
		resolver:       resolver,
		loc:            loc,
		now:            time.Now,
	}
}

// RegisterRecord implements timerecord.TimeRecordService.
func (s *timeRecordServiceImpl) RegisterRecord(ctx context.Context, req timerecord.RegisterRecordRequest) (timerecord.TimeRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	recordType, err := s.resolveType(ctx, req.UserID, req.Type)
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	record := timerecord.TimeRecord{
		UserID:    req.UserID,
		Timestamp: s.now().In(s.loc).Truncate(time.Second),
		Type:      recordType,
		IPAddress: req.IPAddress,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Photo:     req.Photo,
		CreatedBy: req.UserID,
	}

	if err := s.stampSchedule(ctx, &record); err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	created, err := s.timeRecordRepo.Create(ctx, record)
	if err != nil {
		return timerecord.TimeRecordResponse{}, fmt.Errorf("failed to create time record: %w", err)
	}

	slog.Info("time record registered",
		"record_id", created.ID,
		"user_id", created.UserID,
		"type", created.Type,
		"is_late", created.IsLate,
	)
	return timerecord.NewTimeRecordResponse(created), nil
}

// CreateManualRecord implements timerecord.TimeRecordService.
func (s *timeRecordServiceImpl) CreateManualRecord(ctx context.Context, req timerecord.ManualRecordRequest) (timerecord.TimeRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	ts, _ := validator.IsValidDateTime(req.Timestamp)
	if ts.After(s.now()) {
		return timerecord.TimeRecordResponse{}, timerecord.ErrTimestampInFuture
	}

	justification := strings.TrimSpace(req.Justification)
	record := timerecord.TimeRecord{
		UserID:        req.UserID,
		Timestamp:     ts.In(s.loc),
		Type:          timerecord.RecordType(req.Type),
		IPAddress:     req.IPAddress,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		IsManual:      true,
		Justification: &justification,
		CreatedBy:     req.CreatedBy,
	}

	if err := s.stampSchedule(ctx, &record); err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	created, err := s.timeRecordRepo.Create(ctx, record)
	if err != nil {
		return timerecord.TimeRecordResponse{}, fmt.Errorf("failed to create manual time record: %w", err)
	}

	slog.Info("manual time record created",
		"record_id", created.ID,
		"user_id", created.UserID,
		"created_by", created.CreatedBy,
	)
	return timerecord.NewTimeRecordResponse(created), nil
}

// GetRecord implements timerecord.TimeRecordService.
func (s *timeRecordServiceImpl) GetRecord(ctx context.Context, id int64) (timerecord.TimeRecordResponse, error) {
	record, err := s.timeRecordRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timerecord.TimeRecordResponse{}, timerecord.ErrTimeRecordNotFound
		}
		return timerecord.TimeRecordResponse{}, fmt.Errorf("failed to get time record: %w", err)
	}
	return timerecord.NewTimeRecordResponse(record), nil
}

// ListRecords implements timerecord.TimeRecordService.
func (s *timeRecordServiceImpl) ListRecords(ctx context.Context, filter timerecord.TimeRecordFilter) (timerecord.ListTimeRecordResponse, error) {
	if err := filter.Validate(s.loc); err != nil {
		return timerecord.ListTimeRecordResponse{}, err
	}

	records, total, err := s.timeRecordRepo.List(ctx, filter)
	if err != nil {
		return timerecord.ListTimeRecordResponse{}, fmt.Errorf("failed to list time records: %w", err)
	}

	resp := timerecord.ListTimeRecordResponse{
		Page:    pagination.NewPage(filter.Params, total, len(records)),
		Records: make([]timerecord.TimeRecordResponse, 0, len(records)),
	}
	for _, r := range records {
		resp.Records = append(resp.Records, timerecord.NewTimeRecordResponse(r))
	}
	return resp, nil
}

// DeleteRecord implements timerecord.TimeRecordService.
func (s *timeRecordServiceImpl) DeleteRecord(ctx context.Context, id int64) error {
	record, err := s.timeRecordRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timerecord.ErrTimeRecordNotFound
		}
		return fmt.Errorf("failed to get time record: %w", err)
	}
	if record.ProcessedForTimeBank {
		return timerecord.ErrRecordAlreadyProcessed
	}

	if err := s.timeRecordRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Processed between the read and the delete.
			return timerecord.ErrRecordAlreadyProcessed
		}
		return fmt.Errorf("failed to delete time record: %w", err)
	}
	return nil
}

func (s *timeRecordServiceImpl) resolveType(ctx context.Context, userID int64, explicit *string) (timerecord.RecordType, error) {
	if explicit != nil {
		return timerecord.RecordType(*explicit), nil
	}

	last, err := s.timeRecordRepo.GetLastByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timerecord.NextType(nil), nil
		}
		return "", fmt.Errorf("failed to get last time record: %w", err)
	}
	return timerecord.NextType(&last), nil
}

// stampSchedule fills ScheduleID and IsLate from the schedule active on the
// record's local day. Only the first "in" of a working day can be late.
func (s *timeRecordServiceImpl) stampSchedule(ctx context.Context, record *timerecord.TimeRecord) error {
	local := record.Timestamp.In(s.loc)
	day := schedule.DateOf(local)

	sfd, err := s.resolver.GetScheduleForDate(ctx, record.UserID, day)
	if err != nil {
		return fmt.Errorf("failed to resolve schedule: %w", err)
	}
	if sfd.Schedule == nil {
		return nil
	}

	scheduleID := sfd.Schedule.ID
	record.ScheduleID = &scheduleID

	if record.Type != timerecord.RecordTypeIn || !sfd.IsWorkingDay() {
		return nil
	}

	start, _ := sfd.Detail.Bounds(day, s.loc)
	if !local.After(start.Add(sfd.Schedule.Tolerance())) {
		return nil
	}

	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	earlier, err := s.timeRecordRepo.CountByTypeBetween(ctx, record.UserID, timerecord.RecordTypeIn, dayStart, local.Add(-time.Nanosecond))
	if err != nil {
		return fmt.Errorf("failed to count clock-ins: %w", err)
	}
	record.IsLate = earlier == 0

	return nil
}

package absence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timebank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/timebank-backend-go/internal/repository/postgresql"
)

// CurrentScheduleGetter resolves the schedule used to price a compensation absence.
type CurrentScheduleGetter interface {
	GetCurrentSchedule(ctx context.Context, userID int64) (schedule.WorkSchedule, error)
}

type absenceServiceImpl struct {
	db          *database.DB
	requestRepo absence.RequestRepository
	schedules   CurrentScheduleGetter
	compensator timebank.Compensator
	now         func() time.Time
}

func NewAbsenceService(
	db *database.DB,
	requestRepo absence.RequestRepository,
	schedules CurrentScheduleGetter,
	compensator timebank.Compensator,
) absence.AbsenceService {
	return &absenceServiceImpl{
		db:          db,
		requestRepo: requestRepo,
		schedules:   schedules,
		compensator: compensator,
		now:         time.Now,
	}
}

// CreateAbsenceRequest implements absence.AbsenceService.
func (s *absenceServiceImpl) CreateAbsenceRequest(ctx context.Context, req absence.CreateRequest) (absence.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.RequestResponse{}, err
	}

	created, err := s.requestRepo.Create(ctx, req.ToEntity())
	if err != nil {
		return absence.RequestResponse{}, fmt.Errorf("failed to create absence request: %w", err)
	}

	slog.Info("absence request created",
		"request_id", created.ID,
		"user_id", created.UserID,
		"type", created.Type,
	)
	return absence.NewRequestResponse(created), nil
}

// GetAbsenceRequest implements absence.AbsenceService.
func (s *absenceServiceImpl) GetAbsenceRequest(ctx context.Context, id int64) (absence.RequestResponse, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return absence.RequestResponse{}, err
	}
	return absence.NewRequestResponse(req), nil
}

// ListAbsenceRequests implements absence.AbsenceService.
func (s *absenceServiceImpl) ListAbsenceRequests(ctx context.Context, filter absence.RequestFilter) (absence.ListRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return absence.ListRequestResponse{}, err
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return absence.ListRequestResponse{}, fmt.Errorf("failed to list absence requests: %w", err)
	}

	resp := absence.ListRequestResponse{
		Page:     pagination.NewPage(filter.Params, total, len(requests)),
		Requests: make([]absence.RequestResponse, 0, len(requests)),
	}
	for _, r := range requests {
		resp.Requests = append(resp.Requests, absence.NewRequestResponse(r))
	}
	return resp, nil
}

// UpdateAbsenceRequest implements absence.AbsenceService.
func (s *absenceServiceImpl) UpdateAbsenceRequest(ctx context.Context, req absence.UpdateRequest) (absence.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.RequestResponse{}, err
	}

	existing, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return absence.RequestResponse{}, err
	}
	if !existing.IsPending() {
		return absence.RequestResponse{}, absence.ErrAbsenceRequestNotPending
	}

	if err := req.Apply(&existing); err != nil {
		return absence.RequestResponse{}, err
	}

	updated, err := s.requestRepo.Update(ctx, existing)
	if err != nil {
		return absence.RequestResponse{}, err
	}
	return absence.NewRequestResponse(updated), nil
}

// DeleteAbsenceRequest implements absence.AbsenceService.
func (s *absenceServiceImpl) DeleteAbsenceRequest(ctx context.Context, id int64) error {
	return s.requestRepo.Delete(ctx, id)
}

// ApproveAbsenceRequest implements absence.AbsenceService.
func (s *absenceServiceImpl) ApproveAbsenceRequest(ctx context.Context, id, reviewerID int64, notes *string) (absence.RequestResponse, error) {
	var approved absence.Request

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		req, err := s.requestRepo.UpdateStatus(txCtx, id, absence.StatusApproved, reviewerID, s.now(), notes)
		if err != nil {
			return err
		}

		if req.Type == absence.TypeCompensation {
			if err := s.debitTimeBank(txCtx, req, reviewerID); err != nil {
				return err
			}
		}

		approved = req
		return nil
	})
	if err != nil {
		return absence.RequestResponse{}, err
	}

	metrics.AbsenceReviews.WithLabelValues(string(approved.Status), string(approved.Type)).Inc()
	slog.Info("absence request approved",
		"request_id", approved.ID,
		"user_id", approved.UserID,
		"type", approved.Type,
		"reviewer_id", reviewerID,
	)
	return absence.NewRequestResponse(approved), nil
}

// RejectAbsenceRequest implements absence.AbsenceService.
func (s *absenceServiceImpl) RejectAbsenceRequest(ctx context.Context, id, reviewerID int64, notes *string) (absence.RequestResponse, error) {
	rejected, err := s.requestRepo.UpdateStatus(ctx, id, absence.StatusRejected, reviewerID, s.now(), notes)
	if err != nil {
		return absence.RequestResponse{}, err
	}

	metrics.AbsenceReviews.WithLabelValues(string(rejected.Status), string(rejected.Type)).Inc()
	slog.Info("absence request rejected",
		"request_id", rejected.ID,
		"user_id", rejected.UserID,
		"reviewer_id", reviewerID,
	)
	return absence.NewRequestResponse(rejected), nil
}

// debitTimeBank prices the absence at the current schedule's daily rate and
// compensates it. Any failure rolls the approval back.
func (s *absenceServiceImpl) debitTimeBank(ctx context.Context, req absence.Request, reviewerID int64) error {
	ws, err := s.schedules.GetCurrentSchedule(ctx, req.UserID)
	if err != nil {
		return err
	}

	days := absence.BusinessDays(req.StartDate, req.EndDate)
	minutes := absence.CompensationMinutes(days, ws.WeeklyHours)
	if minutes <= 0 {
		return nil
	}

	ok, err := s.compensator.CompensateHours(ctx, timebank.CompensateRequest{
		UserID:           req.UserID,
		CompensationDate: req.StartDate,
		Minutes:          minutes,
		Description:      absence.CompensationPrefix + req.Reason,
		CreatedBy:        reviewerID,
	})
	if err != nil {
		return err
	}
	if !ok {
		return timebank.ErrInsufficientBalance
	}

	return nil
}

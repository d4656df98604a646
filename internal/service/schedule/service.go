package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/timebank-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const constraintScheduleWeekday = "work_schedule_details_schedule_weekday_key"

type scheduleServiceImpl struct {
	db                     *database.DB
	workScheduleRepo       schedule.WorkScheduleRepository
	workScheduleDetailRepo schedule.WorkScheduleDetailRepository
	employeeScheduleRepo   schedule.EmployeeScheduleRepository
	loc                    *time.Location
	now                    func() time.Time
}

func NewScheduleService(
	db *database.DB,
	workScheduleRepo schedule.WorkScheduleRepository,
	workScheduleDetailRepo schedule.WorkScheduleDetailRepository,
	employeeScheduleRepo schedule.EmployeeScheduleRepository,
	loc *time.Location,
) schedule.ScheduleService {
	return &scheduleServiceImpl{
		db:                     db,
		workScheduleRepo:       workScheduleRepo,
		workScheduleDetailRepo: workScheduleDetailRepo,
		employeeScheduleRepo:   employeeScheduleRepo,
		loc:                    loc,
		now:                    time.Now,
	}
}

// GetScheduleForDate implements schedule.Resolver.
func (s *scheduleServiceImpl) GetScheduleForDate(ctx context.Context, userID int64, date time.Time) (schedule.ScheduleForDate, error) {
	assignment, err := s.employeeScheduleRepo.GetActiveForDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleForDate{}, nil
		}
		return schedule.ScheduleForDate{}, fmt.Errorf("failed to get active assignment: %w", err)
	}

	ws, err := s.workScheduleRepo.GetByID(ctx, assignment.ScheduleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleForDate{}, nil
		}
		return schedule.ScheduleForDate{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	result := schedule.ScheduleForDate{Schedule: &ws}

	detail, err := s.workScheduleDetailRepo.GetByWeekday(ctx, ws.ID, schedule.WeekdayOf(date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return result, nil
		}
		return schedule.ScheduleForDate{}, fmt.Errorf("failed to get work schedule detail: %w", err)
	}
	result.Detail = &detail

	return result, nil
}

// GetCurrentSchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) GetCurrentSchedule(ctx context.Context, userID int64) (schedule.WorkSchedule, error) {
	today := schedule.DateOf(s.now().In(s.loc))

	assignment, err := s.employeeScheduleRepo.GetActiveForDate(ctx, userID, today)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrNoActiveSchedule
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get active assignment: %w", err)
	}

	ws, err := s.workScheduleRepo.GetByID(ctx, assignment.ScheduleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrNoActiveSchedule
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	return ws, nil
}

// CreateWorkSchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) CreateWorkSchedule(ctx context.Context, req schedule.CreateWorkScheduleRequest) (schedule.WorkScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	var created schedule.WorkSchedule
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		ws, err := s.workScheduleRepo.Create(txCtx, schedule.WorkSchedule{
			Name:             strings.TrimSpace(req.Name),
			Type:             schedule.ScheduleType(req.Type),
			WeeklyHours:      req.WeeklyHours,
			ToleranceMinutes: req.ToleranceMinutes,
			BreakTime:        req.BreakTime,
			CreatedBy:        req.CreatedBy,
		})
		if err != nil {
			return mapWriteError(err)
		}

		for i := range req.Details {
			detail, err := s.workScheduleDetailRepo.Create(txCtx, req.Details[i].ToEntity(ws.ID))
			if err != nil {
				return mapWriteError(err)
			}
			ws.Details = append(ws.Details, detail)
		}

		created = ws
		return nil
	})
	if err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	slog.Info("work schedule created", "schedule_id", created.ID, "name", created.Name, "details", len(created.Details))
	return schedule.NewWorkScheduleResponse(created), nil
}

// GetWorkSchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) GetWorkSchedule(ctx context.Context, id int64) (schedule.WorkScheduleResponse, error) {
	ws, err := s.getWorkSchedule(ctx, id)
	if err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	details, err := s.workScheduleDetailRepo.GetBySchedule(ctx, id)
	if err != nil {
		return schedule.WorkScheduleResponse{}, fmt.Errorf("failed to get work schedule details: %w", err)
	}
	ws.Details = details

	return schedule.NewWorkScheduleResponse(ws), nil
}

// ListWorkSchedules implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ListWorkSchedules(ctx context.Context, filter schedule.WorkScheduleFilter) (schedule.ListWorkScheduleResponse, error) {
	if err := filter.Validate(); err != nil {
		return schedule.ListWorkScheduleResponse{}, err
	}

	schedules, total, err := s.workScheduleRepo.List(ctx, filter)
	if err != nil {
		return schedule.ListWorkScheduleResponse{}, fmt.Errorf("failed to list work schedules: %w", err)
	}

	resp := schedule.ListWorkScheduleResponse{
		Page:          pagination.NewPage(filter.Params, total, len(schedules)),
		WorkSchedules: make([]schedule.WorkScheduleResponse, 0, len(schedules)),
	}
	for _, ws := range schedules {
		resp.WorkSchedules = append(resp.WorkSchedules, schedule.NewWorkScheduleResponse(ws))
	}

	return resp, nil
}

// UpdateWorkSchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) UpdateWorkSchedule(ctx context.Context, req schedule.UpdateWorkScheduleRequest) (schedule.WorkScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	ws, err := s.getWorkSchedule(ctx, req.ID)
	if err != nil {
		return schedule.WorkScheduleResponse{}, err
	}

	req.Apply(&ws)

	updated, err := s.workScheduleRepo.Update(ctx, ws)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkScheduleResponse{}, schedule.ErrWorkScheduleNotFound
		}
		return schedule.WorkScheduleResponse{}, mapWriteError(err)
	}

	return schedule.NewWorkScheduleResponse(updated), nil
}

// DeleteWorkSchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) DeleteWorkSchedule(ctx context.Context, id int64) error {
	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		assigned, err := s.workScheduleRepo.IsAssigned(txCtx, id)
		if err != nil {
			return fmt.Errorf("failed to check schedule assignments: %w", err)
		}
		if assigned {
			return schedule.ErrWorkScheduleInUse
		}

		if err := s.workScheduleRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return schedule.ErrWorkScheduleNotFound
			}
			return mapWriteError(err)
		}
		return nil
	})
}

// CreateWorkScheduleDetail implements schedule.ScheduleService.
func (s *scheduleServiceImpl) CreateWorkScheduleDetail(ctx context.Context, req schedule.CreateWorkScheduleDetailRequest) (schedule.WorkScheduleDetailResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.WorkScheduleDetailResponse{}, err
	}

	if _, err := s.getWorkSchedule(ctx, req.ScheduleID); err != nil {
		return schedule.WorkScheduleDetailResponse{}, err
	}

	detail, err := s.workScheduleDetailRepo.Create(ctx, req.ToEntity(req.ScheduleID))
	if err != nil {
		return schedule.WorkScheduleDetailResponse{}, mapWriteError(err)
	}

	return schedule.NewWorkScheduleDetailResponse(detail), nil
}

// UpdateWorkScheduleDetail implements schedule.ScheduleService.
func (s *scheduleServiceImpl) UpdateWorkScheduleDetail(ctx context.Context, req schedule.UpdateWorkScheduleDetailRequest) (schedule.WorkScheduleDetailResponse, error) {
	detail, err := s.workScheduleDetailRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkScheduleDetailResponse{}, schedule.ErrWorkScheduleDetailNotFound
		}
		return schedule.WorkScheduleDetailResponse{}, fmt.Errorf("failed to get work schedule detail: %w", err)
	}

	if err := req.Apply(&detail); err != nil {
		return schedule.WorkScheduleDetailResponse{}, err
	}

	if err := s.workScheduleDetailRepo.Update(ctx, detail); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkScheduleDetailResponse{}, schedule.ErrWorkScheduleDetailNotFound
		}
		return schedule.WorkScheduleDetailResponse{}, mapWriteError(err)
	}

	return schedule.NewWorkScheduleDetailResponse(detail), nil
}

// DeleteWorkScheduleDetail implements schedule.ScheduleService.
func (s *scheduleServiceImpl) DeleteWorkScheduleDetail(ctx context.Context, id int64) error {
	if err := s.workScheduleDetailRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ErrWorkScheduleDetailNotFound
		}
		return fmt.Errorf("failed to delete work schedule detail: %w", err)
	}
	return nil
}

// AssignSchedule implements schedule.ScheduleService. Closing the previous
// assignment and inserting the new one happen in one transaction under the
// user's schedule lock.
func (s *scheduleServiceImpl) AssignSchedule(ctx context.Context, req schedule.AssignScheduleRequest) (schedule.AssignScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.AssignScheduleResponse{}, err
	}

	if _, err := s.getWorkSchedule(ctx, req.ScheduleID); err != nil {
		return schedule.AssignScheduleResponse{}, err
	}

	assignment := req.ToEntity()
	var response schedule.AssignScheduleResponse

	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := postgresql.LockUser(txCtx, s.db, postgresql.LockNamespaceSchedule, assignment.UserID); err != nil {
			return err
		}

		closed, err := s.employeeScheduleRepo.CloseActiveBefore(txCtx, assignment.UserID, assignment.StartDate)
		if err != nil {
			return fmt.Errorf("failed to close previous assignment: %w", err)
		}

		overlap, err := s.employeeScheduleRepo.HasOverlap(txCtx, assignment.UserID, assignment.StartDate, assignment.EndDate)
		if err != nil {
			return fmt.Errorf("failed to check overlapping assignments: %w", err)
		}
		if overlap {
			return schedule.ErrOverlappingScheduleAssignment
		}

		created, err := s.employeeScheduleRepo.Create(txCtx, assignment)
		if err != nil {
			return mapWriteError(err)
		}

		response = schedule.AssignScheduleResponse{
			Assignment:        schedule.NewEmployeeScheduleResponse(created),
			ClosedAssignments: closed,
		}
		return nil
	})
	if err != nil {
		return schedule.AssignScheduleResponse{}, err
	}

	slog.Info("schedule assigned",
		"user_id", assignment.UserID,
		"schedule_id", assignment.ScheduleID,
		"start_date", req.StartDate,
		"closed", response.ClosedAssignments,
	)
	return response, nil
}

// ListEmployeeSchedules implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ListEmployeeSchedules(ctx context.Context, userID int64) ([]schedule.EmployeeScheduleResponse, error) {
	assignments, err := s.employeeScheduleRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee schedules: %w", err)
	}

	resp := make([]schedule.EmployeeScheduleResponse, 0, len(assignments))
	for _, a := range assignments {
		resp = append(resp, schedule.NewEmployeeScheduleResponse(a))
	}
	return resp, nil
}

// DeleteEmployeeSchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) DeleteEmployeeSchedule(ctx context.Context, id int64) error {
	if err := s.employeeScheduleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ErrEmployeeScheduleNotFound
		}
		return fmt.Errorf("failed to delete employee schedule: %w", err)
	}
	return nil
}

func (s *scheduleServiceImpl) getWorkSchedule(ctx context.Context, id int64) (schedule.WorkSchedule, error) {
	ws, err := s.workScheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.WorkSchedule{}, schedule.ErrWorkScheduleNotFound
		}
		return schedule.WorkSchedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}
	return ws, nil
}

// mapWriteError turns constraint violations into domain errors.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case "23505": // unique_violation
		if pgErr.ConstraintName == constraintScheduleWeekday {
			return schedule.ErrDuplicateWeekday
		}
		return schedule.ErrWorkScheduleNameExists
	case "23P01": // exclusion_violation
		return schedule.ErrOverlappingScheduleAssignment
	case "23503": // foreign_key_violation
		return schedule.ErrWorkScheduleInUse
	}
	return err
}

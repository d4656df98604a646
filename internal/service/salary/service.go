package salary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timebank-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type salaryServiceImpl struct {
	db         *database.DB
	salaryRepo salary.SalaryRepository
	auditRepo  audit.LogRepository
}

func NewSalaryService(db *database.DB, salaryRepo salary.SalaryRepository, auditRepo audit.LogRepository) salary.SalaryService {
	return &salaryServiceImpl{
		db:         db,
		salaryRepo: salaryRepo,
		auditRepo:  auditRepo,
	}
}

// CreateSalary implements salary.SalaryService.
func (s *salaryServiceImpl) CreateSalary(ctx context.Context, req salary.CreateSalaryRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	var created salary.Salary
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		created, err = s.salaryRepo.Create(txCtx, req.ToEntity())
		if err != nil {
			return fmt.Errorf("failed to create salary: %w", err)
		}

		return s.writeAudit(txCtx, created.ID, audit.ActionCreate, nil, salary.NewSalaryResponse(created), req.CreatedBy)
	})
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	slog.Info("salary created", "salary_id", created.ID, "user_id", created.UserID)
	return salary.NewSalaryResponse(created), nil
}

// UpdateSalary implements salary.SalaryService.
func (s *salaryServiceImpl) UpdateSalary(ctx context.Context, req salary.UpdateSalaryRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	var updated salary.Salary
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		current, err := s.salaryRepo.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return salary.ErrSalaryNotFound
			}
			return fmt.Errorf("failed to lock salary: %w", err)
		}

		updated, err = s.salaryRepo.Update(txCtx, req.Apply(current))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return salary.ErrSalaryNotFound
			}
			return fmt.Errorf("failed to update salary: %w", err)
		}

		return s.writeAudit(txCtx, updated.ID, audit.ActionUpdate,
			salary.NewSalaryResponse(current), salary.NewSalaryResponse(updated), req.UpdatedBy)
	})
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	slog.Info("salary updated", "salary_id", updated.ID, "version", updated.Version)
	return salary.NewSalaryResponse(updated), nil
}

// GetSalary implements salary.SalaryService.
func (s *salaryServiceImpl) GetSalary(ctx context.Context, id int64) (salary.SalaryResponse, error) {
	sal, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.SalaryResponse{}, salary.ErrSalaryNotFound
		}
		return salary.SalaryResponse{}, fmt.Errorf("failed to get salary: %w", err)
	}
	return salary.NewSalaryResponse(sal), nil
}

// ListSalaries implements salary.SalaryService.
func (s *salaryServiceImpl) ListSalaries(ctx context.Context, userID int64) ([]salary.SalaryResponse, error) {
	salaries, err := s.salaryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}

	resp := make([]salary.SalaryResponse, 0, len(salaries))
	for _, sal := range salaries {
		resp = append(resp, salary.NewSalaryResponse(sal))
	}
	return resp, nil
}

func (s *salaryServiceImpl) writeAudit(ctx context.Context, id int64, action audit.Action, before, after any, performedBy int64) error {
	entry, err := audit.NewLog(audit.EntitySalary, id, action, before, after, performedBy)
	if err != nil {
		return err
	}
	if _, err := s.auditRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

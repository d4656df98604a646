package finance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/finance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/timebank-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type financeServiceImpl struct {
	db              *database.DB
	transactionRepo finance.TransactionRepository
	auditRepo       audit.LogRepository
}

func NewFinanceService(db *database.DB, transactionRepo finance.TransactionRepository, auditRepo audit.LogRepository) finance.FinanceService {
	return &financeServiceImpl{
		db:              db,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
	}
}

// CreateTransaction implements finance.FinanceService.
func (s *financeServiceImpl) CreateTransaction(ctx context.Context, req finance.CreateTransactionRequest) (finance.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return finance.TransactionResponse{}, err
	}

	var created finance.Transaction
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		created, err = s.transactionRepo.Create(txCtx, req.ToEntity())
		if err != nil {
			return fmt.Errorf("failed to create financial transaction: %w", err)
		}

		return s.writeAudit(txCtx, created.ID, audit.ActionCreate, nil, finance.NewTransactionResponse(created), req.CreatedBy)
	})
	if err != nil {
		return finance.TransactionResponse{}, err
	}

	slog.Info("financial transaction created",
		"transaction_id", created.ID,
		"user_id", created.UserID,
		"type", created.Type,
	)
	return finance.NewTransactionResponse(created), nil
}

// UpdateTransaction implements finance.FinanceService.
func (s *financeServiceImpl) UpdateTransaction(ctx context.Context, req finance.UpdateTransactionRequest) (finance.TransactionResponse, error) {
	if err := req.Validate(); err != nil {
		return finance.TransactionResponse{}, err
	}

	var updated finance.Transaction
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		current, err := s.lockTransaction(txCtx, req.ID)
		if err != nil {
			return err
		}

		updated, err = s.transactionRepo.Update(txCtx, req.Apply(current))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return finance.ErrTransactionNotFound
			}
			return fmt.Errorf("failed to update financial transaction: %w", err)
		}

		return s.writeAudit(txCtx, updated.ID, audit.ActionUpdate,
			finance.NewTransactionResponse(current), finance.NewTransactionResponse(updated), req.UpdatedBy)
	})
	if err != nil {
		return finance.TransactionResponse{}, err
	}

	return finance.NewTransactionResponse(updated), nil
}

// DeleteTransaction implements finance.FinanceService.
func (s *financeServiceImpl) DeleteTransaction(ctx context.Context, id, deletedBy int64) error {
	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		current, err := s.lockTransaction(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.transactionRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return finance.ErrTransactionNotFound
			}
			return fmt.Errorf("failed to delete financial transaction: %w", err)
		}

		return s.writeAudit(txCtx, id, audit.ActionDelete, finance.NewTransactionResponse(current), nil, deletedBy)
	})
}

// GetTransaction implements finance.FinanceService.
func (s *financeServiceImpl) GetTransaction(ctx context.Context, id int64) (finance.TransactionResponse, error) {
	t, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return finance.TransactionResponse{}, finance.ErrTransactionNotFound
		}
		return finance.TransactionResponse{}, fmt.Errorf("failed to get financial transaction: %w", err)
	}
	return finance.NewTransactionResponse(t), nil
}

// ListTransactions implements finance.FinanceService. Net is the signed sum
// of the returned page.
func (s *financeServiceImpl) ListTransactions(ctx context.Context, filter finance.TransactionFilter) (finance.ListTransactionResponse, error) {
	if err := filter.Validate(); err != nil {
		return finance.ListTransactionResponse{}, err
	}

	transactions, total, err := s.transactionRepo.List(ctx, filter)
	if err != nil {
		return finance.ListTransactionResponse{}, fmt.Errorf("failed to list financial transactions: %w", err)
	}

	resp := finance.ListTransactionResponse{
		Page:         pagination.NewPage(filter.Params, total, len(transactions)),
		Transactions: make([]finance.TransactionResponse, 0, len(transactions)),
		Net:          decimal.Zero,
	}
	for _, t := range transactions {
		resp.Transactions = append(resp.Transactions, finance.NewTransactionResponse(t))
		resp.Net = resp.Net.Add(t.SignedAmount())
	}
	return resp, nil
}

func (s *financeServiceImpl) lockTransaction(ctx context.Context, id int64) (finance.Transaction, error) {
	t, err := s.transactionRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return finance.Transaction{}, finance.ErrTransactionNotFound
		}
		return finance.Transaction{}, fmt.Errorf("failed to lock financial transaction: %w", err)
	}
	return t, nil
}

func (s *financeServiceImpl) writeAudit(ctx context.Context, id int64, action audit.Action, before, after any, performedBy int64) error {
	entry, err := audit.NewLog(audit.EntityFinancialTransaction, id, action, before, after, performedBy)
	if err != nil {
		return err
	}
	if _, err := s.auditRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

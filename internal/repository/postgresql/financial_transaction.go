package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/finance"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type financialTransactionRepositoryImpl struct {
	db *database.DB
}

const financialTransactionColumns = `id, user_id, type, amount, date, description, created_by, created_at, updated_at`

func scanFinancialTransaction(row pgx.Row) (finance.Transaction, error) {
	var t finance.Transaction
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Type,
		&t.Amount,
		&t.Date,
		&t.Description,
		&t.CreatedBy,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

// Create implements finance.TransactionRepository.
func (r *financialTransactionRepositoryImpl) Create(ctx context.Context, t finance.Transaction) (finance.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO financial_transactions (user_id, type, amount, date, description, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + financialTransactionColumns

	return scanFinancialTransaction(q.QueryRow(ctx, query,
		t.UserID,
		t.Type,
		t.Amount,
		dateOnly(t.Date),
		t.Description,
		t.CreatedBy,
	))
}

// GetByID implements finance.TransactionRepository.
func (r *financialTransactionRepositoryImpl) GetByID(ctx context.Context, id int64) (finance.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + financialTransactionColumns + ` FROM financial_transactions WHERE id = $1`

	return scanFinancialTransaction(q.QueryRow(ctx, query, id))
}

// GetByIDForUpdate implements finance.TransactionRepository.
func (r *financialTransactionRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (finance.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + financialTransactionColumns + ` FROM financial_transactions WHERE id = $1 FOR UPDATE`

	return scanFinancialTransaction(q.QueryRow(ctx, query, id))
}

// Update implements finance.TransactionRepository.
func (r *financialTransactionRepositoryImpl) Update(ctx context.Context, t finance.Transaction) (finance.Transaction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE financial_transactions
		SET type = $2, amount = $3, date = $4, description = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + financialTransactionColumns

	return scanFinancialTransaction(q.QueryRow(ctx, query,
		t.ID,
		t.Type,
		t.Amount,
		dateOnly(t.Date),
		t.Description,
	))
}

// Delete implements finance.TransactionRepository.
func (r *financialTransactionRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM financial_transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// List implements finance.TransactionRepository.
func (r *financialTransactionRepositoryImpl) List(ctx context.Context, filter finance.TransactionFilter) ([]finance.Transaction, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.UserID != nil {
		whereClause += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, *filter.UserID)
		argIndex++
	}

	if filter.Type != nil {
		whereClause += fmt.Sprintf(" AND type = $%d", argIndex)
		args = append(args, *filter.Type)
		argIndex++
	}

	if filter.StartDate != nil {
		whereClause += fmt.Sprintf(" AND date >= $%d::date", argIndex)
		args = append(args, *filter.StartDate)
		argIndex++
	}

	if filter.EndDate != nil {
		whereClause += fmt.Sprintf(" AND date <= $%d::date", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM financial_transactions "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count financial transactions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM financial_transactions
		%s
		ORDER BY date DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, financialTransactionColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list financial transactions: %w", err)
	}
	defer rows.Close()

	transactions := []finance.Transaction{}
	for rows.Next() {
		t, err := scanFinancialTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan financial transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	return transactions, total, rows.Err()
}

func NewFinancialTransactionRepository(db *database.DB) finance.TransactionRepository {
	return &financialTransactionRepositoryImpl{db: db}
}

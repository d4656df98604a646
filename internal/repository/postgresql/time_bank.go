package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timebank"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type timeBankRepositoryImpl struct {
	db *database.DB
}

const timeBankColumns = `id, user_id, date, hours_balance, description, type, related_record_id,
	expiration_date, was_compensated, compensation_date, created_by, created_at, updated_at`

// availableClause matches rows counted in the balance on the day bound to $2.
const availableClause = `
	user_id = $1
	AND was_compensated = FALSE
	AND (expiration_date IS NULL OR expiration_date >= $2::date)`

func scanEntry(row pgx.Row) (timebank.Entry, error) {
	var e timebank.Entry
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Date,
		&e.HoursBalance,
		&e.Description,
		&e.Type,
		&e.RelatedRecordID,
		&e.ExpirationDate,
		&e.WasCompensated,
		&e.CompensationDate,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func collectEntries(rows pgx.Rows) ([]timebank.Entry, error) {
	defer rows.Close()

	entries := []timebank.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := dateOnly(*t)
	return &d
}

// Create implements timebank.EntryRepository.
func (r *timeBankRepositoryImpl) Create(ctx context.Context, entry timebank.Entry) (timebank.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_bank (
			user_id, date, hours_balance, description, type, related_record_id,
			expiration_date, was_compensated, compensation_date, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + timeBankColumns

	return scanEntry(q.QueryRow(ctx, query,
		entry.UserID,
		dateOnly(entry.Date),
		entry.HoursBalance.Round(timebank.HoursScale),
		entry.Description,
		entry.Type,
		entry.RelatedRecordID,
		dateOnlyPtr(entry.ExpirationDate),
		entry.WasCompensated,
		dateOnlyPtr(entry.CompensationDate),
		entry.CreatedBy,
	))
}

// GetByID implements timebank.EntryRepository.
func (r *timeBankRepositoryImpl) GetByID(ctx context.Context, id int64) (timebank.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeBankColumns + ` FROM time_bank WHERE id = $1`

	return scanEntry(q.QueryRow(ctx, query, id))
}

// SumAvailableMinutes implements timebank.EntryRepository.
func (r *timeBankRepositoryImpl) SumAvailableMinutes(ctx context.Context, userID int64, asOf time.Time) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COALESCE(SUM(hours_balance * 60), 0) FROM time_bank WHERE ` + availableClause

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, userID, dateOnly(asOf)).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// ListAvailable implements timebank.EntryRepository.
func (r *timeBankRepositoryImpl) ListAvailable(ctx context.Context, userID int64, asOf time.Time) ([]timebank.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeBankColumns + ` FROM time_bank WHERE ` + availableClause + `
		ORDER BY date ASC, id ASC`

	rows, err := q.Query(ctx, query, userID, dateOnly(asOf))
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// ListCreditsForUpdate implements timebank.EntryRepository.
func (r *timeBankRepositoryImpl) ListCreditsForUpdate(ctx context.Context, userID int64, asOf time.Time) ([]timebank.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeBankColumns + ` FROM time_bank WHERE ` + availableClause + `
		AND hours_balance >= 0
		ORDER BY date ASC, id ASC
		FOR UPDATE`

	rows, err := q.Query(ctx, query, userID, dateOnly(asOf))
	if err != nil {
		return nil, err
	}
	return collectEntries(rows)
}

// MarkCompensated implements timebank.EntryRepository. Rows already
// compensated are left untouched and reported as an error.
func (r *timeBankRepositoryImpl) MarkCompensated(ctx context.Context, ids []int64, compensationDate time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_bank
		SET was_compensated = TRUE, compensation_date = $2, updated_at = NOW()
		WHERE id = ANY($1) AND was_compensated = FALSE
	`

	tag, err := q.Exec(ctx, query, ids, dateOnly(compensationDate))
	if err != nil {
		return err
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("marked %d of %d entries as compensated", tag.RowsAffected(), len(ids))
	}
	return nil
}

// List implements timebank.EntryRepository.
func (r *timeBankRepositoryImpl) List(ctx context.Context, filter timebank.EntryFilter) ([]timebank.Entry, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE user_id = $1"
	args := []interface{}{filter.UserID}
	argIndex := 2

	if !filter.IncludeCompensated {
		whereClause += " AND was_compensated = FALSE"
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
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM time_bank "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time bank entries: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_bank
		%s
		ORDER BY date DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, timeBankColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time bank entries: %w", err)
	}
	entries, err := collectEntries(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan time bank entries: %w", err)
	}

	return entries, total, nil
}

func NewTimeBankRepository(db *database.DB) timebank.EntryRepository {
	return &timeBankRepositoryImpl{db: db}
}

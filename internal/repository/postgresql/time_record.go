package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type timeRecordRepositoryImpl struct {
	db *database.DB
}

const timeRecordColumns = `id, user_id, timestamp, type, ip_address, latitude, longitude, photo, is_manual,
	justification, created_by, schedule_id, is_late, overtime, processed_for_time_bank, created_at, updated_at`

func scanTimeRecord(row pgx.Row) (timerecord.TimeRecord, error) {
	var r timerecord.TimeRecord
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.Timestamp,
		&r.Type,
		&r.IPAddress,
		&r.Latitude,
		&r.Longitude,
		&r.Photo,
		&r.IsManual,
		&r.Justification,
		&r.CreatedBy,
		&r.ScheduleID,
		&r.IsLate,
		&r.Overtime,
		&r.ProcessedForTimeBank,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func collectTimeRecords(rows pgx.Rows) ([]timerecord.TimeRecord, error) {
	defer rows.Close()

	records := []timerecord.TimeRecord{}
	for rows.Next() {
		r, err := scanTimeRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Create implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) Create(ctx context.Context, record timerecord.TimeRecord) (timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		INSERT INTO time_records (
			user_id, timestamp, type, ip_address, latitude, longitude, photo, is_manual,
			justification, created_by, schedule_id, is_late
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + timeRecordColumns

	return scanTimeRecord(q.QueryRow(ctx, query,
		record.UserID,
		record.Timestamp,
		record.Type,
		record.IPAddress,
		record.Latitude,
		record.Longitude,
		record.Photo,
		record.IsManual,
		record.Justification,
		record.CreatedBy,
		record.ScheduleID,
		record.IsLate,
	))
}

// GetByID implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) GetByID(ctx context.Context, id int64) (timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, t.db)

	query := `SELECT ` + timeRecordColumns + ` FROM time_records WHERE id = $1`

	return scanTimeRecord(q.QueryRow(ctx, query, id))
}

// GetByIDForUpdate implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) GetByIDForUpdate(ctx context.Context, id int64) (timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, t.db)

	query := `SELECT ` + timeRecordColumns + ` FROM time_records WHERE id = $1 FOR UPDATE`

	return scanTimeRecord(q.QueryRow(ctx, query, id))
}

// GetLastByUser implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) GetLastByUser(ctx context.Context, userID int64) (timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT ` + timeRecordColumns + `
		FROM time_records
		WHERE user_id = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`

	return scanTimeRecord(q.QueryRow(ctx, query, userID))
}

// GetByUserBetween implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) GetByUserBetween(ctx context.Context, userID int64, from, to time.Time) ([]timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT ` + timeRecordColumns + `
		FROM time_records
		WHERE user_id = $1 AND timestamp >= $2 AND timestamp <= $3
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	return collectTimeRecords(rows)
}

// GetPrecedingIn implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) GetPrecedingIn(ctx context.Context, userID int64, ts time.Time) (timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT ` + timeRecordColumns + `
		FROM time_records
		WHERE user_id = $1 AND type = 'in' AND timestamp < $2
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`

	return scanTimeRecord(q.QueryRow(ctx, query, userID, ts))
}

// CountByTypeBetween implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) CountByTypeBetween(ctx context.Context, userID int64, recordType timerecord.RecordType, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT COUNT(*) FROM time_records
		WHERE user_id = $1 AND type = $2 AND timestamp >= $3 AND timestamp <= $4
	`

	var count int64
	if err := q.QueryRow(ctx, query, userID, recordType, from, to).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// List implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) List(ctx context.Context, filter timerecord.TimeRecordFilter) ([]timerecord.TimeRecord, int64, error) {
	q := GetQuerier(ctx, t.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.UserID != nil {
		whereClause += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, *filter.UserID)
		argIndex++
	}

	if filter.From != nil {
		whereClause += fmt.Sprintf(" AND timestamp >= $%d", argIndex)
		args = append(args, *filter.From)
		argIndex++
	}

	if filter.To != nil {
		whereClause += fmt.Sprintf(" AND timestamp <= $%d", argIndex)
		args = append(args, *filter.To)
		argIndex++
	}

	if filter.Type != nil {
		whereClause += fmt.Sprintf(" AND type = $%d", argIndex)
		args = append(args, *filter.Type)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM time_records "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM time_records
		%s
		ORDER BY timestamp DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, timeRecordColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time records: %w", err)
	}
	records, err := collectTimeRecords(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan time records: %w", err)
	}

	return records, total, nil
}

// ListPendingClockOuts implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) ListPendingClockOuts(ctx context.Context, before time.Time, limit int) ([]int64, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT id FROM time_records
		WHERE type = 'out' AND processed_for_time_bank = FALSE AND timestamp < $1
		ORDER BY timestamp ASC, id ASC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkProcessed implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) MarkProcessed(ctx context.Context, id int64, overtime *decimal.Decimal) error {
	q := GetQuerier(ctx, t.db)

	query := `
		UPDATE time_records
		SET processed_for_time_bank = TRUE, overtime = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, overtime)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete implements timerecord.TimeRecordRepository. Processed rows are kept.
func (t *timeRecordRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, t.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_records WHERE id = $1 AND processed_for_time_bank = FALSE`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func NewTimeRecordRepository(db *database.DB) timerecord.TimeRecordRepository {
	return &timeRecordRepositoryImpl{db: db}
}

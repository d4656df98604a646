package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/absence"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type absenceRequestRepositoryImpl struct {
	db *database.DB
}

const absenceRequestColumns = `id, user_id, start_date, end_date, type, reason, status,
	reviewed_by, review_date, review_notes, created_at, updated_at`

func scanAbsenceRequest(row pgx.Row) (absence.Request, error) {
	var req absence.Request
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.StartDate,
		&req.EndDate,
		&req.Type,
		&req.Reason,
		&req.Status,
		&req.ReviewedBy,
		&req.ReviewDate,
		&req.ReviewNotes,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	return req, err
}

// notPendingOrMissing tells a reviewed request apart from a missing one after
// a conditional write matched no row.
func (r *absenceRequestRepositoryImpl) notPendingOrMissing(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM absence_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return absence.ErrAbsenceRequestNotFound
	}
	return absence.ErrAbsenceRequestNotPending
}

// Create implements absence.RequestRepository.
func (r *absenceRequestRepositoryImpl) Create(ctx context.Context, req absence.Request) (absence.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absence_requests (user_id, start_date, end_date, type, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + absenceRequestColumns

	return scanAbsenceRequest(q.QueryRow(ctx, query,
		req.UserID,
		dateOnly(req.StartDate),
		dateOnly(req.EndDate),
		req.Type,
		req.Reason,
		absence.StatusPending,
	))
}

// GetByID implements absence.RequestRepository.
func (r *absenceRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (absence.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + absenceRequestColumns + ` FROM absence_requests WHERE id = $1`

	req, err := scanAbsenceRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.Request{}, absence.ErrAbsenceRequestNotFound
		}
		return absence.Request{}, err
	}
	return req, nil
}

// List implements absence.RequestRepository.
func (r *absenceRequestRepositoryImpl) List(ctx context.Context, filter absence.RequestFilter) ([]absence.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.UserID != nil {
		whereClause += fmt.Sprintf(" AND user_id = $%d", argIndex)
		args = append(args, *filter.UserID)
		argIndex++
	}

	if filter.Status != nil {
		whereClause += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *filter.Status)
		argIndex++
	}

	if filter.Type != nil {
		whereClause += fmt.Sprintf(" AND type = $%d", argIndex)
		args = append(args, *filter.Type)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM absence_requests "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count absence requests: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM absence_requests
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, absenceRequestColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list absence requests: %w", err)
	}
	defer rows.Close()

	requests := []absence.Request{}
	for rows.Next() {
		req, err := scanAbsenceRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan absence request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}

// Update implements absence.RequestRepository.
func (r *absenceRequestRepositoryImpl) Update(ctx context.Context, req absence.Request) (absence.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE absence_requests
		SET start_date = $2, end_date = $3, type = $4, reason = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + absenceRequestColumns

	updated, err := scanAbsenceRequest(q.QueryRow(ctx, query,
		req.ID,
		dateOnly(req.StartDate),
		dateOnly(req.EndDate),
		req.Type,
		req.Reason,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.Request{}, r.notPendingOrMissing(ctx, req.ID)
		}
		return absence.Request{}, err
	}
	return updated, nil
}

// UpdateStatus implements absence.RequestRepository.
func (r *absenceRequestRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status absence.Status, reviewerID int64, reviewDate time.Time, notes *string) (absence.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE absence_requests
		SET status = $2, reviewed_by = $3, review_date = $4, review_notes = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + absenceRequestColumns

	updated, err := scanAbsenceRequest(q.QueryRow(ctx, query, id, status, reviewerID, reviewDate, notes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.Request{}, r.notPendingOrMissing(ctx, id)
		}
		return absence.Request{}, err
	}
	return updated, nil
}

// Delete implements absence.RequestRepository.
func (r *absenceRequestRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM absence_requests WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.notPendingOrMissing(ctx, id)
	}
	return nil
}

func NewAbsenceRequestRepository(db *database.DB) absence.RequestRepository {
	return &absenceRequestRepositoryImpl{db: db}
}

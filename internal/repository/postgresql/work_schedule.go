package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

const workScheduleColumns = `id, name, type, weekly_hours, tolerance_minutes, break_time, created_by, created_at, updated_at`

func scanWorkSchedule(row pgx.Row) (schedule.WorkSchedule, error) {
	var ws schedule.WorkSchedule
	err := row.Scan(
		&ws.ID,
		&ws.Name,
		&ws.Type,
		&ws.WeeklyHours,
		&ws.ToleranceMinutes,
		&ws.BreakTime,
		&ws.CreatedBy,
		&ws.CreatedAt,
		&ws.UpdatedAt,
	)
	return ws, err
}

// Create implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) Create(ctx context.Context, workSchedule schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		INSERT INTO work_schedules (name, type, weekly_hours, tolerance_minutes, break_time, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + workScheduleColumns

	created, err := scanWorkSchedule(q.QueryRow(ctx, query,
		workSchedule.Name,
		workSchedule.Type,
		workSchedule.WeeklyHours,
		workSchedule.ToleranceMinutes,
		workSchedule.BreakTime,
		workSchedule.CreatedBy,
	))
	if err != nil {
		return schedule.WorkSchedule{}, err
	}

	return created, nil
}

// GetByID implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) GetByID(ctx context.Context, id int64) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `SELECT ` + workScheduleColumns + ` FROM work_schedules WHERE id = $1`

	return scanWorkSchedule(q.QueryRow(ctx, query, id))
}

var workScheduleSortColumns = map[string]string{
	"name":       "name",
	"type":       "type",
	"created_at": "created_at",
}

// List implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) List(ctx context.Context, filter schedule.WorkScheduleFilter) ([]schedule.WorkSchedule, int64, error) {
	q := GetQuerier(ctx, w.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.Name != nil && *filter.Name != "" {
		whereClause += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
		args = append(args, "%"+*filter.Name+"%")
		argIndex++
	}

	if filter.Type != nil && *filter.Type != "" {
		whereClause += fmt.Sprintf(" AND type = $%d", argIndex)
		args = append(args, *filter.Type)
		argIndex++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM work_schedules " + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count work schedules: %w", err)
	}

	sortBy, ok := workScheduleSortColumns[filter.SortBy]
	if !ok {
		sortBy = "name"
	}
	sortOrder := "ASC"
	if filter.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM work_schedules
		%s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, workScheduleColumns, whereClause, sortBy, sortOrder, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list work schedules: %w", err)
	}
	defer rows.Close()

	schedules := []schedule.WorkSchedule{}
	for rows.Next() {
		ws, err := scanWorkSchedule(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan work schedule: %w", err)
		}
		schedules = append(schedules, ws)
	}

	return schedules, total, rows.Err()
}

// Update implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) Update(ctx context.Context, workSchedule schedule.WorkSchedule) (schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		UPDATE work_schedules
		SET name = $1, type = $2, weekly_hours = $3, tolerance_minutes = $4, break_time = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + workScheduleColumns

	return scanWorkSchedule(q.QueryRow(ctx, query,
		workSchedule.Name,
		workSchedule.Type,
		workSchedule.WeeklyHours,
		workSchedule.ToleranceMinutes,
		workSchedule.BreakTime,
		workSchedule.ID,
	))
}

// Delete implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, w.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// IsAssigned implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) IsAssigned(ctx context.Context, id int64) (bool, error) {
	q := GetQuerier(ctx, w.db)

	var assigned bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employee_schedules WHERE schedule_id = $1)`, id).Scan(&assigned)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}
	return assigned, nil
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}

package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeScheduleRepositoryImpl struct {
	db *database.DB
}

const employeeScheduleColumns = `id, user_id, schedule_id, start_date, end_date, notes, created_at, updated_at`

func scanEmployeeSchedule(row pgx.Row) (schedule.EmployeeSchedule, error) {
	var es schedule.EmployeeSchedule
	err := row.Scan(
		&es.ID,
		&es.UserID,
		&es.ScheduleID,
		&es.StartDate,
		&es.EndDate,
		&es.Notes,
		&es.CreatedAt,
		&es.UpdatedAt,
	)
	return es, err
}

// Create implements schedule.EmployeeScheduleRepository.
func (r *employeeScheduleRepositoryImpl) Create(ctx context.Context, assignment schedule.EmployeeSchedule) (schedule.EmployeeSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_schedules (user_id, schedule_id, start_date, end_date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + employeeScheduleColumns

	return scanEmployeeSchedule(q.QueryRow(ctx, query,
		assignment.UserID,
		assignment.ScheduleID,
		assignment.StartDate,
		assignment.EndDate,
		assignment.Notes,
	))
}

// GetByID implements schedule.EmployeeScheduleRepository.
func (r *employeeScheduleRepositoryImpl) GetByID(ctx context.Context, id int64) (schedule.EmployeeSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeScheduleColumns + ` FROM employee_schedules WHERE id = $1`

	return scanEmployeeSchedule(q.QueryRow(ctx, query, id))
}

// GetByUserID implements schedule.EmployeeScheduleRepository.
func (r *employeeScheduleRepositoryImpl) GetByUserID(ctx context.Context, userID int64) ([]schedule.EmployeeSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeScheduleColumns + `
		FROM employee_schedules
		WHERE user_id = $1
		ORDER BY start_date DESC, id DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []schedule.EmployeeSchedule{}
	for rows.Next() {
		es, err := scanEmployeeSchedule(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, es)
	}

	return assignments, rows.Err()
}

// GetActiveForDate implements schedule.EmployeeScheduleRepository.
func (r *employeeScheduleRepositoryImpl) GetActiveForDate(ctx context.Context, userID int64, date time.Time) (schedule.EmployeeSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeScheduleColumns + `
		FROM employee_schedules
		WHERE user_id = $1
		  AND start_date <= $2::date
		  AND (end_date IS NULL OR end_date >= $2::date)
		ORDER BY start_date DESC, id DESC
		LIMIT 1
	`

	return scanEmployeeSchedule(q.QueryRow(ctx, query, userID, schedule.DateOf(date)))
}

// CloseActiveBefore implements schedule.EmployeeScheduleRepository.
func (r *employeeScheduleRepositoryImpl) CloseActiveBefore(ctx context.Context, userID int64, newStart time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employee_schedules
		SET end_date = $2::date - 1, updated_at = NOW()
		WHERE user_id = $1
		  AND start_date < $2::date
		  AND (end_date IS NULL OR end_date >= $2::date)
	`

	tag, err := q.Exec(ctx, query, userID, schedule.DateOf(newStart))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// HasOverlap implements schedule.EmployeeScheduleRepository.
func (r *employeeScheduleRepositoryImpl) HasOverlap(ctx context.Context, userID int64, start time.Time, end *time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM employee_schedules
			WHERE user_id = $1
			  AND (end_date IS NULL OR end_date >= $2::date)
			  AND ($3::date IS NULL OR start_date <= $3::date)
		)
	`

	var endDate *time.Time
	if end != nil {
		d := schedule.DateOf(*end)
		endDate = &d
	}

	var overlap bool
	if err := q.QueryRow(ctx, query, userID, schedule.DateOf(start), endDate).Scan(&overlap); err != nil {
		return false, err
	}
	return overlap, nil
}

// Delete implements schedule.EmployeeScheduleRepository.
func (r *employeeScheduleRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employee_schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func NewEmployeeScheduleRepository(db *database.DB) schedule.EmployeeScheduleRepository {
	return &employeeScheduleRepositoryImpl{db: db}
}

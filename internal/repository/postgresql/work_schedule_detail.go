package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type workScheduleDetailRepositoryImpl struct {
	db *database.DB
}

const workScheduleDetailColumns = `id, schedule_id, weekday, start_time, end_time, break_start, break_end, is_work_day`

func toPgTime(t schedule.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: int64(t) * int64(time.Minute/time.Microsecond), Valid: true}
}

func toPgTimePtr(t *schedule.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return toPgTime(*t)
}

func fromPgTime(t pgtype.Time) schedule.TimeOfDay {
	return schedule.TimeOfDay(t.Microseconds / int64(time.Minute/time.Microsecond))
}

func fromPgTimePtr(t pgtype.Time) *schedule.TimeOfDay {
	if !t.Valid {
		return nil
	}
	v := fromPgTime(t)
	return &v
}

func scanWorkScheduleDetail(row pgx.Row) (schedule.WorkScheduleDetail, error) {
	var d schedule.WorkScheduleDetail
	var start, end, breakStart, breakEnd pgtype.Time
	err := row.Scan(
		&d.ID,
		&d.ScheduleID,
		&d.Weekday,
		&start,
		&end,
		&breakStart,
		&breakEnd,
		&d.IsWorkDay,
	)
	if err != nil {
		return schedule.WorkScheduleDetail{}, err
	}
	d.StartTime = fromPgTime(start)
	d.EndTime = fromPgTime(end)
	d.BreakStart = fromPgTimePtr(breakStart)
	d.BreakEnd = fromPgTimePtr(breakEnd)
	return d, nil
}

// Create implements schedule.WorkScheduleDetailRepository.
func (r *workScheduleDetailRepositoryImpl) Create(ctx context.Context, detail schedule.WorkScheduleDetail) (schedule.WorkScheduleDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_schedule_details (schedule_id, weekday, start_time, end_time, break_start, break_end, is_work_day)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + workScheduleDetailColumns

	return scanWorkScheduleDetail(q.QueryRow(ctx, query,
		detail.ScheduleID,
		detail.Weekday,
		toPgTime(detail.StartTime),
		toPgTime(detail.EndTime),
		toPgTimePtr(detail.BreakStart),
		toPgTimePtr(detail.BreakEnd),
		detail.IsWorkDay,
	))
}

// GetByID implements schedule.WorkScheduleDetailRepository.
func (r *workScheduleDetailRepositoryImpl) GetByID(ctx context.Context, id int64) (schedule.WorkScheduleDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workScheduleDetailColumns + ` FROM work_schedule_details WHERE id = $1`

	return scanWorkScheduleDetail(q.QueryRow(ctx, query, id))
}

// GetBySchedule implements schedule.WorkScheduleDetailRepository.
// Rows come back Monday first.
func (r *workScheduleDetailRepositoryImpl) GetBySchedule(ctx context.Context, scheduleID int64) ([]schedule.WorkScheduleDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workScheduleDetailColumns + `
		FROM work_schedule_details
		WHERE schedule_id = $1
		ORDER BY array_position(
			ARRAY['monday','tuesday','wednesday','thursday','friday','saturday','sunday'], weekday)
	`

	rows, err := q.Query(ctx, query, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := []schedule.WorkScheduleDetail{}
	for rows.Next() {
		d, err := scanWorkScheduleDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}

	return details, rows.Err()
}

// GetByWeekday implements schedule.WorkScheduleDetailRepository.
func (r *workScheduleDetailRepositoryImpl) GetByWeekday(ctx context.Context, scheduleID int64, weekday schedule.Weekday) (schedule.WorkScheduleDetail, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workScheduleDetailColumns + ` FROM work_schedule_details WHERE schedule_id = $1 AND weekday = $2`

	return scanWorkScheduleDetail(q.QueryRow(ctx, query, scheduleID, weekday))
}

// Update implements schedule.WorkScheduleDetailRepository.
func (r *workScheduleDetailRepositoryImpl) Update(ctx context.Context, detail schedule.WorkScheduleDetail) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_schedule_details
		SET weekday = $1, start_time = $2, end_time = $3, break_start = $4, break_end = $5, is_work_day = $6
		WHERE id = $7
	`

	tag, err := q.Exec(ctx, query,
		detail.Weekday,
		toPgTime(detail.StartTime),
		toPgTime(detail.EndTime),
		toPgTimePtr(detail.BreakStart),
		toPgTimePtr(detail.BreakEnd),
		detail.IsWorkDay,
		detail.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete implements schedule.WorkScheduleDetailRepository.
func (r *workScheduleDetailRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_schedule_details WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func NewWorkScheduleDetailRepository(db *database.DB) schedule.WorkScheduleDetailRepository {
	return &workScheduleDetailRepositoryImpl{db: db}
}

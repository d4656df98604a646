package schedule

import (
	"context"
	"time"
)

type WorkScheduleRepository interface {
	Create(ctx context.Context, workSchedule WorkSchedule) (WorkSchedule, error)
	GetByID(ctx context.Context, id int64) (WorkSchedule, error)
	List(ctx context.Context, filter WorkScheduleFilter) ([]WorkSchedule, int64, error)
	Update(ctx context.Context, workSchedule WorkSchedule) (WorkSchedule, error)
	Delete(ctx context.Context, id int64) error
	IsAssigned(ctx context.Context, id int64) (bool, error)
}

type WorkScheduleDetailRepository interface {
	Create(ctx context.Context, detail WorkScheduleDetail) (WorkScheduleDetail, error)
	GetByID(ctx context.Context, id int64) (WorkScheduleDetail, error)
	GetBySchedule(ctx context.Context, scheduleID int64) ([]WorkScheduleDetail, error)
	GetByWeekday(ctx context.Context, scheduleID int64, weekday Weekday) (WorkScheduleDetail, error)
	Update(ctx context.Context, detail WorkScheduleDetail) error
	Delete(ctx context.Context, id int64) error
}

type EmployeeScheduleRepository interface {
	Create(ctx context.Context, assignment EmployeeSchedule) (EmployeeSchedule, error)
	GetByID(ctx context.Context, id int64) (EmployeeSchedule, error)
	GetByUserID(ctx context.Context, userID int64) ([]EmployeeSchedule, error)
	// GetActiveForDate returns the assignment covering date, most recent start first.
	GetActiveForDate(ctx context.Context, userID int64, date time.Time) (EmployeeSchedule, error)
	// CloseActiveBefore ends every assignment that started before newStart and
	// is still open on newStart at newStart - 1 day.
	CloseActiveBefore(ctx context.Context, userID int64, newStart time.Time) (int64, error)
	// HasOverlap reports whether any assignment intersects [start, end]; nil end is open.
	HasOverlap(ctx context.Context, userID int64, start time.Time, end *time.Time) (bool, error)
	Delete(ctx context.Context, id int64) error
}

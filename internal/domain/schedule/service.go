package schedule

import (
	"context"
	"time"
)

// Resolver answers which schedule and weekday detail apply to a user on a day.
// A missing assignment or detail yields an empty ScheduleForDate, never an error.
type Resolver interface {
	GetScheduleForDate(ctx context.Context, userID int64, date time.Time) (ScheduleForDate, error)
}

type ScheduleService interface {
	Resolver

	// Work Schedule
	CreateWorkSchedule(ctx context.Context, req CreateWorkScheduleRequest) (WorkScheduleResponse, error)
	GetWorkSchedule(ctx context.Context, id int64) (WorkScheduleResponse, error)
	ListWorkSchedules(ctx context.Context, filter WorkScheduleFilter) (ListWorkScheduleResponse, error)
	UpdateWorkSchedule(ctx context.Context, req UpdateWorkScheduleRequest) (WorkScheduleResponse, error)
	DeleteWorkSchedule(ctx context.Context, id int64) error

	// Work Schedule Detail
	CreateWorkScheduleDetail(ctx context.Context, req CreateWorkScheduleDetailRequest) (WorkScheduleDetailResponse, error)
	UpdateWorkScheduleDetail(ctx context.Context, req UpdateWorkScheduleDetailRequest) (WorkScheduleDetailResponse, error)
	DeleteWorkScheduleDetail(ctx context.Context, id int64) error

	// Employee Schedule
	AssignSchedule(ctx context.Context, req AssignScheduleRequest) (AssignScheduleResponse, error)
	ListEmployeeSchedules(ctx context.Context, userID int64) ([]EmployeeScheduleResponse, error)
	DeleteEmployeeSchedule(ctx context.Context, id int64) error
	GetCurrentSchedule(ctx context.Context, userID int64) (WorkSchedule, error)
}

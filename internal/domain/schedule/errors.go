package schedule

import "errors"

var (
	// Work Schedule Errors
	ErrWorkScheduleNotFound   = errors.New("work schedule not found")
	ErrWorkScheduleNameExists = errors.New("work schedule with this name already exists")
	ErrWorkScheduleInUse      = errors.New("work schedule is assigned to employees and cannot be deleted")

	// Work Schedule Detail Errors
	ErrWorkScheduleDetailNotFound = errors.New("work schedule detail not found")
	ErrDuplicateWeekday           = errors.New("work schedule already has a detail for this weekday")

	// Employee Schedule Errors
	ErrEmployeeScheduleNotFound      = errors.New("employee schedule assignment not found")
	ErrOverlappingScheduleAssignment = errors.New("overlapping schedule assignment detected")
	ErrNoActiveSchedule              = errors.New("user has no active work schedule")

	// Validation Errors
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
)

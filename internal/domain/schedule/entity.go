package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type WorkSchedule struct {
	ID               int64
	Name             string
	Type             ScheduleType
	WeeklyHours      decimal.Decimal
	ToleranceMinutes *int
	BreakTime        *int
	CreatedBy        int64
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Details []WorkScheduleDetail
}

// DailyHours assumes a five day week.
func (w WorkSchedule) DailyHours() decimal.Decimal {
	return w.WeeklyHours.Div(decimal.NewFromInt(5))
}

// Tolerance returns the grace period applied when stamping late clock-ins.
func (w WorkSchedule) Tolerance() time.Duration {
	if w.ToleranceMinutes == nil {
		return 0
	}
	return time.Duration(*w.ToleranceMinutes) * time.Minute
}

type ScheduleType string

const (
	ScheduleTypeRegular  ScheduleType = "regular"
	ScheduleTypeFlexible ScheduleType = "flexible"
	ScheduleTypeShift    ScheduleType = "shift"
	ScheduleTypeScale    ScheduleType = "scale"
)

var ScheduleTypeValues = []string{
	string(ScheduleTypeRegular),
	string(ScheduleTypeFlexible),
	string(ScheduleTypeShift),
	string(ScheduleTypeScale),
}

type Weekday string

const (
	Sunday    Weekday = "sunday"
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
)

// weekdayTable is indexed by time.Weekday (0=Sunday).
var weekdayTable = [7]Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

var WeekdayValues = []string{
	string(Monday), string(Tuesday), string(Wednesday), string(Thursday),
	string(Friday), string(Saturday), string(Sunday),
}

// WeekdayOf maps a calendar date to its schedule weekday.
func WeekdayOf(date time.Time) Weekday {
	return weekdayTable[date.Weekday()]
}

// TimeOfDay is a wall clock time stored as minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses a 24h "HH:MM" value.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On anchors t to the calendar day of date in loc.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

type WorkScheduleDetail struct {
	ID         int64
	ScheduleID int64
	Weekday    Weekday
	StartTime  TimeOfDay
	EndTime    TimeOfDay
	BreakStart *TimeOfDay
	BreakEnd   *TimeOfDay
	IsWorkDay  bool
}

// IsOvernight reports whether the shift ends on the following day.
func (d WorkScheduleDetail) IsOvernight() bool {
	return d.EndTime <= d.StartTime
}

// Bounds returns the concrete scheduled start and end for the given day.
func (d WorkScheduleDetail) Bounds(date time.Time, loc *time.Location) (start, end time.Time) {
	start = d.StartTime.On(date, loc)
	end = d.EndTime.On(date, loc)
	if d.IsOvernight() {
		end = d.EndTime.On(date.AddDate(0, 0, 1), loc)
	}
	return start, end
}

// ExpectedMinutes is the scheduled span minus the break when both break bounds are set.
func (d WorkScheduleDetail) ExpectedMinutes() int {
	span := int(d.EndTime - d.StartTime)
	if d.IsOvernight() {
		span += 24 * 60
	}
	if d.BreakStart != nil && d.BreakEnd != nil {
		brk := int(*d.BreakEnd - *d.BreakStart)
		if brk < 0 {
			brk += 24 * 60
		}
		span -= brk
	}
	if span < 0 {
		return 0
	}
	return span
}

type EmployeeSchedule struct {
	ID         int64
	UserID     int64
	ScheduleID int64
	StartDate  time.Time
	EndDate    *time.Time
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ActiveOn reports whether the assignment covers the calendar day of date.
func (e EmployeeSchedule) ActiveOn(date time.Time) bool {
	day := DateOf(date)
	if day.Before(DateOf(e.StartDate)) {
		return false
	}
	return e.EndDate == nil || !DateOf(*e.EndDate).Before(day)
}

// ScheduleForDate is the resolved schedule and weekday detail for one day.
// Both are nil when the user has no assignment or the weekday has no detail.
type ScheduleForDate struct {
	Schedule *WorkSchedule
	Detail   *WorkScheduleDetail
}

// IsWorkingDay is true only when a detail exists and is flagged as a work day.
func (s ScheduleForDate) IsWorkingDay() bool {
	return s.Schedule != nil && s.Detail != nil && s.Detail.IsWorkDay
}

// DateOf truncates t to its calendar day, as stored in DATE columns.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package schedule

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tod(t *testing.T, s string) TimeOfDay {
	t.Helper()
	v, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func TestWeekdayOf_FixedTable(t *testing.T) {
	// 2024-03-03 is a Sunday.
	base := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
	want := []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

	for i, w := range want {
		assert.Equal(t, w, WeekdayOf(base.AddDate(0, 0, i)))
	}
}

func TestParseTimeOfDay(t *testing.T) {
	v := tod(t, "08:15")
	assert.Equal(t, TimeOfDay(8*60+15), v)
	assert.Equal(t, "08:15", v.String())

	_, err := ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

func TestExpectedMinutes(t *testing.T) {
	bs, be := tod(t, "12:00"), tod(t, "13:00")

	tests := []struct {
		name   string
		detail WorkScheduleDetail
		want   int
	}{
		{
			name:   "day shift with break",
			detail: WorkScheduleDetail{StartTime: tod(t, "08:00"), EndTime: tod(t, "18:00"), BreakStart: &bs, BreakEnd: &be},
			want:   540,
		},
		{
			name:   "day shift without break",
			detail: WorkScheduleDetail{StartTime: tod(t, "09:00"), EndTime: tod(t, "13:00")},
			want:   240,
		},
		{
			name:   "break ignored when only one bound is set",
			detail: WorkScheduleDetail{StartTime: tod(t, "08:00"), EndTime: tod(t, "17:00"), BreakStart: &bs},
			want:   540,
		},
		{
			name:   "overnight shift",
			detail: WorkScheduleDetail{StartTime: tod(t, "22:00"), EndTime: tod(t, "06:00")},
			want:   480,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.detail.ExpectedMinutes())
		})
	}
}

func TestBounds_Overnight(t *testing.T) {
	loc := time.UTC
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, loc)
	d := WorkScheduleDetail{StartTime: tod(t, "22:00"), EndTime: tod(t, "06:00")}

	start, end := d.Bounds(day, loc)
	assert.Equal(t, time.Date(2024, 3, 4, 22, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, 3, 5, 6, 0, 0, 0, loc), end)
}

func TestEmployeeSchedule_ActiveOn(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	closed := EmployeeSchedule{StartDate: start, EndDate: &end}
	open := EmployeeSchedule{StartDate: start}

	assert.False(t, closed.ActiveOn(start.AddDate(0, 0, -1)))
	assert.True(t, closed.ActiveOn(start))
	assert.True(t, closed.ActiveOn(end.Add(23*time.Hour)))
	assert.False(t, closed.ActiveOn(end.AddDate(0, 0, 1)))
	assert.True(t, open.ActiveOn(end.AddDate(5, 0, 0)))
}

func TestScheduleForDate_IsWorkingDay(t *testing.T) {
	ws := &WorkSchedule{WeeklyHours: decimal.NewFromInt(40)}

	assert.False(t, ScheduleForDate{}.IsWorkingDay())
	assert.False(t, ScheduleForDate{Schedule: ws}.IsWorkingDay())
	assert.False(t, ScheduleForDate{Schedule: ws, Detail: &WorkScheduleDetail{IsWorkDay: false}}.IsWorkingDay())
	assert.True(t, ScheduleForDate{Schedule: ws, Detail: &WorkScheduleDetail{IsWorkDay: true}}.IsWorkingDay())
}

func TestDailyHours(t *testing.T) {
	ws := WorkSchedule{WeeklyHours: decimal.NewFromInt(40)}
	assert.True(t, ws.DailyHours().Equal(decimal.NewFromInt(8)))
}

func TestCreateDetailRequest_Validate(t *testing.T) {
	brkStart, brkEnd := "12:00", "13:00"
	outside := "19:00"

	valid := CreateWorkScheduleDetailRequest{Weekday: "monday", StartTime: "08:00", EndTime: "18:00", BreakStart: &brkStart, BreakEnd: &brkEnd}
	assert.NoError(t, valid.Validate())

	badDay := CreateWorkScheduleDetailRequest{Weekday: "funday", StartTime: "08:00", EndTime: "18:00"}
	assert.Error(t, badDay.Validate())

	halfBreak := CreateWorkScheduleDetailRequest{Weekday: "monday", StartTime: "08:00", EndTime: "18:00", BreakStart: &brkStart}
	assert.Error(t, halfBreak.Validate())

	breakOutside := CreateWorkScheduleDetailRequest{Weekday: "monday", StartTime: "08:00", EndTime: "18:00", BreakStart: &brkEnd, BreakEnd: &outside}
	assert.Error(t, breakOutside.Validate())

	entity := valid.ToEntity(7)
	assert.Equal(t, int64(7), entity.ScheduleID)
	assert.True(t, entity.IsWorkDay)
	require.NotNil(t, entity.BreakStart)
	assert.Equal(t, "12:00", entity.BreakStart.String())
}

func TestCreateWorkScheduleRequest_DuplicateWeekday(t *testing.T) {
	req := CreateWorkScheduleRequest{
		Name:        "Comercial",
		Type:        "regular",
		WeeklyHours: decimal.NewFromInt(40),
		Details: []CreateWorkScheduleDetailRequest{
			{Weekday: "monday", StartTime: "08:00", EndTime: "17:00"},
			{Weekday: "monday", StartTime: "09:00", EndTime: "18:00"},
		},
	}

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "details[1].weekday")
}

func TestAssignScheduleRequest_Validate(t *testing.T) {
	before := "2024-01-01"
	req := AssignScheduleRequest{UserID: 1, ScheduleID: 2, StartDate: "2024-02-01", EndDate: &before}
	assert.Error(t, req.Validate())

	req.EndDate = nil
	require.NoError(t, req.Validate())
	a := req.ToEntity()
	assert.Nil(t, a.EndDate)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), a.StartDate)
}

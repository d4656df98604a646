package workhours

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timerecord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 3, day, hour, minute, 0, 0, brt)
}

func rec(ts time.Time, typ timerecord.RecordType) timerecord.TimeRecord {
	return timerecord.TimeRecord{UserID: 1, Timestamp: ts, Type: typ}
}

func tod(s string) schedule.TimeOfDay {
	t, err := schedule.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// officeHours is 08:00-17:00 with a 12:00-13:00 break, Monday to Friday.
func officeHours(day time.Time) (schedule.ScheduleForDate, error) {
	ws := &schedule.WorkSchedule{ID: 1, Name: "Comercial"}
	breakStart, breakEnd := tod("12:00"), tod("13:00")
	detail := &schedule.WorkScheduleDetail{
		ScheduleID: 1,
		Weekday:    schedule.WeekdayOf(day),
		StartTime:  tod("08:00"),
		EndTime:    tod("17:00"),
		BreakStart: &breakStart,
		BreakEnd:   &breakEnd,
		IsWorkDay:  true,
	}
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		detail.IsWorkDay = false
	}
	return schedule.ScheduleForDate{Schedule: ws, Detail: detail}, nil
}

func unscheduled(time.Time) (schedule.ScheduleForDate, error) {
	return schedule.ScheduleForDate{}, nil
}

func TestCalculate_LateAndMissing(t *testing.T) {
	// Monday 2024-03-04
	records := []timerecord.TimeRecord{
		rec(at(4, 8, 15), timerecord.RecordTypeIn),
		rec(at(4, 12, 0), timerecord.RecordTypeOut),
		rec(at(4, 13, 0), timerecord.RecordTypeIn),
		rec(at(4, 17, 0), timerecord.RecordTypeOut),
	}

	got, err := Calculate(records, officeHours, brt)
	require.NoError(t, err)

	require.Len(t, got.Days, 1)
	day := got.Days[0]
	assert.Equal(t, "2024-03-04", day.Date)
	assert.True(t, day.Scheduled)
	assert.Equal(t, int64(480), day.ExpectedMinutes)
	assert.Equal(t, int64(465), day.WorkedMinutes)
	assert.Equal(t, int64(15), day.LateMinutes)
	assert.Equal(t, int64(465), day.RegularMinutes)
	assert.Equal(t, int64(15), day.MissingMinutes)
	assert.Zero(t, day.OvertimeMinutes)

	assert.Equal(t, int64(465), got.TotalWorkedMinutes)
	assert.Equal(t, int64(15), got.LateMinutes)
}

func TestCalculate_Overtime(t *testing.T) {
	records := []timerecord.TimeRecord{
		rec(at(5, 7, 55), timerecord.RecordTypeIn),
		rec(at(5, 12, 0), timerecord.RecordTypeOut),
		rec(at(5, 13, 0), timerecord.RecordTypeIn),
		rec(at(5, 18, 0), timerecord.RecordTypeOut),
	}

	got, err := Calculate(records, officeHours, brt)
	require.NoError(t, err)

	assert.Equal(t, int64(545), got.TotalWorkedMinutes)
	assert.Equal(t, int64(480), got.RegularMinutes)
	assert.Equal(t, int64(65), got.OvertimeMinutes)
	assert.Zero(t, got.MissingMinutes)
	assert.Zero(t, got.LateMinutes)
}

func TestCalculate_ExactDay(t *testing.T) {
	records := []timerecord.TimeRecord{
		rec(at(6, 8, 0), timerecord.RecordTypeIn),
		rec(at(6, 12, 0), timerecord.RecordTypeOut),
		rec(at(6, 13, 0), timerecord.RecordTypeIn),
		rec(at(6, 17, 0), timerecord.RecordTypeOut),
	}

	got, err := Calculate(records, officeHours, brt)
	require.NoError(t, err)
	assert.Equal(t, int64(480), got.RegularMinutes)
	assert.Zero(t, got.OvertimeMinutes+got.MissingMinutes+got.LateMinutes)
}

func TestCalculate_UnscheduledAndWeekend(t *testing.T) {
	records := []timerecord.TimeRecord{
		// Saturday, non-working day under office hours
		rec(at(9, 9, 30), timerecord.RecordTypeIn),
		rec(at(9, 11, 0), timerecord.RecordTypeOut),
	}

	got, err := Calculate(records, officeHours, brt)
	require.NoError(t, err)
	assert.Equal(t, int64(90), got.RegularMinutes)
	assert.False(t, got.Days[0].Scheduled)
	assert.Zero(t, got.MissingMinutes+got.OvertimeMinutes+got.LateMinutes)

	got, err = Calculate(records, unscheduled, brt)
	require.NoError(t, err)
	assert.Equal(t, int64(90), got.RegularMinutes)
}

func TestCalculate_PairsPositionally(t *testing.T) {
	records := []timerecord.TimeRecord{
		rec(at(4, 8, 0), timerecord.RecordTypeIn),
		rec(at(4, 12, 0), timerecord.RecordTypeOut),
		rec(at(4, 13, 0), timerecord.RecordTypeIn),
		// no clock-out in the afternoon
		rec(at(5, 7, 0), timerecord.RecordTypeOut),
		rec(at(5, 8, 0), timerecord.RecordTypeIn),
		rec(at(5, 17, 0), timerecord.RecordTypeOut),
		rec(at(6, 8, 0), timerecord.RecordTypeIn),
		rec(at(6, 9, 0), timerecord.RecordTypeIn),
		rec(at(6, 12, 0), timerecord.RecordTypeOut),
		rec(at(6, 13, 0), timerecord.RecordTypeOut),
	}

	got, err := Calculate(records, unscheduled, brt)
	require.NoError(t, err)
	require.Len(t, got.Days, 3)
	assert.Equal(t, int64(240), got.Days[0].WorkedMinutes, "trailing record is dropped")
	assert.Equal(t, int64(60), got.Days[1].WorkedMinutes, "07:00 pairs with 08:00, 17:00 is dropped")
	assert.Equal(t, int64(120), got.Days[2].WorkedMinutes, "08:00-09:00 and 12:00-13:00")
	assert.Equal(t, int64(420), got.TotalWorkedMinutes)
}

func TestCalculate_OvernightShiftStaysOnStartDay(t *testing.T) {
	nightShift := func(day time.Time) (schedule.ScheduleForDate, error) {
		return schedule.ScheduleForDate{
			Schedule: &schedule.WorkSchedule{ID: 2, Name: "Noturno"},
			Detail: &schedule.WorkScheduleDetail{
				ScheduleID: 2,
				Weekday:    schedule.WeekdayOf(day),
				StartTime:  tod("22:00"),
				EndTime:    tod("06:00"),
				IsWorkDay:  true,
			},
		}, nil
	}

	records := []timerecord.TimeRecord{
		rec(at(4, 22, 0), timerecord.RecordTypeIn),
		rec(at(5, 7, 30), timerecord.RecordTypeOut),
		rec(at(5, 22, 10), timerecord.RecordTypeIn),
		rec(at(6, 5, 0), timerecord.RecordTypeOut),
	}

	got, err := Calculate(records, nightShift, brt)
	require.NoError(t, err)
	require.Len(t, got.Days, 2)

	first := got.Days[0]
	assert.Equal(t, "2024-03-04", first.Date)
	assert.Equal(t, int64(480), first.ExpectedMinutes)
	assert.Equal(t, int64(570), first.WorkedMinutes)
	assert.Equal(t, int64(90), first.OvertimeMinutes)
	assert.Zero(t, first.LateMinutes)

	second := got.Days[1]
	assert.Equal(t, "2024-03-05", second.Date)
	assert.Equal(t, int64(410), second.WorkedMinutes)
	assert.Equal(t, int64(70), second.MissingMinutes)
	assert.Equal(t, int64(10), second.LateMinutes)
}

func TestCalculate_GroupsByLocalDay(t *testing.T) {
	// 01:30 UTC on the 5th is still the 4th in BRT.
	in := time.Date(2024, 3, 4, 23, 0, 0, 0, time.UTC)
	out := time.Date(2024, 3, 5, 1, 30, 0, 0, time.UTC)

	got, err := Calculate([]timerecord.TimeRecord{
		rec(in, timerecord.RecordTypeIn),
		rec(out, timerecord.RecordTypeOut),
	}, unscheduled, brt)
	require.NoError(t, err)
	require.Len(t, got.Days, 1)
	assert.Equal(t, "2024-03-04", got.Days[0].Date)
	assert.Equal(t, int64(150), got.TotalWorkedMinutes)
}

func TestCalculate_Idempotent(t *testing.T) {
	records := []timerecord.TimeRecord{
		rec(at(4, 8, 20), timerecord.RecordTypeIn),
		rec(at(4, 18, 0), timerecord.RecordTypeOut),
	}

	first, err := Calculate(records, officeHours, brt)
	require.NoError(t, err)
	second, err := Calculate(records, officeHours, brt)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculate_NoRecords(t *testing.T) {
	got, err := Calculate(nil, officeHours, brt)
	require.NoError(t, err)
	assert.NotNil(t, got.Days)
	assert.Empty(t, got.Days)
}

func TestCalculate_LookupError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Calculate([]timerecord.TimeRecord{rec(at(4, 8, 0), timerecord.RecordTypeIn)},
		func(time.Time) (schedule.ScheduleForDate, error) { return schedule.ScheduleForDate{}, boom }, brt)
	assert.ErrorIs(t, err, boom)
}

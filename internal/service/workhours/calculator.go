package workhours

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/workhours"
)

// ScheduleLookup resolves the schedule for one calendar day.
type ScheduleLookup func(day time.Time) (schedule.ScheduleForDate, error)

// Calculate splits records (ascending by timestamp) into per-day worked,
// regular, overtime, missing and late minutes. Days are calendar days in loc,
// except that a clock-out closing an overnight shift stays with the day the
// shift started. The result depends only on its inputs.
func Calculate(records []timerecord.TimeRecord, lookup ScheduleLookup, loc *time.Location) (workhours.WorkedHours, error) {
	result := workhours.WorkedHours{Days: []workhours.DayBreakdown{}}

	groups, err := groupByShift(records, lookup, loc)
	if err != nil {
		return workhours.WorkedHours{}, err
	}
	for _, group := range groups {
		result.Add(calculateDay(group, loc))
	}

	return result, nil
}

type dayRecords struct {
	day      time.Time
	schedule schedule.ScheduleForDate
	records  []timerecord.TimeRecord
}

// carriesOver reports whether the next record still belongs to this group:
// the group holds an open pair and its day works an overnight shift.
func (g dayRecords) carriesOver() bool {
	return len(g.records)%2 == 1 && g.schedule.IsWorkingDay() && g.schedule.Detail.IsOvernight()
}

func groupByShift(records []timerecord.TimeRecord, lookup ScheduleLookup, loc *time.Location) ([]dayRecords, error) {
	var groups []dayRecords
	for _, r := range records {
		day := schedule.DateOf(r.Timestamp.In(loc))
		if n := len(groups); n > 0 && (groups[n-1].day.Equal(day) || groups[n-1].carriesOver()) {
			groups[n-1].records = append(groups[n-1].records, r)
			continue
		}

		sfd, err := lookup(day)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve schedule for %s: %w", day.Format("2006-01-02"), err)
		}
		groups = append(groups, dayRecords{day: day, schedule: sfd, records: []timerecord.TimeRecord{r}})
	}
	return groups, nil
}

func calculateDay(group dayRecords, loc *time.Location) workhours.DayBreakdown {
	sfd := group.schedule
	worked := workedMinutes(group.records)
	d := workhours.DayBreakdown{
		Date:          group.day.Format("2006-01-02"),
		WorkedMinutes: worked,
	}

	if !sfd.IsWorkingDay() {
		d.RegularMinutes = worked
		return d
	}

	detail := sfd.Detail
	expected := int64(detail.ExpectedMinutes())
	d.Scheduled = true
	d.ExpectedMinutes = expected

	start, _ := detail.Bounds(group.day, loc)
	for _, r := range group.records {
		if r.Type != timerecord.RecordTypeIn {
			continue
		}
		if r.Timestamp.After(start) {
			d.LateMinutes = int64(r.Timestamp.Sub(start) / time.Minute)
		}
		break
	}

	switch {
	case worked > expected:
		d.RegularMinutes = expected
		d.OvertimeMinutes = worked - expected
	case worked < expected:
		d.RegularMinutes = worked
		d.MissingMinutes = expected - worked
	default:
		d.RegularMinutes = expected
	}

	return d
}

// workedMinutes pairs records positionally: [0] with [1], [2] with [3] and so
// on. A trailing unmatched record contributes nothing.
func workedMinutes(records []timerecord.TimeRecord) int64 {
	var total time.Duration
	for i := 0; i+1 < len(records); i += 2 {
		if span := records[i+1].Timestamp.Sub(records[i].Timestamp); span > 0 {
			total += span
		}
	}
	return int64(total / time.Minute)
}

package workhours

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/workhours"
)

type workHoursServiceImpl struct {
	timeRecordRepo timerecord.TimeRecordRepository
	resolver       schedule.Resolver
	loc            *time.Location
}

func NewWorkHoursService(timeRecordRepo timerecord.TimeRecordRepository, resolver schedule.Resolver, loc *time.Location) workhours.WorkHoursService {
	return &workHoursServiceImpl{
		timeRecordRepo: timeRecordRepo,
		resolver:       resolver,
		loc:            loc,
	}
}

// CalculateWorkedHours implements workhours.WorkHoursService.
func (s *workHoursServiceImpl) CalculateWorkedHours(ctx context.Context, userID int64, startDate, endDate string) (workhours.WorkedHours, error) {
	req := workhours.WorkedHoursRequest{UserID: userID, StartDate: startDate, EndDate: endDate}
	start, end, err := req.Validate()
	if err != nil {
		return workhours.WorkedHours{}, err
	}

	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, s.loc)
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, s.loc)

	records, err := s.timeRecordRepo.GetByUserBetween(ctx, userID, from, to)
	if err != nil {
		return workhours.WorkedHours{}, fmt.Errorf("failed to get time records: %w", err)
	}

	lookup := func(day time.Time) (schedule.ScheduleForDate, error) {
		return s.resolver.GetScheduleForDate(ctx, userID, day)
	}

	result, err := Calculate(records, lookup, s.loc)
	if err != nil {
		return workhours.WorkedHours{}, err
	}

	result.UserID = userID
	result.StartDate = startDate
	result.EndDate = endDate
	return result, nil
}

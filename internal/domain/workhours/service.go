package workhours

import "context"

type WorkHoursService interface {
	// CalculateWorkedHours reads the user's records between startDate 00:00 and
	// endDate 23:59:59 and splits the worked time against the assigned schedule.
	CalculateWorkedHours(ctx context.Context, userID int64, startDate, endDate string) (WorkedHours, error)
}

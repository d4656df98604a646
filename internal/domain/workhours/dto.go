package workhours

import (
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
)

// MaxRangeDays bounds a single calculation.
const MaxRangeDays = 366

type WorkedHoursRequest struct {
	UserID    int64  `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Validate checks the request and returns the parsed dates.
func (r *WorkedHoursRequest) Validate() (start, end time.Time, err error) {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		} else if end.Sub(start) > MaxRangeDays*24*time.Hour {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "date range must not exceed 366 days",
			})
		}
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}

	return start, end, nil
}

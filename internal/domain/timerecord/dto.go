package timerecord

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// RegisterRecordRequest is an employee self-service clock event. When Type is
// omitted it is derived from the user's previous record.
type RegisterRecordRequest struct {
	UserID    int64    `json:"-"`
	IPAddress string   `json:"-"`
	Type      *string  `json:"type,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Photo     string   `json:"photo,omitempty"`
}

func (r *RegisterRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if r.Type != nil && !validator.IsInSlice(*r.Type, RecordTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(RecordTypeValues, ", "),
		})
	}
	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude)...)
	if len(r.Photo) > 2048 {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "photo reference must not exceed 2048 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ManualRecordRequest is an admin correction entered on behalf of a user.
type ManualRecordRequest struct {
	UserID        int64    `json:"user_id"`
	Timestamp     string   `json:"timestamp"` // RFC3339
	Type          string   `json:"type"`
	Justification string   `json:"justification"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	CreatedBy     int64    `json:"-"`
	IPAddress     string   `json:"-"`
}

func (r *ManualRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be an RFC3339 date-time",
		})
	}
	if !validator.IsInSlice(r.Type, RecordTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(RecordTypeValues, ", "),
		})
	}
	if validator.IsEmpty(r.Justification) {
		errs = append(errs, validator.ValidationError{
			Field:   "justification",
			Message: "justification is required for manual records",
		})
	} else if len(r.Justification) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "justification",
			Message: "justification must not exceed 1000 characters",
		})
	}
	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TimeRecordFilter struct {
	UserID    *int64  `json:"user_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Type      *string `json:"type,omitempty"`
	pagination.Params

	// Resolved by Validate, interpreted in the service timezone.
	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *TimeRecordFilter) Validate(loc *time.Location) error {
	errs := f.Params.Normalize()

	if f.Type != nil && !validator.IsInSlice(*f.Type, RecordTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(RecordTypeValues, ", "),
		})
	}
	if f.StartDate != nil {
		d, ok := validator.IsValidDate(*f.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		} else {
			from := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
			f.From = &from
		}
	}
	if f.EndDate != nil {
		d, ok := validator.IsValidDate(*f.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else {
			to := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, loc)
			f.To = &to
		}
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TimeRecordResponse struct {
	ID                   int64            `json:"id"`
	UserID               int64            `json:"user_id"`
	Timestamp            string           `json:"timestamp"`
	Type                 string           `json:"type"`
	IPAddress            string           `json:"ip_address,omitempty"`
	Latitude             *float64         `json:"latitude,omitempty"`
	Longitude            *float64         `json:"longitude,omitempty"`
	Photo                string           `json:"photo,omitempty"`
	IsManual             bool             `json:"is_manual"`
	Justification        *string          `json:"justification,omitempty"`
	CreatedBy            int64            `json:"created_by"`
	ScheduleID           *int64           `json:"schedule_id,omitempty"`
	IsLate               bool             `json:"is_late"`
	Overtime             *decimal.Decimal `json:"overtime,omitempty"`
	ProcessedForTimeBank bool             `json:"processed_for_time_bank"`
	CreatedAt            string           `json:"created_at"`
}

type ListTimeRecordResponse struct {
	pagination.Page
	Records []TimeRecordResponse `json:"records"`
}

func NewTimeRecordResponse(r TimeRecord) TimeRecordResponse {
	return TimeRecordResponse{
		ID:                   r.ID,
		UserID:               r.UserID,
		Timestamp:            r.Timestamp.Format(time.RFC3339),
		Type:                 string(r.Type),
		IPAddress:            r.IPAddress,
		Latitude:             r.Latitude,
		Longitude:            r.Longitude,
		Photo:                r.Photo,
		IsManual:             r.IsManual,
		Justification:        r.Justification,
		CreatedBy:            r.CreatedBy,
		ScheduleID:           r.ScheduleID,
		IsLate:               r.IsLate,
		Overtime:             r.Overtime,
		ProcessedForTimeBank: r.ProcessedForTimeBank,
		CreatedAt:            r.CreatedAt.Format(time.RFC3339),
	}
}

func validateCoordinates(lat, lng *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if (lat == nil) != (lng == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "latitude and longitude must be provided together",
		})
		return errs
	}
	if lat != nil && !validator.IsValidLatitude(*lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if lng != nil && !validator.IsValidLongitude(*lng) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	return errs
}

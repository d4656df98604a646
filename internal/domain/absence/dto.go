package absence

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	UserID    int64  `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Type      string `json:"type"`
	Reason    string `json:"reason"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if !validator.IsInSlice(r.Type, TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TypeValues, ", "),
		})
	}
	errs = append(errs, validateRange(r.StartDate, r.EndDate)...)
	errs = append(errs, validateReason(r.Reason)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *CreateRequest) ToEntity() Request {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return Request{
		UserID:    r.UserID,
		StartDate: start,
		EndDate:   end,
		Type:      Type(r.Type),
		Reason:    strings.TrimSpace(r.Reason),
		Status:    StatusPending,
	}
}

type UpdateRequest struct {
	ID        int64   `json:"-"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Type      *string `json:"type,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *UpdateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate == nil && r.EndDate == nil && r.Type == nil && r.Reason == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "request",
			Message: "at least one field must be provided",
		})
	}
	if r.Type != nil && !validator.IsInSlice(*r.Type, TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TypeValues, ", "),
		})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.Reason != nil {
		errs = append(errs, validateReason(*r.Reason)...)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply merges the update into existing and re-checks the date range.
func (r *UpdateRequest) Apply(existing *Request) error {
	if r.StartDate != nil {
		existing.StartDate, _ = validator.IsValidDate(*r.StartDate)
	}
	if r.EndDate != nil {
		existing.EndDate, _ = validator.IsValidDate(*r.EndDate)
	}
	if r.Type != nil {
		existing.Type = Type(*r.Type)
	}
	if r.Reason != nil {
		existing.Reason = strings.TrimSpace(*r.Reason)
	}
	if existing.EndDate.Before(existing.StartDate) {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}
	return nil
}

type ReviewRequest struct {
	Notes *string `json:"notes,omitempty"`
}

func (r *ReviewRequest) Validate() error {
	if r.Notes != nil && len(*r.Notes) > 1000 {
		return validator.ValidationErrors{{
			Field:   "notes",
			Message: "notes must not exceed 1000 characters",
		}}
	}
	return nil
}

type RequestFilter struct {
	UserID *int64  `json:"user_id,omitempty"`
	Status *string `json:"status,omitempty"`
	Type   *string `json:"type,omitempty"`
	pagination.Params
}

func (f *RequestFilter) Validate() error {
	errs := f.Params.Normalize()

	if f.Status != nil && !validator.IsInSlice(*f.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(StatusValues, ", "),
		})
	}
	if f.Type != nil && !validator.IsInSlice(*f.Type, TypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TypeValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	BusinessDays int     `json:"business_days"`
	Type         string  `json:"type"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ReviewedBy   *int64  `json:"reviewed_by,omitempty"`
	ReviewDate   *string `json:"review_date,omitempty"`
	ReviewNotes  *string `json:"review_notes,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ListRequestResponse struct {
	pagination.Page
	Requests []RequestResponse `json:"requests"`
}

func NewRequestResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		StartDate:    r.StartDate.Format("2006-01-02"),
		EndDate:      r.EndDate.Format("2006-01-02"),
		BusinessDays: BusinessDays(r.StartDate, r.EndDate),
		Type:         string(r.Type),
		Reason:       r.Reason,
		Status:       string(r.Status),
		ReviewedBy:   r.ReviewedBy,
		ReviewNotes:  r.ReviewNotes,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ReviewDate != nil {
		reviewed := r.ReviewDate.Format(time.RFC3339)
		resp.ReviewDate = &reviewed
	}
	return resp
}

func validateRange(startDate, endDate string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(startDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(endDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	return errs
}

func validateReason(reason string) validator.ValidationErrors {
	if validator.IsEmpty(reason) {
		return validator.ValidationErrors{{Field: "reason", Message: "reason is required"}}
	}
	if len(reason) > 1000 {
		return validator.ValidationErrors{{Field: "reason", Message: "reason must not exceed 1000 characters"}}
	}
	return nil
}

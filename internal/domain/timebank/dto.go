package timebank

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEntryRequest struct {
	UserID          int64           `json:"user_id"`
	Date            string          `json:"date"`
	HoursBalance    decimal.Decimal `json:"hours_balance"`
	Description     string          `json:"description"`
	Type            string          `json:"type"`
	RelatedRecordID *int64          `json:"related_record_id,omitempty"`
	ExpirationDate  *string         `json:"expiration_date,omitempty"`
	CreatedBy       int64           `json:"-"`
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	date, dateOK := validator.IsValidDate(r.Date)
	if !dateOK {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if r.HoursBalance.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_balance",
			Message: "hours_balance must not be zero",
		})
	}
	if !r.HoursBalance.Equal(r.HoursBalance.Round(HoursScale)) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_balance",
			Message: "hours_balance supports at most 4 decimal places",
		})
	}
	if !validator.IsInSlice(r.Type, EntryTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(EntryTypeValues, ", "),
		})
	}
	if len(r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 500 characters",
		})
	}
	if r.ExpirationDate != nil {
		exp, ok := validator.IsValidDate(*r.ExpirationDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expiration_date",
				Message: "expiration_date must be in YYYY-MM-DD format",
			})
		} else if dateOK && exp.Before(date) {
			errs = append(errs, validator.ValidationError{
				Field:   "expiration_date",
				Message: "expiration_date must not be before date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToEntity converts a validated request.
func (r *CreateEntryRequest) ToEntity() Entry {
	date, _ := validator.IsValidDate(r.Date)
	e := Entry{
		UserID:          r.UserID,
		Date:            date,
		HoursBalance:    r.HoursBalance.Round(HoursScale),
		Description:     strings.TrimSpace(r.Description),
		Type:            EntryType(r.Type),
		RelatedRecordID: r.RelatedRecordID,
		CreatedBy:       r.CreatedBy,
	}
	if r.ExpirationDate != nil {
		exp, _ := validator.IsValidDate(*r.ExpirationDate)
		e.ExpirationDate = &exp
	}
	return e
}

// CompensateRequest debits minutes from the ledger, consuming credits FIFO.
type CompensateRequest struct {
	UserID           int64
	CompensationDate time.Time
	Minutes          int64
	Description      string
	CreatedBy        int64
}

func (r *CompensateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if r.CompensationDate.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "compensation_date",
			Message: "compensation_date is required",
		})
	}
	if r.Minutes <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "minutes",
			Message: "minutes must be greater than 0",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// CompensateHoursRequest is the HTTP body for an admin compensation.
type CompensateHoursRequest struct {
	UserID           int64  `json:"user_id"`
	CompensationDate string `json:"compensation_date"`
	Minutes          int64  `json:"minutes"`
	Description      string `json:"description"`
}

func (r *CompensateHoursRequest) ToCompensateRequest(createdBy int64) (CompensateRequest, error) {
	date, ok := validator.IsValidDate(r.CompensationDate)
	if !ok {
		return CompensateRequest{}, validator.ValidationErrors{{
			Field:   "compensation_date",
			Message: "compensation_date must be in YYYY-MM-DD format",
		}}
	}
	req := CompensateRequest{
		UserID:           r.UserID,
		CompensationDate: date,
		Minutes:          r.Minutes,
		Description:      strings.TrimSpace(r.Description),
		CreatedBy:        createdBy,
	}
	return req, req.Validate()
}

type CompensationResponse struct {
	Compensated    bool  `json:"compensated"`
	BalanceMinutes int64 `json:"balance_minutes"`
}

type EntryFilter struct {
	UserID             int64   `json:"user_id"`
	Type               *string `json:"type,omitempty"`
	StartDate          *string `json:"start_date,omitempty"`
	EndDate            *string `json:"end_date,omitempty"`
	IncludeCompensated bool    `json:"include_compensated"`
	pagination.Params
}

func (f *EntryFilter) Validate() error {
	errs := f.Params.Normalize()

	if f.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if f.Type != nil && !validator.IsInSlice(*f.Type, EntryTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(EntryTypeValues, ", "),
		})
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EntryResponse struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"user_id"`
	Date             string          `json:"date"`
	HoursBalance     decimal.Decimal `json:"hours_balance"`
	Minutes          int64           `json:"minutes"`
	Description      string          `json:"description"`
	Type             string          `json:"type"`
	RelatedRecordID  *int64          `json:"related_record_id,omitempty"`
	ExpirationDate   *string         `json:"expiration_date,omitempty"`
	WasCompensated   bool            `json:"was_compensated"`
	CompensationDate *string         `json:"compensation_date,omitempty"`
	CreatedBy        int64           `json:"created_by"`
	CreatedAt        string          `json:"created_at"`
}

type ListEntryResponse struct {
	pagination.Page
	Entries []EntryResponse `json:"entries"`
}

type BalanceResponse struct {
	UserID         int64           `json:"user_id"`
	BalanceMinutes int64           `json:"balance_minutes"`
	BalanceHours   decimal.Decimal `json:"balance_hours"`
}

func NewBalanceResponse(userID, minutes int64) BalanceResponse {
	return BalanceResponse{
		UserID:         userID,
		BalanceMinutes: minutes,
		BalanceHours:   decimal.NewFromInt(minutes).DivRound(sixty, 2),
	}
}

// ProcessSummary reports one batch run of the record processor.
type ProcessSummary struct {
	Scanned  int `json:"scanned"`
	Credited int `json:"credited"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

func NewEntryResponse(e Entry) EntryResponse {
	resp := EntryResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		Date:            e.Date.Format("2006-01-02"),
		HoursBalance:    e.HoursBalance,
		Minutes:         e.Minutes(),
		Description:     e.Description,
		Type:            string(e.Type),
		RelatedRecordID: e.RelatedRecordID,
		WasCompensated:  e.WasCompensated,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
	}
	if e.ExpirationDate != nil {
		exp := e.ExpirationDate.Format("2006-01-02")
		resp.ExpirationDate = &exp
	}
	if e.CompensationDate != nil {
		comp := e.CompensationDate.Format("2006-01-02")
		resp.CompensationDate = &comp
	}
	return resp
}

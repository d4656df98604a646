package finance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	UserID      int64           `json:"user_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	CreatedBy   int64           `json:"-"`
}

func (r *CreateTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if !validator.IsInSlice(r.Type, TransactionTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TransactionTypeValues, ", "),
		})
	}
	errs = append(errs, validateAmount(r.Amount)...)
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if len(r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *CreateTransactionRequest) ToEntity() Transaction {
	date, _ := validator.IsValidDate(r.Date)
	return Transaction{
		UserID:      r.UserID,
		Type:        TransactionType(r.Type),
		Amount:      r.Amount.Round(2),
		Date:        date,
		Description: strings.TrimSpace(r.Description),
		CreatedBy:   r.CreatedBy,
	}
}

type UpdateTransactionRequest struct {
	ID          int64            `json:"-"`
	Type        *string          `json:"type,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
	UpdatedBy   int64            `json:"-"`
}

func (r *UpdateTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type == nil && r.Amount == nil && r.Date == nil && r.Description == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "request",
			Message: "at least one field must be provided",
		})
	}
	if r.Type != nil && !validator.IsInSlice(*r.Type, TransactionTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TransactionTypeValues, ", "),
		})
	}
	if r.Amount != nil {
		errs = append(errs, validateAmount(*r.Amount)...)
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.Description != nil && len(*r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *UpdateTransactionRequest) Apply(t Transaction) Transaction {
	if r.Type != nil {
		t.Type = TransactionType(*r.Type)
	}
	if r.Amount != nil {
		t.Amount = r.Amount.Round(2)
	}
	if r.Date != nil {
		t.Date, _ = validator.IsValidDate(*r.Date)
	}
	if r.Description != nil {
		t.Description = strings.TrimSpace(*r.Description)
	}
	return t
}

type TransactionFilter struct {
	UserID    *int64  `json:"user_id,omitempty"`
	Type      *string `json:"type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	pagination.Params
}

func (f *TransactionFilter) Validate() error {
	errs := f.Params.Normalize()

	if f.Type != nil && !validator.IsInSlice(*f.Type, TransactionTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: " + strings.Join(TransactionTypeValues, ", "),
		})
	}
	var start, end time.Time
	var startOK, endOK bool
	if f.StartDate != nil {
		if start, startOK = validator.IsValidDate(*f.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if end, endOK = validator.IsValidDate(*f.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK && end.Before(start) {
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

type TransactionResponse struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	SignedAmount decimal.Decimal `json:"signed_amount"`
	Date         string          `json:"date"`
	Description  string          `json:"description"`
	CreatedBy    int64           `json:"created_by"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type ListTransactionResponse struct {
	pagination.Page
	Transactions []TransactionResponse `json:"transactions"`
	Net          decimal.Decimal       `json:"net"`
}

func NewTransactionResponse(t Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		UserID:       t.UserID,
		Type:         string(t.Type),
		Amount:       t.Amount,
		SignedAmount: t.SignedAmount(),
		Date:         t.Date.Format("2006-01-02"),
		Description:  t.Description,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
}

func validateAmount(amount decimal.Decimal) validator.ValidationErrors {
	if !amount.IsPositive() {
		return validator.ValidationErrors{{Field: "amount", Message: "amount must be greater than 0"}}
	}
	if !amount.Equal(amount.Round(2)) {
		return validator.ValidationErrors{{Field: "amount", Message: "amount supports at most 2 decimal places"}}
	}
	return nil
}

package salary

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const DefaultCurrency = "BRL"

type CreateSalaryRequest struct {
	UserID        int64           `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	EffectiveDate string          `json:"effective_date"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedBy     int64           `json:"-"`
}

func (r *CreateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	errs = append(errs, validateAmount(r.Amount)...)
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
	if !validator.IsValidCurrency(r.Currency) {
		errs = append(errs, validator.ValidationError{
			Field:   "currency",
			Message: "currency must be a 3-letter ISO code",
		})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_date",
			Message: "effective_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *CreateSalaryRequest) ToEntity() Salary {
	effective, _ := validator.IsValidDate(r.EffectiveDate)
	return Salary{
		UserID:        r.UserID,
		Amount:        r.Amount.Round(2),
		Currency:      r.Currency,
		EffectiveDate: effective,
		Notes:         trimmed(r.Notes),
		Version:       1,
		CreatedBy:     r.CreatedBy,
	}
}

type UpdateSalaryRequest struct {
	ID            int64            `json:"-"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Currency      *string          `json:"currency,omitempty"`
	EffectiveDate *string          `json:"effective_date,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	UpdatedBy     int64            `json:"-"`
}

func (r *UpdateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Amount == nil && r.Currency == nil && r.EffectiveDate == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "request",
			Message: "at least one field must be provided",
		})
	}
	if r.Amount != nil {
		errs = append(errs, validateAmount(*r.Amount)...)
	}
	if r.Currency != nil && !validator.IsValidCurrency(*r.Currency) {
		errs = append(errs, validator.ValidationError{
			Field:   "currency",
			Message: "currency must be a 3-letter ISO code",
		})
	}
	if r.EffectiveDate != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_date",
				Message: "effective_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply returns the next version of s with the update merged in.
func (r *UpdateSalaryRequest) Apply(s Salary) Salary {
	if r.Amount != nil {
		s.Amount = r.Amount.Round(2)
	}
	if r.Currency != nil {
		s.Currency = *r.Currency
	}
	if r.EffectiveDate != nil {
		s.EffectiveDate, _ = validator.IsValidDate(*r.EffectiveDate)
	}
	if r.Notes != nil {
		s.Notes = trimmed(r.Notes)
	}
	s.Version++
	return s
}

type SalaryResponse struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	EffectiveDate string          `json:"effective_date"`
	Notes         *string         `json:"notes,omitempty"`
	Version       int             `json:"version"`
	CreatedBy     int64           `json:"created_by"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

func NewSalaryResponse(s Salary) SalaryResponse {
	return SalaryResponse{
		ID:            s.ID,
		UserID:        s.UserID,
		Amount:        s.Amount,
		Currency:      s.Currency,
		EffectiveDate: s.EffectiveDate.Format("2006-01-02"),
		Notes:         s.Notes,
		Version:       s.Version,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
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

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

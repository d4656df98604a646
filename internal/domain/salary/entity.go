package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary is a versioned pay record. Every update bumps Version.
type Salary struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	EffectiveDate time.Time       `json:"effective_date"`
	Notes         *string         `json:"notes,omitempty"`
	Version       int             `json:"version"`
	CreatedBy     int64           `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

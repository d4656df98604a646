package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeBonus         TransactionType = "bonus"
	TransactionTypeDeduction     TransactionType = "deduction"
	TransactionTypeAdvance       TransactionType = "advance"
	TransactionTypeReimbursement TransactionType = "reimbursement"
	TransactionTypeCommission    TransactionType = "commission"
)

var TransactionTypeValues = []string{
	string(TransactionTypeBonus),
	string(TransactionTypeDeduction),
	string(TransactionTypeAdvance),
	string(TransactionTypeReimbursement),
	string(TransactionTypeCommission),
}

// Transaction is a one-off payroll movement. Amount is always positive; Type
// says whether it is paid out or withheld.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	CreatedBy   int64           `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsDebit reports whether the transaction reduces the employee's pay.
func (t Transaction) IsDebit() bool {
	return t.Type == TransactionTypeDeduction || t.Type == TransactionTypeAdvance
}

// SignedAmount is Amount, negated for debits.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.IsDebit() {
		return t.Amount.Neg()
	}
	return t.Amount
}

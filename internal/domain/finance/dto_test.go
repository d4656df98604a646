package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		typ  TransactionType
		want string
	}{
		{TransactionTypeBonus, "150"},
		{TransactionTypeCommission, "150"},
		{TransactionTypeReimbursement, "150"},
		{TransactionTypeDeduction, "-150"},
		{TransactionTypeAdvance, "-150"},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			tx := Transaction{Type: tt.typ, Amount: decimal.NewFromInt(150)}
			assert.True(t, tx.SignedAmount().Equal(decimal.RequireFromString(tt.want)))
		})
	}
}

func TestCreateTransactionRequest_Validate(t *testing.T) {
	req := CreateTransactionRequest{
		UserID: 1,
		Type:   "bonus",
		Amount: decimal.RequireFromString("99.90"),
		Date:   "2024-03-10",
	}
	require.NoError(t, req.Validate())

	req.Type = "gift"
	assert.Error(t, req.Validate())
}

func TestTransactionFilter_Validate(t *testing.T) {
	start, end := "2024-03-10", "2024-03-01"
	f := TransactionFilter{StartDate: &start, EndDate: &end}
	assert.Error(t, f.Validate())

	f.EndDate = &start
	assert.NoError(t, f.Validate())
}

package salary

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSalaryRequest_Validate(t *testing.T) {
	req := CreateSalaryRequest{
		UserID:        3,
		Amount:        decimal.RequireFromString("4500.50"),
		EffectiveDate: "2024-01-01",
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, DefaultCurrency, req.Currency)

	s := req.ToEntity()
	assert.Equal(t, 1, s.Version)

	req.Amount = decimal.RequireFromString("10.123")
	assert.Error(t, req.Validate())

	req.Amount = decimal.Zero
	assert.Error(t, req.Validate())
}

func TestUpdateSalaryRequest_Apply(t *testing.T) {
	current := Salary{ID: 1, Amount: decimal.NewFromInt(3000), Currency: "BRL", Version: 2}

	amount := decimal.RequireFromString("3300")
	req := UpdateSalaryRequest{ID: 1, Amount: &amount}
	require.NoError(t, req.Validate())

	next := req.Apply(current)
	assert.Equal(t, 3, next.Version)
	assert.True(t, next.Amount.Equal(amount))
	assert.Equal(t, 2, current.Version)

	assert.Error(t, (&UpdateSalaryRequest{ID: 1}).Validate())
}

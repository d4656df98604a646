package audit

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLog(t *testing.T) {
	after := map[string]any{"amount": "3500.00", "version": 1}

	l, err := NewLog(EntitySalary, 7, ActionCreate, nil, after, 1)
	require.NoError(t, err)
	assert.Nil(t, l.Before)
	assert.JSONEq(t, `{"amount":"3500.00","version":1}`, string(l.After))
	assert.NotEqual(t, uuid.Nil, l.CorrelationID)

	_, err = NewLog(EntitySalary, 7, ActionUpdate, func() {}, nil, 1)
	assert.Error(t, err)
}

func TestLogFilter_Validate(t *testing.T) {
	id := int64(3)
	f := LogFilter{EntityID: &id}
	assert.Error(t, f.Validate())

	kind := EntityFinancialTransaction
	f.EntityType = &kind
	require.NoError(t, f.Validate())
	assert.Equal(t, 20, f.Limit)

	bad := "not-a-uuid"
	f.CorrelationID = &bad
	assert.Error(t, f.Validate())
}

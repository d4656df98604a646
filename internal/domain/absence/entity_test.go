package absence

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessDays(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"monday to tuesday", "2024-03-04", "2024-03-05", 2},
		{"single weekday", "2024-03-06", "2024-03-06", 1},
		{"weekend only", "2024-03-09", "2024-03-10", 0},
		{"full week", "2024-03-04", "2024-03-10", 5},
		{"friday to monday", "2024-03-08", "2024-03-11", 2},
		{"end before start", "2024-03-11", "2024-03-08", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := time.Parse("2006-01-02", tt.start)
			end, _ := time.Parse("2006-01-02", tt.end)
			assert.Equal(t, tt.want, BusinessDays(start, end))
		})
	}
}

func TestCompensationMinutes(t *testing.T) {
	assert.Equal(t, int64(960), CompensationMinutes(2, decimal.NewFromInt(40)))
	assert.Equal(t, int64(528), CompensationMinutes(1, decimal.NewFromInt(44)))
	assert.Equal(t, int64(0), CompensationMinutes(0, decimal.NewFromInt(40)))
	assert.Equal(t, int64(0), CompensationMinutes(3, decimal.Zero))
}

func TestCreateRequest_Validate(t *testing.T) {
	req := CreateRequest{
		UserID:    2,
		StartDate: "2024-03-04",
		EndDate:   "2024-03-05",
		Type:      "compensation",
		Reason:    "dentist",
	}
	require.NoError(t, req.Validate())

	entity := req.ToEntity()
	assert.Equal(t, StatusPending, entity.Status)
	assert.Equal(t, TypeCompensation, entity.Type)

	req.EndDate = "2024-03-01"
	assert.Error(t, req.Validate())

	req.EndDate = "2024-03-05"
	req.Type = "holiday"
	assert.Error(t, req.Validate())
}

func TestUpdateRequest_Apply(t *testing.T) {
	existing := Request{
		StartDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Type:      TypeVacation,
		Reason:    "trip",
	}

	end := "2024-03-01"
	upd := UpdateRequest{EndDate: &end}
	require.NoError(t, upd.Validate())
	assert.Error(t, upd.Apply(&existing))

	end = "2024-03-08"
	kind := "personal"
	upd = UpdateRequest{EndDate: &end, Type: &kind}
	require.NoError(t, upd.Apply(&existing))
	assert.Equal(t, TypePersonal, existing.Type)
	assert.Equal(t, 5, BusinessDays(existing.StartDate, existing.EndDate))

	assert.Error(t, (&UpdateRequest{}).Validate())
}

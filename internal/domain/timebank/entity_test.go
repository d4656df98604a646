package timebank

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func credit(id int64, date time.Time, hours string, exp *time.Time) Entry {
	return Entry{
		ID:             id,
		UserID:         9,
		Date:           date,
		HoursBalance:   decimal.RequireFromString(hours),
		Description:    "Hora extra",
		Type:           EntryTypeOvertime,
		ExpirationDate: exp,
	}
}

// apply mirrors what the repository does with a plan so invariants can be
// checked on the resulting ledger.
func apply(ledger []Entry, plan CompensationPlan, compensationDate time.Time) []Entry {
	consumed := make(map[int64]bool)
	for _, id := range plan.Consumed {
		consumed[id] = true
	}
	out := make([]Entry, 0, len(ledger)+2)
	for _, e := range ledger {
		if consumed[e.ID] {
			e.WasCompensated = true
			e.CompensationDate = &compensationDate
		}
		out = append(out, e)
	}
	next := int64(1000)
	if plan.Remainder != nil {
		r := *plan.Remainder
		r.ID = next
		next++
		out = append(out, r)
	}
	d := plan.Debit
	d.ID = next
	return append(out, d)
}

func TestPlanCompensation_FIFOSplit(t *testing.T) {
	exp := day(2024, 9, 1)
	ledger := []Entry{
		credit(1, day(2024, 3, 1), "1", &exp),
		credit(2, day(2024, 3, 2), "1", &exp),
		credit(3, day(2024, 3, 3), "1", &exp),
	}
	asOf := day(2024, 3, 10)
	require.Equal(t, int64(180), Balance(ledger, asOf))

	plan, ok := PlanCompensation(ledger, 90, asOf, "Folga", 1)
	require.True(t, ok)

	assert.Equal(t, []int64{1, 2}, plan.Consumed)

	require.NotNil(t, plan.Remainder)
	assert.True(t, plan.Remainder.HoursBalance.Equal(decimal.RequireFromString("0.5")))
	assert.Equal(t, EntryTypeAdjustment, plan.Remainder.Type)
	assert.Equal(t, RemainderPrefix+"Hora extra", plan.Remainder.Description)
	assert.Equal(t, &exp, plan.Remainder.ExpirationDate)
	assert.Equal(t, day(2024, 3, 2), plan.Remainder.Date)
	assert.False(t, plan.Remainder.WasCompensated)

	assert.Equal(t, EntryTypeCompensation, plan.Debit.Type)
	assert.True(t, plan.Debit.HoursBalance.Equal(decimal.RequireFromString("-1.5")))
	require.NotNil(t, plan.Debit.RelatedRecordID)
	assert.Equal(t, int64(1), *plan.Debit.RelatedRecordID)
	assert.True(t, plan.Debit.WasCompensated)
	assert.Equal(t, asOf, plan.Debit.Date)

	after := apply(ledger, plan, asOf)
	assert.Equal(t, int64(90), Balance(after, asOf))
}

func TestPlanCompensation_ExactCoverNoRemainder(t *testing.T) {
	ledger := []Entry{
		credit(1, day(2024, 3, 1), "1", nil),
		credit(2, day(2024, 3, 2), "0.5", nil),
	}

	plan, ok := PlanCompensation(ledger, 90, day(2024, 3, 5), "Folga", 1)
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2}, plan.Consumed)
	assert.Nil(t, plan.Remainder)

	after := apply(ledger, plan, day(2024, 3, 5))
	assert.Equal(t, int64(0), Balance(after, day(2024, 3, 5)))
}

func TestPlanCompensation_NothingToConsume(t *testing.T) {
	_, ok := PlanCompensation(nil, 30, day(2024, 3, 5), "Folga", 1)
	assert.False(t, ok)

	ledger := []Entry{credit(1, day(2024, 3, 1), "1", nil)}
	_, ok = PlanCompensation(ledger, 0, day(2024, 3, 5), "Folga", 1)
	assert.False(t, ok)
}

func TestPlanCompensation_SkipsNegativeRows(t *testing.T) {
	ledger := []Entry{
		credit(1, day(2024, 3, 1), "-0.5", nil),
		credit(2, day(2024, 3, 2), "2", nil),
	}

	plan, ok := PlanCompensation(ledger, 60, day(2024, 3, 5), "Folga", 1)
	require.True(t, ok)
	assert.Equal(t, []int64{2}, plan.Consumed)
	require.NotNil(t, plan.Remainder)
	assert.True(t, plan.Remainder.HoursBalance.Equal(decimal.NewFromInt(1)))
}

func TestBalance_ExcludesCompensatedAndExpired(t *testing.T) {
	expired := day(2024, 3, 1)
	today := day(2024, 3, 10)
	compensated := credit(3, day(2024, 2, 1), "4", nil)
	compensated.WasCompensated = true

	ledger := []Entry{
		credit(1, day(2024, 1, 1), "2", &expired),
		credit(2, day(2024, 1, 2), "1", &today),
		compensated,
		credit(4, day(2024, 3, 3), "-0.25", nil),
	}

	// Entry 2 expires today and still counts.
	assert.Equal(t, int64(45), Balance(ledger, today))
	assert.Equal(t, int64(-15), Balance(ledger, today.AddDate(0, 0, 1)))
}

func TestSummarize(t *testing.T) {
	today := day(2024, 3, 10)
	soon := day(2024, 3, 20)
	later := day(2024, 8, 1)

	ledger := []Entry{
		credit(1, day(2024, 3, 1), "1", &soon),
		credit(2, day(2024, 3, 2), "2", &later),
		credit(3, day(2024, 3, 3), "-0.5", nil),
	}

	s := Summarize(9, ledger, today, 30)
	assert.Equal(t, int64(180), s.AvailableCreditMinutes)
	assert.Equal(t, int64(30), s.OutstandingDebitMinutes)
	assert.Equal(t, int64(150), s.BalanceMinutes)
	assert.Equal(t, int64(60), s.ExpiringSoonMinutes)
	require.NotNil(t, s.NextExpiration)
	assert.Equal(t, "2024-03-20", *s.NextExpiration)
	assert.Equal(t, Balance(ledger, today), s.BalanceMinutes)
}

func TestOvertime(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	end := time.Date(2024, 3, 4, 18, 0, 0, 0, loc)

	minutes, hours := Overtime(time.Date(2024, 3, 4, 18, 45, 0, 0, loc), end)
	assert.Equal(t, int64(45), minutes)
	assert.True(t, hours.Equal(decimal.RequireFromString("0.75")), hours.String())

	minutes, hours = Overtime(time.Date(2024, 3, 4, 18, 10, 59, 0, loc), end)
	assert.Equal(t, int64(10), minutes, "partial minutes are floored")
	assert.True(t, hours.Equal(decimal.RequireFromString("0.17")), hours.String())

	minutes, _ = Overtime(end, end)
	assert.Zero(t, minutes)
}

func TestCreateEntryRequest_Validate(t *testing.T) {
	exp := "2024-01-01"
	req := CreateEntryRequest{
		UserID:       1,
		Date:         "2024-02-01",
		HoursBalance: decimal.RequireFromString("1.5"),
		Type:         "manual_adjustment",
	}
	require.NoError(t, req.Validate())

	req.ExpirationDate = &exp
	assert.Error(t, req.Validate())

	req.ExpirationDate = nil
	req.HoursBalance = decimal.RequireFromString("0.12345")
	assert.Error(t, req.Validate())

	req.HoursBalance = decimal.Zero
	assert.Error(t, req.Validate())
}

func TestCompensateHoursRequest_ToCompensateRequest(t *testing.T) {
	body := CompensateHoursRequest{UserID: 4, CompensationDate: "2024-03-05", Minutes: 90, Description: " Folga "}
	req, err := body.ToCompensateRequest(1)
	require.NoError(t, err)
	assert.Equal(t, day(2024, 3, 5), req.CompensationDate)
	assert.Equal(t, "Folga", req.Description)

	body.Minutes = 0
	_, err = body.ToCompensateRequest(1)
	assert.Error(t, err)
}

func TestCovers_ComparesExactMinutes(t *testing.T) {
	ledger := []Entry{credit(1, day(2024, 3, 1), "0.9917", nil)}
	exact := ledger[0].ExactMinutes()

	assert.Equal(t, int64(60), Balance(ledger, day(2024, 3, 5)))
	assert.False(t, Covers(exact, 60), "59.502 minutes cannot pay for 60")
	assert.True(t, Covers(exact, 59))
	assert.True(t, Covers(decimal.NewFromInt(60), 60))
}

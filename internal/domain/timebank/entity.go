package timebank

import (
	"time"

	"github.com/shopspring/decimal"
)

type EntryType string

const (
	EntryTypeOvertime         EntryType = "overtime"
	EntryTypeCompensation     EntryType = "compensation"
	EntryTypeAbsence          EntryType = "absence"
	EntryTypeLate             EntryType = "late"
	EntryTypeManualAdjustment EntryType = "manual_adjustment"
	EntryTypeAdjustment       EntryType = "adjustment"
)

var EntryTypeValues = []string{
	string(EntryTypeOvertime),
	string(EntryTypeCompensation),
	string(EntryTypeAbsence),
	string(EntryTypeLate),
	string(EntryTypeManualAdjustment),
	string(EntryTypeAdjustment),
}

// HoursScale is the number of decimal places kept for hours_balance.
const HoursScale = 4

// RemainderPrefix starts the description of the entry re-posted after a
// partial FIFO consumption.
const RemainderPrefix = "Saldo restante após compensação: "

var sixty = decimal.NewFromInt(60)

// Entry is one signed row of the ledger. Consumption never edits HoursBalance;
// it flips WasCompensated and, for partial use, posts the remainder as a new row.
type Entry struct {
	ID               int64
	UserID           int64
	Date             time.Time
	HoursBalance     decimal.Decimal
	Description      string
	Type             EntryType
	RelatedRecordID  *int64
	ExpirationDate   *time.Time
	WasCompensated   bool
	CompensationDate *time.Time
	CreatedBy        int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ExactMinutes is HoursBalance expressed in minutes without rounding.
func (e Entry) ExactMinutes() decimal.Decimal {
	return e.HoursBalance.Mul(sixty)
}

// Minutes rounds ExactMinutes to the nearest whole minute.
func (e Entry) Minutes() int64 {
	return e.ExactMinutes().Round(0).IntPart()
}

// IsExpired reports whether the entry's expiration day is before asOf's day.
// An entry stays usable through its expiration date.
func (e Entry) IsExpired(asOf time.Time) bool {
	if e.ExpirationDate == nil {
		return false
	}
	return dateOf(*e.ExpirationDate).Before(dateOf(asOf))
}

// IsAvailable is true for rows that count towards the balance.
func (e Entry) IsAvailable(asOf time.Time) bool {
	return !e.WasCompensated && !e.IsExpired(asOf)
}

// HoursFromMinutes converts whole minutes to hours at ledger precision.
func HoursFromMinutes(minutes int64) decimal.Decimal {
	return decimal.NewFromInt(minutes).DivRound(sixty, HoursScale)
}

// Balance sums the available entries in minutes, the way the ledger query does.
func Balance(entries []Entry, asOf time.Time) int64 {
	total := decimal.Zero
	for _, e := range entries {
		if e.IsAvailable(asOf) {
			total = total.Add(e.ExactMinutes())
		}
	}
	return total.Round(0).IntPart()
}

// Covers reports whether an exact available sum in minutes pays for the
// requested minutes. It never rounds, so sub-minute credits cannot overdraw.
func Covers(availableMinutes decimal.Decimal, minutes int64) bool {
	return availableMinutes.GreaterThanOrEqual(decimal.NewFromInt(minutes))
}

// CompensationPlan is the set of writes one FIFO compensation produces.
type CompensationPlan struct {
	// Consumed lists entry ids to mark compensated, oldest first.
	Consumed []int64
	// Remainder re-posts the unused part of a partially consumed entry.
	Remainder *Entry
	// Debit records the compensation itself. It is written already settled so
	// it does not count against the balance a second time.
	Debit Entry
}

// PlanCompensation walks credits oldest first until minutes are covered. The
// caller passes only available, non-negative entries sorted by (date, id) and
// must have checked the balance beforehand. ok is false when nothing was consumed.
func PlanCompensation(credits []Entry, minutes int64, compensationDate time.Time, description string, createdBy int64) (plan CompensationPlan, ok bool) {
	if minutes <= 0 || len(credits) == 0 {
		return CompensationPlan{}, false
	}

	day := dateOf(compensationDate)
	remaining := decimal.NewFromInt(minutes)

	for _, credit := range credits {
		if !remaining.IsPositive() {
			break
		}
		if credit.HoursBalance.IsNegative() {
			continue
		}

		plan.Consumed = append(plan.Consumed, credit.ID)

		entryMinutes := credit.ExactMinutes()
		if entryMinutes.LessThanOrEqual(remaining) {
			remaining = remaining.Sub(entryMinutes)
			continue
		}

		// The remainder keeps the source date so it stays first in FIFO order.
		sourceID := credit.ID
		leftover := entryMinutes.Sub(remaining).DivRound(sixty, HoursScale)
		plan.Remainder = &Entry{
			UserID:          credit.UserID,
			Date:            dateOf(credit.Date),
			HoursBalance:    leftover,
			Description:     RemainderPrefix + credit.Description,
			Type:            EntryTypeAdjustment,
			RelatedRecordID: &sourceID,
			ExpirationDate:  credit.ExpirationDate,
			CreatedBy:       createdBy,
		}
		remaining = decimal.Zero
	}

	if len(plan.Consumed) == 0 {
		return CompensationPlan{}, false
	}

	firstID := plan.Consumed[0]
	plan.Debit = Entry{
		UserID:           credits[0].UserID,
		Date:             day,
		HoursBalance:     HoursFromMinutes(minutes).Neg(),
		Description:      description,
		Type:             EntryTypeCompensation,
		RelatedRecordID:  &firstID,
		WasCompensated:   true,
		CompensationDate: &day,
		CreatedBy:        createdBy,
	}

	return plan, true
}

// BalanceSummary breaks the balance into what is owed and what is expiring.
type BalanceSummary struct {
	UserID                  int64   `json:"user_id"`
	BalanceMinutes          int64   `json:"balance_minutes"`
	AvailableCreditMinutes  int64   `json:"available_credit_minutes"`
	OutstandingDebitMinutes int64   `json:"outstanding_debit_minutes"`
	ExpiringSoonMinutes     int64   `json:"expiring_soon_minutes"`
	ExpiringWithinDays      int     `json:"expiring_within_days"`
	NextExpiration          *string `json:"next_expiration,omitempty"`
}

// Summarize computes a BalanceSummary from the user's available entries.
func Summarize(userID int64, entries []Entry, asOf time.Time, windowDays int) BalanceSummary {
	s := BalanceSummary{UserID: userID, ExpiringWithinDays: windowDays}

	credits, debits, expiring := decimal.Zero, decimal.Zero, decimal.Zero
	horizon := dateOf(asOf).AddDate(0, 0, windowDays)
	var next *time.Time

	for _, e := range entries {
		if !e.IsAvailable(asOf) {
			continue
		}
		m := e.ExactMinutes()
		if m.IsNegative() {
			debits = debits.Add(m.Neg())
			continue
		}
		credits = credits.Add(m)
		if e.ExpirationDate != nil {
			exp := dateOf(*e.ExpirationDate)
			if !exp.After(horizon) {
				expiring = expiring.Add(m)
			}
			if next == nil || exp.Before(*next) {
				next = &exp
			}
		}
	}

	s.AvailableCreditMinutes = credits.Round(0).IntPart()
	s.OutstandingDebitMinutes = debits.Round(0).IntPart()
	s.BalanceMinutes = credits.Sub(debits).Round(0).IntPart()
	s.ExpiringSoonMinutes = expiring.Round(0).IntPart()
	if next != nil {
		formatted := next.Format("2006-01-02")
		s.NextExpiration = &formatted
	}
	return s
}

// Overtime converts the span past the scheduled end into whole minutes and
// hours rounded to two decimals. Zero when clockOut is not after scheduledEnd.
func Overtime(clockOut, scheduledEnd time.Time) (minutes int64, hours decimal.Decimal) {
	if !clockOut.After(scheduledEnd) {
		return 0, decimal.Zero
	}
	minutes = int64(clockOut.Sub(scheduledEnd) / time.Minute)
	return minutes, decimal.NewFromInt(minutes).DivRound(sixty, 2)
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

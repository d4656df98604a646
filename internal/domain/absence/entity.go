package absence

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var StatusValues = []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}

type Type string

const (
	TypeVacation     Type = "vacation"
	TypeSickLeave    Type = "sick_leave"
	TypePersonal     Type = "personal"
	TypeCompensation Type = "compensation"
)

var TypeValues = []string{
	string(TypeVacation),
	string(TypeSickLeave),
	string(TypePersonal),
	string(TypeCompensation),
}

// CompensationPrefix starts the description of the ledger debit posted when a
// compensation absence is approved.
const CompensationPrefix = "Compensação de ausência: "

// Request is an employee's request to be away between two dates, inclusive.
type Request struct {
	ID          int64
	UserID      int64
	StartDate   time.Time
	EndDate     time.Time
	Type        Type
	Reason      string
	Status      Status
	ReviewedBy  *int64
	ReviewDate  *time.Time
	ReviewNotes *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (r Request) IsPending() bool {
	return r.Status == StatusPending
}

// BusinessDays counts Monday to Friday days in [start, end]. Holidays are not
// considered.
func BusinessDays(start, end time.Time) int {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

// CompensationMinutes is days of the schedule's daily hours (weekly/5) in
// whole minutes, rounded to the nearest minute.
func CompensationMinutes(days int, weeklyHours decimal.Decimal) int64 {
	if days <= 0 || !weeklyHours.IsPositive() {
		return 0
	}
	return weeklyHours.
		Div(decimal.NewFromInt(5)).
		Mul(decimal.NewFromInt(int64(days))).
		Mul(decimal.NewFromInt(60)).
		Round(0).
		IntPart()
}

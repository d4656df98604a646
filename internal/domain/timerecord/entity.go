package timerecord

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecordType string

const (
	RecordTypeIn  RecordType = "in"
	RecordTypeOut RecordType = "out"
)

var RecordTypeValues = []string{string(RecordTypeIn), string(RecordTypeOut)}

// TimeRecord is one clock event. Rows become immutable once
// ProcessedForTimeBank is set.
type TimeRecord struct {
	ID                   int64
	UserID               int64
	Timestamp            time.Time
	Type                 RecordType
	IPAddress            string
	Latitude             *float64
	Longitude            *float64
	Photo                string
	IsManual             bool
	Justification        *string
	CreatedBy            int64
	ScheduleID           *int64
	IsLate               bool
	Overtime             *decimal.Decimal
	ProcessedForTimeBank bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NextType is the type expected after last; a user with no records starts with "in".
func NextType(last *TimeRecord) RecordType {
	if last != nil && last.Type == RecordTypeIn {
		return RecordTypeOut
	}
	return RecordTypeIn
}

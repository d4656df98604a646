package timebank

import (
	"context"
	"time"
)

// Compensator debits the ledger; absence approval depends only on this.
type Compensator interface {
	CompensateHours(ctx context.Context, req CompensateRequest) (bool, error)
}

type TimeBankService interface {
	Compensator

	CreateEntry(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)
	GetBalance(ctx context.Context, userID int64) (int64, error)
	GetBalanceSummary(ctx context.Context, userID int64) (BalanceSummary, error)
	ListEntries(ctx context.Context, filter EntryFilter) (ListEntryResponse, error)

	ProcessTimeRecord(ctx context.Context, recordID, adminID int64) (bool, error)
	ProcessPendingRecords(ctx context.Context, before time.Time, limit int) (ProcessSummary, error)
}

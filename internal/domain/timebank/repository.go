package timebank

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type EntryRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	GetByID(ctx context.Context, id int64) (Entry, error)
	// SumAvailableMinutes sums hours_balance*60 over rows that are neither
	// compensated nor expired on asOf.
	SumAvailableMinutes(ctx context.Context, userID int64, asOf time.Time) (decimal.Decimal, error)
	// ListAvailable returns the rows counted by SumAvailableMinutes, oldest first.
	ListAvailable(ctx context.Context, userID int64, asOf time.Time) ([]Entry, error)
	// ListCreditsForUpdate locks the non-negative available rows in FIFO order.
	ListCreditsForUpdate(ctx context.Context, userID int64, asOf time.Time) ([]Entry, error)
	MarkCompensated(ctx context.Context, ids []int64, compensationDate time.Time) error
	List(ctx context.Context, filter EntryFilter) ([]Entry, int64, error)
}

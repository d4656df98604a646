package timerecord

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TimeRecordRepository interface {
	Create(ctx context.Context, record TimeRecord) (TimeRecord, error)
	GetByID(ctx context.Context, id int64) (TimeRecord, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (TimeRecord, error)
	GetLastByUser(ctx context.Context, userID int64) (TimeRecord, error)
	// GetByUserBetween returns records with from <= timestamp <= to, oldest first.
	GetByUserBetween(ctx context.Context, userID int64, from, to time.Time) ([]TimeRecord, error)
	// GetPrecedingIn returns the latest "in" record strictly before ts.
	GetPrecedingIn(ctx context.Context, userID int64, ts time.Time) (TimeRecord, error)
	CountByTypeBetween(ctx context.Context, userID int64, recordType RecordType, from, to time.Time) (int64, error)
	List(ctx context.Context, filter TimeRecordFilter) ([]TimeRecord, int64, error)
	// ListPendingClockOuts returns unprocessed "out" record ids older than before, oldest first.
	ListPendingClockOuts(ctx context.Context, before time.Time, limit int) ([]int64, error)
	MarkProcessed(ctx context.Context, id int64, overtime *decimal.Decimal) error
	Delete(ctx context.Context, id int64) error
}

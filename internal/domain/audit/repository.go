package audit

import "context"

type LogRepository interface {
	Create(ctx context.Context, log Log) (Log, error)
	List(ctx context.Context, filter LogFilter) ([]Log, int64, error)
}

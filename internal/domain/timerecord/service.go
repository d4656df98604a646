package timerecord

import "context"

type TimeRecordService interface {
	RegisterRecord(ctx context.Context, req RegisterRecordRequest) (TimeRecordResponse, error)
	CreateManualRecord(ctx context.Context, req ManualRecordRequest) (TimeRecordResponse, error)
	GetRecord(ctx context.Context, id int64) (TimeRecordResponse, error)
	ListRecords(ctx context.Context, filter TimeRecordFilter) (ListTimeRecordResponse, error)
	DeleteRecord(ctx context.Context, id int64) error
}

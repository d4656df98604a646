package audit

import "context"

type AuditService interface {
	ListAuditLogs(ctx context.Context, filter LogFilter) (ListLogResponse, error)
}

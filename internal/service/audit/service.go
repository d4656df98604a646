package audit

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/pagination"
)

type auditServiceImpl struct {
	auditRepo audit.LogRepository
}

func NewAuditService(auditRepo audit.LogRepository) audit.AuditService {
	return &auditServiceImpl{auditRepo: auditRepo}
}

// ListAuditLogs implements audit.AuditService.
func (s *auditServiceImpl) ListAuditLogs(ctx context.Context, filter audit.LogFilter) (audit.ListLogResponse, error) {
	if err := filter.Validate(); err != nil {
		return audit.ListLogResponse{}, err
	}

	logs, total, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return audit.ListLogResponse{}, fmt.Errorf("failed to list audit logs: %w", err)
	}

	resp := audit.ListLogResponse{
		Page: pagination.NewPage(filter.Params, total, len(logs)),
		Logs: make([]audit.LogResponse, 0, len(logs)),
	}
	for _, l := range logs {
		resp.Logs = append(resp.Logs, audit.NewLogResponse(l))
	}
	return resp, nil
}

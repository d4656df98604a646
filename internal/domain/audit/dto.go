package audit

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/validator"
)

type LogFilter struct {
	EntityType    *string `json:"entity_type,omitempty"`
	EntityID      *int64  `json:"entity_id,omitempty"`
	PerformedBy   *int64  `json:"performed_by,omitempty"`
	CorrelationID *string `json:"correlation_id,omitempty"`
	pagination.Params
}

func (f *LogFilter) Validate() error {
	errs := f.Params.Normalize()

	if f.EntityType != nil && !validator.IsInSlice(*f.EntityType, EntityTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "entity_type",
			Message: "entity_type must be one of: " + strings.Join(EntityTypeValues, ", "),
		})
	}
	if f.EntityID != nil && f.EntityType == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "entity_type",
			Message: "entity_type is required when entity_id is set",
		})
	}
	if f.CorrelationID != nil && !validator.IsValidUUID(*f.CorrelationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "correlation_id",
			Message: "correlation_id must be a UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LogResponse struct {
	ID            int64           `json:"id"`
	EntityType    string          `json:"entity_type"`
	EntityID      int64           `json:"entity_id"`
	Action        string          `json:"action"`
	Before        json.RawMessage `json:"before,omitempty"`
	After         json.RawMessage `json:"after,omitempty"`
	PerformedBy   int64           `json:"performed_by"`
	CorrelationID string          `json:"correlation_id"`
	CreatedAt     string          `json:"created_at"`
}

type ListLogResponse struct {
	pagination.Page
	Logs []LogResponse `json:"logs"`
}

func NewLogResponse(l Log) LogResponse {
	return LogResponse{
		ID:            l.ID,
		EntityType:    l.EntityType,
		EntityID:      l.EntityID,
		Action:        string(l.Action),
		Before:        l.Before,
		After:         l.After,
		PerformedBy:   l.PerformedBy,
		CorrelationID: l.CorrelationID.String(),
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
	}
}

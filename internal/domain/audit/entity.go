package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

var ActionValues = []string{string(ActionCreate), string(ActionUpdate), string(ActionDelete)}

// Entity types recorded in the log.
const (
	EntitySalary               = "salary"
	EntityFinancialTransaction = "financial_transaction"
)

var EntityTypeValues = []string{EntitySalary, EntityFinancialTransaction}

// Log is an insert-only snapshot of one mutation. Rows written by the same
// operation share CorrelationID.
type Log struct {
	ID            int64
	EntityType    string
	EntityID      int64
	Action        Action
	Before        json.RawMessage
	After         json.RawMessage
	PerformedBy   int64
	CorrelationID uuid.UUID
	CreatedAt     time.Time
}

// NewLog snapshots before and after as JSON. A nil snapshot is stored as NULL.
func NewLog(entityType string, entityID int64, action Action, before, after any, performedBy int64) (Log, error) {
	l := Log{
		EntityType:    entityType,
		EntityID:      entityID,
		Action:        action,
		PerformedBy:   performedBy,
		CorrelationID: uuid.New(),
	}

	var err error
	if l.Before, err = snapshot(before); err != nil {
		return Log{}, fmt.Errorf("marshal before snapshot: %w", err)
	}
	if l.After, err = snapshot(after); err != nil {
		return Log{}, fmt.Errorf("marshal after snapshot: %w", err)
	}
	return l, nil
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/timebank-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type auditLogRepositoryImpl struct {
	db *database.DB
}

const auditLogColumns = `id, entity_type, entity_id, action, before_data, after_data, performed_by, correlation_id, created_at`

func scanAuditLog(row pgx.Row) (audit.Log, error) {
	var l audit.Log
	err := row.Scan(
		&l.ID,
		&l.EntityType,
		&l.EntityID,
		&l.Action,
		&l.Before,
		&l.After,
		&l.PerformedBy,
		&l.CorrelationID,
		&l.CreatedAt,
	)
	return l, err
}

// Create implements audit.LogRepository. Logs are never updated or deleted.
func (r *auditLogRepositoryImpl) Create(ctx context.Context, log audit.Log) (audit.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO audit_logs (entity_type, entity_id, action, before_data, after_data, performed_by, correlation_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + auditLogColumns

	return scanAuditLog(q.QueryRow(ctx, query,
		log.EntityType,
		log.EntityID,
		log.Action,
		log.Before,
		log.After,
		log.PerformedBy,
		log.CorrelationID,
	))
}

// List implements audit.LogRepository.
func (r *auditLogRepositoryImpl) List(ctx context.Context, filter audit.LogFilter) ([]audit.Log, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause := "WHERE 1=1"
	args := []interface{}{}
	argIndex := 1

	if filter.EntityType != nil {
		whereClause += fmt.Sprintf(" AND entity_type = $%d", argIndex)
		args = append(args, *filter.EntityType)
		argIndex++
	}

	if filter.EntityID != nil {
		whereClause += fmt.Sprintf(" AND entity_id = $%d", argIndex)
		args = append(args, *filter.EntityID)
		argIndex++
	}

	if filter.PerformedBy != nil {
		whereClause += fmt.Sprintf(" AND performed_by = $%d", argIndex)
		args = append(args, *filter.PerformedBy)
		argIndex++
	}

	if filter.CorrelationID != nil {
		whereClause += fmt.Sprintf(" AND correlation_id = $%d::uuid", argIndex)
		args = append(args, *filter.CorrelationID)
		argIndex++
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM audit_logs "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM audit_logs
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, auditLogColumns, whereClause, argIndex, argIndex+1)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	logs := []audit.Log{}
	for rows.Next() {
		l, err := scanAuditLog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, total, rows.Err()
}

func NewAuditLogRepository(db *database.DB) audit.LogRepository {
	return &auditLogRepositoryImpl{db: db}
}

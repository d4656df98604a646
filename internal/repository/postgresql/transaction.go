package postgresql

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type txKey struct{}

// Advisory lock namespaces, combined with a user id into one bigint key.
const (
	LockNamespaceTimeBank int64 = 1
	LockNamespaceSchedule int64 = 2
)

// WithTransaction executes fn inside a database transaction.
// When ctx already carries a transaction fn joins it and the outer caller
// owns commit and rollback.
func WithTransaction(ctx context.Context, db *database.DB, fn func(txCtx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				slog.Error("rollback failed during panic recovery", "error", rbErr)
			}
			panic(p)
		}
	}()

	// Execute function
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback error: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetQuerier returns either transaction or pool
// Used in repositories to support both transactional and non-transactional operations
func GetQuerier(ctx context.Context, db *database.DB) database.Querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db.Pool
}

// LockUser takes a transaction-scoped advisory lock for userID in the given
// namespace. It must run inside WithTransaction; outside a transaction the
// lock would be released immediately.
func LockUser(ctx context.Context, db *database.DB, namespace, userID int64) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); !ok {
		return fmt.Errorf("advisory lock requires a transaction")
	}

	key := namespace<<32 | (userID & 0xffffffff)
	if _, err := GetQuerier(ctx, db).Exec(ctx, "SELECT pg_advisory_xact_lock($1)", key); err != nil {
		return fmt.Errorf("acquire advisory lock: %w", err)
	}
	return nil
}

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Executor is the query surface shared by *sql.DB and *sql.Tx
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// WithTx returns a new context carrying tx
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTx retrieves the transaction from context if it exists
func GetTx(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok
}

// GetExecutor returns the transaction bound to ctx, or conn when there is none
func GetExecutor(ctx context.Context, conn *sql.DB) Executor {
	if tx, ok := GetTx(ctx); ok {
		return tx
	}
	return conn
}

// RunInTransaction runs fn inside a transaction.
// A transaction already bound to ctx is reused and left for the outermost
// caller to commit or roll back.
func RunInTransaction(ctx context.Context, conn *sql.DB, fn func(ctx context.Context) error) error {
	if _, ok := GetTx(ctx); ok {
		return fn(ctx)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).AnErr("cause", err).Msg("Failed to roll back transaction")
			return fmt.Errorf("failed to rollback transaction after error %v: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

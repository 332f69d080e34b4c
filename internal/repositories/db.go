package repositories

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is the subset of *sql.DB the repositories use. *sql.DB, *sql.Tx and
// sqlmock all satisfy it.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// queryTimeout bounds a single Record Store call inside the caller's deadline.
type queryTimeout time.Duration

func (t queryTimeout) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if t <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(t))
}

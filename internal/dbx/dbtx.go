// Package dbx provides a minimal DB interface (DBTX) implemented by both
// *sql.DB and *sql.Tx, so repositories can run against either.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by local repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

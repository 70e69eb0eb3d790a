// backend/internal/adapters/out/db/common/runner.go
package common

import (
	"context"
	"database/sql"
)

// Runner is the subset of *sql.DB / *sql.Tx used by repositories.
type Runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RowScanner is implemented by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

type txKey struct{}

// CtxWithTx returns a context carrying tx.
func CtxWithTx(ctx context.Context, tx *sql.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromCtx returns the transaction carried by ctx, if any.
func TxFromCtx(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(*sql.Tx)
	return tx, ok && tx != nil
}

// GetRunner returns the transaction in ctx, or db when there is none.
func GetRunner(ctx context.Context, db *sql.DB) Runner {
	if tx, ok := TxFromCtx(ctx); ok {
		return tx
	}
	return db
}

package common

import (
	"context"
	"database/sql"
	"time"
)

// TxManager runs units of work in one database transaction.
// Nested calls join the transaction already carried by ctx.
type TxManager struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewTxManager(db *sql.DB, timeout time.Duration) *TxManager {
	return &TxManager{DB: db, Timeout: timeout}
}

func (m *TxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := TxFromCtx(ctx); ok {
		return fn(ctx)
	}

	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	txCtx := CtxWithTx(ctx, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

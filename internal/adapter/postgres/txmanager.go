package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager runs callbacks inside a transaction carried by the context.
// Repositories pick it up through QuerierFromCtx. Calls do not nest: an
// inner RunInTx opens a second, independent transaction.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// RunInTx commits when fn returns nil and rolls back otherwise, including
// when fn panics. The panic is re-raised after the rollback.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	finished := false
	defer func() {
		if finished {
			return
		}
		rbErr := tx.Rollback(ctx)
		if r := recover(); r != nil {
			panic(r)
		}
		if rbErr != nil && err != nil {
			err = fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
	}()

	if err = fn(withTx(ctx, tx)); err != nil {
		return err
	}

	// A failed commit already ends the transaction.
	finished = true
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

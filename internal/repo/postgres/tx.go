package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRunner executes fn inside a single transaction. The pool-backed runner is
// the production implementation; tests substitute a pass-through runner.
type TxRunner func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error

func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(context.Context, pgx.Tx) error) error {
	if pool == nil {
		return errors.New("postgres pool is nil")
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

func PoolRunner(pool *pgxpool.Pool) TxRunner {
	return func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
		return WithTx(ctx, pool, fn)
	}
}

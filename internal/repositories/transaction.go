package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TxManagerInterface interface {
	RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type TxManager struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

func NewTxManager(pool *pgxpool.Pool) TxManagerInterface {
	return &TxManager{pool: pool, opts: pgx.TxOptions{IsoLevel: pgx.ReadCommitted}}
}

// RunInTransaction выполняет fn в одной транзакции: ошибка или паника в fn
// откатывают ее, nil - коммит. Репозитории внутри fn строятся поверх tx.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if err := pgx.BeginTxFunc(ctx, m.pool, m.opts, fn); err != nil {
		return fmt.Errorf("транзакция: %w", err)
	}
	return nil
}

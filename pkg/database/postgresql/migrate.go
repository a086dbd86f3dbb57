package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"admin-request-engine/migrations"
)

// Migrate применяет вшитые миграции. command - любая команда goose: up, down, status, redo...
func Migrate(ctx context.Context, pool *pgxpool.Pool, command string, logger *zap.Logger, args ...string) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, ".", args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	logger.Info("✅ Миграции выполнены", zap.String("command", command))
	return nil
}

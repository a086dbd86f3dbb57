package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func ConnectDB(ctx context.Context, dsn string, logger *zap.Logger) (*pgxpool.Pool, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	dbpool, err := pgxpool.New(pingCtx, dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания пула соединений к БД: %w", err)
	}

	if err := dbpool.Ping(pingCtx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("не удалось пинговать БД: %w", err)
	}

	logger.Info("✅ Подключено к PostgreSQL")
	return dbpool, nil
}

package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"admin-request-engine/pkg/config"
	"admin-request-engine/pkg/database/postgresql"
	applogger "admin-request-engine/pkg/logger"
)

func main() {
	flag.Usage = func() {
		log.Println("Использование: migrate [up|down|status|redo|reset|version]")
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, "")
	defer logger.Sync()

	ctx := context.Background()
	pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к БД", zap.Error(err))
	}
	defer pool.Close()

	if err := postgresql.Migrate(ctx, pool, command, logger, flag.Args()[min(1, flag.NArg()):]...); err != nil {
		logger.Fatal("ошибка миграции", zap.Error(err))
	}
}

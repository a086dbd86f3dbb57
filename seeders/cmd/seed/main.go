package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"admin-request-engine/pkg/config"
	"admin-request-engine/pkg/database/postgresql"
	applogger "admin-request-engine/pkg/logger"
	"admin-request-engine/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runRequests := flag.Bool("requests", false, "Создать демо-заявки в разных статусах")
	migrate := flag.Bool("migrate", true, "Перед наполнением применить миграции")
	flag.Parse()

	if !*runRequests {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Пример:")
		log.Println("  go run ./seeders/cmd/seed -requests")
		return
	}

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, "")
	defer logger.Sync()

	ctx := context.Background()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к БД", zap.Error(err))
	}
	defer dbPool.Close()

	if *migrate {
		if err := postgresql.Migrate(ctx, dbPool, "up", logger); err != nil {
			logger.Fatal("ошибка миграции", zap.Error(err))
		}
	}

	created, err := seeders.SeedRequests(ctx, dbPool, logger)
	if err != nil {
		logger.Fatal("ошибка наполнения заявок", zap.Error(err))
	}
	log.Printf("✅ Создано демо-заявок: %d", created)
	log.Println("======================================================")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"admin-request-engine/internal/repositories"
	"admin-request-engine/internal/routes"
	"admin-request-engine/pkg/config"
	"admin-request-engine/pkg/database/postgresql"
	apperrors "admin-request-engine/pkg/errors"
	"admin-request-engine/pkg/eventbus"
	applogger "admin-request-engine/pkg/logger"
	"admin-request-engine/pkg/utils"
	"admin-request-engine/pkg/validation"
)

func main() {
	// 1. Конфиг и логгер
	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				_ = utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "Idempotency-Key"},
		ExposeHeaders: []string{"Content-Disposition", "X-Request-ID"},
	}))

	// 2. Хранилище
	var (
		requestRepo repositories.RequestRepositoryInterface
		historyRepo repositories.RequestHistoryRepositoryInterface
	)
	switch cfg.Engine.StoreDriver {
	case "memory":
		logger.Warn("⚠️ Используется хранилище в памяти, данные не переживут перезапуск")
		requestRepo = repositories.NewMemoryRequestRepository()
		historyRepo = repositories.NewMemoryRequestHistoryRepository()
	case "postgres":
		dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
		if err != nil {
			logger.Fatal("не удалось подключиться к PostgreSQL", zap.Error(err))
		}
		defer dbConn.Close()

		if cfg.Postgres.AutoMigrate {
			if err := postgresql.Migrate(ctx, dbConn, "up", logger); err != nil {
				logger.Fatal("ошибка применения миграций", zap.Error(err))
			}
		}
		requestRepo = repositories.NewRequestRepository(dbConn, logger.Named("store"))
		historyRepo = repositories.NewRequestHistoryRepository(dbConn, logger.Named("history"))
	default:
		logger.Fatal("неизвестный STORE_DRIVER", zap.String("driver", cfg.Engine.StoreDriver))
	}

	// 3. Кеш идемпотентности: Redis, если задан адрес, иначе память процесса
	var cacheRepo repositories.CacheRepositoryInterface
	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logger.Fatal("не удалось подключиться к Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
		}
		logger.Info("✅ Подключено к Redis", zap.String("address", cfg.Redis.Address))
		cacheRepo = repositories.NewRedisCacheRepository(redisClient)
	} else {
		memoryCache := repositories.NewMemoryCacheRepository()
		go memoryCache.Cleanup(ctx, time.Minute)
		cacheRepo = memoryCache
	}

	bus := eventbus.New(logger.Named("eventbus"))

	// 4. Роуты
	routes.InitRouter(e, routes.Dependencies{
		RequestRepo: requestRepo,
		HistoryRepo: historyRepo,
		Cache:       cacheRepo,
		Bus:         bus,
		Validator:   validation.New(),
		Engine:      cfg.Engine,
		Logger:      logger,
	})

	// 5. Запуск и остановка
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Остановка сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", zap.Error(err))
	}
	bus.Wait()
	logger.Info("Сервер остановлен")
}

package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"admin-request-engine/internal/controllers"
	"admin-request-engine/internal/listeners"
	"admin-request-engine/internal/repositories"
	"admin-request-engine/internal/services"
	"admin-request-engine/pkg/config"
	"admin-request-engine/pkg/eventbus"
	"admin-request-engine/pkg/middleware"
	"admin-request-engine/pkg/validation"
)

// Dependencies - все, что роутеру нужно снаружи. Хранилище выбирается в main.
type Dependencies struct {
	RequestRepo repositories.RequestRepositoryInterface
	HistoryRepo repositories.RequestHistoryRepositoryInterface
	Cache       repositories.CacheRepositoryInterface
	Bus         *eventbus.Bus
	Validator   *validation.CustomValidator
	Engine      config.EngineConfig
	Logger      *zap.Logger
	// Now == nil -> time.Now
	Now func() time.Time
}

func InitRouter(e *echo.Echo, deps Dependencies) {
	logger := deps.Logger
	logger.Info("InitRouter: Начало создания маршрутов")

	e.Validator = deps.Validator
	e.Use(middleware.InjectLogger(logger))

	// --- 1. СЕРВИСЫ ---
	lifecycleService := services.NewLifecycleService(deps.RequestRepo, deps.Validator, logger.Named("lifecycle"), deps.Now)
	historyService := services.NewRequestHistoryService(deps.RequestRepo, deps.HistoryRepo, logger)
	triageService := services.NewTriageService(deps.RequestRepo, logger.Named("triage"))
	escalationService := services.NewEscalationService(deps.RequestRepo, logger.Named("escalation"))
	statsService := services.NewStatisticsService(deps.RequestRepo, logger.Named("statistics"))
	dashboardService := services.NewDashboardService(
		triageService, escalationService, statsService, deps.Engine.EscalationWindow, logger, deps.Now,
	)

	// --- 2. СЛУШАТЕЛИ ---
	listeners.NewHistoryListener(deps.HistoryRepo, logger.Named("history")).Register(deps.Bus)

	// --- 3. КОНТРОЛЛЕРЫ ---
	deduplicator := controllers.NewRequestDeduplicator(deps.Cache, deps.Engine.IdempotencyTTL, logger)
	requestController := controllers.NewRequestController(lifecycleService, historyService, deduplicator, deps.Bus, logger, deps.Now)
	triageController := controllers.NewTriageController(triageService, escalationService, deps.Engine.EscalationWindow, logger, deps.Now)
	statsController := controllers.NewStatisticsController(statsService, logger, deps.Now)
	dashboardController := controllers.NewDashboardController(dashboardService, logger)

	// --- 4. РОУТЕРЫ ---
	api := e.Group("/api")
	runRequestRouter(api, requestController, triageController)
	runStatisticsRouter(api, statsController)
	api.GET("/dashboard", dashboardController.GetDashboard)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	logger.Info("INIT_ROUTER: Создание маршрутов завершено")
}

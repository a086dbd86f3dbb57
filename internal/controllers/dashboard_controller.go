package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"admin-request-engine/internal/services"
	"admin-request-engine/pkg/utils"
)

type DashboardController struct {
	dashboardService *services.DashboardService
	logger           *zap.Logger
}

func NewDashboardController(ds *services.DashboardService, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: ds,
		logger:           logger,
	}
}

func (ctrl *DashboardController) GetDashboard(c echo.Context) error {
	dashboard, err := ctrl.dashboardService.GetDashboard(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, dashboard, "Данные для дашборда получены", http.StatusOK)
}

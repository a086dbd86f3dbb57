package routes

import (
	"github.com/labstack/echo/v4"

	"admin-request-engine/internal/controllers"
)

func runStatisticsRouter(api *echo.Group, statsCtrl *controllers.StatisticsController) {
	api.GET("/statistics", statsCtrl.GetStatistics)
	api.GET("/statistics/:metric", statsCtrl.GetMetric)
}

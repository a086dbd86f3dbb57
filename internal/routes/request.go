package routes

import (
	"github.com/labstack/echo/v4"

	"admin-request-engine/internal/controllers"
)

func runRequestRouter(api *echo.Group, requestCtrl *controllers.RequestController, triageCtrl *controllers.TriageController) {
	requests := api.Group("/requests")
	{
		requests.POST("", requestCtrl.CreateRequest)
		requests.GET("/pending", triageCtrl.GetPendingQueue)
		requests.GET("/urgent", triageCtrl.GetUrgentUnresolved)
		requests.GET("/escalations", triageCtrl.GetEscalations)
		requests.GET("/:id", requestCtrl.FindRequest)
		requests.POST("/:id/transition", requestCtrl.TransitionRequest)
		requests.GET("/:id/history", requestCtrl.GetRequestHistory)
	}
}

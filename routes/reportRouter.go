package routes

import (
	"go-restaurant-analytics/controllers"

	"github.com/gin-gonic/gin"
)

func ReportRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/dashboard/stats", controllers.GetDashboardStats())
	incomingRoutes.GET("/reports", controllers.GetReport())
}

package routes

import (
	"go-restaurant-analytics/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.GET("/orders", controllers.GetOrders())
	incomingRoutes.GET("/orders/:order_id", controllers.GetOrder())
	incomingRoutes.PATCH("/orders/:order_id/status", controllers.UpdateOrderStatus())
}

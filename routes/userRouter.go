package routes

import (
	controller "go-restaurant-analytics/controllers"

	"github.com/gin-gonic/gin"
)

func UserRoutes(incomingRoutes *gin.Engine) {
	incomingRoutes.POST("/users/signup", controller.SignUp())
	incomingRoutes.POST("/users/login", controller.Login())
	incomingRoutes.GET("/users/:user_id", controller.GetUser())
	incomingRoutes.GET("/ws", controller.HandleDashboardSocket())
}

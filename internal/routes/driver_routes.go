package routes

import (
	"wastetrack/internal/controllers"
	"wastetrack/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DriverRoutes(r *gin.Engine) {
	driver := r.Group("/driver")
	driver.Use(middleware.RequireAuthWithRole("driver"))
	{
		driver.GET("/stops", controllers.MyStops)
		driver.POST("/location", controllers.LogPosition)
		driver.POST("/stops/:id/complete", controllers.CompleteStop)
	}
}

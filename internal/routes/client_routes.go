package routes

import (
	"wastetrack/internal/controllers"
	"wastetrack/internal/middleware"

	"github.com/gin-gonic/gin"
)

func ClientRoutes(r *gin.Engine) {
	client := r.Group("/client")
	client.Use(middleware.RequireAuthWithRole("client"))
	{
		client.POST("/points", controllers.CreateCollectionPoint)
		client.GET("/points", controllers.ListMyCollectionPoints)
		client.POST("/bookings", controllers.CreateBooking)
		client.GET("/bookings", controllers.ListMyBookings)
	}
}

package routes

import (
	"wastetrack/internal/controllers"
	"wastetrack/internal/middleware"

	"github.com/gin-gonic/gin"
)

func DispatchRoutes(r *gin.Engine) {
	dispatch := r.Group("/dispatch")
	dispatch.Use(middleware.RequireAuthWithRole("supervisor"))
	{
		dispatch.GET("/drivers", controllers.AvailableDrivers)
		dispatch.GET("/vehicles", controllers.AvailableVehicles)
		dispatch.GET("/bookings", controllers.PendingBookings)
		dispatch.POST("/assignments", controllers.CreateAssignment)
		dispatch.GET("/report", controllers.DailyReport)

		dispatch.POST("/fleet", controllers.CreateVehicle)
		dispatch.GET("/fleet", controllers.ListVehicles)
		dispatch.PATCH("/fleet/:id/status", controllers.UpdateVehicleStatus)
		dispatch.GET("/fleet/active", controllers.ActiveVehicles)

		dispatch.GET("/tracking/live", controllers.LiveLocations)
		dispatch.GET("/tracking/history/:vehicleId", controllers.RouteHistory)
	}
}

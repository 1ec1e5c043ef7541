package main

import (
	"log"
	"net/http"

	"wastetrack/internal/config"
	"wastetrack/internal/controllers"
	"wastetrack/internal/logger"
	"wastetrack/internal/middleware"
	"wastetrack/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Wire services onto the database handle
	controllers.Init()

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :8080")
	log.Fatal(http.ListenAndServe("0.0.0.0:8080", handler))
}

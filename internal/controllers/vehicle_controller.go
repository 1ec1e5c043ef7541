package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"wastetrack/internal/config"
	"wastetrack/internal/models"
)

// CreateVehicle registers a new vehicle in the fleet; defaults
// InService to true.
func CreateVehicle(c *gin.Context) {
	var input struct {
		LicensePlate string `json:"license_plate" binding:"required"`
		Model        string `json:"model" binding:"required"`
		// InService omitted: always default true on creation
	}

	// Parse JSON
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}

	vehicle := models.Vehicle{
		LicensePlate: input.LicensePlate,
		VehicleModel: input.Model,
		InService:    true,
	}

	// Save to DB
	if err := config.DB.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

func ListVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := config.DB.Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vehicles: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// UpdateVehicleStatus flips a vehicle's in_service flag, e.g. for
// workshop time.
func UpdateVehicleStatus(c *gin.Context) {
	id := c.Param("id")

	var input struct {
		InService *bool `json:"in_service"` // Use pointer to differentiate between missing and false
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	if input.InService == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "in_service is required"})
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		logrus.WithError(err).Error("Database error fetching vehicle for update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicle"})
		return
	}

	vehicle.InService = *input.InService
	if err := config.DB.Save(&vehicle).Error; err != nil {
		logrus.WithError(err).Error("Failed to save vehicle status update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle status updated successfully", "vehicle": vehicle})
}

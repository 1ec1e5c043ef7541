package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"wastetrack/internal/services"
)

// AvailableDrivers lists drivers free for the given date.
func AvailableDrivers(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	drivers, err := availabilitySvc.AvailableDrivers(date)
	if err != nil {
		logrus.WithError(err).Error("Error listing available drivers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing available drivers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drivers})
}

// AvailableVehicles lists in-service vehicles free for the given date.
func AvailableVehicles(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	vehicles, err := availabilitySvc.AvailableVehicles(date)
	if err != nil {
		logrus.WithError(err).Error("Error listing available vehicles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing available vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// PendingBookings lists Approved, still-unrouted bookings for the date.
func PendingBookings(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	bookings, err := availabilitySvc.PendingBookings(date)
	if err != nil {
		logrus.WithError(err).Error("Error listing pending bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing pending bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bookings})
}

// CreateAssignment routes the selected bookings and assigns them to a
// driver/vehicle pair for the date.
func CreateAssignment(c *gin.Context) {
	var input struct {
		DriverID   uint   `json:"driver_id" binding:"required"`
		VehicleID  uint   `json:"vehicle_id" binding:"required"`
		Date       string `json:"date" binding:"required"`
		BookingIDs []uint `json:"booking_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignment input: " + err.Error()})
		return
	}

	date, err := parseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	assignmentID, err := assignmentSvc.CreateAssignment(input.DriverID, input.VehicleID, date, input.BookingIDs)
	switch {
	case errors.Is(err, services.ErrNoWorkItems):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAssignmentCreateFailed):
		logrus.WithError(err).Error("Assignment insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": services.ErrAssignmentCreateFailed.Error()})
	case err != nil:
		logrus.WithError(err).Error("Assignment creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create assignment"})
	default:
		c.JSON(http.StatusCreated, gin.H{
			"message":       "Assignment created.",
			"assignment_id": assignmentID,
		})
	}
}

// DailyReport gives the supervisor every booking for the date with
// client and payment details.
func DailyReport(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	rows, err := dataStore.DailyBookingReport(date)
	if err != nil {
		logrus.WithError(err).Error("Error building daily report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error building daily report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// ActiveVehicles lists vehicles that had an assignment on the date.
func ActiveVehicles(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	vehicles, err := dataStore.ActiveVehiclesOn(date)
	if err != nil {
		logrus.WithError(err).Error("Error listing active vehicles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing active vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

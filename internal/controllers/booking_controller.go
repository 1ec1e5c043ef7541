package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"wastetrack/internal/config"
	"wastetrack/internal/models"
)

// CreateCollectionPoint adds a named pickup address for the
// authenticated client.
func CreateCollectionPoint(c *gin.Context) {
	var input struct {
		Name      string  `json:"name" binding:"required"`
		Address   string  `json:"address" binding:"required"`
		Latitude  float64 `json:"latitude" binding:"required"`
		Longitude float64 `json:"longitude" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection point input: " + err.Error()})
		return
	}

	point := models.CollectionPoint{
		ClientID:  authedUserID(c),
		Name:      input.Name,
		Address:   input.Address,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}
	if err := config.DB.Create(&point).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create collection point: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"point": point})
}

func ListMyCollectionPoints(c *gin.Context) {
	var points []models.CollectionPoint
	if err := config.DB.Where("client_id = ?", authedUserID(c)).Find(&points).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching collection points"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}

// CreateBooking books a collection of the client's own point for a
// date. Bookings are Approved on creation.
func CreateBooking(c *gin.Context) {
	var input struct {
		PointID       uint   `json:"point_id" binding:"required"`
		RequestedDate string `json:"requested_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking input: " + err.Error()})
		return
	}

	requestedDate, err := time.Parse("2006-01-02", input.RequestedDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requested_date must be YYYY-MM-DD"})
		return
	}

	clientID := authedUserID(c)

	// The point must belong to the booking client.
	var point models.CollectionPoint
	if err := config.DB.Where("id = ? AND client_id = ?", input.PointID, clientID).
		First(&point).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Collection point not found."})
			return
		}
		logrus.WithError(err).Error("Error validating collection point for booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate collection point."})
		return
	}

	booking := models.Booking{
		ClientID:      clientID,
		PointID:       input.PointID,
		RequestedDate: requestedDate,
		Status:        models.BookingApproved,
	}
	if err := config.DB.Create(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// clientBookingRow doubles as the client's bill: job status plus
// payment status per booking.
type clientBookingRow struct {
	BookingID     uint      `json:"booking_id"`
	RequestedDate time.Time `json:"requested_date"`
	PointName     string    `json:"point_name"`
	JobStatus     string    `json:"job_status"`
	PaymentStatus string    `json:"payment_status"`
	AmountPaid    *float64  `json:"amount_paid"`
}

func ListMyBookings(c *gin.Context) {
	var rows []clientBookingRow
	err := config.DB.Model(&models.Booking{}).
		Select("bookings.id AS booking_id, bookings.requested_date, collection_points.name AS point_name, bookings.status AS job_status, COALESCE(payments.status, 'Unpaid') AS payment_status, payments.amount AS amount_paid").
		Joins("JOIN collection_points ON collection_points.id = bookings.point_id").
		Joins("LEFT JOIN payments ON payments.booking_id = bookings.id").
		Where("bookings.client_id = ?", authedUserID(c)).
		Order("bookings.requested_date DESC").
		Scan(&rows).Error
	if err != nil {
		logrus.WithError(err).Error("Error listing client bookings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing bookings"})
		return
	}
	if rows == nil {
		rows = []clientBookingRow{}
	}

	c.JSON(http.StatusOK, gin.H{"data": rows})
}

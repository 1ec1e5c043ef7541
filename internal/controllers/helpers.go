package controllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"wastetrack/internal/config"
	"wastetrack/internal/models"
)

// dateParam reads a YYYY-MM-DD "date" query parameter, defaulting to
// today. ok is false when the parameter is present but malformed.
func dateParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// parseDate parses a YYYY-MM-DD body field.
func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

// authedUserID extracts the authenticated user's id from JWT claims.
func authedUserID(c *gin.Context) uint {
	return uint(c.MustGet("user_id").(float64))
}

// driverProfileForUser resolves the Driver record linked to the
// authenticated user; assignments and stops key on Driver.ID.
func driverProfileForUser(userID uint) (*models.Driver, error) {
	var driver models.Driver
	if err := config.DB.Where("user_id = ?", userID).First(&driver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &driver, nil
}

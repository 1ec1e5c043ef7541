package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	geom "github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"wastetrack/internal/services"
)

// MyStops returns the authenticated driver's pending stops for the
// date, in route order.
func MyStops(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	driver, err := driverProfileForUser(authedUserID(c))
	if err != nil {
		logrus.WithError(err).Error("Error resolving driver profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify driver profile."})
		return
	}
	if driver == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Driver profile not found for the authenticated user."})
		return
	}

	stops, err := trackingSvc.DriverWorksheet(driver.ID, date)
	if err != nil {
		logrus.WithError(err).Error("Error loading driver worksheet")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading stops"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stops})
}

// LogPosition records the driver's current position against their
// active vehicle. Called on every dashboard refresh; best-effort.
func LogPosition(c *gin.Context) {
	var input struct {
		Latitude  float64 `json:"latitude" binding:"required"`
		Longitude float64 `json:"longitude" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid position input: " + err.Error()})
		return
	}

	date, ok := dateParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	driver, err := driverProfileForUser(authedUserID(c))
	if err != nil {
		logrus.WithError(err).Error("Error resolving driver profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify driver profile."})
		return
	}
	if driver == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Driver profile not found for the authenticated user."})
		return
	}

	logged, err := fulfillmentSvc.LogDriverPosition(driver.ID, input.Latitude, input.Longitude, date)
	if err != nil {
		logrus.WithError(err).Warn("Could not log driver position")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not log position"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged": logged})
}

// CompleteStop verifies the driver's GPS against the stop's registered
// point and completes the stop with its cash collection.
func CompleteStop(c *gin.Context) {
	stopID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stop ID format."})
		return
	}

	var input struct {
		Latitude  float64 `json:"latitude" binding:"required"`
		Longitude float64 `json:"longitude" binding:"required"`
		WeightKg  float64 `json:"weight_kg" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid completion input: " + err.Error()})
		return
	}

	date, ok := dateParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	driver, err := driverProfileForUser(authedUserID(c))
	if err != nil {
		logrus.WithError(err).Error("Error resolving driver profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify driver profile."})
		return
	}
	if driver == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Driver profile not found for the authenticated user."})
		return
	}

	message, err := fulfillmentSvc.CompleteStop(
		driver.ID, uint(stopID),
		input.Latitude, input.Longitude, input.WeightKg, date,
	)

	var proxErr *services.ProximityError
	switch {
	case errors.Is(err, services.ErrStopNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrStopAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &proxErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":           proxErr.Error(),
			"distance_meters": proxErr.DistanceMeters,
		})
	case errors.Is(err, services.ErrPayerNotFound),
		errors.Is(err, services.ErrPaymentRecordFailed),
		errors.Is(err, services.ErrPaymentFailed):
		logrus.WithError(err).WithField("stop_id", stopID).Error("Cash payment failed during stop completion")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	case err != nil:
		logrus.WithError(err).WithField("stop_id", stopID).Error("Stop completion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete stop"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

// LiveLocations shows the supervisor the last reported position of
// every vehicle.
func LiveLocations(c *gin.Context) {
	live, err := trackingSvc.LiveLocations()
	if err != nil {
		logrus.WithError(err).Error("Error loading live vehicle locations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading live locations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": live})
}

// RouteHistory replays one vehicle's day: completed stops plus the GPS
// trail, also encoded as a GeoJSON LineString for map rendering.
func RouteHistory(c *gin.Context) {
	vehicleID, err := strconv.ParseUint(c.Param("vehicleId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID format."})
		return
	}

	date, ok := dateParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	history, err := trackingSvc.VehicleHistory(uint(vehicleID), date)
	if err != nil {
		logrus.WithError(err).Error("Error loading route history")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error loading route history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stops":        history.Stops,
		"path":         history.Path,
		"path_geojson": trailToGeoJSON(history.Path),
	})
}

// trailToGeoJSON converts a position trail into a GeoJSON LineString
// string; fewer than two points yields "".
func trailToGeoJSON(path []services.TrailPoint) string {
	if len(path) < 2 {
		return ""
	}
	coords := make([]geom.Coord, 0, len(path))
	for _, p := range path {
		coords = append(coords, geom.Coord{p.Longitude, p.Latitude})
	}
	line := geom.NewLineString(geom.XY)
	if _, err := line.SetCoords(coords); err != nil {
		logrus.WithError(err).Warn("Could not build trail linestring")
		return ""
	}
	b, err := gjson.Marshal(line.SetSRID(4326))
	if err != nil {
		logrus.WithError(err).Warn("Could not encode trail as GeoJSON")
		return ""
	}
	return string(b)
}

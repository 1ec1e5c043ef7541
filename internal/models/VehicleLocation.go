package models

import (
	"time"

	"gorm.io/gorm"
)

// VehicleLocation is one point of a vehicle's GPS trail, logged
// best-effort from the driver's device.
type VehicleLocation struct {
	gorm.Model
	VehicleID uint      `json:"vehicle_id" gorm:"index"`
	Vehicle   Vehicle   `gorm:"foreignKey:VehicleID"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

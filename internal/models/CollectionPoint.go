package models

import (
	"gorm.io/gorm"
)

// CollectionPoint is a named pickup location owned by a client.
// Referenced by bookings and route stops, never mutated by routing.
type CollectionPoint struct {
	gorm.Model
	ClientID  uint    `json:"client_id" gorm:"index"`
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

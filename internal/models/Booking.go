package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. A booking is Approved on creation and reaches
// Completed only through the completion of its linked route stop.
const (
	BookingApproved  = "Approved"
	BookingCompleted = "Completed"
	BookingCancelled = "Cancelled"
)

// Booking is a client's request to have a collection point serviced
// on a given date.
type Booking struct {
	gorm.Model
	ClientID      uint            `json:"client_id" gorm:"index"`
	PointID       uint            `json:"point_id" gorm:"index"`
	Point         CollectionPoint `gorm:"foreignKey:PointID" json:"point,omitempty"`
	RequestedDate time.Time       `json:"requested_date" gorm:"index"`
	Status        string          `json:"status" gorm:"default:Approved"`
}

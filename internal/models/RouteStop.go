package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	StopPending   = "Pending"
	StopCompleted = "Completed"
)

// RouteStop is one ordered unit of work within an assignment. StopOrder
// is assigned once, in optimizer output order, and never changes.
type RouteStop struct {
	gorm.Model
	AssignmentID uint            `json:"assignment_id" gorm:"index"`
	PointID      uint            `json:"point_id"`
	Point        CollectionPoint `gorm:"foreignKey:PointID" json:"point,omitempty"`
	BookingID    *uint           `json:"booking_id" gorm:"index"` // nil for ad-hoc stops
	StopOrder    int             `json:"stop_order"`
	Status       string          `json:"status" gorm:"default:Pending"`

	// Set once on completion.
	CompletedAt     *time.Time `json:"completed_at"`
	VerifiedLat     *float64   `json:"verification_gps_lat" gorm:"column:verification_gps_lat"`
	VerifiedLon     *float64   `json:"verification_gps_lon" gorm:"column:verification_gps_lon"`
	CollectedWeight float64    `json:"collected_volume_kg" gorm:"column:collected_volume_kg"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Assignment statuses. The transition to Completed is monotonic and
// driven only by the completion checker.
const (
	AssignmentPending    = "Pending"
	AssignmentInProgress = "In Progress"
	AssignmentCompleted  = "Completed"
)

// Assignment pairs one driver with one vehicle for one operating day.
type Assignment struct {
	gorm.Model
	DriverID     uint        `json:"driver_id" gorm:"index"`
	VehicleID    uint        `json:"vehicle_id" gorm:"index"`
	AssignedDate time.Time   `json:"assigned_date" gorm:"index"`
	Status       string      `json:"status" gorm:"default:Pending"`
	Stops        []RouteStop `gorm:"foreignKey:AssignmentID" json:"stops,omitempty"`
}

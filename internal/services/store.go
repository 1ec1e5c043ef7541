package services

import (
	"time"

	"wastetrack/internal/models"
	"wastetrack/internal/routing"
)

// Row shapes returned by the read-side queries. They are deliberately
// flat: the services never hand ORM entities to callers.

type DriverInfo struct {
	DriverID      uint   `json:"driver_id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"license_number"`
}

type VehicleInfo struct {
	VehicleID    uint   `json:"vehicle_id"`
	LicensePlate string `json:"license_plate"`
	Model        string `json:"model"`
}

// StopDetail is everything the fulfillment engine needs to know about
// one stop: its registered coordinate (nullable in storage), its
// owning assignment and its optional source booking.
type StopDetail struct {
	StopID       uint
	AssignmentID uint
	BookingID    *uint
	Status       string
	Latitude     *float64
	Longitude    *float64
}

type PayerInfo struct {
	ClientID uint
	Email    string
}

type WorksheetStop struct {
	StopID    uint    `json:"route_stop_id"`
	PointName string  `json:"point_name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	StopOrder int     `json:"stop_order"`
	Status    string  `json:"status"`
}

type CompletedStopRecord struct {
	PointName       string     `json:"point_name"`
	CompletedAt     *time.Time `json:"completed_at"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	CollectedWeight float64    `json:"collected_volume_kg"`
}

type TrailPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type LiveVehicle struct {
	VehicleID    uint      `json:"vehicle_id"`
	LicensePlate string    `json:"license_plate"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Timestamp    time.Time `json:"timestamp"`
}

// Store interfaces the services operate against. The GORM
// implementation lives in internal/store; tests use in-memory fakes.

type AvailabilityStore interface {
	// FreeDrivers lists drivers with no Pending/In Progress assignment
	// on the given date.
	FreeDrivers(date time.Time) ([]DriverInfo, error)
	// FreeVehicles lists in-service vehicles with no Pending/In
	// Progress assignment on the given date.
	FreeVehicles(date time.Time) ([]VehicleInfo, error)
	// UnassignedBookings lists Approved bookings for the date that are
	// not yet a stop under any assignment for that date.
	UnassignedBookings(date time.Time) ([]routing.Candidate, error)
}

type AssignmentStore interface {
	// ResolveBookings maps booking ids to routable candidates; unknown
	// ids are skipped, not errors.
	ResolveBookings(bookingIDs []uint) ([]routing.Candidate, error)
	// CreateAssignment persists the assignment and its ordered stops in
	// one transaction: a failure on any insert leaves no rows behind.
	// The store links each stop to the new assignment id.
	CreateAssignment(a *models.Assignment, stops []models.RouteStop) error
}

type FulfillmentStore interface {
	StopDetail(stopID uint) (*StopDetail, error)
	// ActiveVehicle resolves the vehicle on the driver's Pending/In
	// Progress assignment for the date; ok is false when there is none.
	ActiveVehicle(driverID uint, date time.Time) (vehicleID uint, ok bool, err error)
	LogPosition(vehicleID uint, lat, lon float64, at time.Time) error

	PayerForBooking(bookingID uint) (*PayerInfo, error)
	CreatePayment(p *models.Payment) error
	CreateReceipt(r *models.Receipt) error

	CompleteStop(stopID uint, at time.Time, lat, lon, weightKg float64) error
	CompleteBooking(bookingID uint) error

	// CompleteAssignmentIfDone promotes the assignment to Completed
	// when no Pending stops remain, counting and updating in a single
	// transaction. Reports whether the promotion happened.
	CompleteAssignmentIfDone(assignmentID uint) (bool, error)
}

type TrackingStore interface {
	DriverPendingStops(driverID uint, date time.Time) ([]WorksheetStop, error)
	CompletedStops(vehicleID uint, date time.Time) ([]CompletedStopRecord, error)
	PositionTrail(vehicleID uint, date time.Time) ([]TrailPoint, error)
	LiveVehicleLocations() ([]LiveVehicle, error)
}

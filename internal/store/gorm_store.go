package store

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wastetrack/internal/models"
	"wastetrack/internal/routing"
	"wastetrack/internal/services"
)

// Store is the GORM/Postgres implementation of the service ports.
// Queries re-read current state on every call; no day-level caching.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for controller-level CRUD.
func (s *Store) DB() *gorm.DB {
	return s.db
}

var activeStatuses = []string{models.AssignmentPending, models.AssignmentInProgress}

// dayBounds normalizes a reference date to [midnight, midnight+24h).
func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}

// --- services.AvailabilityStore ---

func (s *Store) FreeDrivers(date time.Time) ([]services.DriverInfo, error) {
	start, end := dayBounds(date)
	active := s.db.Model(&models.Assignment{}).
		Select("driver_id").
		Where("assigned_date >= ? AND assigned_date < ?", start, end).
		Where("status IN ?", activeStatuses)

	var rows []services.DriverInfo
	err := s.db.Model(&models.Driver{}).
		Select("drivers.id AS driver_id, drivers.name, drivers.phone, drivers.license_number").
		Where("drivers.id NOT IN (?)", active).
		Scan(&rows).Error
	return rows, err
}

func (s *Store) FreeVehicles(date time.Time) ([]services.VehicleInfo, error) {
	start, end := dayBounds(date)
	active := s.db.Model(&models.Assignment{}).
		Select("vehicle_id").
		Where("assigned_date >= ? AND assigned_date < ?", start, end).
		Where("status IN ?", activeStatuses)

	var rows []services.VehicleInfo
	err := s.db.Model(&models.Vehicle{}).
		Select("vehicles.id AS vehicle_id, vehicles.license_plate, vehicles.model").
		Where("vehicles.in_service = ?", true).
		Where("vehicles.id NOT IN (?)", active).
		Scan(&rows).Error
	return rows, err
}

func (s *Store) UnassignedBookings(date time.Time) ([]routing.Candidate, error) {
	start, end := dayBounds(date)
	assigned := s.db.Model(&models.RouteStop{}).
		Select("route_stops.booking_id").
		Joins("JOIN assignments ON assignments.id = route_stops.assignment_id").
		Where("assignments.assigned_date >= ? AND assignments.assigned_date < ?", start, end).
		Where("route_stops.booking_id IS NOT NULL")

	var rows []routing.Candidate
	err := s.db.Model(&models.Booking{}).
		Select("bookings.id AS booking_id, collection_points.id AS point_id, collection_points.name AS point_name, collection_points.latitude, collection_points.longitude").
		Joins("JOIN collection_points ON collection_points.id = bookings.point_id").
		Where("bookings.requested_date >= ? AND bookings.requested_date < ?", start, end).
		Where("bookings.status = ?", models.BookingApproved).
		Where("bookings.id NOT IN (?)", assigned).
		Scan(&rows).Error
	return rows, err
}

// --- services.AssignmentStore ---

func (s *Store) ResolveBookings(bookingIDs []uint) ([]routing.Candidate, error) {
	if len(bookingIDs) == 0 {
		return nil, nil
	}
	var rows []routing.Candidate
	err := s.db.Model(&models.Booking{}).
		Select("bookings.id AS booking_id, collection_points.id AS point_id, collection_points.name AS point_name, collection_points.latitude, collection_points.longitude").
		Joins("JOIN collection_points ON collection_points.id = bookings.point_id").
		Where("bookings.id IN ?", bookingIDs).
		Scan(&rows).Error
	return rows, err
}

// CreateAssignment writes the assignment and its ordered stops in one
// transaction; a failed stop insert rolls back the assignment row.
func (s *Store) CreateAssignment(a *models.Assignment, stops []models.RouteStop) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		for i := range stops {
			stops[i].AssignmentID = a.ID
			if err := tx.Create(&stops[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// --- services.FulfillmentStore ---

func (s *Store) StopDetail(stopID uint) (*services.StopDetail, error) {
	var row services.StopDetail
	err := s.db.Model(&models.RouteStop{}).
		Select("route_stops.id AS stop_id, route_stops.assignment_id, route_stops.booking_id, route_stops.status, collection_points.latitude, collection_points.longitude").
		Joins("JOIN collection_points ON collection_points.id = route_stops.point_id").
		Where("route_stops.id = ?", stopID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) ActiveVehicle(driverID uint, date time.Time) (uint, bool, error) {
	start, end := dayBounds(date)
	var assignment models.Assignment
	err := s.db.
		Where("driver_id = ?", driverID).
		Where("assigned_date >= ? AND assigned_date < ?", start, end).
		Where("status IN ?", activeStatuses).
		Order("id").
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return assignment.VehicleID, true, nil
}

func (s *Store) LogPosition(vehicleID uint, lat, lon float64, at time.Time) error {
	return s.db.Create(&models.VehicleLocation{
		VehicleID: vehicleID,
		Latitude:  lat,
		Longitude: lon,
		Timestamp: at,
	}).Error
}

func (s *Store) PayerForBooking(bookingID uint) (*services.PayerInfo, error) {
	var row services.PayerInfo
	err := s.db.Model(&models.Booking{}).
		Select("bookings.client_id, users.email").
		Joins("JOIN users ON users.id = bookings.client_id").
		Where("bookings.id = ?", bookingID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) CreatePayment(p *models.Payment) error {
	return s.db.Create(p).Error
}

func (s *Store) CreateReceipt(r *models.Receipt) error {
	return s.db.Create(r).Error
}

func (s *Store) CompleteStop(stopID uint, at time.Time, lat, lon, weightKg float64) error {
	return s.db.Model(&models.RouteStop{}).
		Where("id = ?", stopID).
		Updates(map[string]interface{}{
			"status":               models.StopCompleted,
			"completed_at":         at,
			"verification_gps_lat": lat,
			"verification_gps_lon": lon,
			"collected_volume_kg":  weightKg,
		}).Error
}

func (s *Store) CompleteBooking(bookingID uint) error {
	return s.db.Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", models.BookingCompleted).Error
}

// CompleteAssignmentIfDone counts the assignment's Pending stops and
// promotes it to Completed when none remain. The assignment row is
// locked for the duration so two concurrent stop completions cannot
// interleave the count and the update.
func (s *Store) CompleteAssignmentIfDone(assignmentID uint) (bool, error) {
	var promoted bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var assignment models.Assignment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&assignment, assignmentID).Error; err != nil {
			return err
		}
		if assignment.Status == models.AssignmentCompleted {
			return nil
		}
		var pending int64
		if err := tx.Model(&models.RouteStop{}).
			Where("assignment_id = ?", assignmentID).
			Where("status = ?", models.StopPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return nil
		}
		if err := tx.Model(&assignment).
			Update("status", models.AssignmentCompleted).Error; err != nil {
			return err
		}
		promoted = true
		return nil
	})
	return promoted, err
}

// --- services.TrackingStore ---

func (s *Store) DriverPendingStops(driverID uint, date time.Time) ([]services.WorksheetStop, error) {
	start, end := dayBounds(date)
	var rows []services.WorksheetStop
	err := s.db.Model(&models.RouteStop{}).
		Select("route_stops.id AS stop_id, collection_points.name AS point_name, collection_points.address, collection_points.latitude, collection_points.longitude, route_stops.stop_order, route_stops.status").
		Joins("JOIN assignments ON assignments.id = route_stops.assignment_id").
		Joins("JOIN collection_points ON collection_points.id = route_stops.point_id").
		Where("assignments.driver_id = ?", driverID).
		Where("assignments.assigned_date >= ? AND assignments.assigned_date < ?", start, end).
		Where("route_stops.status = ?", models.StopPending).
		Order("route_stops.stop_order ASC").
		Scan(&rows).Error
	return rows, err
}

func (s *Store) CompletedStops(vehicleID uint, date time.Time) ([]services.CompletedStopRecord, error) {
	start, end := dayBounds(date)
	var rows []services.CompletedStopRecord
	err := s.db.Model(&models.RouteStop{}).
		Select("collection_points.name AS point_name, route_stops.completed_at, route_stops.verification_gps_lat AS latitude, route_stops.verification_gps_lon AS longitude, route_stops.collected_volume_kg AS collected_weight").
		Joins("JOIN assignments ON assignments.id = route_stops.assignment_id").
		Joins("JOIN collection_points ON collection_points.id = route_stops.point_id").
		Where("assignments.vehicle_id = ?", vehicleID).
		Where("assignments.assigned_date >= ? AND assignments.assigned_date < ?", start, end).
		Where("route_stops.status = ?", models.StopCompleted).
		Order("route_stops.completed_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (s *Store) PositionTrail(vehicleID uint, date time.Time) ([]services.TrailPoint, error) {
	start, end := dayBounds(date)
	var rows []services.TrailPoint
	err := s.db.Model(&models.VehicleLocation{}).
		Select("latitude, longitude").
		Where("vehicle_id = ?", vehicleID).
		Where("timestamp >= ? AND timestamp < ?", start, end).
		Order("timestamp ASC").
		Scan(&rows).Error
	return rows, err
}

func (s *Store) LiveVehicleLocations() ([]services.LiveVehicle, error) {
	var rows []services.LiveVehicle
	err := s.db.Model(&models.VehicleLocation{}).
		Select("vehicle_locations.vehicle_id, vehicles.license_plate, vehicle_locations.latitude, vehicle_locations.longitude, vehicle_locations.timestamp").
		Joins("JOIN (SELECT vehicle_id, MAX(timestamp) AS max_time FROM vehicle_locations GROUP BY vehicle_id) latest ON latest.vehicle_id = vehicle_locations.vehicle_id AND latest.max_time = vehicle_locations.timestamp").
		Joins("JOIN vehicles ON vehicles.id = vehicle_locations.vehicle_id").
		Scan(&rows).Error
	return rows, err
}

// --- supervisor report queries ---

// DailyBookingRow is one line of the supervisor's daily report.
type DailyBookingRow struct {
	ClientName    string   `json:"client_name"`
	Phone         string   `json:"phone"`
	PointName     string   `json:"collection_point"`
	JobStatus     string   `json:"job_status"`
	PaymentStatus string   `json:"payment_status"`
	AmountPaid    *float64 `json:"amount_paid"`
}

// DailyBookingReport lists every booking for the date with client and
// payment details; unpaid bookings show as "Unpaid".
func (s *Store) DailyBookingReport(date time.Time) ([]DailyBookingRow, error) {
	start, end := dayBounds(date)
	var rows []DailyBookingRow
	err := s.db.Model(&models.Booking{}).
		Select("users.name AS client_name, users.phone, collection_points.name AS point_name, bookings.status AS job_status, COALESCE(payments.status, 'Unpaid') AS payment_status, payments.amount AS amount_paid").
		Joins("JOIN users ON users.id = bookings.client_id").
		Joins("JOIN collection_points ON collection_points.id = bookings.point_id").
		Joins("LEFT JOIN payments ON payments.booking_id = bookings.id").
		Where("bookings.requested_date >= ? AND bookings.requested_date < ?", start, end).
		Order("users.name ASC").
		Scan(&rows).Error
	return rows, err
}

// ActiveVehiclesOn lists vehicles that had any assignment on the date,
// for the route-history vehicle picker.
func (s *Store) ActiveVehiclesOn(date time.Time) ([]services.VehicleInfo, error) {
	start, end := dayBounds(date)
	var rows []services.VehicleInfo
	err := s.db.Model(&models.Vehicle{}).
		Distinct("vehicles.id AS vehicle_id, vehicles.license_plate, vehicles.model").
		Joins("JOIN assignments ON assignments.vehicle_id = vehicles.id").
		Where("assignments.assigned_date >= ? AND assignments.assigned_date < ?", start, end).
		Scan(&rows).Error
	return rows, err
}

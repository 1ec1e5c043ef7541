package services

import (
	"fmt"
	"time"
)

// RouteHistory is a day's playback for one vehicle: the completed
// stops in completion order plus the raw GPS trail.
type RouteHistory struct {
	Stops []CompletedStopRecord `json:"stops"`
	Path  []TrailPoint          `json:"path"`
}

// TrackingService serves the read side of operations: the driver's
// worksheet, supervisor live view and route-history playback.
type TrackingService struct {
	store TrackingStore
}

func NewTrackingService(store TrackingStore) *TrackingService {
	return &TrackingService{store: store}
}

// DriverWorksheet lists the driver's still-pending stops for the date,
// ordered by stop sequence.
func (s *TrackingService) DriverWorksheet(driverID uint, date time.Time) ([]WorksheetStop, error) {
	stops, err := s.store.DriverPendingStops(driverID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: load driver worksheet: %v", ErrPersistence, err)
	}
	if stops == nil {
		stops = []WorksheetStop{}
	}
	return stops, nil
}

// VehicleHistory reconstructs one vehicle's day for playback.
func (s *TrackingService) VehicleHistory(vehicleID uint, date time.Time) (*RouteHistory, error) {
	stops, err := s.store.CompletedStops(vehicleID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: load completed stops: %v", ErrPersistence, err)
	}
	path, err := s.store.PositionTrail(vehicleID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: load position trail: %v", ErrPersistence, err)
	}
	if stops == nil {
		stops = []CompletedStopRecord{}
	}
	if path == nil {
		path = []TrailPoint{}
	}
	return &RouteHistory{Stops: stops, Path: path}, nil
}

// LiveLocations returns the latest known position of every vehicle
// that has reported at least once.
func (s *TrackingService) LiveLocations() ([]LiveVehicle, error) {
	live, err := s.store.LiveVehicleLocations()
	if err != nil {
		return nil, fmt.Errorf("%w: load live locations: %v", ErrPersistence, err)
	}
	if live == nil {
		live = []LiveVehicle{}
	}
	return live, nil
}

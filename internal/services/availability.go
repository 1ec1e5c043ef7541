package services

import (
	"fmt"
	"time"

	"wastetrack/internal/routing"
)

// AvailabilityService answers the three dispatch questions for a given
// operating date: which drivers, which vehicles and which bookings are
// still free. Pure projections, no write side effects; an empty day is
// an empty slice, not an error.
type AvailabilityService struct {
	store AvailabilityStore
}

func NewAvailabilityService(store AvailabilityStore) *AvailabilityService {
	return &AvailabilityService{store: store}
}

func (s *AvailabilityService) AvailableDrivers(date time.Time) ([]DriverInfo, error) {
	drivers, err := s.store.FreeDrivers(date)
	if err != nil {
		return nil, fmt.Errorf("%w: list free drivers: %v", ErrPersistence, err)
	}
	if drivers == nil {
		drivers = []DriverInfo{}
	}
	return drivers, nil
}

func (s *AvailabilityService) AvailableVehicles(date time.Time) ([]VehicleInfo, error) {
	vehicles, err := s.store.FreeVehicles(date)
	if err != nil {
		return nil, fmt.Errorf("%w: list free vehicles: %v", ErrPersistence, err)
	}
	if vehicles == nil {
		vehicles = []VehicleInfo{}
	}
	return vehicles, nil
}

func (s *AvailabilityService) PendingBookings(date time.Time) ([]routing.Candidate, error) {
	bookings, err := s.store.UnassignedBookings(date)
	if err != nil {
		return nil, fmt.Errorf("%w: list pending bookings: %v", ErrPersistence, err)
	}
	if bookings == nil {
		bookings = []routing.Candidate{}
	}
	return bookings, nil
}

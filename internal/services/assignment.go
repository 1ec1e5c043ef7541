package services

import (
	"fmt"
	"time"

	"wastetrack/internal/models"
	"wastetrack/internal/routing"
)

// AssignmentService builds a day's route assignment from a set of
// booking ids: resolve, optimize, then persist one Assignment plus its
// ordered stops.
type AssignmentService struct {
	store AssignmentStore
}

func NewAssignmentService(store AssignmentStore) *AssignmentService {
	return &AssignmentService{store: store}
}

// CreateAssignment creates a Pending assignment for the driver/vehicle
// pair and one Pending stop per resolved booking, sequenced in
// nearest-neighbor order (1-based).
//
// No rows are written when resolution yields nothing; the store runs
// the assignment and stop inserts in one transaction, so a failure at
// any point leaves no half-written route behind.
func (s *AssignmentService) CreateAssignment(driverID, vehicleID uint, date time.Time, bookingIDs []uint) (uint, error) {
	candidates, err := s.store.ResolveBookings(bookingIDs)
	if err != nil {
		return 0, fmt.Errorf("%w: resolve bookings: %v", ErrPersistence, err)
	}
	if len(candidates) == 0 {
		return 0, ErrNoWorkItems
	}

	ordered := routing.NearestNeighborOrder(candidates)

	assignment := models.Assignment{
		DriverID:     driverID,
		VehicleID:    vehicleID,
		AssignedDate: date,
		Status:       models.AssignmentPending,
	}
	stops := make([]models.RouteStop, len(ordered))
	for i, c := range ordered {
		bookingID := c.BookingID
		stops[i] = models.RouteStop{
			PointID:   c.PointID,
			BookingID: &bookingID,
			StopOrder: i + 1,
			Status:    models.StopPending,
		}
	}
	if err := s.store.CreateAssignment(&assignment, stops); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrAssignmentCreateFailed, err)
	}

	return assignment.ID, nil
}

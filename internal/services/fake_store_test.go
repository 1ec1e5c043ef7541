package services

import (
	"errors"
	"time"

	"wastetrack/internal/models"
	"wastetrack/internal/routing"
)

var errStoreDown = errors.New("store down")

type loggedPosition struct {
	VehicleID uint
	Lat, Lon  float64
	At        time.Time
}

// fakeStore is an in-memory stand-in for the GORM store, implementing
// every service port. Failure toggles simulate insert errors on
// specific tables.
type fakeStore struct {
	freeDrivers  []DriverInfo
	freeVehicles []VehicleInfo
	unassigned   []routing.Candidate
	resolved     []routing.Candidate

	nextID      uint
	assignments map[uint]*models.Assignment
	stops       map[uint]*models.RouteStop
	// pointCoords maps PointID to a registered coordinate; an absent
	// entry models a point with missing GPS data.
	pointCoords map[uint][2]float64
	payers      map[uint]*PayerInfo
	payments    []*models.Payment
	receipts    []*models.Receipt
	completed   []uint // booking ids marked Completed
	positions   []loggedPosition

	activeVehicleID uint // 0 means no active assignment

	worksheet    []WorksheetStop
	historyStops []CompletedStopRecord
	trail        []TrailPoint
	live         []LiveVehicle

	failList       bool
	failAssignment bool
	failStop       bool
	failPayment    bool
	failReceipt    bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		assignments: map[uint]*models.Assignment{},
		stops:       map[uint]*models.RouteStop{},
		pointCoords: map[uint][2]float64{},
		payers:      map[uint]*PayerInfo{},
	}
}

func (f *fakeStore) id() uint {
	f.nextID++
	return f.nextID
}

// --- AvailabilityStore ---

func (f *fakeStore) FreeDrivers(time.Time) ([]DriverInfo, error) {
	if f.failList {
		return nil, errStoreDown
	}
	return f.freeDrivers, nil
}

func (f *fakeStore) FreeVehicles(time.Time) ([]VehicleInfo, error) {
	if f.failList {
		return nil, errStoreDown
	}
	return f.freeVehicles, nil
}

func (f *fakeStore) UnassignedBookings(time.Time) ([]routing.Candidate, error) {
	if f.failList {
		return nil, errStoreDown
	}
	return f.unassigned, nil
}

// --- AssignmentStore ---

func (f *fakeStore) ResolveBookings([]uint) ([]routing.Candidate, error) {
	return f.resolved, nil
}

// CreateAssignment mirrors the transactional contract: nothing is
// recorded unless every insert would succeed.
func (f *fakeStore) CreateAssignment(a *models.Assignment, stops []models.RouteStop) error {
	if f.failAssignment || f.failStop {
		return errStoreDown
	}
	a.ID = f.id()
	f.assignments[a.ID] = a
	for i := range stops {
		stops[i].AssignmentID = a.ID
		stops[i].ID = f.id()
		stop := stops[i]
		f.stops[stop.ID] = &stop
	}
	return nil
}

// --- FulfillmentStore ---

func (f *fakeStore) StopDetail(stopID uint) (*StopDetail, error) {
	s, ok := f.stops[stopID]
	if !ok {
		return nil, nil
	}
	p := f.pointFor(s)
	return &StopDetail{
		StopID:       s.ID,
		AssignmentID: s.AssignmentID,
		BookingID:    s.BookingID,
		Status:       s.Status,
		Latitude:     p[0],
		Longitude:    p[1],
	}, nil
}

func (f *fakeStore) pointFor(s *models.RouteStop) [2]*float64 {
	if c, ok := f.pointCoords[s.PointID]; ok {
		lat, lon := c[0], c[1]
		return [2]*float64{&lat, &lon}
	}
	return [2]*float64{nil, nil}
}

func (f *fakeStore) ActiveVehicle(uint, time.Time) (uint, bool, error) {
	return f.activeVehicleID, f.activeVehicleID != 0, nil
}

func (f *fakeStore) LogPosition(vehicleID uint, lat, lon float64, at time.Time) error {
	f.positions = append(f.positions, loggedPosition{vehicleID, lat, lon, at})
	return nil
}

func (f *fakeStore) PayerForBooking(bookingID uint) (*PayerInfo, error) {
	return f.payers[bookingID], nil
}

func (f *fakeStore) CreatePayment(p *models.Payment) error {
	if f.failPayment {
		return errStoreDown
	}
	p.ID = f.id()
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakeStore) CreateReceipt(r *models.Receipt) error {
	if f.failReceipt {
		return errStoreDown
	}
	r.ID = f.id()
	f.receipts = append(f.receipts, r)
	return nil
}

func (f *fakeStore) CompleteStop(stopID uint, at time.Time, lat, lon, weightKg float64) error {
	s := f.stops[stopID]
	s.Status = models.StopCompleted
	s.CompletedAt = &at
	s.VerifiedLat = &lat
	s.VerifiedLon = &lon
	s.CollectedWeight = weightKg
	return nil
}

func (f *fakeStore) CompleteBooking(bookingID uint) error {
	f.completed = append(f.completed, bookingID)
	return nil
}

func (f *fakeStore) CompleteAssignmentIfDone(assignmentID uint) (bool, error) {
	for _, s := range f.stops {
		if s.AssignmentID == assignmentID && s.Status == models.StopPending {
			return false, nil
		}
	}
	a, ok := f.assignments[assignmentID]
	if !ok {
		a = &models.Assignment{Status: models.AssignmentPending}
		a.ID = assignmentID
		f.assignments[assignmentID] = a
	}
	if a.Status == models.AssignmentCompleted {
		return false, nil
	}
	a.Status = models.AssignmentCompleted
	return true, nil
}

// --- TrackingStore ---

func (f *fakeStore) DriverPendingStops(uint, time.Time) ([]WorksheetStop, error) {
	if f.failList {
		return nil, errStoreDown
	}
	return f.worksheet, nil
}

func (f *fakeStore) CompletedStops(uint, time.Time) ([]CompletedStopRecord, error) {
	if f.failList {
		return nil, errStoreDown
	}
	return f.historyStops, nil
}

func (f *fakeStore) PositionTrail(uint, time.Time) ([]TrailPoint, error) {
	if f.failList {
		return nil, errStoreDown
	}
	return f.trail, nil
}

func (f *fakeStore) LiveVehicleLocations() ([]LiveVehicle, error) {
	if f.failList {
		return nil, errStoreDown
	}
	return f.live, nil
}

// addStop seeds a pending stop at the given registered coordinate.
func (f *fakeStore) addStop(assignmentID uint, bookingID *uint, lat, lon float64) *models.RouteStop {
	pointID := f.id()
	f.pointCoords[pointID] = [2]float64{lat, lon}
	stop := &models.RouteStop{
		AssignmentID: assignmentID,
		PointID:      pointID,
		BookingID:    bookingID,
		Status:       models.StopPending,
	}
	stop.ID = f.id()
	f.stops[stop.ID] = stop
	return stop
}

package services

import (
	"fmt"
	"time"

	logrus "github.com/sirupsen/logrus"

	"wastetrack/internal/geo"
	"wastetrack/internal/models"
)

// ProximityLimitMeters is the geofence radius for stop verification.
const ProximityLimitMeters = 100.0

// RatePerKg is the flat cash rate charged per collected kilogram.
const RatePerKg = 3.0

// FulfillmentService drives the Pending -> Completed transition of a
// stop: geofence check, best-effort position log, cash payment with
// receipt, stop/booking completion and the assignment completion
// cascade.
type FulfillmentService struct {
	store FulfillmentStore
	now   func() time.Time
}

func NewFulfillmentService(store FulfillmentStore) *FulfillmentService {
	return &FulfillmentService{store: store, now: time.Now}
}

// CompleteStop verifies the driver is within the geofence of the
// stop's registered point and, if so, records the cash payment and
// marks the stop (and its source booking) completed.
//
// The payment runs before any stop mutation: a payment failure leaves
// the stop Pending so the call is safely retryable, and a stop is
// never marked done without money collected. A failed geofence check
// writes nothing at all.
func (s *FulfillmentService) CompleteStop(driverID, stopID uint, driverLat, driverLon, weightKg float64, date time.Time) (string, error) {
	detail, err := s.store.StopDetail(stopID)
	if err != nil {
		return "", fmt.Errorf("%w: load stop %d: %v", ErrPersistence, stopID, err)
	}
	if detail == nil {
		return "", ErrStopNotFound
	}
	if detail.Status == models.StopCompleted {
		return "", ErrStopAlreadyCompleted
	}

	distance := geo.GreatCircleMeters(
		driverLat, driverLon,
		geo.Coord(detail.Latitude), geo.Coord(detail.Longitude),
	)
	if distance > ProximityLimitMeters {
		return "", &ProximityError{DistanceMeters: distance, LimitMeters: ProximityLimitMeters}
	}

	s.logPosition(driverID, driverLat, driverLon, date)

	if detail.BookingID != nil {
		amount := weightKg * RatePerKg
		if err := s.processCashPayment(*detail.BookingID, amount); err != nil {
			return "", err
		}
	}

	if err := s.store.CompleteStop(stopID, s.now(), driverLat, driverLon, weightKg); err != nil {
		return "", fmt.Errorf("%w: complete stop %d: %v", ErrPersistence, stopID, err)
	}

	if detail.BookingID != nil {
		if err := s.store.CompleteBooking(*detail.BookingID); err != nil {
			return "", fmt.Errorf("%w: complete booking %d: %v", ErrPersistence, *detail.BookingID, err)
		}
	}

	if err := s.checkAndCompleteAssignment(detail.AssignmentID); err != nil {
		return "", err
	}

	if detail.BookingID != nil {
		return "Stop marked complete! Payment logged.", nil
	}
	return "Stop marked complete!", nil
}

// LogDriverPosition appends the driver's current position to their
// active vehicle's trail. Best-effort: a driver with no active
// assignment simply logs nothing.
func (s *FulfillmentService) LogDriverPosition(driverID uint, lat, lon float64, date time.Time) (bool, error) {
	vehicleID, ok, err := s.store.ActiveVehicle(driverID, date)
	if err != nil {
		return false, fmt.Errorf("%w: resolve active vehicle: %v", ErrPersistence, err)
	}
	if !ok {
		return false, nil
	}
	if err := s.store.LogPosition(vehicleID, lat, lon, s.now()); err != nil {
		return false, fmt.Errorf("%w: log position: %v", ErrPersistence, err)
	}
	return true, nil
}

func (s *FulfillmentService) logPosition(driverID uint, lat, lon float64, date time.Time) {
	if _, err := s.LogDriverPosition(driverID, lat, lon, date); err != nil {
		// Losing one trail point must not block the completion.
		logrus.WithError(err).WithField("driver_id", driverID).
			Warn("could not log driver position during stop completion")
	}
}

// processCashPayment records the field-collected cash and issues the
// receipt. The receipt is fire-and-forget once the payment row is
// committed: regenerating it is cheap, re-charging is not.
func (s *FulfillmentService) processCashPayment(bookingID uint, amount float64) error {
	payer, err := s.store.PayerForBooking(bookingID)
	if err != nil {
		return fmt.Errorf("%w: resolve payer for booking %d: %v", ErrPaymentFailed, bookingID, err)
	}
	if payer == nil {
		return ErrPayerNotFound
	}

	now := s.now()
	payment := models.Payment{
		BookingID:    bookingID,
		ClientID:     payer.ClientID,
		Amount:       amount,
		GatewayTxnID: models.GatewayTxnCash,
		Status:       models.PaymentSucceeded,
		PaymentDate:  now,
	}
	if err := s.store.CreatePayment(&payment); err != nil {
		return fmt.Errorf("%w: %v", ErrPaymentRecordFailed, err)
	}

	receipt := models.Receipt{
		PaymentID:     payment.ID,
		ReceiptNumber: fmt.Sprintf("RCPT-%d-%d", now.Year(), payment.ID),
		GeneratedAt:   now,
		SentToEmail:   payer.Email,
	}
	if err := s.store.CreateReceipt(&receipt); err != nil {
		// The payment is committed; failing the whole completion here
		// would push the driver into a retry that double-charges.
		logrus.WithError(err).WithFields(logrus.Fields{
			"payment_id": payment.ID,
			"booking_id": bookingID,
		}).Error("payment recorded but receipt generation failed")
	}

	return nil
}

// checkAndCompleteAssignment promotes the assignment to Completed when
// no Pending stops remain. The count and the update run in one store
// transaction. Idempotent; a zero assignment id is a no-op.
func (s *FulfillmentService) checkAndCompleteAssignment(assignmentID uint) error {
	if assignmentID == 0 {
		return nil
	}
	done, err := s.store.CompleteAssignmentIfDone(assignmentID)
	if err != nil {
		return fmt.Errorf("%w: complete assignment %d: %v", ErrPersistence, assignmentID, err)
	}
	if done {
		logrus.WithField("assignment_id", assignmentID).Info("assignment completed")
	}
	return nil
}

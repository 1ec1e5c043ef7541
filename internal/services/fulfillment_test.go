package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"wastetrack/internal/models"
)

func fixedClock() time.Time {
	return time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
}

func newFulfillment(store *fakeStore) *FulfillmentService {
	svc := NewFulfillmentService(store)
	svc.now = fixedClock
	return svc
}

func uintPtr(v uint) *uint { return &v }

func TestCompleteStopNotFound(t *testing.T) {
	svc := newFulfillment(newFakeStore())
	_, err := svc.CompleteStop(1, 999, 0, 0, 10, testDay)
	if !errors.Is(err, ErrStopNotFound) {
		t.Fatalf("want ErrStopNotFound, got %v", err)
	}
}

func TestCompleteStopOutsideGeofence(t *testing.T) {
	store := newFakeStore()
	stop := store.addStop(5, uintPtr(70), 0, 0)
	svc := newFulfillment(store)

	// ~222m east of the registered point.
	_, err := svc.CompleteStop(1, stop.ID, 0, 0.002, 10, testDay)

	var proxErr *ProximityError
	if !errors.As(err, &proxErr) {
		t.Fatalf("want ProximityError, got %v", err)
	}
	if proxErr.DistanceMeters < 200 || proxErr.DistanceMeters > 250 {
		t.Fatalf("measured distance = %f, want ~222", proxErr.DistanceMeters)
	}
	if !strings.Contains(proxErr.Error(), fmt.Sprintf("%.0f", proxErr.DistanceMeters)) {
		t.Fatalf("message should carry the distance: %q", proxErr.Error())
	}

	if stop.Status != models.StopPending {
		t.Fatalf("stop status = %q, want Pending", stop.Status)
	}
	if len(store.payments) != 0 || len(store.positions) != 0 || len(store.completed) != 0 {
		t.Fatal("a failed geofence check must be side-effect free")
	}
}

func TestCompleteStopMissingPointCoordinateRejects(t *testing.T) {
	store := newFakeStore()
	stop := &models.RouteStop{AssignmentID: 5, Status: models.StopPending, PointID: 9999}
	stop.ID = store.id()
	store.stops[stop.ID] = stop
	svc := newFulfillment(store)

	// No registered coordinate: distance is +Inf, so the gate rejects.
	_, err := svc.CompleteStop(1, stop.ID, 0, 0, 10, testDay)
	var proxErr *ProximityError
	if !errors.As(err, &proxErr) {
		t.Fatalf("want ProximityError for missing coords, got %v", err)
	}
}

func TestCompleteStopPaymentFailureLeavesStopPending(t *testing.T) {
	store := newFakeStore()
	stop := store.addStop(5, uintPtr(70), 0, 0)
	store.payers[70] = &PayerInfo{ClientID: 12, Email: "client@example.com"}
	store.failPayment = true
	svc := newFulfillment(store)

	_, err := svc.CompleteStop(1, stop.ID, 0, 0.0005, 10, testDay)
	if !errors.Is(err, ErrPaymentRecordFailed) {
		t.Fatalf("want ErrPaymentRecordFailed, got %v", err)
	}
	if stop.Status != models.StopPending {
		t.Fatalf("stop must stay Pending after payment failure, got %q", stop.Status)
	}
	if len(store.completed) != 0 {
		t.Fatal("booking must not be completed after payment failure")
	}
}

func TestCompleteStopPayerNotFound(t *testing.T) {
	store := newFakeStore()
	stop := store.addStop(5, uintPtr(70), 0, 0)
	svc := newFulfillment(store)

	_, err := svc.CompleteStop(1, stop.ID, 0, 0.0005, 10, testDay)
	if !errors.Is(err, ErrPayerNotFound) {
		t.Fatalf("want ErrPayerNotFound, got %v", err)
	}
	if stop.Status != models.StopPending {
		t.Fatalf("stop must stay Pending, got %q", stop.Status)
	}
}

func TestCompleteStopSuccessWithBooking(t *testing.T) {
	store := newFakeStore()
	stop := store.addStop(5, uintPtr(70), -1.2921, 36.8219)
	otherStop := store.addStop(5, nil, -1.30, 36.83)
	store.payers[70] = &PayerInfo{ClientID: 12, Email: "client@example.com"}
	store.activeVehicleID = 42
	svc := newFulfillment(store)

	msg, err := svc.CompleteStop(1, stop.ID, -1.29215, 36.82195, 12.5, testDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(msg, "Payment logged") {
		t.Fatalf("message = %q", msg)
	}

	if stop.Status != models.StopCompleted {
		t.Fatalf("stop status = %q, want Completed", stop.Status)
	}
	if stop.CompletedAt == nil || !stop.CompletedAt.Equal(fixedClock()) {
		t.Fatalf("completed_at = %v", stop.CompletedAt)
	}
	if stop.VerifiedLat == nil || *stop.VerifiedLat != -1.29215 {
		t.Fatalf("verification lat = %v", stop.VerifiedLat)
	}
	if stop.CollectedWeight != 12.5 {
		t.Fatalf("collected weight = %f", stop.CollectedWeight)
	}

	if len(store.payments) != 1 {
		t.Fatalf("want exactly one payment, got %d", len(store.payments))
	}
	p := store.payments[0]
	if p.Amount != 12.5*RatePerKg {
		t.Fatalf("amount = %f, want %f", p.Amount, 12.5*RatePerKg)
	}
	if p.GatewayTxnID != models.GatewayTxnCash || p.Status != models.PaymentSucceeded {
		t.Fatalf("payment = %+v", p)
	}

	if len(store.receipts) != 1 {
		t.Fatalf("want exactly one receipt, got %d", len(store.receipts))
	}
	r := store.receipts[0]
	wantNumber := fmt.Sprintf("RCPT-%d-%d", fixedClock().Year(), p.ID)
	if r.ReceiptNumber != wantNumber {
		t.Fatalf("receipt number = %q, want %q", r.ReceiptNumber, wantNumber)
	}
	if r.SentToEmail != "client@example.com" || r.PaymentID != p.ID {
		t.Fatalf("receipt = %+v", r)
	}

	if len(store.completed) != 1 || store.completed[0] != 70 {
		t.Fatalf("booking completions = %v", store.completed)
	}
	if len(store.positions) != 1 || store.positions[0].VehicleID != 42 {
		t.Fatalf("positions = %+v", store.positions)
	}

	// One stop still pending: the assignment must not complete yet.
	if a, ok := store.assignments[5]; ok && a.Status == models.AssignmentCompleted {
		t.Fatal("assignment completed while a stop is still pending")
	}
	_ = otherStop
}

func TestCompleteStopWithoutBookingSkipsPayment(t *testing.T) {
	store := newFakeStore()
	stop := store.addStop(5, nil, 0, 0)
	svc := newFulfillment(store)

	msg, err := svc.CompleteStop(1, stop.ID, 0, 0.0005, 8, testDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(msg, "Payment") {
		t.Fatalf("message should not mention payment: %q", msg)
	}
	if len(store.payments) != 0 || len(store.receipts) != 0 || len(store.completed) != 0 {
		t.Fatal("stop without a booking must not touch payments or bookings")
	}
	if stop.Status != models.StopCompleted {
		t.Fatalf("stop status = %q", stop.Status)
	}
}

func TestCompleteLastStopCompletesAssignment(t *testing.T) {
	store := newFakeStore()
	a := &models.Assignment{Status: models.AssignmentInProgress}
	a.ID = store.id()
	store.assignments[a.ID] = a

	first := store.addStop(a.ID, nil, 0, 0)
	last := store.addStop(a.ID, nil, 0, 0.001)
	svc := newFulfillment(store)

	if _, err := svc.CompleteStop(1, first.ID, 0, 0, 5, testDay); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status == models.AssignmentCompleted {
		t.Fatal("assignment completed before its last stop")
	}

	if _, err := svc.CompleteStop(1, last.ID, 0, 0.001, 5, testDay); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != models.AssignmentCompleted {
		t.Fatalf("assignment status = %q, want Completed", a.Status)
	}
}

func TestCompleteStopAlreadyCompleted(t *testing.T) {
	store := newFakeStore()
	stop := store.addStop(5, nil, 0, 0)
	svc := newFulfillment(store)

	if _, err := svc.CompleteStop(1, stop.ID, 0, 0, 5, testDay); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.CompleteStop(1, stop.ID, 0, 0, 5, testDay)
	if !errors.Is(err, ErrStopAlreadyCompleted) {
		t.Fatalf("want ErrStopAlreadyCompleted, got %v", err)
	}
}

func TestCompleteStopReceiptFailureIsNonFatal(t *testing.T) {
	store := newFakeStore()
	stop := store.addStop(5, uintPtr(70), 0, 0)
	store.payers[70] = &PayerInfo{ClientID: 12, Email: "client@example.com"}
	store.failReceipt = true
	svc := newFulfillment(store)

	if _, err := svc.CompleteStop(1, stop.ID, 0, 0.0005, 10, testDay); err != nil {
		t.Fatalf("receipt failure must not fail the completion: %v", err)
	}
	if len(store.payments) != 1 || len(store.receipts) != 0 {
		t.Fatalf("payments = %d, receipts = %d", len(store.payments), len(store.receipts))
	}
	if stop.Status != models.StopCompleted {
		t.Fatalf("stop status = %q", stop.Status)
	}
}

func TestLogDriverPositionWithoutActiveVehicle(t *testing.T) {
	store := newFakeStore()
	svc := newFulfillment(store)

	logged, err := svc.LogDriverPosition(1, -1.3, 36.8, testDay)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logged {
		t.Fatal("nothing should be logged without an active assignment")
	}

	store.activeVehicleID = 9
	logged, err = svc.LogDriverPosition(1, -1.3, 36.8, testDay)
	if err != nil || !logged {
		t.Fatalf("logged = %v, err = %v", logged, err)
	}
	if len(store.positions) != 1 || store.positions[0].VehicleID != 9 {
		t.Fatalf("positions = %+v", store.positions)
	}
}

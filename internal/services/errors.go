package services

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced to the transport layer. Every operation
// returns one of these (possibly wrapped) rather than leaking raw
// store errors; callers map them to response codes with errors.Is.
var (
	// ErrNoWorkItems: none of the selected bookings resolved to a
	// collection point, so there is nothing to route.
	ErrNoWorkItems = errors.New("no collection points could be resolved for the selected bookings")

	// ErrAssignmentCreateFailed: the assignment row itself could not be
	// inserted; no stops were written.
	ErrAssignmentCreateFailed = errors.New("could not create route assignment")

	ErrStopNotFound         = errors.New("stop not found")
	ErrStopAlreadyCompleted = errors.New("stop is already completed")

	// Payment failures leave the stop Pending so the driver can retry.
	ErrPayerNotFound       = errors.New("could not resolve the client for this booking")
	ErrPaymentRecordFailed = errors.New("could not record the cash payment")
	ErrPaymentFailed       = errors.New("could not process cash payment")

	// ErrPersistence wraps generic store I/O failures.
	ErrPersistence = errors.New("storage failure")
)

// ProximityError reports a failed geofence check, carrying the measured
// distance so the driver knows how far off they are.
type ProximityError struct {
	DistanceMeters float64
	LimitMeters    float64
}

func (e *ProximityError) Error() string {
	return fmt.Sprintf("verification failed: you are %.0f meters away, must be within %.0fm",
		e.DistanceMeters, e.LimitMeters)
}

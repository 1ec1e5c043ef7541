package controllers

import (
	"wastetrack/internal/config"
	"wastetrack/internal/services"
	"wastetrack/internal/store"
)

var (
	dataStore       *store.Store
	availabilitySvc *services.AvailabilityService
	assignmentSvc   *services.AssignmentService
	fulfillmentSvc  *services.FulfillmentService
	trackingSvc     *services.TrackingService
)

// Init wires the services onto the initialized database handle. Must
// run after config.InitDB.
func Init() {
	dataStore = store.New(config.DB)
	availabilitySvc = services.NewAvailabilityService(dataStore)
	assignmentSvc = services.NewAssignmentService(dataStore)
	fulfillmentSvc = services.NewFulfillmentService(dataStore)
	trackingSvc = services.NewTrackingService(dataStore)
}

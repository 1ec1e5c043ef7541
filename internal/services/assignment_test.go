package services

import (
	"errors"
	"testing"

	"wastetrack/internal/models"
	"wastetrack/internal/routing"
)

func TestCreateAssignmentNoWorkItems(t *testing.T) {
	store := newFakeStore()
	svc := NewAssignmentService(store)

	_, err := svc.CreateAssignment(1, 2, testDay, []uint{41, 42})
	if !errors.Is(err, ErrNoWorkItems) {
		t.Fatalf("want ErrNoWorkItems, got %v", err)
	}
	if len(store.assignments) != 0 || len(store.stops) != 0 {
		t.Fatalf("early failure must write nothing: %d assignments, %d stops",
			len(store.assignments), len(store.stops))
	}
}

func TestCreateAssignmentSequencesInOptimizerOrder(t *testing.T) {
	store := newFakeStore()
	// Input order A, B, C; nearest-neighbor from A visits C before B.
	store.resolved = []routing.Candidate{
		{BookingID: 11, PointID: 101, Latitude: 0, Longitude: 0}, // A
		{BookingID: 12, PointID: 102, Latitude: 0, Longitude: 2}, // B
		{BookingID: 13, PointID: 103, Latitude: 0, Longitude: 1}, // C
	}
	svc := NewAssignmentService(store)

	assignmentID, err := svc.CreateAssignment(7, 3, testDay, []uint{11, 12, 13})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.assignments) != 1 {
		t.Fatalf("want exactly 1 assignment, got %d", len(store.assignments))
	}
	a := store.assignments[assignmentID]
	if a.Status != models.AssignmentPending || a.DriverID != 7 || a.VehicleID != 3 {
		t.Fatalf("assignment = %+v", a)
	}

	if len(store.stops) != 3 {
		t.Fatalf("want 3 stops, got %d", len(store.stops))
	}
	bySeq := map[int]uint{}
	for _, s := range store.stops {
		if s.AssignmentID != assignmentID {
			t.Fatalf("stop %d not linked to assignment", s.ID)
		}
		if s.Status != models.StopPending {
			t.Fatalf("stop %d status = %q", s.ID, s.Status)
		}
		if s.BookingID == nil {
			t.Fatalf("stop %d has no booking link", s.ID)
		}
		bySeq[s.StopOrder] = *s.BookingID
	}
	if bySeq[1] != 11 || bySeq[2] != 13 || bySeq[3] != 12 {
		t.Fatalf("stop order = %v, want 11,13,12 at 1,2,3", bySeq)
	}
}

func TestCreateAssignmentTwoRequests(t *testing.T) {
	store := newFakeStore()
	store.resolved = []routing.Candidate{
		{BookingID: 21, PointID: 201, Latitude: 0, Longitude: 0},
		{BookingID: 22, PointID: 202, Latitude: 0, Longitude: 1},
	}
	svc := NewAssignmentService(store)

	if _, err := svc.CreateAssignment(1, 1, testDay, []uint{21, 22}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.assignments) != 1 || len(store.stops) != 2 {
		t.Fatalf("want 1 assignment and 2 stops, got %d and %d",
			len(store.assignments), len(store.stops))
	}
	seqs := map[int]bool{}
	for _, s := range store.stops {
		seqs[s.StopOrder] = true
	}
	if !seqs[1] || !seqs[2] {
		t.Fatalf("sequence positions must be 1 and 2, got %v", seqs)
	}
}

func TestCreateAssignmentInsertFailureWritesNoStops(t *testing.T) {
	store := newFakeStore()
	store.resolved = []routing.Candidate{
		{BookingID: 31, PointID: 301, Latitude: 0, Longitude: 0},
	}
	store.failAssignment = true
	svc := NewAssignmentService(store)

	_, err := svc.CreateAssignment(1, 1, testDay, []uint{31})
	if !errors.Is(err, ErrAssignmentCreateFailed) {
		t.Fatalf("want ErrAssignmentCreateFailed, got %v", err)
	}
	if len(store.stops) != 0 {
		t.Fatalf("no stops may be written after a failed assignment insert, got %d", len(store.stops))
	}
}

func TestCreateAssignmentStopFailureLeavesNoAssignment(t *testing.T) {
	store := newFakeStore()
	store.resolved = []routing.Candidate{
		{BookingID: 31, PointID: 301, Latitude: 0, Longitude: 0},
		{BookingID: 32, PointID: 302, Latitude: 0, Longitude: 1},
	}
	store.failStop = true
	svc := NewAssignmentService(store)

	_, err := svc.CreateAssignment(1, 1, testDay, []uint{31, 32})
	if !errors.Is(err, ErrAssignmentCreateFailed) {
		t.Fatalf("want ErrAssignmentCreateFailed, got %v", err)
	}
	if len(store.assignments) != 0 || len(store.stops) != 0 {
		t.Fatalf("a failed stop insert must roll the whole route back: %d assignments, %d stops",
			len(store.assignments), len(store.stops))
	}
}

package routing

import (
	"wastetrack/internal/geo"
)

// Candidate is one unordered stop the optimizer may sequence: a booking
// resolved to its collection point coordinate.
type Candidate struct {
	BookingID uint
	PointID   uint
	PointName string
	Latitude  float64
	Longitude float64
}

// NearestNeighborOrder sequences candidates with a greedy
// nearest-neighbor heuristic.
//
// The first candidate in the input is taken as the starting position;
// at each step the closest unvisited candidate is appended and becomes
// the new position. Ties keep the first-seen minimum. The result is a
// permutation of the input, O(n²) distance evaluations.
//
// The heuristic minimizes each immediate leg only. It does not attempt
// global tour optimization; the candidate set is one day's pending
// backlog, so the quality/complexity tradeoff is acceptable.
func NearestNeighborOrder(candidates []Candidate) []Candidate {
	if len(candidates) <= 1 {
		return candidates
	}

	remaining := make([]Candidate, len(candidates)-1)
	copy(remaining, candidates[1:])

	ordered := make([]Candidate, 0, len(candidates))
	ordered = append(ordered, candidates[0])
	current := candidates[0]

	for len(remaining) > 0 {
		nearest := 0
		nearestDist := geo.GreatCircleMeters(
			current.Latitude, current.Longitude,
			remaining[0].Latitude, remaining[0].Longitude,
		)
		for i := 1; i < len(remaining); i++ {
			d := geo.GreatCircleMeters(
				current.Latitude, current.Longitude,
				remaining[i].Latitude, remaining[i].Longitude,
			)
			// Strict less-than keeps the first-seen minimum on ties.
			if d < nearestDist {
				nearest = i
				nearestDist = d
			}
		}

		current = remaining[nearest]
		ordered = append(ordered, current)
		remaining = append(remaining[:nearest], remaining[nearest+1:]...)
	}

	return ordered
}

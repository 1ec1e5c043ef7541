package geo

import "math"

// Mean earth radius in meters, per IUGG.
const earthRadiusMeters = 6371008.8

// GreatCircleMeters returns the great-circle distance between two
// coordinates in meters using the haversine formula on a spherical
// earth. A missing coordinate is represented as NaN and yields +Inf,
// so downstream proximity checks reject rather than crash.
func GreatCircleMeters(lat1, lon1, lat2, lon2 float64) float64 {
	if math.IsNaN(lat1) || math.IsNaN(lon1) || math.IsNaN(lat2) || math.IsNaN(lon2) {
		return math.Inf(1)
	}

	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)

	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}

// Missing is the NaN placeholder for an absent coordinate value.
func Missing() float64 { return math.NaN() }

// Coord converts a nullable stored coordinate into a value usable by
// GreatCircleMeters.
func Coord(v *float64) float64 {
	if v == nil {
		return Missing()
	}
	return *v
}

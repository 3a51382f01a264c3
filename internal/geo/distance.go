package geo

import "math"

const (
	// DefaultStoreRadius is how far, in raw latitude/longitude units, a store reaches.
	DefaultStoreRadius = 30.0
)

// Point is a latitude/longitude pair in raw degrees.
type Point struct {
	Lat  float64
	Long float64
}

// Distance returns the planar Euclidean distance between two coordinates.
// Units are raw latitude/longitude degrees, not miles.
func Distance(lat1, long1, lat2, long2 float64) float64 {
	dLat := lat1 - lat2
	dLong := long1 - long2
	return math.Sqrt(dLat*dLat + dLong*dLong)
}

// Between is Distance for two Points.
func Between(a, b Point) float64 {
	return Distance(a.Lat, a.Long, b.Lat, b.Long)
}

// IsWithinRadius reports whether d is strictly inside radius.
// Store listings use this check.
func IsWithinRadius(d, radius float64) bool {
	return d < radius
}

// ExceedsRadius reports whether d is beyond radius.
// Orders are rejected on this check, so a store exactly on the radius can still be ordered from.
func ExceedsRadius(d, radius float64) bool {
	return d > radius
}

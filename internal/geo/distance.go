package geo

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/safetravel/go-travel-safety/internal/models"
)

const (
	earthRadiusKm     = 6371
	earthRadiusMeters = 6371000
)

// DistanceKm returns the great-circle distance between a and b in
// kilometers using the Haversine formula. Symmetric, zero for identical
// points. Out-of-range coordinates are accepted as-is.
func DistanceKm(a, b models.Coordinates) float64 {
	return haversine(a, b, earthRadiusKm)
}

// DistanceMeters is DistanceKm in meters, for radius-filter comparisons.
func DistanceMeters(a, b models.Coordinates) float64 {
	return haversine(a, b, earthRadiusMeters)
}

func haversine(a, b models.Coordinates, radius float64) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return radius * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// PaddedBound returns a bounding box around origin that contains every
// point within radiusMeters. It over-approximates (longitude degrees are
// scaled by cos(latitude), clamped near the poles) so it is safe as a
// prefilter before an exact DistanceMeters check.
func PaddedBound(origin models.Coordinates, radiusMeters float64) orb.Bound {
	latPad := radiusMeters / earthRadiusMeters * 180 / math.Pi

	cosLat := math.Cos(radians(origin.Latitude))
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lonPad := latPad / cosLat

	return orb.Bound{
		Min: orb.Point{origin.Longitude - lonPad, origin.Latitude - latPad},
		Max: orb.Point{origin.Longitude + lonPad, origin.Latitude + latPad},
	}
}

// BoundContains reports whether c falls inside b.
func BoundContains(b orb.Bound, c models.Coordinates) bool {
	return b.Contains(orb.Point{c.Longitude, c.Latitude})
}

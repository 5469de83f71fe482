package geomath

import (
	"errors"
	"math"

	"github.com/emberpixel/hermes/internal/models"
)

const earthRadiusMeters = 6371000

// ErrNonFiniteCoordinate is returned when a latitude or longitude is NaN or infinite.
var ErrNonFiniteCoordinate = errors.New("coordinate is not finite")

// DistanceMeters calculates the great-circle distance between two points in meters
// using the haversine formula.
func DistanceMeters(a, b models.Coordinate) (float64, error) {
	if !finite(a) || !finite(b) {
		return 0, ErrNonFiniteCoordinate
	}

	phi1 := a.Latitude * math.Pi / 180
	phi2 := b.Latitude * math.Pi / 180
	deltaPhi := (b.Latitude - a.Latitude) * math.Pi / 180
	deltaLambda := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c, nil
}

// InCircle reports whether point lies within radiusMeters of center.
func InCircle(center, point models.Coordinate, radiusMeters float64) (bool, error) {
	dist, err := DistanceMeters(center, point)
	if err != nil {
		return false, err
	}

	return dist <= radiusMeters, nil
}

func finite(c models.Coordinate) bool {
	return !math.IsNaN(c.Latitude) && !math.IsInf(c.Latitude, 0) &&
		!math.IsNaN(c.Longitude) && !math.IsInf(c.Longitude, 0)
}

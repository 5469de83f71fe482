package geomath_test

import (
	"math"
	"testing"

	"github.com/emberpixel/hermes/internal/geomath"
	"github.com/emberpixel/hermes/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceMeters(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		point := models.Coordinate{Latitude: 39.9526, Longitude: -75.1652}

		dist, err := geomath.DistanceMeters(point, point)

		require.NoError(t, err)
		assert.Zero(t, dist)
	})

	t.Run("known distance between two stations", func(t *testing.T) {
		// Suburban Station to Jefferson Station, roughly 700m apart.
		suburban := models.Coordinate{Latitude: 39.9539, Longitude: -75.1677}
		jefferson := models.Coordinate{Latitude: 39.9526, Longitude: -75.1581}

		dist, err := geomath.DistanceMeters(suburban, jefferson)

		require.NoError(t, err)
		assert.InDelta(t, 830, dist, 100)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := models.Coordinate{Latitude: 40.0754, Longitude: -75.2143}
		b := models.Coordinate{Latitude: 39.9526, Longitude: -75.1652}

		ab, err := geomath.DistanceMeters(a, b)
		require.NoError(t, err)
		ba, err := geomath.DistanceMeters(b, a)
		require.NoError(t, err)

		assert.InEpsilon(t, ab, ba, 1e-9)
	})

	t.Run("NaN latitude fails", func(t *testing.T) {
		a := models.Coordinate{Latitude: math.NaN(), Longitude: -75.1652}
		b := models.Coordinate{Latitude: 39.9526, Longitude: -75.1652}

		_, err := geomath.DistanceMeters(a, b)

		require.ErrorIs(t, err, geomath.ErrNonFiniteCoordinate)
	})

	t.Run("infinite longitude fails", func(t *testing.T) {
		a := models.Coordinate{Latitude: 39.9526, Longitude: -75.1652}
		b := models.Coordinate{Latitude: 39.9526, Longitude: math.Inf(1)}

		_, err := geomath.DistanceMeters(a, b)

		require.ErrorIs(t, err, geomath.ErrNonFiniteCoordinate)
	})
}

func TestInCircle(t *testing.T) {
	center := models.Coordinate{Latitude: 39.9526, Longitude: -75.1652}

	t.Run("point inside radius", func(t *testing.T) {
		// ~100m north of center.
		point := models.Coordinate{Latitude: 39.9535, Longitude: -75.1652}

		inside, err := geomath.InCircle(center, point, 200)

		require.NoError(t, err)
		assert.True(t, inside)
	})

	t.Run("point outside radius", func(t *testing.T) {
		// ~1.1km north of center.
		point := models.Coordinate{Latitude: 39.9626, Longitude: -75.1652}

		inside, err := geomath.InCircle(center, point, 200)

		require.NoError(t, err)
		assert.False(t, inside)
	})

	t.Run("center is inside its own circle", func(t *testing.T) {
		inside, err := geomath.InCircle(center, center, 200)

		require.NoError(t, err)
		assert.True(t, inside)
	})

	t.Run("non-finite point fails", func(t *testing.T) {
		point := models.Coordinate{Latitude: math.NaN(), Longitude: math.NaN()}

		_, err := geomath.InCircle(center, point, 200)

		require.ErrorIs(t, err, geomath.ErrNonFiniteCoordinate)
	})
}

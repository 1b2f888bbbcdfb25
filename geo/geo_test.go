package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bersihin/bersihin-api/geo"
)

func TestDistanceKmZeroForSamePoint(t *testing.T) {
	p := geo.Coordinate{Latitude: -7.7956, Longitude: 110.3695}
	assert.Equal(t, 0.0, geo.DistanceKm(p, p))
}

func TestDistanceKmKnownDistance(t *testing.T) {
	// Yogyakarta city center to Prambanan temple, roughly 15km
	yogya := geo.Coordinate{Latitude: -7.7956, Longitude: 110.3695}
	prambanan := geo.Coordinate{Latitude: -7.7520, Longitude: 110.4915}

	d := geo.DistanceKm(yogya, prambanan)
	assert.InDelta(t, 14.3, d, 0.5)
}

func TestDistanceKmMonotonic(t *testing.T) {
	origin := geo.Coordinate{Latitude: 0, Longitude: 0}
	near := geo.Coordinate{Latitude: 0.01, Longitude: 0}
	far := geo.Coordinate{Latitude: 0.02, Longitude: 0}

	assert.Less(t, geo.DistanceKm(origin, near), geo.DistanceKm(origin, far))
}

func TestCoordinateValid(t *testing.T) {
	assert.True(t, geo.Coordinate{Latitude: -7.7956, Longitude: 110.3695}.Valid())
	assert.True(t, geo.Coordinate{Latitude: 90, Longitude: -180}.Valid())
	assert.False(t, geo.Coordinate{Latitude: 91, Longitude: 0}.Valid())
	assert.False(t, geo.Coordinate{Latitude: 0, Longitude: 181}.Valid())
	assert.False(t, geo.Coordinate{Latitude: -90.1, Longitude: 0}.Valid())
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "350m", geo.FormatDistance(0.35))
	assert.Equal(t, "1.2km", geo.FormatDistance(1.2))
	assert.Equal(t, "0m", geo.FormatDistance(-3))
	assert.Equal(t, "12.0km", geo.FormatDistance(12.04))
}

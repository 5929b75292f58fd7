// Package spatial holds great-circle helpers for geographic coordinates.
package spatial

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusKm is Earth's mean radius in kilometers
const EarthRadiusKm = 6371.0

// Valid reports whether lat/lon are finite and within [-90,90] and [-180,180].
func Valid(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return s2.LatLngFromDegrees(lat, lon).IsValid()
}

// DistanceKm returns the great-circle distance between two points in kilometers.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// Box is a latitude/longitude rectangle in degrees.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// BoundingBox returns a rectangle containing every point within radiusKm of lat/lon.
// Near the poles, or when the radius spans the antimeridian, the longitude range
// widens to the full [-180, 180].
func BoundingBox(lat, lon, radiusKm float64) Box {
	angular := s1.Angle(radiusKm / EarthRadiusKm)
	dLat := angular.Degrees()

	b := Box{
		MinLat: math.Max(lat-dLat, -90),
		MaxLat: math.Min(lat+dLat, 90),
		MinLon: -180,
		MaxLon: 180,
	}
	if b.MinLat == -90 || b.MaxLat == 90 {
		return b
	}

	cosLat := math.Cos(s2.LatLngFromDegrees(lat, lon).Lat.Radians())
	dLon := (s1.Angle(math.Asin(math.Min(1, math.Sin(angular.Radians())/cosLat)))).Degrees()
	if lon-dLon < -180 || lon+dLon > 180 {
		return b
	}
	b.MinLon = lon - dLon
	b.MaxLon = lon + dLon
	return b
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

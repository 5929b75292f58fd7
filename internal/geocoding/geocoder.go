// Package geocoding resolves birth place names to coordinates.
package geocoding

import (
	"context"
	"errors"
)

var (
	// ErrNotFound means the provider had no match for the query.
	ErrNotFound = errors.New("place not found")

	// ErrUnavailable means the provider could not be reached or is being shed by the breaker.
	ErrUnavailable = errors.New("geocoder unavailable")

	// ErrEmptyQuery is returned for blank queries.
	ErrEmptyQuery = errors.New("query cannot be empty")
)

// Location represents a geocoded location
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

// Geocoder converts a free-form place name to coordinates
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Location, error)
}

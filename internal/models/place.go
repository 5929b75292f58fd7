package models

import "time"

// Place is a geocoded birth place.
type Place struct {
	ID        int64     `json:"id,omitempty" db:"id"`
	Query     string    `json:"query" db:"query"` // normalized lookup key
	Name      string    `json:"name" db:"name"`   // provider display name
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Source    string    `json:"source" db:"source"` // nominatim, cache
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Place sources
const (
	PlaceSourceNominatim = "nominatim"
	PlaceSourceCache     = "cache"
)

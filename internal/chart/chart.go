// Package chart assembles natal charts from an ephemeris provider and the
// angle, sign and house arithmetic in package astro.
package chart

import (
	"fmt"
	"time"

	"github.com/jengzang/astro-backend-go/internal/astro"
	"github.com/jengzang/astro-backend-go/internal/ephemeris"
)

// Point is an ecliptic position expressed as a sign and the degree within it.
type Point struct {
	Sign      astro.Sign `json:"sign"`
	Degree    float64    `json:"degree"`    // [0, 30)
	Longitude float64    `json:"longitude"` // [0, 360)
}

// NewPoint splits a longitude into its sign and in-sign degree.
func NewPoint(longitude float64) Point {
	lon := astro.NormalizeDegrees(longitude)
	sign, deg := astro.DegreeToSign(lon)
	return Point{Sign: sign, Degree: deg, Longitude: lon}
}

// PlanetPosition is one body's placement in the chart.
type PlanetPosition struct {
	Sign       astro.Sign `json:"sign"`
	Degree     float64    `json:"degree"`
	House      int        `json:"house"`
	Retrograde bool       `json:"retrograde"`
	Longitude  float64    `json:"longitude"`
}

// Chart is a computed natal chart. It is never mutated after Calculate returns.
type Chart struct {
	Instant     time.Time                         `json:"instant"`
	Zodiac      astro.Zodiac                      `json:"zodiac"`
	Ayanamsa    float64                           `json:"ayanamsa,omitempty"`
	HouseSystem string                            `json:"house_system"`
	Ascendant   Point                             `json:"ascendant"`
	Midheaven   Point                             `json:"midheaven"`
	Planets     map[ephemeris.Body]PlanetPosition `json:"planets"`
	Houses      astro.HouseCusps                  `json:"houses"`
	Skipped     []ephemeris.Body                  `json:"skipped,omitempty"`
}

// Planet returns the position of body, if it was computed.
func (c *Chart) Planet(body ephemeris.Body) (PlanetPosition, bool) {
	p, ok := c.Planets[body]
	return p, ok
}

// SignOf returns the sign of body, or false when the body was skipped.
func (c *Chart) SignOf(body ephemeris.Body) (astro.Sign, bool) {
	p, ok := c.Planets[body]
	return p.Sign, ok
}

// InHouse returns the bodies placed in house, in chart order.
func (c *Chart) InHouse(house int) []ephemeris.Body {
	var out []ephemeris.Body
	for _, b := range ephemeris.Bodies {
		if p, ok := c.Planets[b]; ok && p.House == house {
			out = append(out, b)
		}
	}
	return out
}

// Options control how a chart is calculated.
type Options struct {
	// Zodiac selects tropical (default) or Lahiri sidereal longitudes.
	Zodiac astro.Zodiac

	// Location, when set, is the zone the civil birth time was recorded in.
	// When nil the calendar fields are used as UTC with no conversion.
	Location *time.Location
}

// CalculationError is a hard failure of the chart computation.
type CalculationError struct {
	Op  string
	Err error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("chart calculation failed at %s: %v", e.Op, e.Err)
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

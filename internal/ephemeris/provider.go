// Package ephemeris supplies geocentric ecliptic longitudes and sidereal time.
package ephemeris

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Body is a tracked celestial body.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

// Bodies lists every tracked body in chart order.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto}

var bodyNames = [...]string{
	"Sun", "Moon", "Mercury", "Venus", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune", "Pluto",
}

func (b Body) String() string {
	if b < Sun || b > Pluto {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// Luminary reports whether b is the Sun or the Moon.
func (b Body) Luminary() bool {
	return b == Sun || b == Moon
}

// MarshalText encodes the body as its name, so map[Body]T keys serialize readably.
func (b Body) MarshalText() ([]byte, error) {
	if b < Sun || b > Pluto {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBody, int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText decodes a body name.
func (b *Body) UnmarshalText(text []byte) error {
	parsed, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBody looks up a body by name, case-insensitively.
func ParseBody(name string) (Body, error) {
	for i, n := range bodyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Body(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBody, name)
}

var (
	// ErrBodyUnavailable means the provider cannot produce a position for the body at that instant.
	ErrBodyUnavailable = errors.New("ephemeris unavailable for body")

	// ErrUnknownBody means the body identifier is not one of the tracked bodies.
	ErrUnknownBody = errors.New("unknown body")
)

// Provider gives geocentric apparent ecliptic longitudes and Greenwich sidereal time.
type Provider interface {
	// Name returns the provider name for logging.
	Name() string

	// Longitude returns the geocentric apparent ecliptic longitude of body at t, in [0, 360).
	// Failures wrap ErrBodyUnavailable.
	Longitude(body Body, t time.Time) (float64, error)

	// SiderealTime returns Greenwich apparent sidereal time at t, in hours [0, 24).
	SiderealTime(t time.Time) float64
}

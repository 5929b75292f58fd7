package astro

import (
	"fmt"
	"strings"
	"time"
)

// Zodiac selects the reference frame for sign boundaries.
type Zodiac string

const (
	Tropical Zodiac = "tropical"
	Sidereal Zodiac = "sidereal"
)

// ParseZodiac accepts "tropical"/"western" and "sidereal"/"vedic". Empty input is tropical.
func ParseZodiac(s string) (Zodiac, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tropical", "western":
		return Tropical, nil
	case "sidereal", "vedic":
		return Sidereal, nil
	default:
		return "", fmt.Errorf("unknown zodiac %q: want tropical or sidereal", s)
	}
}

const (
	lahiriAtJ2000  = 23.853   // degrees
	precessionRate = 0.013969 // degrees per Julian year (50.29")
)

var j2000 = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)

// LahiriAyanamsa returns the Lahiri ayanamsa in degrees for the instant, as a linear
// precession from its J2000 value.
func LahiriAyanamsa(t time.Time) float64 {
	years := t.Sub(j2000).Hours() / 24 / 365.25
	return lahiriAtJ2000 + precessionRate*years
}

// Offset returns the longitude correction to add for the zodiac at instant t.
// Tropical charts need no correction; sidereal charts subtract the ayanamsa.
func (z Zodiac) Offset(t time.Time) float64 {
	if z == Sidereal {
		return -LahiriAyanamsa(t)
	}
	return 0
}

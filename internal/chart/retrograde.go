package chart

import (
	"time"

	"github.com/jengzang/astro-backend-go/internal/astro"
	"github.com/jengzang/astro-backend-go/internal/ephemeris"
)

// retrogradeStep is the interval over which apparent motion is sampled.
const retrogradeStep = 24 * time.Hour

// IsRetrograde reports whether body's apparent longitude decreases over the day
// after t, given its longitude now at t. The Sun and Moon are never retrograde and
// are not sampled.
func IsRetrograde(p ephemeris.Provider, body ephemeris.Body, t time.Time, now float64) (bool, error) {
	if body.Luminary() {
		return false, nil
	}

	next, err := p.Longitude(body, t.Add(retrogradeStep))
	if err != nil {
		return false, err
	}

	return astro.AngularDifference(now, next) < 0, nil
}

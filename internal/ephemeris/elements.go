package ephemeris

import (
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/meeus/v3/planetelements"
	"github.com/soniakeys/meeus/v3/solar"
)

// elementIndex maps planets to the mean-element tables of Meeus ch. 31.
var elementIndex = map[Body]int{
	Mercury: planetelements.Mercury,
	Venus:   planetelements.Venus,
	Mars:    planetelements.Mars,
	Jupiter: planetelements.Jupiter,
	Saturn:  planetelements.Saturn,
	Uranus:  planetelements.Uranus,
	Neptune: planetelements.Neptune,
}

// keplerSource moves each planet along the ellipse of its mean elements of date.
// The Earth comes from the solar theory, which is referenced to the same equinox.
type keplerSource struct{}

func (keplerSource) heliocentric(body Body, jde float64) (vec3, error) {
	if body == earthBody {
		T := base.J2000Century(jde)
		s, _ := solar.True(T)
		return fromSpherical(s.Rad()+math.Pi, 0, solar.Radius(T)), nil
	}
	p, ok := elementIndex[body]
	if !ok {
		return vec3{}, fmt.Errorf("no orbital elements for %s", body)
	}
	var el planetelements.Elements
	planetelements.Mean(p, jde, &el)
	return orbitPosition(&el), nil
}

// orbitPosition places a body on the orbit described by el, in the ecliptic frame of el.
func orbitPosition(el *planetelements.Elements) vec3 {
	E := kepler.Kepler3(el.Ecc, el.Lon-el.Peri)
	r := kepler.Radius(E, el.Ecc, el.Axis)
	// argument of latitude
	u := kepler.True(E, el.Ecc) + el.Peri - el.Node

	sinU, cosU := u.Sincos()
	sinN, cosN := el.Node.Sincos()
	sinI, cosI := el.Inc.Sincos()

	return vec3{
		X: r * (cosN*cosU - sinN*sinU*cosI),
		Y: r * (sinN*cosU + cosN*sinU*cosI),
		Z: r * sinU * sinI,
	}
}

package ephemeris

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/pluto"
	"github.com/soniakeys/meeus/v3/precess"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
)

// lightTimeDays is the light travel time for one AU, in days.
const lightTimeDays = 0.0057755183

// Pluto's series from Meeus ch. 37 is only defined for these years.
const (
	plutoFirstYear = 1885
	plutoLastYear  = 2099
)

// heliocentricSource returns the heliocentric position of a planet (or the Earth,
// for Body(-1)) at jde, referenced to the mean ecliptic and equinox of date.
type heliocentricSource interface {
	heliocentric(body Body, jde float64) (vec3, error)
}

// Meeus computes positions with the algorithms of Jean Meeus' "Astronomical Algorithms":
// the solar and lunar theories, Pluto's periodic series, IAU nutation and apparent
// sidereal time. Planets come from mean orbital elements or, when loaded, full VSOP87.
type Meeus struct {
	name    string
	planets heliocentricSource
}

// NewMeeus returns a provider that needs no data files.
func NewMeeus() *Meeus {
	return &Meeus{name: "meeus", planets: keplerSource{}}
}

// Name returns the provider name.
func (m *Meeus) Name() string {
	return m.name
}

// SiderealTime returns Greenwich apparent sidereal time in hours.
func (m *Meeus) SiderealTime(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	// unit.Time is seconds of a day
	seconds := float64(sidereal.Apparent(jd))
	hours := math.Mod(seconds/3600, 24)
	if hours < 0 {
		hours += 24
	}
	return hours
}

// Longitude returns the geocentric apparent ecliptic longitude of body at t.
func (m *Meeus) Longitude(body Body, t time.Time) (float64, error) {
	jde := julian.TimeToJD(t.UTC())

	switch body {
	case Sun:
		return normalize(solar.ApparentLongitude(base.J2000Century(jde)).Deg()), nil
	case Moon:
		lambda, _, _ := moonposition.Position(jde)
		dpsi, _ := nutation.Nutation(jde)
		return normalize(lambda.Deg() + dpsi.Deg()), nil
	case Pluto:
		if y := t.UTC().Year(); y < plutoFirstYear || y > plutoLastYear {
			return 0, fmt.Errorf("%w: %s outside %d-%d", ErrBodyUnavailable, body, plutoFirstYear, plutoLastYear)
		}
		return m.geocentric(plutoSource{earth: m.planets}, body, jde)
	case Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune:
		return m.geocentric(m.planets, body, jde)
	default:
		return 0, fmt.Errorf("%w: %w: %d", ErrBodyUnavailable, ErrUnknownBody, int(body))
	}
}

// geocentric converts heliocentric positions of date into an apparent longitude,
// correcting for light time and nutation in longitude.
func (m *Meeus) geocentric(src heliocentricSource, body Body, jde float64) (float64, error) {
	earth, err := m.planets.heliocentric(earthBody, jde)
	if err != nil {
		return 0, fmt.Errorf("%w: earth position: %v", ErrBodyUnavailable, err)
	}

	p, err := src.heliocentric(body, jde)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrBodyUnavailable, body, err)
	}

	// one light-time iteration is enough at this precision
	tau := lightTimeDays * p.sub(earth).norm()
	p, err = src.heliocentric(body, jde-tau)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrBodyUnavailable, body, err)
	}

	lon := p.sub(earth).longitude()
	dpsi, _ := nutation.Nutation(jde)
	return normalize(lon + dpsi.Deg()), nil
}

// earthBody selects the Earth in a heliocentricSource.
const earthBody Body = -1

// plutoSource serves Pluto from its periodic series, precessed from J2000 to the date,
// and defers the Earth to another source.
type plutoSource struct {
	earth heliocentricSource
}

func (s plutoSource) heliocentric(body Body, jde float64) (vec3, error) {
	if body != Pluto {
		return s.earth.heliocentric(body, jde)
	}
	l, b, r := pluto.Heliocentric(jde)
	ecl := &coord.Ecliptic{Lon: l, Lat: b}
	precess.EclipticPosition(ecl, ecl, 2000, base.JDEToJulianYear(jde), 0, 0)
	return fromSpherical(ecl.Lon.Rad(), ecl.Lat.Rad(), r), nil
}

// vsopSource serves the Earth and the seven classical planets from VSOP87 series files.
type vsopSource struct {
	series map[Body]*pp.V87Planet
}

func (s vsopSource) heliocentric(body Body, jde float64) (vec3, error) {
	v, ok := s.series[body]
	if !ok {
		return vec3{}, fmt.Errorf("no VSOP87 series for %s", body)
	}
	l, b, r := v.Position(jde)
	return fromSpherical(l.Rad(), b.Rad(), r), nil
}

var vsopIndex = map[Body]int{
	earthBody: pp.Earth,
	Mercury:   pp.Mercury,
	Venus:     pp.Venus,
	Mars:      pp.Mars,
	Jupiter:   pp.Jupiter,
	Saturn:    pp.Saturn,
	Uranus:    pp.Uranus,
	Neptune:   pp.Neptune,
}

// NewVSOP87 returns a provider whose planets come from the VSOP87B files in dir.
func NewVSOP87(dir string) (*Meeus, error) {
	series := make(map[Body]*pp.V87Planet, len(vsopIndex))
	for body, ibody := range vsopIndex {
		v, err := pp.LoadPlanetPath(ibody, dir)
		if err != nil {
			name := "Earth"
			if body != earthBody {
				name = body.String()
			}
			return nil, fmt.Errorf("failed to load VSOP87 series for %s from %s: %w", name, dir, err)
		}
		series[body] = v
	}
	return &Meeus{name: "vsop87", planets: vsopSource{series: series}}, nil
}

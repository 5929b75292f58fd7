package analysis

import (
	"context"

	"github.com/jengzang/astro-backend-go/internal/astro"
	"github.com/jengzang/astro-backend-go/internal/chart"
	"github.com/jengzang/astro-backend-go/internal/ephemeris"
)

// DignityKind is a planet's essential dignity in a sign.
type DignityKind string

const (
	Domicile  DignityKind = "Domicile"
	Exalted   DignityKind = "Exalted"
	Detriment DignityKind = "Detriment"
	Fall      DignityKind = "Fall"
	Neutral   DignityKind = "Neutral"
)

// Dignity pairs the dignity with a 0-100 strength score.
type Dignity struct {
	Kind     DignityKind `json:"kind"`
	Strength int         `json:"strength"`
}

var dignityStrength = map[DignityKind]int{
	Domicile:  100,
	Exalted:   90,
	Detriment: 30,
	Fall:      20,
	Neutral:   50,
}

type rulership struct {
	domicile  []astro.Sign
	exalted   astro.Sign
	detriment []astro.Sign
	fall      astro.Sign
}

// Traditional rulerships only; Uranus, Neptune and Pluto are always Neutral.
var rulerships = map[ephemeris.Body]rulership{
	ephemeris.Sun:     {[]astro.Sign{astro.Leo}, astro.Aries, []astro.Sign{astro.Aquarius}, astro.Libra},
	ephemeris.Moon:    {[]astro.Sign{astro.Cancer}, astro.Taurus, []astro.Sign{astro.Capricorn}, astro.Scorpio},
	ephemeris.Mercury: {[]astro.Sign{astro.Gemini, astro.Virgo}, astro.Virgo, []astro.Sign{astro.Sagittarius, astro.Pisces}, astro.Pisces},
	ephemeris.Venus:   {[]astro.Sign{astro.Taurus, astro.Libra}, astro.Pisces, []astro.Sign{astro.Scorpio, astro.Aries}, astro.Virgo},
	ephemeris.Mars:    {[]astro.Sign{astro.Aries, astro.Scorpio}, astro.Capricorn, []astro.Sign{astro.Libra, astro.Taurus}, astro.Cancer},
	ephemeris.Jupiter: {[]astro.Sign{astro.Sagittarius, astro.Pisces}, astro.Cancer, []astro.Sign{astro.Gemini, astro.Virgo}, astro.Capricorn},
	ephemeris.Saturn:  {[]astro.Sign{astro.Capricorn, astro.Aquarius}, astro.Libra, []astro.Sign{astro.Cancer, astro.Leo}, astro.Aries},
}

func contains(signs []astro.Sign, s astro.Sign) bool {
	for _, x := range signs {
		if x == s {
			return true
		}
	}
	return false
}

func dignity(kind DignityKind) Dignity {
	return Dignity{Kind: kind, Strength: dignityStrength[kind]}
}

// DignityOf returns body's dignity in sign. Domicile is checked first, so a sign
// that is both domicile and exaltation (Mercury in Virgo) counts as Domicile.
func DignityOf(body ephemeris.Body, sign astro.Sign) Dignity {
	r, ok := rulerships[body]
	if !ok {
		return dignity(Neutral)
	}

	switch {
	case contains(r.domicile, sign):
		return dignity(Domicile)
	case r.exalted == sign:
		return dignity(Exalted)
	case contains(r.detriment, sign):
		return dignity(Detriment)
	case r.fall == sign:
		return dignity(Fall)
	default:
		return dignity(Neutral)
	}
}

type dignityAnalyzer struct {
	baseAnalyzer
}

func (a *dignityAnalyzer) Analyze(_ context.Context, c *chart.Chart, r *Report) error {
	r.Dignities = make(map[ephemeris.Body]Dignity, len(c.Planets))
	for body, p := range c.Planets {
		r.Dignities[body] = DignityOf(body, p.Sign)
	}
	return nil
}

func init() {
	RegisterAnalyzer("dignity", func() Analyzer {
		return &dignityAnalyzer{baseAnalyzer{name: "dignity"}}
	})
}

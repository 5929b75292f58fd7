package analysis

import (
	"context"
	"math"

	"github.com/jengzang/astro-backend-go/internal/astro"
	"github.com/jengzang/astro-backend-go/internal/chart"
	"github.com/jengzang/astro-backend-go/internal/ephemeris"
)

// AspectKind names a major aspect.
type AspectKind string

const (
	Conjunction AspectKind = "Conjunction"
	Opposition  AspectKind = "Opposition"
	Trine       AspectKind = "Trine"
	Square      AspectKind = "Square"
	Sextile     AspectKind = "Sextile"
)

type aspectDef struct {
	kind  AspectKind
	angle float64
	orb   float64
}

var aspectDefs = []aspectDef{
	{Conjunction, 0, 8},
	{Opposition, 180, 8},
	{Trine, 120, 8},
	{Square, 90, 8},
	{Sextile, 60, 6},
}

// Aspect is an angular relationship between two placed bodies.
type Aspect struct {
	First      ephemeris.Body `json:"first"`
	Second     ephemeris.Body `json:"second"`
	Kind       AspectKind     `json:"kind"`
	Separation float64        `json:"separation"`
	Orb        float64        `json:"orb"`
}

// Involves reports whether body is one side of the aspect.
func (a Aspect) Involves(body ephemeris.Body) bool {
	return a.First == body || a.Second == body
}

// FindAspects returns every aspect within orb between pairs of planets, in chart
// order. Separations are measured on full ecliptic longitudes.
func FindAspects(planets map[ephemeris.Body]chart.PlanetPosition) []Aspect {
	var aspects []Aspect

	for i, first := range ephemeris.Bodies {
		p1, ok := planets[first]
		if !ok {
			continue
		}
		for _, second := range ephemeris.Bodies[i+1:] {
			p2, ok := planets[second]
			if !ok {
				continue
			}

			sep := astro.Separation(p1.Longitude, p2.Longitude)
			for _, def := range aspectDefs {
				orb := math.Abs(sep - def.angle)
				if orb <= def.orb {
					aspects = append(aspects, Aspect{
						First:      first,
						Second:     second,
						Kind:       def.kind,
						Separation: sep,
						Orb:        orb,
					})
				}
			}
		}
	}

	return aspects
}

type aspectAnalyzer struct {
	baseAnalyzer
}

func (a *aspectAnalyzer) Analyze(_ context.Context, c *chart.Chart, r *Report) error {
	r.Aspects = FindAspects(c.Planets)
	return nil
}

func init() {
	RegisterAnalyzer("aspects", func() Analyzer {
		return &aspectAnalyzer{baseAnalyzer{name: "aspects"}}
	})
}

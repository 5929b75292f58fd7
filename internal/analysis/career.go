package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/jengzang/astro-backend-go/internal/chart"
	"github.com/jengzang/astro-backend-go/internal/ephemeris"
)

var careerHints = map[ephemeris.Body]string{
	ephemeris.Sun:     "leadership roles, authority positions.",
	ephemeris.Moon:    "public-facing work, caring professions.",
	ephemeris.Mercury: "communication, writing, teaching careers.",
	ephemeris.Venus:   "arts, beauty, diplomacy fields.",
	ephemeris.Mars:    "competitive fields, athletics, military.",
	ephemeris.Jupiter: "education, law, philosophy, expansion.",
	ephemeris.Saturn:  "structured careers, management, long-term building.",
}

var saturnLessons = map[AspectKind]string{
	Square: "Obstacles requiring discipline to overcome.",
	Trine:  "Natural career advancement through hard work.",
}

// CareerDefault is returned when nothing in the chart speaks to career.
const CareerDefault = "Career path open to many possibilities."

// CareerAnalysis reads career indicators from the tenth house occupants and the
// aspects Saturn makes.
func CareerAnalysis(c *chart.Chart, aspects []Aspect) string {
	var b strings.Builder

	if tenth := c.InHouse(10); len(tenth) > 0 {
		b.WriteString("Career indicators:")
		for _, body := range tenth {
			p := c.Planets[body]
			fmt.Fprintf(&b, " %s in %s (%s) suggests", body, p.Sign, DignityOf(body, p.Sign).Kind)
			if hint, ok := careerHints[body]; ok {
				b.WriteString(" " + hint)
			} else {
				b.WriteString(" an unconventional path.")
			}
		}
	}

	var lessons []string
	for _, a := range aspects {
		if !a.Involves(ephemeris.Saturn) {
			continue
		}
		if text, ok := saturnLessons[a.Kind]; ok {
			lessons = append(lessons, text)
		}
	}
	if len(lessons) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Career challenges/lessons: " + strings.Join(lessons, " "))
	}

	if b.Len() == 0 {
		return CareerDefault
	}
	return b.String()
}

type careerAnalyzer struct {
	baseAnalyzer
}

func (a *careerAnalyzer) Analyze(_ context.Context, c *chart.Chart, r *Report) error {
	aspects := r.Aspects
	if aspects == nil {
		aspects = FindAspects(c.Planets)
	}
	r.Career = CareerAnalysis(c, aspects)
	return nil
}

func init() {
	RegisterAnalyzer("career", func() Analyzer {
		return &careerAnalyzer{baseAnalyzer{name: "career"}}
	})
}

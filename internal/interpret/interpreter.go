// Package interpret turns a chart and its analysis report into readable text.
package interpret

import (
	"context"
	"fmt"
	"strings"

	"github.com/jengzang/astro-backend-go/internal/analysis"
	"github.com/jengzang/astro-backend-go/internal/chart"
	"github.com/jengzang/astro-backend-go/internal/ephemeris"
)

// Interpretation is the prose reading of one chart.
type Interpretation struct {
	Personality   string `json:"personality"`
	Relationships string `json:"relationships"`
	Career        string `json:"career"`
	Answer        string `json:"answer,omitempty"`
}

// Interpreter produces readings for a chart. Implementations may call out to
// remote services, so both methods take a context.
type Interpreter interface {
	Interpret(ctx context.Context, c *chart.Chart, r *analysis.Report) (*Interpretation, error)
	Answer(ctx context.Context, c *chart.Chart, r *analysis.Report, question string) (string, error)
}

// Thresholds on the dignity strength score.
const (
	strongPlanet = 70
	weakPlanet   = 40
)

var _ Interpreter = (*RuleBased)(nil)

// RuleBased answers from fixed trait tables keyed by sign.
type RuleBased struct{}

// NewRuleBased creates the rule-based interpreter.
func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

// Interpret writes personality, relationship and career readings.
func (i *RuleBased) Interpret(ctx context.Context, c *chart.Chart, r *analysis.Report) (*Interpretation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r == nil {
		r = &analysis.Report{}
	}

	return &Interpretation{
		Personality:   personality(c),
		Relationships: relationships(c),
		Career:        career(c, r),
	}, nil
}

// Answer routes the question by keyword to one area of the chart.
func (i *RuleBased) Answer(ctx context.Context, c *chart.Chart, r *analysis.Report, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r == nil {
		r = &analysis.Report{}
	}

	q := strings.ToLower(question)
	switch {
	case containsAny(q, "career", "job", "work"):
		return careerAnswer(c, r), nil
	case containsAny(q, "personality", "who am i", "character"):
		return personality(c), nil
	case containsAny(q, "love", "relationship", "partner"):
		return "In relationships:\n\n" + relationships(c), nil
	case containsAny(q, "strength", "good at", "talent"):
		return strengthsAnswer(c, r), nil
	case containsAny(q, "challenge", "weakness", "difficult"):
		return challengesAnswer(c, r), nil
	case containsAny(q, "money", "finance", "wealth"):
		return financeAnswer(c), nil
	case containsAny(q, "element", "balance", "temperament"):
		return balanceAnswer(c, r), nil
	default:
		return fmt.Sprintf("Based on your %s rising chart:\n\n%s\n\n"+
			"I can tell you more about your career, relationships, personality, strengths, or challenges. What interests you most?",
			c.Ascendant.Sign, personality(c)), nil
	}
}

func balanceAnswer(c *chart.Chart, r *analysis.Report) string {
	b := r.Balance
	if b == nil {
		computed := analysis.ChartBalance(c)
		b = &computed
	}
	if b.DominantElement == "" {
		return "There are not enough placed planets to judge your elemental balance."
	}

	msg := fmt.Sprintf("Your chart leans toward %s signs (%d planets), with %s as the leading modality.",
		b.DominantElement, b.Elements[b.DominantElement], b.DominantModality)
	switch {
	case b.ElementSpread >= 0.9:
		msg += " The elements are evenly represented, so you adapt across very different situations."
	case b.ElementSpread < 0.6:
		msg += fmt.Sprintf(" %s energy clearly dominates how you meet the world.", b.DominantElement)
	}
	return msg
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func personality(c *chart.Chart) string {
	var b strings.Builder
	fmt.Fprintf(&b, "With %s rising, you naturally appear %s.", c.Ascendant.Sign, ascendantTraits.of(c.Ascendant.Sign))
	if sun, ok := c.SignOf(ephemeris.Sun); ok {
		fmt.Fprintf(&b, "\n\nYour Sun in %s shapes your core identity: you're driven by %s.", sun, sunTraits.of(sun))
	}
	if moon, ok := c.SignOf(ephemeris.Moon); ok {
		fmt.Fprintf(&b, "\n\nYour Moon in %s means emotionally you %s.", moon, moonTraits.of(moon))
	}
	return b.String()
}

func relationships(c *chart.Chart) string {
	var parts []string
	if venus, ok := c.SignOf(ephemeris.Venus); ok {
		parts = append(parts, fmt.Sprintf("Your Venus in %s shows you value %s in love.", venus, venusTraits.of(venus)))
	}
	if mars, ok := c.SignOf(ephemeris.Mars); ok {
		parts = append(parts, fmt.Sprintf("Mars in %s indicates you pursue relationships with %s.", mars, marsTraits.of(mars)))
	}
	if len(parts) == 0 {
		return "Your chart shows unique patterns in relationships worth exploring."
	}
	return strings.Join(parts, "\n\n")
}

func career(c *chart.Chart, r *analysis.Report) string {
	text := r.Career
	if text == "" {
		text = analysis.CareerAnalysis(c, aspectsOf(c, r))
	}
	if sun, ok := c.SignOf(ephemeris.Sun); ok {
		text += fmt.Sprintf("\n\nWith the Sun in %s, fields such as %s suit you.", sun, careerFields.of(sun))
	}
	return text
}

func careerAnswer(c *chart.Chart, r *analysis.Report) string {
	answer := "Looking at your career indicators:\n\n" + career(c, r)
	if strong := rankedPlanets(c, r, func(d analysis.Dignity) bool { return d.Strength > strongPlanet }); len(strong) > 0 {
		p := c.Planets[strong[0].body]
		answer += fmt.Sprintf("\n\nYour %s in %s (%s) gives you natural strengths you can leverage professionally.",
			strong[0].body, p.Sign, strong[0].dignity.Kind)
	}
	return answer
}

func strengthsAnswer(c *chart.Chart, r *analysis.Report) string {
	strong := rankedPlanets(c, r, func(d analysis.Dignity) bool { return d.Strength > strongPlanet })
	if len(strong) == 0 {
		return "Your natural strengths:\n\nAll your planets are in decent positions, giving you balanced abilities across many areas."
	}

	var b strings.Builder
	b.WriteString("Your natural strengths:\n")
	for _, s := range strong {
		fmt.Fprintf(&b, "\n• %s in %s (%s) - %s", s.body, c.Planets[s.body].Sign, s.dignity.Kind, orDefault(planetStrengths[s.body], "positive influence"))
	}
	return b.String()
}

func challengesAnswer(c *chart.Chart, r *analysis.Report) string {
	weak := rankedPlanets(c, r, func(d analysis.Dignity) bool { return d.Strength < weakPlanet })
	if len(weak) == 0 {
		return "Areas for growth:\n\nYou don't have any significantly challenged placements. Your chart shows good overall balance."
	}

	var b strings.Builder
	b.WriteString("Areas for growth:\n")
	for _, w := range weak {
		fmt.Fprintf(&b, "\n• %s in %s (%s) - %s", w.body, c.Planets[w.body].Sign, w.dignity.Kind, orDefault(planetChallenges[w.body], "area for growth"))
	}
	return b.String()
}

func financeAnswer(c *chart.Chart) string {
	var b strings.Builder
	b.WriteString("Regarding finances:")
	if jupiter, ok := c.SignOf(ephemeris.Jupiter); ok {
		fmt.Fprintf(&b, "\n\nJupiter in %s suggests growth through %s energy, expanding through this sign's qualities.", jupiter, jupiter)
	}
	if saturn, ok := c.SignOf(ephemeris.Saturn); ok {
		fmt.Fprintf(&b, "\n\nSaturn in %s teaches you about wealth through %s energy, with lessons and discipline in this area.", saturn, saturn)
	}
	return b.String()
}

type rankedPlanet struct {
	body    ephemeris.Body
	dignity analysis.Dignity
}

// rankedPlanets returns placed bodies whose dignity passes keep, in chart order.
func rankedPlanets(c *chart.Chart, r *analysis.Report, keep func(analysis.Dignity) bool) []rankedPlanet {
	var out []rankedPlanet
	for _, body := range ephemeris.Bodies {
		p, ok := c.Planet(body)
		if !ok {
			continue
		}
		d, ok := r.Dignities[body]
		if !ok {
			d = analysis.DignityOf(body, p.Sign)
		}
		if keep(d) {
			out = append(out, rankedPlanet{body: body, dignity: d})
		}
	}
	return out
}

func aspectsOf(c *chart.Chart, r *analysis.Report) []analysis.Aspect {
	if r.Aspects != nil {
		return r.Aspects
	}
	return analysis.FindAspects(c.Planets)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

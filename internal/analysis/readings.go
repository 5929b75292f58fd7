package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/jengzang/astro-backend-go/internal/chart"
	"github.com/jengzang/astro-backend-go/internal/ephemeris"
)

// HouseReading is the short text for one body's house placement.
type HouseReading struct {
	Body  ephemeris.Body `json:"body"`
	House int            `json:"house"`
	Text  string         `json:"text"`
}

var houseTexts = map[ephemeris.Body][12]string{
	ephemeris.Sun: {
		"Strong sense of self, natural leadership, confident presence",
		"Values personal resources, earns through own efforts, self-worth tied to possessions",
		"Communicative, curious mind, relationship with siblings important",
		"Deep connection to home/family, may have dominant father figure",
		"Creative self-expression, playful, enjoys romance and children",
		"Health-conscious, dedicated worker, finds identity through service",
		"Identity through partnerships, attracts strong partners",
		"Interest in transformation, psychology, occult matters",
		"Philosophical, loves travel and higher learning",
		"Career-focused, public recognition important, ambitious",
		"Social circles important, humanitarian goals, friendship-oriented",
		"Spiritual, introspective, may prefer solitude or behind-scenes work",
	},
	ephemeris.Moon: {
		"Emotionally expressive, moods visible to others, nurturing personality",
		"Emotional security through finances, fluctuating income",
		"Emotionally communicative, close to siblings, sensitive to environment",
		"Very strong placement, deep family bonds, emotional home life",
		"Emotional creativity, nurturing toward children, romantic nature",
		"Emotional health connection, caring in service, may worry about health",
		"Needs emotional partnership, attracted to nurturing partners",
		"Deep emotional transformations, psychic sensitivity, inherited emotions",
		"Emotional connection to beliefs, may travel for emotional fulfillment",
		"Public emotional expression, career in caring professions possible",
		"Emotional friendships, humanitarian feelings, group emotional bonds",
		"Hidden emotions, private emotional life, spiritual sensitivity",
	},
}

// Ordinal formats n as 1st, 2nd, 3rd, 4th, ... 11th, 12th.
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// PlanetInHouse returns the reading for body in house (1..12).
func PlanetInHouse(body ephemeris.Body, house int) string {
	if texts, ok := houseTexts[body]; ok && house >= 1 && house <= len(texts) {
		return texts[house-1]
	}
	return fmt.Sprintf("%s in %s house brings %s energy to this life area",
		body, Ordinal(house), strings.ToLower(body.String()))
}

type houseAnalyzer struct {
	baseAnalyzer
}

func (a *houseAnalyzer) Analyze(_ context.Context, c *chart.Chart, r *Report) error {
	r.HouseReadings = r.HouseReadings[:0]
	for _, body := range ephemeris.Bodies {
		p, ok := c.Planet(body)
		if !ok {
			continue
		}
		r.HouseReadings = append(r.HouseReadings, HouseReading{
			Body:  body,
			House: p.House,
			Text:  PlanetInHouse(body, p.House),
		})
	}
	return nil
}

func init() {
	RegisterAnalyzer("houses", func() Analyzer {
		return &houseAnalyzer{baseAnalyzer{name: "houses"}}
	})
}

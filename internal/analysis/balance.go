package analysis

import (
	"context"

	"github.com/jengzang/astro-backend-go/internal/astro"
	"github.com/jengzang/astro-backend-go/internal/chart"
	"github.com/jengzang/astro-backend-go/internal/stats"
)

var (
	elementOrder  = []astro.Element{astro.Fire, astro.Earth, astro.Air, astro.Water}
	modalityOrder = []astro.Modality{astro.Cardinal, astro.Fixed, astro.Mutable}
)

// Balance is the spread of a chart's planets across elements and modalities.
// Spread is the normalized entropy of the counts: 1 is perfectly even.
type Balance struct {
	Elements         map[astro.Element]int  `json:"elements"`
	Modalities       map[astro.Modality]int `json:"modalities"`
	DominantElement  astro.Element          `json:"dominant_element,omitempty"`
	DominantModality astro.Modality         `json:"dominant_modality,omitempty"`
	ElementSpread    float64                `json:"element_spread"`
	ModalitySpread   float64                `json:"modality_spread"`
}

// ChartBalance counts the chart's placed planets by element and modality.
// Ties for dominant go to the earlier element (Fire, Earth, Air, Water) or
// modality (Cardinal, Fixed, Mutable).
func ChartBalance(c *chart.Chart) Balance {
	b := Balance{
		Elements:   make(map[astro.Element]int, len(elementOrder)),
		Modalities: make(map[astro.Modality]int, len(modalityOrder)),
	}
	for _, e := range elementOrder {
		b.Elements[e] = 0
	}
	for _, m := range modalityOrder {
		b.Modalities[m] = 0
	}
	if len(c.Planets) == 0 {
		return b
	}

	for _, p := range c.Planets {
		info := p.Sign.Info()
		b.Elements[info.Element]++
		b.Modalities[info.Modality]++
	}

	elements := make([]float64, len(elementOrder))
	for i, e := range elementOrder {
		elements[i] = float64(b.Elements[e])
	}
	modalities := make([]float64, len(modalityOrder))
	for i, m := range modalityOrder {
		modalities[i] = float64(b.Modalities[m])
	}

	b.DominantElement = elementOrder[stats.ArgMax(elements)]
	b.DominantModality = modalityOrder[stats.ArgMax(modalities)]
	b.ElementSpread = stats.NormalizedEntropy(elements)
	b.ModalitySpread = stats.NormalizedEntropy(modalities)
	return b
}

type balanceAnalyzer struct {
	baseAnalyzer
}

func init() {
	RegisterAnalyzer("balance", func() Analyzer {
		return &balanceAnalyzer{baseAnalyzer{name: "balance"}}
	})
}

func (a *balanceAnalyzer) Analyze(_ context.Context, c *chart.Chart, r *Report) error {
	b := ChartBalance(c)
	r.Balance = &b
	return nil
}

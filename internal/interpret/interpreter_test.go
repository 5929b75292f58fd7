package interpret

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/astro-backend-go/internal/analysis"
	"github.com/jengzang/astro-backend-go/internal/astro"
	"github.com/jengzang/astro-backend-go/internal/chart"
	"github.com/jengzang/astro-backend-go/internal/ephemeris"
)

func at(lon float64, house int) chart.PlanetPosition {
	p := chart.NewPoint(lon)
	return chart.PlanetPosition{Sign: p.Sign, Degree: p.Degree, Longitude: p.Longitude, House: house}
}

func sampleChart() *chart.Chart {
	return &chart.Chart{
		Ascendant: chart.NewPoint(200), // Libra
		Planets: map[ephemeris.Body]chart.PlanetPosition{
			ephemeris.Sun:     at(130, 10), // Leo, Domicile
			ephemeris.Moon:    at(95, 9),   // Cancer, Domicile
			ephemeris.Venus:   at(170, 11), // Virgo, Fall
			ephemeris.Mars:    at(10, 6),   // Aries, Domicile
			ephemeris.Jupiter: at(280, 3),  // Capricorn, Fall
			ephemeris.Saturn:  at(250, 2),  // Sagittarius, Neutral
		},
	}
}

func TestInterpret(t *testing.T) {
	i := NewRuleBased()
	c := sampleChart()

	got, err := i.Interpret(context.Background(), c, nil)
	require.NoError(t, err)

	assert.Contains(t, got.Personality, "With Libra rising, you naturally appear diplomatic, charming, and relationship-focused.")
	assert.Contains(t, got.Personality, "Your Sun in Leo")
	assert.Contains(t, got.Personality, "Your Moon in Cancer means emotionally you need deep emotional connection and security.")
	assert.Contains(t, got.Relationships, "Your Venus in Virgo shows you value practical acts of service and improvement in love.")
	assert.Contains(t, got.Relationships, "Mars in Aries")
	assert.Contains(t, got.Career, "Career indicators: Sun in Leo (Domicile)")
	assert.Contains(t, got.Career, "entertainment, management, politics")
	assert.Empty(t, got.Answer)
}

func TestInterpretUsesReport(t *testing.T) {
	r := &analysis.Report{Career: "Precomputed."}
	got, err := NewRuleBased().Interpret(context.Background(), sampleChart(), r)
	require.NoError(t, err)
	assert.True(t, len(got.Career) > 0)
	assert.Contains(t, got.Career, "Precomputed.")
}

func TestInterpretSkippedBodies(t *testing.T) {
	c := sampleChart()
	delete(c.Planets, ephemeris.Sun)
	delete(c.Planets, ephemeris.Venus)
	delete(c.Planets, ephemeris.Mars)
	c.Skipped = []ephemeris.Body{ephemeris.Sun, ephemeris.Venus, ephemeris.Mars}

	got, err := NewRuleBased().Interpret(context.Background(), c, nil)
	require.NoError(t, err)

	assert.NotContains(t, got.Personality, "Your Sun in")
	assert.Contains(t, got.Personality, "Your Moon in Cancer")
	assert.Equal(t, "Your chart shows unique patterns in relationships worth exploring.", got.Relationships)
	assert.NotContains(t, got.Career, "With the Sun in")
}

func TestAnswer(t *testing.T) {
	i := NewRuleBased()
	c := sampleChart()

	tests := []struct {
		question string
		contains string
	}{
		{"What about my CAREER?", "Looking at your career indicators:"},
		{"which job fits me", "gives you natural strengths you can leverage professionally"},
		{"Who am I really?", "With Libra rising"},
		{"Will I find a partner?", "In relationships:"},
		{"What am I good at", "• Sun in Leo (Domicile) - strong sense of self and natural leadership"},
		{"my weaknesses", "• Venus in Virgo (Fall) - relationships and values may need development"},
		{"money luck", "Jupiter in Capricorn suggests growth through Capricorn energy"},
		{"what is my element balance", "Your chart leans toward Fire signs (3 planets), with Cardinal as the leading modality."},
		{"hello", "Based on your Libra rising chart:"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got, err := i.Answer(context.Background(), c, nil, tt.question)
			require.NoError(t, err)
			assert.Contains(t, got, tt.contains)
		})
	}
}

func TestAnswerBalancedChart(t *testing.T) {
	c := &chart.Chart{
		Ascendant: chart.NewPoint(0),
		Planets: map[ephemeris.Body]chart.PlanetPosition{
			ephemeris.Mars:   at(65, 1),  // Gemini, Neutral
			ephemeris.Uranus: at(300, 5), // outer planets are always Neutral
		},
	}
	i := NewRuleBased()

	got, err := i.Answer(context.Background(), c, nil, "strengths?")
	require.NoError(t, err)
	assert.Contains(t, got, "balanced abilities")

	got, err = i.Answer(context.Background(), c, nil, "challenges?")
	require.NoError(t, err)
	assert.Contains(t, got, "good overall balance")

	interp, err := i.Interpret(context.Background(), c, nil)
	require.NoError(t, err)
	assert.Equal(t, "With Aries rising, you naturally appear bold, energetic, and direct in your approach.", interp.Personality)
	assert.Contains(t, interp.Career, analysis.CareerDefault)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRuleBased().Interpret(ctx, sampleChart(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = NewRuleBased().Answer(ctx, sampleChart(), nil, "career")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSignTraitsOutOfRange(t *testing.T) {
	assert.Empty(t, sunTraits.of(astro.Sign(12)))
	assert.Equal(t, "compassion, spirituality, and unity", sunTraits.of(astro.Pisces))
}

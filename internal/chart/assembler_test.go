package chart

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jengzang/astro-backend-go/internal/astro"
	"github.com/jengzang/astro-backend-go/internal/ephemeris"
	"github.com/jengzang/astro-backend-go/internal/models"
)

var epoch = time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)

// fakeProvider places each body at a fixed longitude that drifts by a per-day rate.
type fakeProvider struct {
	gst     float64
	base    map[ephemeris.Body]float64
	rate    map[ephemeris.Body]float64
	failing map[ephemeris.Body]bool
}

func newFakeProvider() *fakeProvider {
	p := &fakeProvider{
		gst:     6,
		base:    map[ephemeris.Body]float64{},
		rate:    map[ephemeris.Body]float64{},
		failing: map[ephemeris.Body]bool{},
	}
	for i, b := range ephemeris.Bodies {
		p.base[b] = float64(i) * 33
		p.rate[b] = 1
	}
	return p
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) SiderealTime(time.Time) float64 { return p.gst }

func (p *fakeProvider) Longitude(body ephemeris.Body, t time.Time) (float64, error) {
	if p.failing[body] {
		return 0, fmt.Errorf("%w: %s", ephemeris.ErrBodyUnavailable, body)
	}
	days := t.Sub(epoch).Hours() / 24
	return astro.NormalizeDegrees(p.base[body] + p.rate[body]*days), nil
}

func newDelhi() models.BirthDetails {
	return models.BirthDetails{Year: 1990, Month: 6, Day: 15, Hour: 12, Minute: 0, Latitude: 28.6139, Longitude: 77.2090}
}

func assertConsistent(t *testing.T, c *Chart) {
	t.Helper()

	assert.Equal(t, c.Houses[0], c.Ascendant.Longitude)
	assert.Equal(t, c.Houses[9], c.Midheaven.Longitude)
	assert.InDelta(t, astro.NormalizeDegrees(c.Houses[0]+180), c.Houses[6], 1e-9)

	for body, p := range c.Planets {
		assert.GreaterOrEqual(t, p.Longitude, 0.0, body.String())
		assert.Less(t, p.Longitude, 360.0, body.String())
		assert.GreaterOrEqual(t, p.Degree, 0.0, body.String())
		assert.Less(t, p.Degree, 30.0, body.String())
		assert.InDelta(t, p.Longitude, float64(p.Sign)*30+p.Degree, 1e-9, body.String())
		assert.GreaterOrEqual(t, p.House, 1, body.String())
		assert.LessOrEqual(t, p.House, 12, body.String())

		house, ok := astro.FindHouse(p.Longitude, c.Houses)
		assert.True(t, ok)
		assert.Equal(t, house, p.House, body.String())
	}
}

func TestCalculateNewDelhi(t *testing.T) {
	a := NewAssembler(ephemeris.NewMeeus(), zap.NewNop())

	c, err := a.Calculate(newDelhi(), Options{})
	require.NoError(t, err)

	assert.Equal(t, time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC), c.Instant)
	assert.Equal(t, astro.Tropical, c.Zodiac)
	assert.Equal(t, astro.HouseSystemTrisection, c.HouseSystem)
	assert.Len(t, c.Planets, len(ephemeris.Bodies))
	assert.Empty(t, c.Skipped)

	sun, ok := c.Planet(ephemeris.Sun)
	require.True(t, ok)
	assert.Equal(t, astro.Gemini, sun.Sign)
	assert.InDelta(t, 24, sun.Degree, 1)
	assert.False(t, sun.Retrograde)

	moon, _ := c.Planet(ephemeris.Moon)
	assert.False(t, moon.Retrograde)

	assertConsistent(t, c)
}

func TestCalculateSkipsUnavailableBody(t *testing.T) {
	p := newFakeProvider()
	p.failing[ephemeris.Pluto] = true

	core, logs := observer.New(zapcore.WarnLevel)
	a := NewAssembler(p, zap.New(core))

	c, err := a.Calculate(newDelhi(), Options{})
	require.NoError(t, err)

	assert.Len(t, c.Planets, 9)
	assert.Equal(t, []ephemeris.Body{ephemeris.Pluto}, c.Skipped)
	_, ok := c.Planet(ephemeris.Pluto)
	assert.False(t, ok)

	entries := logs.FilterMessage("Skipping body").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Pluto", entries[0].ContextMap()["body"])

	assertConsistent(t, c)
}

func TestCalculateRealPlutoOutOfRange(t *testing.T) {
	a := NewAssembler(ephemeris.NewMeeus(), nil)

	d := newDelhi()
	d.Year = 2100
	c, err := a.Calculate(d, Options{})
	require.NoError(t, err)

	assert.Len(t, c.Planets, 9)
	assert.Equal(t, []ephemeris.Body{ephemeris.Pluto}, c.Skipped)
}

func TestCalculateRetrograde(t *testing.T) {
	p := newFakeProvider()
	p.rate[ephemeris.Mars] = -0.5
	// luminaries are never flagged
	p.rate[ephemeris.Sun] = -0.5
	p.rate[ephemeris.Moon] = -13

	c, err := NewAssembler(p, nil).Calculate(newDelhi(), Options{})
	require.NoError(t, err)

	for body, pos := range c.Planets {
		assert.Equal(t, body == ephemeris.Mars, pos.Retrograde, body.String())
	}
	assert.False(t, c.Planets[ephemeris.Sun].Retrograde)
	assert.False(t, c.Planets[ephemeris.Moon].Retrograde)
}

// countingProvider records how often each body is looked up.
type countingProvider struct {
	*fakeProvider
	calls map[ephemeris.Body]int
}

func (p countingProvider) Longitude(body ephemeris.Body, t time.Time) (float64, error) {
	p.calls[body]++
	return p.fakeProvider.Longitude(body, t)
}

func TestCalculateSamplesEachBodyOnce(t *testing.T) {
	p := countingProvider{fakeProvider: newFakeProvider(), calls: map[ephemeris.Body]int{}}

	_, err := NewAssembler(p, nil).Calculate(newDelhi(), Options{})
	require.NoError(t, err)

	for _, body := range ephemeris.Bodies {
		want := 2
		if body.Luminary() {
			want = 1
		}
		assert.Equal(t, want, p.calls[body], body.String())
	}
}

func TestCalculateRetrogradeAcrossZero(t *testing.T) {
	p := newFakeProvider()
	start := time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC)
	days := start.Sub(epoch).Hours() / 24

	// Venus moves 359.8 → 0.2, Saturn moves 0.2 → 359.8
	p.base[ephemeris.Venus] = 359.8 - 0.4*days
	p.rate[ephemeris.Venus] = 0.4
	p.base[ephemeris.Saturn] = 0.2 + 0.4*days
	p.rate[ephemeris.Saturn] = -0.4

	c, err := NewAssembler(p, nil).Calculate(newDelhi(), Options{})
	require.NoError(t, err)

	assert.False(t, c.Planets[ephemeris.Venus].Retrograde)
	assert.True(t, c.Planets[ephemeris.Saturn].Retrograde)
}

// flakyProvider fails only when asked for positions after the chart instant.
type flakyProvider struct {
	*fakeProvider
	cutoff time.Time
}

func (p flakyProvider) Longitude(body ephemeris.Body, t time.Time) (float64, error) {
	if t.After(p.cutoff) {
		return 0, errors.New("no data")
	}
	return p.fakeProvider.Longitude(body, t)
}

func TestCalculateRetrogradeFailureIsNotRetrograde(t *testing.T) {
	base := newFakeProvider()
	base.rate[ephemeris.Mars] = -0.5
	p := flakyProvider{fakeProvider: base, cutoff: time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC)}

	core, logs := observer.New(zapcore.WarnLevel)
	c, err := NewAssembler(p, zap.New(core)).Calculate(newDelhi(), Options{})
	require.NoError(t, err)

	assert.Len(t, c.Planets, 10)
	assert.False(t, c.Planets[ephemeris.Mars].Retrograde)
	assert.Equal(t, 8, logs.FilterMessage("Retrograde check failed").Len())
}

func TestCalculateSidereal(t *testing.T) {
	p := newFakeProvider()
	a := NewAssembler(p, nil)

	tropical, err := a.Calculate(newDelhi(), Options{Zodiac: astro.Tropical})
	require.NoError(t, err)
	sidereal, err := a.Calculate(newDelhi(), Options{Zodiac: astro.Sidereal})
	require.NoError(t, err)

	ayanamsa := astro.LahiriAyanamsa(tropical.Instant)
	assert.InDelta(t, 23.72, ayanamsa, 0.01)
	assert.InDelta(t, ayanamsa, sidereal.Ayanamsa, 1e-9)
	assert.Zero(t, tropical.Ayanamsa)

	for body, trop := range tropical.Planets {
		sid := sidereal.Planets[body]
		assert.InDelta(t, -ayanamsa, astro.AngularDifference(trop.Longitude, sid.Longitude), 1e-9, body.String())
		assert.Equal(t, trop.House, sid.House, "rotating everything together keeps houses")
	}
	assert.InDelta(t, -ayanamsa, astro.AngularDifference(tropical.Ascendant.Longitude, sidereal.Ascendant.Longitude), 1e-9)

	assertConsistent(t, sidereal)
}

func TestCalculateTimezone(t *testing.T) {
	a := NewAssembler(newFakeProvider(), nil)

	d := newDelhi()
	d.Hour, d.Minute = 17, 30
	ist := time.FixedZone("IST", 5*3600+30*60)

	c, err := a.Calculate(d, Options{Location: ist})
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC), c.Instant)

	utc, err := a.Calculate(d, Options{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 6, 15, 17, 30, 0, 0, time.UTC), utc.Instant)
}

func TestCalculateErrors(t *testing.T) {
	a := NewAssembler(newFakeProvider(), nil)

	t.Run("out of range year", func(t *testing.T) {
		d := newDelhi()
		d.Year = 1500
		c, err := a.Calculate(d, Options{})
		assert.Nil(t, c)

		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"Year must be between 1900 and 2100"}, verr.Messages)
	})

	t.Run("impossible date", func(t *testing.T) {
		d := newDelhi()
		d.Month, d.Day = 2, 30
		c, err := a.Calculate(d, Options{})
		assert.Nil(t, c)

		var cerr *CalculationError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "instant", cerr.Op)
	})

	t.Run("non-finite sidereal time", func(t *testing.T) {
		p := newFakeProvider()
		p.gst = math.NaN()
		c, err := NewAssembler(p, nil).Calculate(newDelhi(), Options{})
		assert.Nil(t, c)

		var cerr *CalculationError
		require.ErrorAs(t, err, &cerr)
	})
}

func TestCalculateNonFiniteLongitudeIsSkipped(t *testing.T) {
	p := newFakeProvider()
	p.base[ephemeris.Neptune] = math.Inf(1)

	c, err := NewAssembler(p, nil).Calculate(newDelhi(), Options{})
	require.NoError(t, err)
	assert.Equal(t, []ephemeris.Body{ephemeris.Neptune}, c.Skipped)
}

func TestChartHelpers(t *testing.T) {
	c, err := NewAssembler(newFakeProvider(), nil).Calculate(newDelhi(), Options{})
	require.NoError(t, err)

	total := 0
	for house := 1; house <= astro.HouseCount; house++ {
		for _, b := range c.InHouse(house) {
			assert.Equal(t, house, c.Planets[b].House)
			total++
		}
	}
	assert.Equal(t, len(c.Planets), total)

	sign, ok := c.SignOf(ephemeris.Sun)
	require.True(t, ok)
	assert.Equal(t, c.Planets[ephemeris.Sun].Sign, sign)
}

func TestNewPoint(t *testing.T) {
	p := NewPoint(-5)
	assert.Equal(t, astro.Pisces, p.Sign)
	assert.InDelta(t, 25, p.Degree, 1e-9)
	assert.InDelta(t, 355, p.Longitude, 1e-9)
}

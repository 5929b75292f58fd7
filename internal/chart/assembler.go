package chart

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/jengzang/astro-backend-go/internal/astro"
	"github.com/jengzang/astro-backend-go/internal/ephemeris"
	"github.com/jengzang/astro-backend-go/internal/models"
)

// Assembler computes charts against a single ephemeris provider.
type Assembler struct {
	provider ephemeris.Provider
	logger   *zap.Logger
}

// NewAssembler creates an assembler. A nil logger discards log output.
func NewAssembler(provider ephemeris.Provider, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{provider: provider, logger: logger}
}

// Calculate builds the natal chart for details.
//
// Out-of-range input returns *models.ValidationError and no chart. A body the provider
// cannot place is left out of Planets and listed in Skipped; the rest of the chart is
// still returned. Failures that leave no usable chart are *CalculationError.
func (a *Assembler) Calculate(details models.BirthDetails, opts Options) (*Chart, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	zodiac := opts.Zodiac
	if zodiac == "" {
		zodiac = astro.Tropical
	}

	instant, err := details.Instant(opts.Location)
	if err != nil {
		return nil, &CalculationError{Op: "instant", Err: err}
	}

	gst := a.provider.SiderealTime(instant)
	if math.IsNaN(gst) || math.IsInf(gst, 0) {
		return nil, &CalculationError{Op: "sidereal time", Err: errors.New("non-finite sidereal time")}
	}

	angles := astro.ComputeAngles(gst, details.Latitude, details.Longitude)
	if math.IsNaN(angles.Ascendant) || math.IsNaN(angles.Midheaven) {
		return nil, &CalculationError{Op: "angles", Err: errors.New("non-finite ascendant or midheaven")}
	}

	// trisection commutes with rotation, so the sidereal frame is a shift of the tropical cusps
	offset := zodiac.Offset(instant)
	cusps := astro.Cusps(angles.Ascendant, angles.Midheaven).Shift(offset)

	c := &Chart{
		Instant:     instant,
		Zodiac:      zodiac,
		HouseSystem: astro.HouseSystemTrisection,
		Ascendant:   NewPoint(cusps.Ascendant()),
		Midheaven:   NewPoint(cusps.Midheaven()),
		Planets:     make(map[ephemeris.Body]PlanetPosition, len(ephemeris.Bodies)),
		Houses:      cusps,
	}
	if zodiac == astro.Sidereal {
		c.Ayanamsa = -offset
	}

	for _, body := range ephemeris.Bodies {
		lon, err := a.provider.Longitude(body, instant)
		if err == nil && (math.IsNaN(lon) || math.IsInf(lon, 0)) {
			err = errors.New("non-finite longitude")
		}
		if err != nil {
			a.logger.Warn("Skipping body",
				zap.Stringer("body", body),
				zap.Time("instant", instant),
				zap.String("provider", a.provider.Name()),
				zap.Error(err),
			)
			c.Skipped = append(c.Skipped, body)
			continue
		}

		retro, err := IsRetrograde(a.provider, body, instant, lon)
		if err != nil {
			a.logger.Warn("Retrograde check failed",
				zap.Stringer("body", body),
				zap.Error(err),
			)
			retro = false
		}

		lon = astro.NormalizeDegrees(lon + offset)
		sign, deg := astro.DegreeToSign(lon)

		house, ok := astro.FindHouse(lon, cusps)
		if !ok {
			a.logger.Error("No house matched longitude",
				zap.Stringer("body", body),
				zap.Float64("longitude", lon),
				zap.Float64s("cusps", cusps[:]),
			)
		}

		c.Planets[body] = PlanetPosition{
			Sign:       sign,
			Degree:     deg,
			House:      house,
			Retrograde: retro,
			Longitude:  lon,
		}
	}

	a.logger.Debug("Chart calculated",
		zap.Time("instant", instant),
		zap.String("zodiac", string(zodiac)),
		zap.Int("planets", len(c.Planets)),
		zap.Int("skipped", len(c.Skipped)),
	)

	return c, nil
}

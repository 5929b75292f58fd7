package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jengzang/astro-backend-go/internal/analysis"
	"github.com/jengzang/astro-backend-go/internal/astro"
	"github.com/jengzang/astro-backend-go/internal/chart"
	"github.com/jengzang/astro-backend-go/internal/interpret"
	"github.com/jengzang/astro-backend-go/internal/metrics"
	"github.com/jengzang/astro-backend-go/internal/models"
)

// ErrTimeout is returned when a calculation outlives its context.
var ErrTimeout = errors.New("chart calculation timed out")

// DefaultChartTimeout applies when the caller's context has no deadline.
const DefaultChartTimeout = 5 * time.Second

// ChartResult is everything returned for one chart request.
type ChartResult struct {
	ID             string                    `json:"id"`
	Chart          *chart.Chart              `json:"chart"`
	Analysis       *analysis.Report          `json:"analysis"`
	Interpretation *interpret.Interpretation `json:"interpretation"`
	Place          *models.Place             `json:"place,omitempty"`
}

// ChartServiceConfig holds the tunables of ChartService.
type ChartServiceConfig struct {
	Timeout time.Duration
	Zodiac  astro.Zodiac // used when the request names none
}

// ChartService handles chart business logic
type ChartService struct {
	assembler   *chart.Assembler
	engine      *analysis.Engine
	interpreter interpret.Interpreter
	places      *PlaceService
	metrics     *metrics.Collector
	logger      *zap.Logger
	cfg         ChartServiceConfig
}

// NewChartService wires a chart service. places and m may be nil.
func NewChartService(
	assembler *chart.Assembler,
	engine *analysis.Engine,
	interpreter interpret.Interpreter,
	places *PlaceService,
	m *metrics.Collector,
	logger *zap.Logger,
	cfg ChartServiceConfig,
) *ChartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultChartTimeout
	}
	if cfg.Zodiac == "" {
		cfg.Zodiac = astro.Tropical
	}
	if places == nil {
		places = NewPlaceService(nil, nil, m, logger)
	}
	return &ChartService{
		assembler:   assembler,
		engine:      engine,
		interpreter: interpreter,
		places:      places,
		metrics:     m,
		logger:      logger,
		cfg:         cfg,
	}
}

func invalid(err error) error {
	return &models.ValidationError{Messages: []string{err.Error()}}
}

// Calculate resolves the request's place, computes the chart and runs analysis and
// interpretation over it.
func (s *ChartService) Calculate(ctx context.Context, req models.ChartRequest) (*ChartResult, error) {
	details, err := req.Details()
	if err != nil {
		return nil, invalid(err)
	}
	// reject bad dates before spending a geocoder call on the place
	if err := details.ValidateCalendar(); err != nil {
		return nil, err
	}

	zodiac := s.cfg.Zodiac
	if strings.TrimSpace(req.SystemType) != "" {
		if zodiac, err = astro.ParseZodiac(req.SystemType); err != nil {
			return nil, invalid(err)
		}
	}

	var loc *time.Location
	if tz := strings.TrimSpace(req.Timezone); tz != "" {
		if loc, err = time.LoadLocation(tz); err != nil {
			return nil, invalid(fmt.Errorf("unknown timezone %q", tz))
		}
	}

	var place *models.Place
	if needsPlace(req) {
		place, err = s.places.Resolve(ctx, req.BirthPlace)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve birth place: %w", err)
		}
		details.Latitude, details.Longitude = place.Latitude, place.Longitude
	}

	c, err := s.Compute(ctx, details, chart.Options{Zodiac: zodiac, Location: loc})
	if err != nil {
		return nil, err
	}

	interp, report, err := s.Interpret(ctx, c, req.Question)
	if err != nil {
		return nil, err
	}

	return &ChartResult{
		ID:             uuid.NewString(),
		Chart:          c,
		Analysis:       report,
		Interpretation: interp,
		Place:          place,
	}, nil
}

// needsPlace reports whether coordinates must come from the geocoder: a place name
// was given and the structured birth data carries no coordinates.
func needsPlace(req models.ChartRequest) bool {
	if strings.TrimSpace(req.BirthPlace) == "" {
		return false
	}
	return req.Birth == nil || (req.Birth.Latitude == 0 && req.Birth.Longitude == 0)
}

type computeResult struct {
	chart *chart.Chart
	err   error
}

// Compute runs the assembler as one unit of work bounded by ctx, or by the
// configured timeout when ctx has no deadline.
func (s *ChartService) Compute(ctx context.Context, details models.BirthDetails, opts chart.Options) (*chart.Chart, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	if opts.Zodiac == "" {
		opts.Zodiac = s.cfg.Zodiac
	}

	start := time.Now()
	done := make(chan computeResult, 1)
	go func() {
		c, err := s.assembler.Calculate(details, opts)
		done <- computeResult{chart: c, err: err}
	}()

	select {
	case <-ctx.Done():
		s.observe(opts.Zodiac, metrics.OutcomeTimeout, time.Since(start), nil)
		s.logger.Warn("Chart calculation abandoned", zap.Error(ctx.Err()))
		return nil, fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
	case res := <-done:
		d := time.Since(start)
		var verr *models.ValidationError
		switch {
		case errors.As(res.err, &verr):
			s.observe(opts.Zodiac, metrics.OutcomeInvalid, d, nil)
			return nil, res.err
		case res.err != nil:
			s.observe(opts.Zodiac, metrics.OutcomeError, d, nil)
			s.logger.Error("Chart calculation failed", zap.Error(res.err))
			return nil, res.err
		}

		skipped := make([]string, len(res.chart.Skipped))
		for i, b := range res.chart.Skipped {
			skipped[i] = b.String()
		}
		s.observe(opts.Zodiac, metrics.OutcomeOK, d, skipped)
		return res.chart, nil
	}
}

func (s *ChartService) observe(zodiac astro.Zodiac, outcome string, d time.Duration, skipped []string) {
	if s.metrics != nil {
		s.metrics.ObserveChart(string(zodiac), outcome, d, skipped)
	}
}

// Interpret analyzes an already computed chart and answers question, if any.
func (s *ChartService) Interpret(ctx context.Context, c *chart.Chart, question string) (*interpret.Interpretation, *analysis.Report, error) {
	report, err := s.engine.Run(ctx, c)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to analyze chart: %w", err)
	}

	interp, err := s.interpreter.Interpret(ctx, c, report)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to interpret chart: %w", err)
	}
	if q := strings.TrimSpace(question); q != "" {
		if interp.Answer, err = s.interpreter.Answer(ctx, c, report, q); err != nil {
			return nil, nil, fmt.Errorf("failed to answer question: %w", err)
		}
	}
	return interp, report, nil
}

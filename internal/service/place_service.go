package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jengzang/astro-backend-go/internal/geocoding"
	"github.com/jengzang/astro-backend-go/internal/metrics"
	"github.com/jengzang/astro-backend-go/internal/models"
	"github.com/jengzang/astro-backend-go/internal/repository"
	"github.com/jengzang/astro-backend-go/internal/spatial"
)

// PlaceResolver turns a place name into a stored place.
type PlaceResolver interface {
	Resolve(ctx context.Context, query string) (*models.Place, error)
}

// NearbyFinder searches stored places by distance.
type NearbyFinder interface {
	Nearest(ctx context.Context, lat, lon, radiusKm float64) (*models.Place, float64, error)
}

// NearbyPlace is a stored place and its distance from the searched point.
type NearbyPlace struct {
	*models.Place
	DistanceKm float64 `json:"distance_km"`
}

// DefaultNearbyRadiusKm bounds Nearest when the caller gives no radius.
const DefaultNearbyRadiusKm = 50.0

// PlaceService handles place lookup business logic
type PlaceService struct {
	resolver PlaceResolver
	nearby   NearbyFinder
	metrics  *metrics.Collector
	logger   *zap.Logger
}

// NewPlaceService creates a place service. A nil resolver means geocoding is disabled
// and every lookup fails with geocoding.ErrUnavailable; a nil nearby disables Nearest.
func NewPlaceService(resolver PlaceResolver, nearby NearbyFinder, m *metrics.Collector, logger *zap.Logger) *PlaceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlaceService{resolver: resolver, nearby: nearby, metrics: m, logger: logger}
}

// Resolve looks up query, recording where the answer came from.
func (s *PlaceService) Resolve(ctx context.Context, query string) (*models.Place, error) {
	if s.resolver == nil {
		return nil, fmt.Errorf("%w: geocoding is disabled", geocoding.ErrUnavailable)
	}

	p, err := s.resolver.Resolve(ctx, query)
	if err != nil {
		outcome := metrics.OutcomeError
		if errors.Is(err, geocoding.ErrNotFound) {
			outcome = "not_found"
		}
		s.observe(models.PlaceSourceNominatim, outcome)
		s.logger.Info("Place lookup failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	s.observe(p.Source, metrics.OutcomeOK)
	return p, nil
}

// Nearest returns the stored place closest to lat/lon within radiusKm.
func (s *PlaceService) Nearest(ctx context.Context, lat, lon, radiusKm float64) (*NearbyPlace, error) {
	if s.nearby == nil {
		return nil, fmt.Errorf("%w: place cache is disabled", geocoding.ErrUnavailable)
	}
	if !spatial.Valid(lat, lon) {
		return nil, &models.ValidationError{Messages: []string{
			fmt.Sprintf("coordinates %g,%g are out of range", lat, lon),
		}}
	}
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}

	p, d, err := s.nearby.Nearest(ctx, lat, lon, radiusKm)
	if errors.Is(err, repository.ErrPlaceNotFound) {
		return nil, fmt.Errorf("%w: no stored place within %g km", geocoding.ErrNotFound, radiusKm)
	}
	if err != nil {
		return nil, err
	}
	return &NearbyPlace{Place: p, DistanceKm: d}, nil
}

func (s *PlaceService) observe(source, outcome string) {
	if s.metrics != nil {
		s.metrics.ObservePlaceLookup(source, outcome)
	}
}

package geocoding

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/jengzang/astro-backend-go/internal/models"
	"github.com/jengzang/astro-backend-go/internal/repository"
)

// PlaceStore persists resolved places.
type PlaceStore interface {
	GetByQuery(ctx context.Context, query string) (*models.Place, error)
	Save(ctx context.Context, p *models.Place) error
}

// Resolver looks places up in the store before asking the upstream geocoder,
// and stores every upstream answer.
type Resolver struct {
	store    PlaceStore
	upstream Geocoder
	logger   *zap.Logger
}

// NewResolver creates a cache-first resolver. store may be nil to disable caching.
func NewResolver(store PlaceStore, upstream Geocoder, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: store, upstream: upstream, logger: logger}
}

// Resolve returns the place for query. Source is "cache" for stored answers.
func (r *Resolver) Resolve(ctx context.Context, query string) (*models.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if r.store != nil {
		p, err := r.store.GetByQuery(ctx, query)
		switch {
		case err == nil:
			p.Source = models.PlaceSourceCache
			return p, nil
		case !errors.Is(err, repository.ErrPlaceNotFound):
			r.logger.Warn("Place cache lookup failed", zap.String("query", query), zap.Error(err))
		}
	}

	loc, err := r.upstream.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}

	p := &models.Place{
		Query:     repository.NormalizeQuery(query),
		Name:      loc.Name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Source:    models.PlaceSourceNominatim,
	}
	if r.store != nil {
		if err := r.store.Save(ctx, p); err != nil {
			r.logger.Warn("Failed to cache place", zap.String("query", query), zap.Error(err))
		}
	}
	return p, nil
}

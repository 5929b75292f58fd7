// Package app wires configuration into the running services.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jengzang/astro-backend-go/internal/analysis"
	"github.com/jengzang/astro-backend-go/internal/astro"
	"github.com/jengzang/astro-backend-go/internal/chart"
	"github.com/jengzang/astro-backend-go/internal/config"
	"github.com/jengzang/astro-backend-go/internal/database"
	"github.com/jengzang/astro-backend-go/internal/ephemeris"
	"github.com/jengzang/astro-backend-go/internal/geocoding"
	"github.com/jengzang/astro-backend-go/internal/interpret"
	"github.com/jengzang/astro-backend-go/internal/metrics"
	"github.com/jengzang/astro-backend-go/internal/repository"
	"github.com/jengzang/astro-backend-go/internal/service"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "astro"

const healthTimeout = 2 * time.Second

// App holds the long-lived collaborators built from a Config.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Metrics  *metrics.Collector
	DB       *sql.DB
	Provider ephemeris.Provider
	Charts   *service.ChartService
	Places   *service.PlaceService

	placeRepo *repository.PlaceRepository
	geocoder  *geocoding.Nominatim
}

// New opens the database, applies migrations when configured and builds the services.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	provider, err := ephemeris.New(cfg.Ephemeris.Provider, cfg.Ephemeris.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create ephemeris provider: %w", err)
	}

	zodiac, err := astro.ParseZodiac(cfg.Chart.Zodiac)
	if err != nil {
		return nil, err
	}

	engine, err := analysis.NewEngine(logger, cfg.Chart.Analyzers...)
	if err != nil {
		return nil, err
	}

	db, err := database.Open(database.Config{
		Path:         cfg.Database.Path,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	}, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if _, err := Migrate(db, logger); err != nil {
			db.Close()
			return nil, err
		}
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics.NewCollector(MetricsNamespace),
		DB:        db,
		Provider:  provider,
		placeRepo: repository.NewPlaceRepository(db),
	}

	var resolver service.PlaceResolver
	if cfg.Geocoding.Enabled {
		a.geocoder = geocoding.NewNominatim(nominatimConfig(cfg.Geocoding), logger.Named("nominatim"))
		resolver = geocoding.NewResolver(a.placeRepo, a.geocoder, logger)
	}
	a.Places = service.NewPlaceService(resolver, a.placeRepo, a.Metrics, logger)

	a.Charts = service.NewChartService(
		chart.NewAssembler(provider, logger.Named("chart")),
		engine,
		interpret.NewRuleBased(),
		a.Places,
		a.Metrics,
		logger,
		service.ChartServiceConfig{Timeout: cfg.Chart.Timeout, Zodiac: zodiac},
	)

	return a, nil
}

func nominatimConfig(g config.GeocodingConfig) geocoding.NominatimConfig {
	nc := geocoding.DefaultNominatimConfig()
	nc.BaseURL = g.BaseURL
	nc.UserAgent = g.UserAgent
	nc.Timeout = g.Timeout
	nc.MinInterval = g.MinInterval
	if g.BreakerTimeout > 0 {
		nc.Breaker.Timeout = g.BreakerTimeout
	}
	if g.BreakerThreshold > 0 {
		nc.Breaker.FailureThreshold = g.BreakerThreshold
	}
	if g.BreakerMinCalls > 0 {
		nc.Breaker.MinRequests = g.BreakerMinCalls
	}
	return nc
}

// Migrate applies pending embedded migrations and returns how many ran.
func Migrate(db *sql.DB, logger *zap.Logger) (int, error) {
	n, err := database.NewMigrationManager(db, database.Migrations(), logger).RunMigrations()
	if err != nil {
		return n, fmt.Errorf("failed to run migrations: %w", err)
	}
	return n, nil
}

// Health reports component status for the /health endpoint.
func (a *App) Health() map[string]string {
	status := map[string]string{
		"ephemeris": a.Provider.Name(),
		"database":  "ok",
	}

	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()
	if err := a.DB.PingContext(ctx); err != nil {
		status["database"] = "unavailable"
	} else if n, err := a.placeRepo.Count(ctx); err == nil {
		status["cached_places"] = strconv.Itoa(n)
	}

	if a.geocoder != nil {
		status["geocoder"] = a.geocoder.State()
	} else {
		status["geocoder"] = "disabled"
	}
	return status
}

// Close releases the database.
func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

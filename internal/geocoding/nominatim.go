package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/jengzang/astro-backend-go/internal/spatial"
)

const (
	// DefaultNominatimURL is the public OpenStreetMap search endpoint.
	DefaultNominatimURL = "https://nominatim.openstreetmap.org/search"

	// DefaultUserAgent identifies the service; Nominatim rejects anonymous clients.
	DefaultUserAgent = "AstroBackend/1.0"
)

// BreakerConfig controls when the breaker around Nominatim opens.
type BreakerConfig struct {
	MaxRequests      uint32        // probes allowed while half-open
	Interval         time.Duration // closed-state counter reset period
	Timeout          time.Duration // open-state duration before half-open
	FailureThreshold float64       // failure ratio that trips the breaker
	MinRequests      uint32        // requests needed before the ratio is considered
}

// NominatimConfig configures the Nominatim client.
type NominatimConfig struct {
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	MinInterval time.Duration // minimum gap between upstream calls
	Breaker     BreakerConfig
}

// DefaultNominatimConfig returns the settings used against the public endpoint.
func DefaultNominatimConfig() NominatimConfig {
	return NominatimConfig{
		BaseURL:     DefaultNominatimURL,
		UserAgent:   DefaultUserAgent,
		Timeout:     10 * time.Second,
		MinInterval: time.Second,
		Breaker: BreakerConfig{
			MaxRequests:      1,
			Interval:         60 * time.Second,
			Timeout:          30 * time.Second,
			FailureThreshold: 0.6,
			MinRequests:      3,
		},
	}
}

// Nominatim geocodes through the OpenStreetMap Nominatim search API.
type Nominatim struct {
	cfg        NominatimConfig
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *zap.Logger

	mu       sync.Mutex
	lastCall time.Time
}

// nominatimResponse represents the Nominatim API response
type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatim creates a Nominatim client. Zero-valued fields other than MinInterval
// take their defaults; a zero MinInterval disables request spacing.
func NewNominatim(cfg NominatimConfig, logger *zap.Logger) *Nominatim {
	def := DefaultNominatimConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Breaker == (BreakerConfig{}) {
		cfg.Breaker = def.Breaker
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	n := &Nominatim{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}

	bc := cfg.Breaker
	n.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nominatim",
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bc.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= bc.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// a clean "no results" answer is not an upstream failure, and neither is
		// a caller that gave up before the upstream answered
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
	})

	return n
}

// State reports the breaker state, for health output.
func (n *Nominatim) State() string {
	return n.breaker.State().String()
}

// Geocode returns the best Nominatim match for query.
func (n *Nominatim) Geocode(ctx context.Context, query string) (*Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	result, err := n.breaker.Execute(func() (any, error) {
		if err := n.wait(ctx); err != nil {
			return nil, err
		}
		return n.search(ctx, query)
	})
	if err != nil {
		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		default:
			return nil, err
		}
	}
	return result.(*Location), nil
}

// wait spaces upstream calls at least MinInterval apart.
func (n *Nominatim) wait(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.lastCall.IsZero() {
		if d := n.cfg.MinInterval - time.Since(n.lastCall); d > 0 {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	n.lastCall = time.Now()
	return nil
}

func (n *Nominatim) search(ctx context.Context, query string) (*Location, error) {
	params := url.Values{}
	params.Add("format", "json")
	params.Add("limit", "1")
	params.Add("q", query)
	reqURL := fmt.Sprintf("%s?%s", n.cfg.BaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", n.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := n.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: executing request: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	n.logger.Debug("Nominatim request",
		zap.String("query", query),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: nominatim returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var results []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude: %w", err)
	}
	if !spatial.Valid(lat, lon) {
		return nil, fmt.Errorf("nominatim returned invalid coordinates %f,%f", lat, lon)
	}

	return &Location{
		Latitude:  lat,
		Longitude: lon,
		Name:      results[0].DisplayName,
	}, nil
}

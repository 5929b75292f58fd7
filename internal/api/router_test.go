package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/astro-backend-go/internal/app"
	"github.com/jengzang/astro-backend-go/internal/config"
	"github.com/jengzang/astro-backend-go/internal/middleware"
)

func newRouter(t *testing.T, mutate func(*config.Config)) *gin.Engine {
	t.Helper()

	v := config.New()
	v.Set("server.mode", gin.TestMode)
	v.Set("database.path", filepath.Join(t.TempDir(), "astro.db"))
	v.Set("geocoding.enabled", false)
	cfg, err := config.Unmarshal(v)
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}

	a, err := app.New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	deps := Dependencies{
		Config:  cfg,
		Logger:  a.Logger,
		Metrics: a.Metrics,
		Charts:  a.Charts,
		Places:  a.Places,
		Health:  a.Health,
	}
	if cfg.RateLimit.Enabled {
		// Equivalent of testing.T.Context, which requires Go 1.24.
		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		deps.RateLimiter = middleware.NewRateLimiter(ctx, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	r, err := SetupRouter(deps)
	require.NoError(t, err)
	return r
}

func chartBody() *bytes.Reader {
	body, _ := json.Marshal(gin.H{
		"birth": gin.H{
			"year": 1990, "month": 6, "day": 15, "hour": 12, "minute": 0,
			"latitude": 28.6139, "longitude": 77.2090,
		},
	})
	return bytes.NewReader(body)
}

func TestRoutes(t *testing.T) {
	r := newRouter(t, nil)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"signs", http.MethodGet, "/api/v1/zodiac/signs", http.StatusOK},
		{"geocoding disabled", http.MethodGet, "/api/v1/places?q=Paris", http.StatusServiceUnavailable},
		{"empty cache", http.MethodGet, "/api/v1/places/nearest?lat=48.8&lon=2.3", http.StatusNotFound},
		{"unknown route", http.MethodGet, "/api/v1/tarot", http.StatusNotFound},
		{"preflight", http.MethodOptions, "/api/v1/charts", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestChartRouteAndMetrics(t *testing.T) {
	r := newRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/charts", chartBody())
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.Contains(t, body, `astro_http_requests_total{method="POST",route="/api/v1/charts",status="200"} 1`)
	assert.Contains(t, body, `astro_charts_total{outcome="ok",zodiac="tropical"} 1`)
}

func TestHealthReportsComponents(t *testing.T) {
	r := newRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var status map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "ok", status["database"])
	assert.Equal(t, "disabled", status["geocoder"])
}

func TestAuthProtectsAPI(t *testing.T) {
	const secret = "router-test-secret"
	r := newRouter(t, func(cfg *config.Config) {
		cfg.Auth.Enabled = true
		cfg.Auth.JWTSecret = secret
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/zodiac/signs", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "tester",
		Issuer:    "astro-backend",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/zodiac/signs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// health stays public
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitedAPI(t *testing.T) {
	r := newRouter(t, func(cfg *config.Config) {
		cfg.RateLimit.Requests = 2
		cfg.RateLimit.Window = time.Minute
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/zodiac/signs", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// outside the limited group
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

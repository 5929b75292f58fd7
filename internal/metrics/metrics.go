// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Chart outcomes recorded by ObserveChart.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Chart metrics
	Charts        *prometheus.CounterVec
	ChartDuration prometheus.Histogram
	BodiesSkipped *prometheus.CounterVec

	// Geocoding metrics
	PlaceLookups *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry, so tests can build
// as many as they like.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Charts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "charts_total",
				Help:      "Chart calculations by zodiac and outcome",
			},
			[]string{"zodiac", "outcome"},
		),
		ChartDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "chart_duration_seconds",
				Help:      "Chart calculation duration in seconds",
				Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
		),
		BodiesSkipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chart_bodies_skipped_total",
				Help:      "Bodies left out of a chart because the ephemeris could not place them",
			},
			[]string{"body"},
		),
		PlaceLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "place_lookups_total",
				Help:      "Place lookups by answering source and outcome",
			},
			[]string{"source", "outcome"},
		),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.Charts,
		c.ChartDuration,
		c.BodiesSkipped,
		c.PlaceLookups,
	)
	return c
}

// Registry returns the registry the collector's metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route, status string, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveChart records one chart calculation and the bodies it skipped.
func (c *Collector) ObserveChart(zodiac, outcome string, d time.Duration, skipped []string) {
	c.Charts.WithLabelValues(zodiac, outcome).Inc()
	c.ChartDuration.Observe(d.Seconds())
	for _, body := range skipped {
		c.BodiesSkipped.WithLabelValues(body).Inc()
	}
}

// ObservePlaceLookup records one place resolution.
func (c *Collector) ObservePlaceLookup(source, outcome string) {
	c.PlaceLookups.WithLabelValues(source, outcome).Inc()
}

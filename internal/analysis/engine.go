// Package analysis derives readings from a computed chart. Analyzers register
// themselves by name and the Engine runs a selection of them over one chart.
package analysis

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jengzang/astro-backend-go/internal/chart"
	"github.com/jengzang/astro-backend-go/internal/ephemeris"
)

// Analyzer is the interface that all chart analyzers must implement
type Analyzer interface {
	// Analyze reads the chart and fills its section of the report.
	Analyze(ctx context.Context, c *chart.Chart, r *Report) error

	// GetName returns the name of the analyzer
	GetName() string
}

// Report collects the output of every analyzer that ran.
type Report struct {
	Aspects       []Aspect                   `json:"aspects,omitempty"`
	Balance       *Balance                   `json:"balance,omitempty"`
	Dignities     map[ephemeris.Body]Dignity `json:"dignities,omitempty"`
	HouseReadings []HouseReading             `json:"house_readings,omitempty"`
	Career        string                     `json:"career,omitempty"`
	Analyzers     []string                   `json:"analyzers"`
}

// AnalyzerFactory is a function that creates an analyzer instance
type AnalyzerFactory func() Analyzer

var (
	registryMu sync.RWMutex
	registry   = make(map[string]AnalyzerFactory)
	order      []string
)

// RegisterAnalyzer registers an analyzer factory under name. Registering the same
// name twice replaces the factory but keeps its original position.
func RegisterAnalyzer(name string, factory AnalyzerFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; !exists {
		order = append(order, name)
	}
	registry[name] = factory
}

// GetAnalyzer returns a new analyzer for name, or nil if none is registered.
func GetAnalyzer(name string) Analyzer {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return factory()
}

// Names lists the registered analyzers in registration order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return append([]string(nil), order...)
}

// Engine runs a fixed set of analyzers.
type Engine struct {
	analyzers []Analyzer
	logger    *zap.Logger
}

// NewEngine builds an engine for the named analyzers, or for every registered
// analyzer when names is empty.
func NewEngine(logger *zap.Logger, names ...string) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(names) == 0 {
		names = Names()
	}

	e := &Engine{logger: logger}
	for _, name := range names {
		a := GetAnalyzer(name)
		if a == nil {
			return nil, fmt.Errorf("unknown analyzer %q", name)
		}
		e.analyzers = append(e.analyzers, a)
	}
	return e, nil
}

// Run applies every analyzer to c in order. The first failing analyzer aborts the run.
func (e *Engine) Run(ctx context.Context, c *chart.Chart) (*Report, error) {
	r := &Report{}
	for _, a := range e.analyzers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := a.Analyze(ctx, c, r); err != nil {
			e.logger.Error("Analyzer failed", zap.String("analyzer", a.GetName()), zap.Error(err))
			return nil, fmt.Errorf("analyzer %s failed: %w", a.GetName(), err)
		}
		r.Analyzers = append(r.Analyzers, a.GetName())
	}
	return r, nil
}

// baseAnalyzer carries the name shared by every analyzer in this package.
type baseAnalyzer struct {
	name string
}

func (a baseAnalyzer) GetName() string {
	return a.name
}

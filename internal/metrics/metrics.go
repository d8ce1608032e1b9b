// SPDX-License-Identifier: MIT

// Package metrics records balancing and deflation events as Prometheus metrics.
// Runs are batch jobs, so the registry is dumped to a node-exporter textfile
// rather than served.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/leontief/deflate"
	"github.com/katalvlaran/leontief/ratio"
)

// ErrWriteTextfile indicates the registry could not be written out.
var ErrWriteTextfile = errors.New("metrics: write textfile")

const defaultNamespace = "leontief"

// DefaultIterationBuckets bucket GRAS iteration counts.
var DefaultIterationBuckets = prometheus.ExponentialBuckets(1, 4, 8)

// Manager owns the run's metrics. It implements deflate.Observer, and through it
// estimate.Observer.
type Manager struct {
	namespace string
	registry  *prometheus.Registry
	buckets   []float64

	grasIterations   *prometheus.HistogramVec
	grasNotConverged *prometheus.CounterVec
	degenerateCells  *prometheus.CounterVec
	zeroMarginPools  *prometheus.CounterVec
	yearDuration     prometheus.Histogram
	yearsProcessed   prometheus.Counter
}

var _ deflate.Observer = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace sets the namespace of every metric.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry registers the metrics on r instead of a fresh registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithBuckets sets the year duration buckets, in seconds.
func WithBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// NewManager creates and registers the metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: defaultNamespace,
		registry:  prometheus.NewRegistry(),
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	auto := promauto.With(m.registry)
	m.grasIterations = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "gras",
		Name:      "iterations",
		Help:      "GRAS iterations per balanced matrix",
		Buckets:   DefaultIterationBuckets,
	}, []string{"series"})
	m.grasNotConverged = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "gras",
		Name:      "not_converged_total",
		Help:      "GRAS runs that hit the iteration cap or broke down",
	}, []string{"series"})
	m.degenerateCells = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "deflate",
		Name:      "degenerate_cells_total",
		Help:      "Deflator cells that divided by zero, by series, stage and kind",
	}, []string{"series", "stage", "kind"})
	m.zeroMarginPools = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "estimate",
		Name:      "zero_margin_pools_total",
		Help:      "Margin partitions with no margin supply",
	}, []string{"partition"})
	m.yearDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "deflate",
		Name:      "year_duration_seconds",
		Help:      "Wall time to deflate one year",
		Buckets:   m.buckets,
	})
	m.yearsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "deflate",
		Name:      "years_total",
		Help:      "Years fully processed",
	})

	return m
}

// Registry returns the registry holding the metrics.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

func (m *Manager) ZeroMarginPool(partition string, _ float64) {
	m.zeroMarginPools.WithLabelValues(partition).Inc()
}

func (m *Manager) Balanced(series string, iterations int) {
	m.grasIterations.WithLabelValues(series).Observe(float64(iterations))
}

func (m *Manager) NotConverged(series string) {
	m.grasNotConverged.WithLabelValues(series).Inc()
}

func (m *Manager) Degenerate(series, stage string, kind ratio.Kind, cells int) {
	m.degenerateCells.WithLabelValues(series, stage, kind.String()).Add(float64(cells))
}

func (m *Manager) YearDone(_ int, elapsed time.Duration) {
	m.yearDuration.Observe(elapsed.Seconds())
	m.yearsProcessed.Inc()
}

// WriteTextfile writes every registered metric to path in the text exposition format.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteTextfile, path, err)
	}

	return nil
}

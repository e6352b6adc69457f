// Package metrics exposes Prometheus instruments for triage runs on a
// private registry.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the application
type Registry struct {
	// Pipeline metrics
	RunsTotal          *prometheus.CounterVec
	RunDuration        *prometheus.HistogramVec
	PatientsScored     prometheus.Histogram
	PatientsFlagged    *prometheus.CounterVec
	SimulationRound    prometheus.Gauge
	PatientsWorsened   prometheus.Counter
	ValidationFailures prometheus.Counter

	// Graph and scoring metrics
	GraphEdges         prometheus.Gauge
	GraphIsolatedNodes prometheus.Gauge
	PageRankIterations prometheus.Histogram
	PageRankConverged  prometheus.Gauge
	PageRankDelta      prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initPipelineMetrics()
	r.initScoringMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

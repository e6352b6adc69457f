package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPipelineMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_runs_total",
			Help: "Total number of triage pipeline runs",
		},
		[]string{"status"},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "triage_run_duration_seconds",
			Help:    "Triage pipeline stage duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"stage"},
	)

	r.PatientsScored = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_patients_per_run",
			Help:    "Number of patients ordered per run",
			Buckets: []float64{1, 10, 50, 100, 500, 1000},
		},
	)

	r.PatientsFlagged = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "triage_patients_flagged_total",
			Help: "Patients flagged by a risk classifier",
		},
		[]string{"flag"},
	)

	r.SimulationRound = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "triage_simulation_round",
			Help: "Current simulation round",
		},
	)

	r.PatientsWorsened = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "triage_patients_worsened_total",
			Help: "Patients whose condition worsened during simulation updates",
		},
	)

	r.ValidationFailures = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "triage_validation_failures_total",
			Help: "Runs rejected because the record set failed validation",
		},
	)
}

func (r *Registry) initScoringMetrics() {
	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "triage_graph_edges",
			Help: "Edges in the most recent similarity graph",
		},
	)

	r.GraphIsolatedNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "triage_graph_isolated_nodes",
			Help: "Nodes without edges in the most recent similarity graph",
		},
	)

	r.PageRankIterations = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "triage_pagerank_iterations",
			Help:    "Power iterations performed per scoring run",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		},
	)

	r.PageRankConverged = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "triage_pagerank_converged",
			Help: "1 if the most recent scoring run converged before the iteration cap",
		},
	)

	r.PageRankDelta = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "triage_pagerank_last_delta",
			Help: "L1 change of the final power iteration",
		},
	)
}

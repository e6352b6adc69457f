// Package triage wires the scoring pipeline: validate records, build the
// similarity graph, score it, drain the priority queue and classify each
// patient in priority order.
package triage

import (
	"fmt"
	"time"

	"github.com/dd0wney/cluso-triage/pkg/algorithms"
	"github.com/dd0wney/cluso-triage/pkg/graph"
	"github.com/dd0wney/cluso-triage/pkg/logging"
	"github.com/dd0wney/cluso-triage/pkg/metrics"
)

// Assessment is one line of triage output, in priority order.
type Assessment struct {
	PatientID   uint64  `json:"patient_id"`
	Severity    int     `json:"severity"`
	DrugSeeking bool    `json:"drug_seeking"`
	AnxietyRisk bool    `json:"anxiety_risk"`
	Score       float64 `json:"score"`
	Rank        int     `json:"rank"`
	Cluster     int     `json:"cluster"` // similarity cluster the patient belongs to
}

// TopCentral is how many of the most central patients a Result lists.
const TopCentral = 3

// Result is the outcome of a single pipeline run.
type Result struct {
	RunID       string
	Round       int
	Assessments []Assessment
	Graph       graph.Statistics
	Clusters    int                     // connected groups of similar patients
	Largest     int                     // size of the biggest cluster
	Cohesion    float64                 // edge density of the biggest cluster
	Top         []algorithms.RankedNode // most central patients, best first
	Iterations  int
	Converged   bool
	Delta       float64
	Duration    time.Duration
}

// Flagged counts assessments per flag.
func (r *Result) Flagged() (drugSeeking, anxietyRisk int) {
	for _, a := range r.Assessments {
		if a.DrugSeeking {
			drugSeeking++
		}
		if a.AnxietyRisk {
			anxietyRisk++
		}
	}
	return drugSeeking, anxietyRisk
}

// Options configures a Pipeline. Zero values pick defaults.
type Options struct {
	PageRank algorithms.PageRankOptions
	Workers  int // graph build workers; <= 1 builds on the calling goroutine
	Logger   logging.Logger
	Metrics  *metrics.Registry // nil disables metrics
}

// DefaultOptions returns single-threaded options with the standard scorer.
func DefaultOptions() Options {
	return Options{
		PageRank: algorithms.DefaultPageRankOptions(),
		Workers:  1,
		Logger:   logging.NewNopLogger(),
	}
}

// Pipeline stages, used in errors and metrics.
const (
	StageValidate = "validate"
	StageGraph    = "graph"
	StageScore    = "score"
	StageOrder    = "order"
	StageClassify = "classify"
)

// RunError reports which stage failed and how many records were supplied.
// No partial result accompanies it.
type RunError struct {
	Stage   string
	Records int
	Cause   error
}

// Error implements the error interface.
func (e *RunError) Error() string {
	return fmt.Sprintf("triage %s (%d records): %v", e.Stage, e.Records, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *RunError) Unwrap() error {
	return e.Cause
}

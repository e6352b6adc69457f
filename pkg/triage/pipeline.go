package triage

import (
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-triage/pkg/algorithms"
	"github.com/dd0wney/cluso-triage/pkg/graph"
	"github.com/dd0wney/cluso-triage/pkg/logging"
	"github.com/dd0wney/cluso-triage/pkg/patient"
	"github.com/dd0wney/cluso-triage/pkg/risk"
	"github.com/dd0wney/cluso-triage/pkg/validation"
)

// Pipeline runs the triage stages. It holds no per-run state and may be
// reused across runs.
type Pipeline struct {
	opts   Options
	logger logging.Logger
}

// NewPipeline creates a pipeline, filling unset options with defaults.
func NewPipeline(opts Options) *Pipeline {
	if opts.PageRank == (algorithms.PageRankOptions{}) {
		opts.PageRank = algorithms.DefaultPageRankOptions()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}
	return &Pipeline{
		opts:   opts,
		logger: opts.Logger.With(logging.Component("triage")),
	}
}

// Run orders records most-critical-first and classifies each one. An empty
// input fails in the scoring stage with *algorithms.EmptyGraphError.
func (p *Pipeline) Run(records []patient.Record) (*Result, error) {
	start := time.Now()
	runID := uuid.New().String()
	logger := p.logger.With(logging.RunID(runID))

	result, err := p.run(logger, records)
	elapsed := time.Since(start)

	if err != nil {
		logger.Error("triage run failed", logging.Count(len(records)), logging.Error(err), logging.Latency(elapsed))
		p.recordRun("error", len(records), elapsed)
		return nil, err
	}

	result.RunID = runID
	result.Duration = elapsed
	p.recordRun("success", len(records), elapsed)

	drug, anxiety := result.Flagged()
	if p.opts.Metrics != nil {
		p.opts.Metrics.RecordFlags(drug, anxiety)
	}
	logger.Info("triage run complete",
		logging.Count(len(records)),
		logging.Iterations(result.Iterations),
		logging.Bool("converged", result.Converged),
		logging.Int("drug_seeking", drug),
		logging.Int("anxiety_risk", anxiety),
		logging.Latency(elapsed),
	)
	return result, nil
}

func (p *Pipeline) run(logger logging.Logger, records []patient.Record) (*Result, error) {
	fail := func(stage string, err error) error {
		return &RunError{Stage: stage, Records: len(records), Cause: err}
	}

	if len(records) > 0 {
		if err := validation.ValidateRecordSet(records); err != nil {
			if p.opts.Metrics != nil {
				p.opts.Metrics.ValidationFailures.Inc()
			}
			return nil, fail(StageValidate, err)
		}
	}

	timer := logging.StartTimer(logger, "similarity graph built", logging.Operation(StageGraph))
	g, err := graph.BuildParallel(records, p.opts.Workers)
	if err != nil {
		timer.EndError(err)
		return nil, fail(StageGraph, err)
	}
	stats := g.Statistics()
	clusters := algorithms.SimilarityClusters(g)
	p.recordStage(StageGraph, timer.End(
		logging.Int("edges", stats.EdgeCount),
		logging.Int("isolated", stats.IsolatedNodes),
		logging.Int("clusters", len(clusters.Clusters)),
	))
	if p.opts.Metrics != nil {
		p.opts.Metrics.RecordGraph(stats.EdgeCount, stats.IsolatedNodes)
	}

	timer = logging.StartTimer(logger, "centrality scored", logging.Operation(StageScore))
	pr, err := algorithms.PageRank(g, p.opts.PageRank)
	if err != nil {
		timer.EndError(err)
		return nil, fail(StageScore, err)
	}
	p.recordStage(StageScore, timer.End(logging.Iterations(pr.Iterations), logging.Bool("converged", pr.Converged)))
	if p.opts.Metrics != nil {
		p.opts.Metrics.RecordPageRank(pr.Iterations, pr.Converged, pr.Delta)
	}
	if !pr.Converged {
		logger.Warn("centrality did not converge, using last iterate",
			logging.Iterations(pr.Iterations), logging.Float64("delta", pr.Delta))
	}

	timer = logging.StartTimer(logger, "priority order drained", logging.Operation(StageOrder))
	ranked, err := algorithms.Prioritize(records, pr.Scores)
	if err != nil {
		timer.EndError(err)
		return nil, fail(StageOrder, err)
	}
	p.recordStage(StageOrder, timer.End(logging.Count(len(ranked))))

	timer = logging.StartTimer(logger, "patients classified", logging.Operation(StageClassify))
	assessments := make([]Assessment, len(ranked))
	for i, r := range ranked {
		flags := risk.Classify(r.Record)
		assessments[i] = Assessment{
			PatientID:   r.Record.ID,
			Severity:    r.Record.Severity,
			DrugSeeking: flags.DrugSeeking,
			AnxietyRisk: flags.AnxietyRisk,
			Score:       r.Score,
			Rank:        r.Rank,
			Cluster:     clusters.PatientCluster[r.Record.ID],
		}
		if flags.DrugSeeking {
			logger.Warn("possible drug-seeking behaviour", logging.PatientID(r.Record.ID), logging.Score(r.Score))
		}
		if flags.AnxietyRisk {
			logger.Warn("high anxiety escalation risk", logging.PatientID(r.Record.ID), logging.Int("heart_rate", r.Record.HeartRate))
		}
	}
	p.recordStage(StageClassify, timer.End(logging.Count(len(assessments))))

	result := &Result{
		Assessments: assessments,
		Graph:       stats,
		Clusters:    len(clusters.Clusters),
		Top:         pr.Scores.TopNodes(TopCentral),
		Iterations:  pr.Iterations,
		Converged:   pr.Converged,
		Delta:       pr.Delta,
	}
	if largest := clusters.Largest(); largest != nil {
		result.Largest = largest.Size
		result.Cohesion = largest.Density
	}
	return result, nil
}

func (p *Pipeline) recordStage(stage string, d time.Duration) {
	if p.opts.Metrics != nil {
		p.opts.Metrics.RecordStage(stage, d)
	}
}

func (p *Pipeline) recordRun(status string, patients int, d time.Duration) {
	if p.opts.Metrics != nil {
		p.opts.Metrics.RecordRun(status, patients, d)
	}
}

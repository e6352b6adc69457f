package metrics

import (
	"time"
)

// Flag label values for PatientsFlagged.
const (
	FlagDrugSeeking = "drug_seeking"
	FlagAnxietyRisk = "anxiety_risk"
)

// RecordRun records a finished pipeline run
func (r *Registry) RecordRun(status string, patients int, duration time.Duration) {
	r.RunsTotal.WithLabelValues(status).Inc()
	r.RunDuration.WithLabelValues("total").Observe(duration.Seconds())
	if status == "success" {
		r.PatientsScored.Observe(float64(patients))
	}
}

// RecordStage records the duration of one pipeline stage
func (r *Registry) RecordStage(stage string, duration time.Duration) {
	r.RunDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordGraph records the shape of a built similarity graph
func (r *Registry) RecordGraph(edges, isolated int) {
	r.GraphEdges.Set(float64(edges))
	r.GraphIsolatedNodes.Set(float64(isolated))
}

// RecordPageRank records convergence details of a scoring run
func (r *Registry) RecordPageRank(iterations int, converged bool, delta float64) {
	r.PageRankIterations.Observe(float64(iterations))
	if converged {
		r.PageRankConverged.Set(1)
	} else {
		r.PageRankConverged.Set(0)
	}
	r.PageRankDelta.Set(delta)
}

// RecordFlags counts classifier hits for one run
func (r *Registry) RecordFlags(drugSeeking, anxietyRisk int) {
	r.PatientsFlagged.WithLabelValues(FlagDrugSeeking).Add(float64(drugSeeking))
	r.PatientsFlagged.WithLabelValues(FlagAnxietyRisk).Add(float64(anxietyRisk))
}

// RecordRound records a simulation update round
func (r *Registry) RecordRound(round, worsened int) {
	r.SimulationRound.Set(float64(round))
	r.PatientsWorsened.Add(float64(worsened))
}

package triage

import (
	"github.com/dd0wney/cluso-triage/pkg/logging"
	"github.com/dd0wney/cluso-triage/pkg/patient"
)

// Simulation replays the ward over time: an initial ordering, then rounds in
// which conditions worsen and the order is recomputed from scratch.
type Simulation struct {
	pipeline  *Pipeline
	generator *patient.Generator
	records   []patient.Record
	round     int
}

// NewSimulation draws n patients from generator.
func NewSimulation(p *Pipeline, generator *patient.Generator, n int) *Simulation {
	return &Simulation{
		pipeline:  p,
		generator: generator,
		records:   generator.Batch(n),
	}
}

// Round returns the number of update rounds applied so far.
func (s *Simulation) Round() int {
	return s.round
}

// Records returns a copy of the current patient records.
func (s *Simulation) Records() []patient.Record {
	out := make([]patient.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Run orders the current records without updating them.
func (s *Simulation) Run() (*Result, error) {
	result, err := s.pipeline.Run(s.records)
	if err != nil {
		return nil, err
	}
	result.Round = s.round
	return result, nil
}

// Step applies one update round and reorders. It returns the new result and
// how many patients worsened.
func (s *Simulation) Step() (*Result, int, error) {
	worsened := s.generator.UpdateAll(s.records)
	s.round++

	if m := s.pipeline.opts.Metrics; m != nil {
		m.RecordRound(s.round, worsened)
	}
	s.pipeline.logger.Info("simulation round applied",
		logging.Int("round", s.round), logging.Int("worsened", worsened))

	result, err := s.Run()
	return result, worsened, err
}

// Package config loads triage run settings from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-triage/pkg/algorithms"
	"github.com/dd0wney/cluso-triage/pkg/patient"
	"github.com/dd0wney/cluso-triage/pkg/validation"
)

// Config defines a triage simulation run
type Config struct {
	Patients int   `yaml:"patients"` // batch size
	Seed     int64 `yaml:"seed"`     // random source seed for generation and updates
	Rounds   int   `yaml:"rounds"`   // update rounds after the initial ordering
	Workers  int   `yaml:"workers"`  // graph build workers; 0 or 1 runs single-threaded

	PageRank PageRankConfig `yaml:"pagerank"`
	Update   UpdateConfig   `yaml:"update"`
}

// PageRankConfig bounds the scoring iteration. The damping factor is fixed.
type PageRankConfig struct {
	MaxIterations int     `yaml:"max_iterations"`
	Tolerance     float64 `yaml:"tolerance"`
}

// UpdateConfig controls condition worsening between rounds
type UpdateConfig struct {
	WorsenProbability       float64 `yaml:"worsen_probability"`
	AnxietySpikeProbability float64 `yaml:"anxiety_spike_probability"`
}

// MaxWorkers caps graph build parallelism.
const MaxWorkers = 256

// Default returns the configuration of the reference simulation: ten
// patients, one ordering pass.
func Default() Config {
	pr := algorithms.DefaultPageRankOptions()
	up := patient.DefaultUpdatePolicy()
	return Config{
		Patients: 10,
		Seed:     1,
		Rounds:   0,
		Workers:  1,
		PageRank: PageRankConfig{
			MaxIterations: pr.MaxIterations,
			Tolerance:     pr.Tolerance,
		},
		Update: UpdateConfig{
			WorsenProbability:       up.WorsenProbability,
			AnxietySpikeProbability: up.AnxietySpikeProbability,
		},
	}
}

// Load reads path and overlays it on Default. Missing keys keep defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks if configuration is valid
func (c Config) Validate() error {
	return validation.NewConfigValidator("Config").
		Positive("Patients", c.Patients).
		MaxInt("Patients", c.Patients, validation.MaxRecords).
		NonNegative("Rounds", c.Rounds).
		NonNegative("Workers", c.Workers).
		MaxInt("Workers", c.Workers, MaxWorkers).
		Positive("PageRank.MaxIterations", c.PageRank.MaxIterations).
		PositiveFloat("PageRank.Tolerance", c.PageRank.Tolerance).
		Probability("Update.WorsenProbability", c.Update.WorsenProbability).
		Probability("Update.AnxietySpikeProbability", c.Update.AnxietySpikeProbability).
		Validate()
}

// PageRankOptions converts the scoring section, keeping the standard damping.
func (c Config) PageRankOptions() algorithms.PageRankOptions {
	opts := algorithms.DefaultPageRankOptions()
	opts.MaxIterations = c.PageRank.MaxIterations
	opts.Tolerance = c.PageRank.Tolerance
	return opts
}

// UpdatePolicy converts the update section.
func (c Config) UpdatePolicy() patient.UpdatePolicy {
	return patient.UpdatePolicy{
		WorsenProbability:       c.Update.WorsenProbability,
		AnxietySpikeProbability: c.Update.AnxietySpikeProbability,
	}
}

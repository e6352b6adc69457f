package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-triage/pkg/config"
	"github.com/dd0wney/cluso-triage/pkg/logging"
	"github.com/dd0wney/cluso-triage/pkg/metrics"
	"github.com/dd0wney/cluso-triage/pkg/patient"
	"github.com/dd0wney/cluso-triage/pkg/report"
	"github.com/dd0wney/cluso-triage/pkg/triage"
)

type runFlags struct {
	configPath string
	patients   int
	seed       int64
	rounds     int
	workers    int
	styled     bool
}

func newRunCommand(newLogger func(io.Writer) logging.Logger) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate patients and print the treatment order",
		Long: `Generate a seeded batch of patients, order them most-critical-first and
print one treatment line per patient. With --rounds, conditions worsen between
rounds and the order is recomputed each time.

Examples:
  triage run
  triage run --patients 50 --seed 7 --rounds 3
  triage run --config ward.yaml --styled`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			return runSimulation(cmd.OutOrStdout(), cfg, f.styled, newLogger(cmd.ErrOrStderr()))
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	flags.IntVarP(&f.patients, "patients", "n", 0, "number of patients to generate")
	flags.Int64Var(&f.seed, "seed", 0, "random seed")
	flags.IntVarP(&f.rounds, "rounds", "r", 0, "update rounds after the initial ordering")
	flags.IntVarP(&f.workers, "workers", "w", 0, "graph build workers")
	flags.BoolVar(&f.styled, "styled", false, "render a styled table instead of plain lines")
	return cmd
}

// resolveConfig loads the file, if any, and applies explicitly set flags on top.
func resolveConfig(cmd *cobra.Command, f runFlags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("patients") {
		cfg.Patients = f.patients
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("rounds") {
		cfg.Rounds = f.rounds
	}
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

func runSimulation(out io.Writer, cfg config.Config, styled bool, logger logging.Logger) error {
	pipeline := triage.NewPipeline(triage.Options{
		PageRank: cfg.PageRankOptions(),
		Workers:  cfg.Workers,
		Logger:   logger,
		Metrics:  metrics.DefaultRegistry(),
	})
	gen := patient.NewGenerator(cfg.Seed).WithPolicy(cfg.UpdatePolicy())
	sim := triage.NewSimulation(pipeline, gen, cfg.Patients)

	logger.Info("simulation started",
		logging.Count(cfg.Patients),
		logging.Int64("seed", cfg.Seed),
		logging.Int("rounds", cfg.Rounds),
	)

	result, err := sim.Run()
	if err != nil {
		return err
	}
	if err := write(out, result, styled); err != nil {
		return err
	}

	for i := 0; i < cfg.Rounds; i++ {
		result, _, err = sim.Step()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "\n--- Round %d ---\n", result.Round); err != nil {
			return err
		}
		if err := write(out, result, styled); err != nil {
			return err
		}
	}
	return nil
}

func write(out io.Writer, result *triage.Result, styled bool) error {
	if styled {
		_, err := io.WriteString(out, report.Table(result))
		return err
	}
	return report.Render(out, result)
}

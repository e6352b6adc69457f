// Package cli provides the command-line interface for triage.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dd0wney/cluso-triage/pkg/logging"
)

// Version is set at build time.
var Version = "0.1.0"

// NewRootCommand builds the triage command tree.
func NewRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "triage",
		Short: "Order patients by condition similarity and flag risk",
		Long: `Triage simulates a ward of patients, links patients whose conditions are
similar, ranks them by PageRank centrality over that graph and treats them in
that order, flagging possible drug-seeking and high anxiety escalation risk.

Logs are JSON on stderr; the treatment order is written to stdout.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to $LOG_LEVEL or info")

	newLogger := func(w io.Writer) logging.Logger {
		if logLevel == "" {
			return logging.NewEnvLogger(w)
		}
		return logging.NewJSONLogger(w, logging.ParseLevel(logLevel))
	}

	root.AddCommand(newRunCommand(newLogger))
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

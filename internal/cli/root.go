// Package cli wires the tablekit command line: configuration loading,
// logging setup, and the view command that drives the table engine.
package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tablekit/tablekit/internal/config"
)

// logger is the package-level logger for CLI operations, set by
// setupLogging during PersistentPreRunE.
var logger zerolog.Logger //nolint:gochecknoglobals // Set once per invocation in PersistentPreRunE

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// invocation carries per-run state from PersistentPreRunE to subcommands
// and PersistentPostRunE.
type invocation struct {
	cfg       *config.Config
	logCloser io.Closer
}

// NewRootCmd creates the root Cobra command for the tablekit CLI.
func NewRootCmd(ver string) *cobra.Command {
	inv := &invocation{}

	cmd := &cobra.Command{
		Use:     "tablekit",
		Short:   "Virtualized terminal data tables",
		Long:    "tablekit: view CSV and JSON data in a windowed, filterable, sortable terminal table",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			inv.cfg = cfg

			closer, err := setupLogging(cmd, cfg)
			if err != nil {
				return err
			}
			inv.logCloser = closer
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if inv.logCloser != nil {
				return inv.logCloser.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging to the console")
	cmd.PersistentFlags().String("config", "", "config file path (default ~/.tablekit/config.yaml)")

	cmd.AddCommand(newViewCmd(inv))

	return cmd
}

const rootCmdExample = `  # Browse a CSV file interactively
  tablekit view data.csv

  # Pre-filter and pre-sort before the table opens
  tablekit view data.csv --filter name=jo --sort age:desc

  # Print the second page of 20 rows without the TUI
  tablekit view data.json --no-interactive --page 2 --page-size 20

  # Disable virtual scrolling (fixed page in the TUI)
  tablekit view data.csv --no-virtual-scroll --page-size 30`

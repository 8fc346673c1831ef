package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/tablekit/tablekit/internal/config"
	"github.com/tablekit/tablekit/internal/logging"
)

// setupLogging configures the logger from config and the --debug flag,
// attaches it (plus a trace ID) to the command context, and returns the
// closer for the log file handle.
func setupLogging(cmd *cobra.Command, cfg *config.Config) (io.Closer, error) {
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	base, closer, err := logging.New(loggingCfg.ToLoggingConfig())
	if err != nil {
		return nil, err
	}
	logger = logging.ComponentLogger(base, "cli")

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logging.WithContext(ctx, base)
	cmd.SetContext(ctx)

	logger.Debug().
		Str("command", cmd.Name()).
		Str("trace_id", traceID).
		Msg("command started")

	return closer, nil
}

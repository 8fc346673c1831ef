// Package logging provides structured logging for tablekit, built on
// zerolog. It covers logger construction from configuration, per-component
// child loggers, and context propagation with trace IDs.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Output destinations accepted by Config.Output.
const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
	OutputFile   = "file"
)

// Formats accepted by Config.Format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config controls logger construction. Zero values fall back to the
// documented defaults: info level, json format, stderr output.
type Config struct {
	// Level is a zerolog level name ("debug", "info", ...). Unparseable
	// values default to info.
	Level string

	// Format is "json" or "console".
	Format string

	// Output is "stderr", "stdout", or "file".
	Output string

	// File is the log file path, required when Output is "file".
	File string

	// Caller adds the caller annotation to every event.
	Caller bool
}

// nopCloser satisfies io.Closer for writers that need no cleanup.
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger from cfg. The returned closer releases the log file
// handle when file output is in use and must be called on shutdown.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var (
		out    io.Writer
		closer io.Closer = nopCloser{}
	)

	switch cfg.Output {
	case OutputStdout:
		out = os.Stdout
	case OutputFile:
		if cfg.File == "" {
			return zerolog.Nop(), nil, fmt.Errorf("log output %q requires a file path", OutputFile)
		}
		f, openErr := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if openErr != nil {
			return zerolog.Nop(), nil, fmt.Errorf("failed to open log file: %w", openErr)
		}
		out = f
		closer = f
	case OutputStderr, "":
		out = os.Stderr
	default:
		return zerolog.Nop(), nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}

	if cfg.Format == FormatConsole {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(out).Level(lvl).With().Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}

	return ctx.Logger(), closer, nil
}

// ComponentLogger derives a child logger tagged with a component name, the
// convention used by every package that logs.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

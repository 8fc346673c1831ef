// Package config loads tablekit configuration from YAML with environment
// overrides. Precedence, lowest to highest: built-in defaults, the config
// file (~/.tablekit/config.yaml by default), TABLEKIT_* environment
// variables, CLI flags (applied by the caller).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tablekit/tablekit/internal/logging"
	"github.com/tablekit/tablekit/internal/table"
)

// Environment variable overrides.
const (
	EnvLogLevel         = "TABLEKIT_LOG_LEVEL"
	EnvLogFormat        = "TABLEKIT_LOG_FORMAT"
	EnvLogFile          = "TABLEKIT_LOG_FILE"
	EnvRowHeight        = "TABLEKIT_ROW_HEIGHT"
	EnvPageSize         = "TABLEKIT_PAGE_SIZE"
	EnvVirtualScrolling = "TABLEKIT_VIRTUAL_SCROLLING"
)

// configDirName is the per-user configuration directory under $HOME.
const configDirName = ".tablekit"

// Config is the root of the tablekit configuration file.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Table   TableConfig   `yaml:"table"`
	Ingest  IngestConfig  `yaml:"ingest"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	// Level is the zerolog level name. Default "info".
	Level string `yaml:"level"`

	// Format is "console" or "json". Default "console".
	Format string `yaml:"format"`

	// File, when set, redirects log output to the given path. Default
	// empty (stderr).
	File string `yaml:"file"`
}

// TableConfig configures the table engine. Durations are expressed in
// milliseconds for YAML friendliness.
type TableConfig struct {
	// RowHeight is the row height in cells. Default 1.
	RowHeight int `yaml:"row_height"`

	// PageSize is the page length when virtual scrolling is off. Default 50.
	PageSize int `yaml:"page_size"`

	// VirtualScrolling toggles scroll-driven windowing. Default true.
	VirtualScrolling bool `yaml:"virtual_scrolling"`

	// ResizeDebounceMs is the resize quiet period. Default 150.
	ResizeDebounceMs int `yaml:"resize_debounce_ms"`

	// ScrollFrameMs is the scroll coalescing interval. Default 16.
	ScrollFrameMs int `yaml:"scroll_frame_ms"`
}

// IngestConfig configures data loading.
type IngestConfig struct {
	// Delimiter is the CSV field delimiter. Default ",".
	Delimiter string `yaml:"delimiter"`

	// InferTypes enables numeric type inference on CSV cells. Default true.
	InferTypes bool `yaml:"infer_types"`
}

// Default returns a Config populated with all documented defaults.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Table: TableConfig{
			RowHeight:        table.DefaultRowHeight,
			PageSize:         table.DefaultPageSize,
			VirtualScrolling: true,
			ResizeDebounceMs: int(table.DefaultResizeDebounce / time.Millisecond),
			ScrollFrameMs:    int(table.DefaultScrollFrame / time.Millisecond),
		},
		Ingest: IngestConfig{
			Delimiter:  ",",
			InferTypes: true,
		},
	}
}

// DefaultPath returns the per-user config file path
// ($HOME/.tablekit/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, configDirName, "config.yaml"), nil
}

// Load builds the effective configuration. A missing config file is not an
// error: defaults plus environment overrides apply. An empty path selects
// DefaultPath.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			// No home directory: fall through to env overrides only.
			cfg.applyEnv()
			return cfg, nil
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults apply.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, unmarshalErr)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overlays TABLEKIT_* environment variables onto cfg. Unparseable
// numeric or boolean values are ignored rather than fatal.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv(EnvRowHeight); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Table.RowHeight = n
		}
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Table.PageSize = n
		}
	}
	if v := os.Getenv(EnvVirtualScrolling); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Table.VirtualScrolling = b
		}
	}
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if err := c.Table.ToTableConfig().Validate(); err != nil {
		return fmt.Errorf("table config: %w", err)
	}
	if c.Ingest.Delimiter == "" || len([]rune(c.Ingest.Delimiter)) != 1 {
		return fmt.Errorf("ingest config: delimiter must be a single character, got %q", c.Ingest.Delimiter)
	}
	return nil
}

// ToTableConfig converts the YAML table section into the engine's typed
// configuration.
func (tc TableConfig) ToTableConfig() table.Config {
	return table.Config{
		RowHeight:        tc.RowHeight,
		PageSize:         tc.PageSize,
		VirtualScrolling: tc.VirtualScrolling,
		ResizeDebounce:   time.Duration(tc.ResizeDebounceMs) * time.Millisecond,
		ScrollFrame:      time.Duration(tc.ScrollFrameMs) * time.Millisecond,
	}
}

// ToLoggingConfig converts the YAML logging section into the logging
// package's configuration. A configured file implies file output.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

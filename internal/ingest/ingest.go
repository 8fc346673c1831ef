// Package ingest loads tabular data from CSV and JSON files into the row
// and column model consumed by the table engine.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tablekit/tablekit/internal/table"
)

// Common ingest errors.
var (
	// ErrEmptyInput is returned when a file contains no rows.
	ErrEmptyInput = errors.New("input contains no rows")

	// ErrUnsupportedFormat is returned for file extensions ingest cannot
	// handle.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)

// Dataset is the result of loading a tabular file: the column set derived
// from the input plus the raw rows.
type Dataset struct {
	// Columns describes the table columns in display order.
	Columns []table.Column

	// Rows holds the loaded data. Rows are never mutated after loading.
	Rows []table.Row
}

// Options controls loading behavior.
type Options struct {
	// Delimiter is the CSV field delimiter. Defaults to ','.
	Delimiter rune

	// InferTypes converts numeric-looking CSV cells to numbers so sorting
	// compares them numerically. Defaults to true via DefaultOptions.
	InferTypes bool
}

// DefaultOptions returns the standard loading options.
func DefaultOptions() Options {
	return Options{
		Delimiter:  ',',
		InferTypes: true,
	}
}

// Load reads path, dispatching on the file extension (.csv, .json).
func Load(path string, opts Options) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path, opts)
	case ".json":
		return LoadJSON(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

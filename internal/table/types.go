// Package table defines the shared data model for tabular views: rows,
// columns, filter and sort descriptors, and the typed configuration used by
// the projection and windowing engines.
package table

import (
	"errors"
	"fmt"
	"time"
)

// Row is an opaque mapping from column field to a scalar display value.
// Rows carry no identity beyond their position in the data slice.
type Row map[string]any

// Column describes a single table column. Columns are immutable for the
// lifetime of a table once set.
type Column struct {
	// Field is the key into Row that this column displays.
	Field string `json:"field"      yaml:"field"`

	// Header is the display label shown in the column header.
	Header string `json:"header"     yaml:"header"`

	// Sortable indicates whether the column can be sorted.
	Sortable bool `json:"sortable"   yaml:"sortable"`

	// Filterable indicates whether the column participates in filtering.
	Filterable bool `json:"filterable" yaml:"filterable"`
}

// SortDirection specifies the direction of a column sort.
type SortDirection string

const (
	// SortAsc sorts in ascending order.
	SortAsc SortDirection = "asc"

	// SortDesc sorts in descending order.
	SortDesc SortDirection = "desc"
)

// Valid reports whether the direction is one of the two supported values.
func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}

// Filter selects rows whose Field value contains Value as a case-insensitive
// substring. An empty Field or Value makes the filter a no-op.
type Filter struct {
	Field string `json:"field" yaml:"field"`
	Value string `json:"value" yaml:"value"`
}

// IsZero reports whether the filter is inactive.
func (f Filter) IsZero() bool {
	return f.Field == "" || f.Value == ""
}

// Sort orders rows by the given field. An empty Field makes the sort a no-op.
type Sort struct {
	Field     string        `json:"field"     yaml:"field"`
	Direction SortDirection `json:"direction" yaml:"direction"`
}

// IsZero reports whether the sort is inactive.
func (s Sort) IsZero() bool {
	return s.Field == ""
}

// ChangeReason identifies what triggered a table recomputation.
type ChangeReason int

const (
	// ChangeData indicates the underlying row set was replaced.
	ChangeData ChangeReason = iota
	// ChangeProjection indicates the filter or sort changed.
	ChangeProjection
	// ChangeScroll indicates the scroll offset moved.
	ChangeScroll
	// ChangeResize indicates the container was resized.
	ChangeResize
)

// String returns the string representation of a ChangeReason.
func (r ChangeReason) String() string {
	switch r {
	case ChangeData:
		return "data"
	case ChangeProjection:
		return "projection"
	case ChangeScroll:
		return "scroll"
	case ChangeResize:
		return "resize"
	default:
		return fmt.Sprintf("unknown(%d)", int(r))
	}
}

// ChangeEvent is the typed payload delivered to table observers whenever the
// visible range or projection changes.
type ChangeEvent struct {
	// Reason identifies the trigger for this event.
	Reason ChangeReason

	// RowCount is the number of rows in the current projection.
	RowCount int

	// Start is the first materialized row index (inclusive).
	Start int

	// End is the last materialized row index (exclusive).
	End int
}

// Default configuration values.
const (
	// DefaultRowHeight is the rendered height of a single row, in cells.
	DefaultRowHeight = 1

	// DefaultPageSize is the fixed page size used when virtual scrolling is
	// disabled.
	DefaultPageSize = 50

	// DefaultResizeDebounce is the quiet period required before a resize
	// triggers recomputation.
	DefaultResizeDebounce = 150 * time.Millisecond

	// DefaultScrollFrame is the minimum interval between scroll-driven
	// recomputations (one animation frame).
	DefaultScrollFrame = 16 * time.Millisecond
)

// Config validation errors.
var (
	ErrInvalidRowHeight      = errors.New("row height must be positive")
	ErrInvalidPageSize       = errors.New("page size must be positive")
	ErrInvalidResizeDebounce = errors.New("resize debounce must be positive")
	ErrInvalidScrollFrame    = errors.New("scroll frame must be positive")
)

// Config holds the typed table configuration. All fields have documented
// defaults; construct with DefaultConfig and override, then Validate.
type Config struct {
	// RowHeight is the height of a single row in cells. Must be positive.
	RowHeight int

	// PageSize is the number of rows shown per page when virtual scrolling
	// is disabled. Must be positive.
	PageSize int

	// VirtualScrolling enables scroll-driven windowed rendering. When false
	// the table shows a fixed page of PageSize rows.
	VirtualScrolling bool

	// ResizeDebounce is the quiet period before a resize recomputes the
	// visible range.
	ResizeDebounce time.Duration

	// ScrollFrame is the coalescing interval for scroll recomputation.
	ScrollFrame time.Duration
}

// DefaultConfig returns a Config populated with package defaults.
func DefaultConfig() Config {
	return Config{
		RowHeight:        DefaultRowHeight,
		PageSize:         DefaultPageSize,
		VirtualScrolling: true,
		ResizeDebounce:   DefaultResizeDebounce,
		ScrollFrame:      DefaultScrollFrame,
	}
}

// Validate checks that all configuration fields are in range.
func (c Config) Validate() error {
	if c.RowHeight <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRowHeight, c.RowHeight)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.PageSize)
	}
	if c.ResizeDebounce <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidResizeDebounce, c.ResizeDebounce)
	}
	if c.ScrollFrame <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidScrollFrame, c.ScrollFrame)
	}
	return nil
}

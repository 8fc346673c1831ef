package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tablekit/tablekit/internal/table"
)

// Pagination defaults and validation limits.
const (
	DefaultLimit    = 100
	MaxLimit        = 10000
	DefaultPageSize = 50
	MaxPageSize     = 1000
	DefaultOffset   = 0

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Common validation errors.
var (
	ErrNegativeLimit        = errors.New("limit cannot be negative")
	ErrNegativeOffset       = errors.New("offset cannot be negative")
	ErrNegativePage         = errors.New("page cannot be negative")
	ErrNegativePageSize     = errors.New("page-size cannot be negative")
	ErrLimitTooLarge        = fmt.Errorf("limit cannot exceed %d", MaxLimit)
	ErrPageSizeTooLarge     = fmt.Errorf("page-size cannot exceed %d", MaxPageSize)
	ErrMixedPaginationModes = errors.New("cannot use both offset-based (--offset) and page-based (--page) pagination")
	ErrPageSizeWithoutPage  = errors.New("--page-size requires --page to be set")
	ErrPageWithoutPageSize  = errors.New("--page requires --page-size to be set")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'age:desc')")
	ErrEmptySortField       = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc' or 'desc'")
)

// Params holds CLI pagination flags and provides validation.
type Params struct {
	// Limit is the maximum number of results to return (offset-based mode).
	Limit int

	// Offset is the number of results to skip (offset-based mode).
	Offset int

	// Page is the 1-based page number (page-based mode, 0 = inactive).
	Page int

	// PageSize is the number of results per page (page-based mode).
	PageSize int
}

// NewParams creates Params with default values (offset-based mode).
func NewParams() Params {
	return Params{
		Limit:  DefaultLimit,
		Offset: DefaultOffset,
	}
}

// Validate checks that the parameters are in range and the two modes are
// not mixed.
func (p Params) Validate() error {
	if p.Limit < 0 {
		return ErrNegativeLimit
	}
	if p.Limit > MaxLimit {
		return ErrLimitTooLarge
	}
	if p.Offset < 0 {
		return ErrNegativeOffset
	}
	if p.Page < 0 {
		return ErrNegativePage
	}
	if p.PageSize < 0 {
		return ErrNegativePageSize
	}
	if p.PageSize > MaxPageSize {
		return ErrPageSizeTooLarge
	}

	if p.Page > 0 && p.Offset > 0 {
		return ErrMixedPaginationModes
	}
	if p.PageSize > 0 && p.Page == 0 {
		return ErrPageSizeWithoutPage
	}
	if p.Page > 0 && p.PageSize == 0 {
		return ErrPageWithoutPageSize
	}

	return nil
}

// IsPageBased returns true if page-based pagination is active.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// EffectiveOffsetLimit returns the offset and limit for either mode.
func (p Params) EffectiveOffsetLimit() (int, int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Apply slices items according to the pagination parameters. The input is
// never mutated. An offset beyond the end returns an empty slice in
// offset-based mode; page-based mode caps to the last available page.
func Apply[T any](p Params, items []T) []T {
	if len(items) == 0 {
		return items
	}

	offset, limit := p.EffectiveOffsetLimit()

	if p.IsPageBased() && offset >= len(items) {
		// Cap to the start of the last available page.
		offset = ((len(items) - 1) / p.PageSize) * p.PageSize
	}

	if offset >= len(items) {
		return []T{}
	}

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	return items[offset:end]
}

// sortPartsMax is the maximum number of parts in a sort expression.
const sortPartsMax = 2

// ParseSort parses "field" or "field:order" into a table.Sort. An empty
// expression yields an inactive sort.
func ParseSort(expr string) (table.Sort, error) {
	if strings.TrimSpace(expr) == "" {
		return table.Sort{}, nil
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return table.Sort{}, fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}

	field := strings.TrimSpace(parts[0])
	if field == "" {
		return table.Sort{}, ErrEmptySortField
	}

	order := SortOrderAsc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return table.Sort{}, fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return table.Sort{
		Field:     field,
		Direction: table.SortDirection(order),
	}, nil
}

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tablekit/tablekit/internal/table"
)

// Filter expression errors.
var (
	// ErrInvalidFilterFormat is returned when a filter expression is not in
	// "field=value" form.
	ErrInvalidFilterFormat = errors.New("invalid filter format: use 'field=value' (e.g., 'name=jo')")

	// ErrEmptyFilterField is returned when the field part is empty.
	ErrEmptyFilterField = errors.New("filter field cannot be empty")
)

// filterPartsCount is the number of parts in a "field=value" expression.
const filterPartsCount = 2

// ParseFilter parses a "field=value" expression into a table.Filter. An
// empty expression yields an inactive filter. The value may contain '='
// characters; only the first one splits field from value.
func ParseFilter(expr string) (table.Filter, error) {
	if strings.TrimSpace(expr) == "" {
		return table.Filter{}, nil
	}

	parts := strings.SplitN(expr, "=", filterPartsCount)
	if len(parts) != filterPartsCount {
		return table.Filter{}, fmt.Errorf("%w: %q", ErrInvalidFilterFormat, expr)
	}

	field := strings.TrimSpace(parts[0])
	if field == "" {
		return table.Filter{}, ErrEmptyFilterField
	}

	return table.Filter{
		Field: field,
		Value: parts[1],
	}, nil
}

package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/tablekit/tablekit/internal/table"
)

// LoadJSON reads a JSON file holding an array of flat objects. Columns are
// derived from object keys in first-appearance order (keys within a single
// object are visited alphabetically, since JSON objects are unordered).
func LoadJSON(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return ReadJSON(f)
}

// ReadJSON parses a JSON row array from r. Split out from LoadJSON for
// testability.
func ReadJSON(r io.Reader) (*Dataset, error) {
	var rows []table.Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to parse JSON rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}

	return &Dataset{Columns: deriveColumns(rows), Rows: rows}, nil
}

// deriveColumns collects the union of row keys in first-appearance order.
func deriveColumns(rows []table.Row) []table.Column {
	seen := make(map[string]bool)
	var columns []table.Column

	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if seen[k] {
				continue
			}
			seen[k] = true
			columns = append(columns, table.Column{
				Field:      k,
				Header:     k,
				Sortable:   true,
				Filterable: true,
			})
		}
	}

	return columns
}

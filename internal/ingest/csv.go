package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tablekit/tablekit/internal/table"
)

// LoadCSV reads a CSV file whose first record is the header row. Each header
// cell becomes a column; every column is sortable and filterable.
func LoadCSV(path string, opts Options) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f, opts)
}

// ReadCSV parses CSV data from r. Split out from LoadCSV for testability.
func ReadCSV(r io.Reader, opts Options) (*Dataset, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make([]table.Column, 0, len(header))
	for _, field := range header {
		columns = append(columns, table.Column{
			Field:      field,
			Header:     field,
			Sortable:   true,
			Filterable: true,
		})
	}

	var rows []table.Row
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", readErr)
		}

		row := make(table.Row, len(header))
		for i, cell := range record {
			if i >= len(header) {
				break
			}
			row[header[i]] = convertCell(cell, opts.InferTypes)
		}
		rows = append(rows, row)
	}

	return &Dataset{Columns: columns, Rows: rows}, nil
}

// convertCell optionally converts a numeric-looking cell to int64 or
// float64 so sorting compares numbers numerically.
func convertCell(cell string, inferTypes bool) any {
	if !inferTypes || cell == "" {
		return cell
	}

	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}

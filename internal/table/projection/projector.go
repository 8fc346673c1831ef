package projection

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tablekit/tablekit/internal/table"
)

// Projector memoizes the filtered+sorted projection of a row set. The cache
// holds a single slot: the most recent (data, filter, sort) triple and its
// result. Construct with New; a zero Projector is not usable.
type Projector struct {
	// collator performs locale-aware string comparison for non-numeric sorts.
	collator *collate.Collator

	// Cached fingerprints from the previous Project call.
	dataPrint   string
	filterPrint string
	sortPrint   string

	// result is the cached projection for the fingerprints above.
	result []table.Row

	// primed is false until the first Project call populates the slot.
	primed bool

	// recomputes counts cache misses, exposed for tests and debug logging.
	recomputes uint64
}

// New creates a Projector that collates strings for the given locale.
func New(tag language.Tag) *Projector {
	return &Projector{
		collator: collate.New(tag, collate.Loose),
	}
}

// NewDefault creates a Projector with English collation.
func NewDefault() *Projector {
	return New(language.English)
}

// Project returns the filtered-then-sorted view of rows. If data, filter,
// and sort are all unchanged since the previous call, the cached slice is
// returned unchanged (same backing array); otherwise the projection is
// recomputed and cached. The input slice is never mutated.
func (p *Projector) Project(rows []table.Row, filter table.Filter, sort table.Sort) []table.Row {
	dataPrint := Fingerprint(rows)
	filterPrint := Fingerprint(filter)
	sortPrint := Fingerprint(sort)

	if p.primed &&
		dataPrint == p.dataPrint &&
		filterPrint == p.filterPrint &&
		sortPrint == p.sortPrint {
		return p.result
	}

	result := p.applyFilter(rows, filter)
	result = p.applySort(result, sort)

	p.dataPrint = dataPrint
	p.filterPrint = filterPrint
	p.sortPrint = sortPrint
	p.result = result
	p.primed = true
	p.recomputes++

	return result
}

// Recomputes returns the number of cache misses since construction.
func (p *Projector) Recomputes() uint64 {
	return p.recomputes
}

// Invalidate drops the cached slot so the next Project call recomputes.
func (p *Projector) Invalidate() {
	p.primed = false
	p.result = nil
}

// applyFilter returns the rows whose filter field contains the filter value
// as a case-insensitive substring. An inactive filter, or a field present in
// no row, leaves the input untouched.
func (p *Projector) applyFilter(rows []table.Row, filter table.Filter) []table.Row {
	if filter.IsZero() || !fieldPresent(rows, filter.Field) {
		return rows
	}

	needle := strings.ToLower(filter.Value)
	result := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		haystack := strings.ToLower(stringify(row[filter.Field]))
		if strings.Contains(haystack, needle) {
			result = append(result, row)
		}
	}

	return result
}

// applySort returns a sorted copy of rows. Numeric comparison is used when
// both values are numbers, locale string comparison otherwise. The sort is
// stable: rows with equal keys keep their input order in both directions.
func (p *Projector) applySort(rows []table.Row, s table.Sort) []table.Row {
	if s.IsZero() || !s.Direction.Valid() || !fieldPresent(rows, s.Field) {
		return rows
	}

	sorted := make([]table.Row, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		// For descending order, swap i and j in comparisons to maintain
		// stability: equal keys keep input order either way.
		if s.Direction == table.SortDesc {
			i, j = j, i
		}
		return p.less(sorted[i][s.Field], sorted[j][s.Field])
	})

	return sorted
}

// less orders two cell values: numerically when both are numbers, by locale
// collation of their string forms otherwise.
func (p *Projector) less(a, b any) bool {
	if na, ok := numericValue(a); ok {
		if nb, okb := numericValue(b); okb {
			return na < nb
		}
	}
	return p.collator.CompareString(stringify(a), stringify(b)) < 0
}

// fieldPresent reports whether at least one row carries the field. A field
// name that matches nothing makes the filter or sort a no-op rather than an
// error.
func fieldPresent(rows []table.Row, field string) bool {
	for _, row := range rows {
		if _, ok := row[field]; ok {
			return true
		}
	}
	return false
}

// stringify converts a cell value to its display string. Missing values
// stringify to the empty string.
func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// numericValue extracts a float64 from the numeric types a Row can carry.
// JSON ingestion produces float64 and json.Number; CSV ingestion produces
// int64 and float64.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Package window maps a scroll position onto the minimal contiguous range of
// rows that must be materialized, plus a small buffer for smooth scrolling.
//
// The computation is pure: given a viewport (scroll offset, container height,
// row height) and a row count, it produces a [Start, End) index interval, the
// total scrollable height, and per-row absolute offsets. Render cost stays
// O(viewport height) regardless of total row count.
//
// Degenerate inputs (non-positive row height or container height, empty row
// set) yield an empty range rather than an error.
package window

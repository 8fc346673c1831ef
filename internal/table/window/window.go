package window

// maxBufferRows caps the number of extra rows rendered above/below the
// viewport for smooth scrolling.
const maxBufferRows = 5

// Viewport holds the measurements that drive windowed rendering. It is
// mutated by the owning table on every scroll and resize event.
type Viewport struct {
	// ScrollOffset is the current scroll position in cells. Never negative.
	ScrollOffset int

	// ContainerHeight is the height available for rows, in cells (the
	// element height minus the header height). Must be positive for a
	// non-empty range.
	ContainerHeight int

	// RowHeight is the height of a single row in cells. Must be positive
	// for a non-empty range.
	RowHeight int

	// VirtualScrolling enables scroll-driven windowing. When false the
	// range is a fixed page of PageSize rows from the top.
	VirtualScrolling bool

	// PageSize is the fixed page length used when VirtualScrolling is off.
	PageSize int
}

// Range is the contiguous [Start, End) interval of rows to materialize.
type Range struct {
	// Start is the first row index to render (inclusive).
	Start int

	// End is the row index one past the last to render (exclusive).
	End int

	// TotalHeight is rowCount × rowHeight, used by the caller to size the
	// scroll spacer.
	TotalHeight int

	// rowHeight is retained to compute per-row offsets.
	rowHeight int
}

// Slot is a single materialized row position.
type Slot struct {
	// Index is the row's index into the projection.
	Index int

	// Offset is the row's absolute vertical offset (Index × rowHeight).
	Offset int
}

// Len returns the number of rows in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range contains no rows.
func (r Range) IsEmpty() bool {
	return r.End <= r.Start
}

// Offset returns the absolute vertical offset of the row at index.
func (r Range) Offset(index int) int {
	return index * r.rowHeight
}

// Slots expands the range into per-row slots with absolute offsets.
func (r Range) Slots() []Slot {
	if r.IsEmpty() {
		return nil
	}

	slots := make([]Slot, 0, r.Len())
	for i := r.Start; i < r.End; i++ {
		slots = append(slots, Slot{Index: i, Offset: i * r.rowHeight})
	}
	return slots
}

// Compute derives the visible range for the given viewport and row count.
//
// With virtual scrolling enabled:
//
//	visible = ceil(containerHeight / rowHeight)
//	rawStart = floor(scrollOffset / rowHeight)
//	buffer = min(5, visible/2)
//	Start = max(0, rawStart-buffer)
//	End = min(rowCount, rawStart+visible+buffer)
//
// With virtual scrolling disabled the range is the fixed page
// [0, min(rowCount, pageSize)). Degenerate viewports produce an empty range.
func Compute(vp Viewport, rowCount int) Range {
	if rowCount <= 0 || vp.RowHeight <= 0 {
		return Range{rowHeight: vp.RowHeight}
	}

	if !vp.VirtualScrolling {
		end := vp.PageSize
		if end < 0 {
			end = 0
		}
		if end > rowCount {
			end = rowCount
		}
		return Range{
			Start:       0,
			End:         end,
			TotalHeight: rowCount * vp.RowHeight,
			rowHeight:   vp.RowHeight,
		}
	}

	if vp.ContainerHeight <= 0 {
		return Range{
			TotalHeight: rowCount * vp.RowHeight,
			rowHeight:   vp.RowHeight,
		}
	}

	scroll := vp.ScrollOffset
	if scroll < 0 {
		scroll = 0
	}

	visible := (vp.ContainerHeight + vp.RowHeight - 1) / vp.RowHeight
	rawStart := scroll / vp.RowHeight

	buffer := visible / 2
	if buffer > maxBufferRows {
		buffer = maxBufferRows
	}

	start := rawStart - buffer
	if start < 0 {
		start = 0
	}

	end := rawStart + visible + buffer
	if end > rowCount {
		end = rowCount
	}
	if start > end {
		start = end
	}

	return Range{
		Start:       start,
		End:         end,
		TotalHeight: rowCount * vp.RowHeight,
		rowHeight:   vp.RowHeight,
	}
}

// Package tui implements the interactive terminal table on top of Bubble
// Tea. The model owns the projection cache, the windowed renderer, and the
// scroll/resize gates, and exposes table changes through a typed dispatcher.
package tui

import (
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/tablekit/tablekit/internal/table"
	"github.com/tablekit/tablekit/internal/table/notify"
	"github.com/tablekit/tablekit/internal/table/projection"
	"github.com/tablekit/tablekit/internal/table/schedule"
	"github.com/tablekit/tablekit/internal/table/window"
)

// Default dimensions used before the first WindowSizeMsg arrives.
const (
	tableDefaultWidth  = 80
	tableDefaultHeight = 24
)

// chromeRows is the number of screen rows consumed by non-data chrome:
// title, column header, filter line, status bar.
const chromeRows = 4

// recomputeMsg asks the model to recompute projection and visible range.
// It is posted by the resize debouncer and the scroll throttler.
type recomputeMsg struct {
	reason table.ChangeReason
}

// TableModel is the Bubble Tea model for the interactive table view.
type TableModel struct {
	// Immutable after construction.
	columns []table.Column
	cfg     table.Config
	logger  zerolog.Logger

	// Raw data and its cached projection.
	rows      []table.Row
	projector *projection.Projector
	projected []table.Row

	// Query state.
	filter      table.Filter
	sort        table.Sort
	filterInput textinput.Model
	filtering   bool
	selectedCol int

	// Viewport state.
	width        int
	height       int
	scrollOffset int
	visible      window.Range

	// Recomputation gates. Their callbacks post recomputeMsg back into the
	// event loop through publish.
	resizeGate *schedule.Debouncer
	scrollGate *schedule.Throttler

	// pendingWidth/pendingHeight hold the newest resize until the debounce
	// quiet period elapses.
	pendingWidth  int
	pendingHeight int

	// events delivers ChangeEvents to registered observers.
	events *notify.Dispatcher[table.ChangeEvent]

	// publishMu guards publish, which is set after the Bubble Tea program
	// is constructed and read from timer goroutines.
	publishMu sync.RWMutex
	publish   func(tea.Msg)

	quitting bool
}

// NewTableModel builds a table model over the given columns and rows.
// cfg must have been validated by the caller.
func NewTableModel(
	columns []table.Column,
	rows []table.Row,
	cfg table.Config,
	logger zerolog.Logger,
) *TableModel {
	input := textinput.New()
	input.Placeholder = "filter value"
	input.Prompt = "/"
	input.CharLimit = 128

	m := &TableModel{
		columns:       columns,
		cfg:           cfg,
		logger:        logger,
		rows:          rows,
		projector:     projection.NewDefault(),
		filterInput:   input,
		width:         tableDefaultWidth,
		height:        tableDefaultHeight,
		pendingWidth:  tableDefaultWidth,
		pendingHeight: tableDefaultHeight,
		events:        notify.NewDispatcher[table.ChangeEvent](),
	}

	m.resizeGate = schedule.NewDebouncer(cfg.ResizeDebounce, func() {
		m.post(recomputeMsg{reason: table.ChangeResize})
	})
	m.scrollGate = schedule.NewThrottler(cfg.ScrollFrame, func() {
		m.post(recomputeMsg{reason: table.ChangeScroll})
	})

	m.recompute(table.ChangeData)
	return m
}

// SetPublisher wires the model to a running program's Send function so the
// debouncer and throttler can post messages into the event loop. Call before
// Program.Run.
func (m *TableModel) SetPublisher(publish func(tea.Msg)) {
	m.publishMu.Lock()
	defer m.publishMu.Unlock()
	m.publish = publish
}

// post delivers msg to the event loop, dropping it when no publisher is
// wired (headless tests drive recomputeMsg through Update directly).
func (m *TableModel) post(msg tea.Msg) {
	m.publishMu.RLock()
	publish := m.publish
	m.publishMu.RUnlock()

	if publish != nil {
		publish(msg)
	}
}

// SetQuery replaces the active filter and sort, for pre-seeding from CLI
// flags before the program starts.
func (m *TableModel) SetQuery(filter table.Filter, sort table.Sort) {
	m.filter = filter
	m.sort = sort
	m.filterInput.SetValue(filter.Value)
	m.recompute(table.ChangeProjection)
}

// Events returns the dispatcher observers subscribe to for table changes.
func (m *TableModel) Events() *notify.Dispatcher[table.ChangeEvent] {
	return m.events
}

// VisibleRange returns the current materialized row range.
func (m *TableModel) VisibleRange() window.Range {
	return m.visible
}

// Projection returns the current filtered+sorted row view.
func (m *TableModel) Projection() []table.Row {
	return m.projected
}

// ScrollOffset returns the current scroll position in cells.
func (m *TableModel) ScrollOffset() int {
	return m.scrollOffset
}

// Recomputes reports the projection cache miss count (for tests and debug).
func (m *TableModel) Recomputes() uint64 {
	return m.projector.Recomputes()
}

// Init implements tea.Model.
func (m *TableModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Stash the newest size; the debouncer fires once the resize burst
		// goes quiet.
		m.pendingWidth = msg.Width
		m.pendingHeight = msg.Height
		m.resizeGate.Trigger()
		return m, nil

	case recomputeMsg:
		if msg.reason == table.ChangeResize {
			m.width = m.pendingWidth
			m.height = m.pendingHeight
		}
		m.recompute(msg.reason)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey routes keyboard input: filter editing when the filter prompt is
// focused, navigation otherwise.
//
//nolint:gocognit // Key dispatch is inherently branchy.
func (m *TableModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.shutdown()
		return m, tea.Quit

	case tea.KeyUp:
		m.scrollBy(-m.cfg.RowHeight)
	case tea.KeyDown:
		m.scrollBy(m.cfg.RowHeight)
	case tea.KeyPgUp:
		m.scrollBy(-m.containerHeight())
	case tea.KeyPgDown:
		m.scrollBy(m.containerHeight())
	case tea.KeyHome:
		m.scrollTo(0)
	case tea.KeyEnd:
		m.scrollTo(m.maxScroll())
	case tea.KeyLeft:
		m.selectColumn(m.selectedCol - 1)
	case tea.KeyRight:
		m.selectColumn(m.selectedCol + 1)

	case tea.KeyRunes:
		if len(msg.Runes) == 0 {
			break
		}
		switch msg.Runes[0] {
		case 'q':
			m.shutdown()
			return m, tea.Quit
		case 'j':
			m.scrollBy(m.cfg.RowHeight)
		case 'k':
			m.scrollBy(-m.cfg.RowHeight)
		case 'g':
			m.scrollTo(0)
		case 'G':
			m.scrollTo(m.maxScroll())
		case 's':
			m.cycleSort()
		case '/':
			m.filtering = true
			m.filterInput.SetValue(m.filter.Value)
			m.filterInput.Focus()
			return m, textinput.Blink
		}

	default:
		// Ignore other key types.
	}

	return m, nil
}

// handleFilterKey edits the filter prompt. Enter applies, Esc cancels.
func (m *TableModel) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filterInput.Blur()
		m.filter = table.Filter{
			Field: m.filterField(),
			Value: m.filterInput.Value(),
		}
		m.scrollOffset = 0
		m.recompute(table.ChangeProjection)
		return m, nil

	case tea.KeyEsc:
		m.filtering = false
		m.filterInput.Blur()
		return m, nil

	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
}

// filterField returns the field the filter applies to: the selected column
// if it is filterable, otherwise the first filterable column.
func (m *TableModel) filterField() string {
	if m.selectedCol >= 0 && m.selectedCol < len(m.columns) && m.columns[m.selectedCol].Filterable {
		return m.columns[m.selectedCol].Field
	}
	for _, c := range m.columns {
		if c.Filterable {
			return c.Field
		}
	}
	return ""
}

// selectColumn moves the column cursor, clamped to valid bounds.
func (m *TableModel) selectColumn(i int) {
	switch {
	case len(m.columns) == 0:
		m.selectedCol = 0
	case i < 0:
		m.selectedCol = 0
	case i >= len(m.columns):
		m.selectedCol = len(m.columns) - 1
	default:
		m.selectedCol = i
	}
}

// cycleSort advances the selected column's sort through asc, desc, off.
func (m *TableModel) cycleSort() {
	if m.selectedCol < 0 || m.selectedCol >= len(m.columns) {
		return
	}
	col := m.columns[m.selectedCol]
	if !col.Sortable {
		return
	}

	switch {
	case m.sort.Field != col.Field:
		m.sort = table.Sort{Field: col.Field, Direction: table.SortAsc}
	case m.sort.Direction == table.SortAsc:
		m.sort.Direction = table.SortDesc
	default:
		m.sort = table.Sort{}
	}

	m.recompute(table.ChangeProjection)
}

// scrollBy moves the scroll offset and coalesces the recomputation to one
// per frame.
func (m *TableModel) scrollBy(delta int) {
	m.scrollTo(m.scrollOffset + delta)
}

// scrollTo clamps and stores the new offset, then arms the frame gate.
func (m *TableModel) scrollTo(offset int) {
	if offset < 0 {
		offset = 0
	}
	if max := m.maxScroll(); offset > max {
		offset = max
	}
	if offset == m.scrollOffset {
		return
	}

	m.scrollOffset = offset
	m.scrollGate.Trigger()
}

// maxScroll is the largest useful scroll offset for the current projection.
func (m *TableModel) maxScroll() int {
	max := len(m.projected)*m.cfg.RowHeight - m.containerHeight()
	if max < 0 {
		return 0
	}
	return max
}

// containerHeight is the screen height available to data rows, in cells.
func (m *TableModel) containerHeight() int {
	h := (m.height - chromeRows) * m.cfg.RowHeight
	if h < m.cfg.RowHeight {
		return m.cfg.RowHeight
	}
	return h
}

// recompute refreshes the projection through the cache, derives the visible
// range, and publishes a change event.
func (m *TableModel) recompute(reason table.ChangeReason) {
	m.projected = m.projector.Project(m.rows, m.filter, m.sort)

	// The projection may have shrunk; re-clamp before windowing.
	if max := m.maxScroll(); m.scrollOffset > max {
		m.scrollOffset = max
	}

	m.visible = window.Compute(window.Viewport{
		ScrollOffset:     m.scrollOffset,
		ContainerHeight:  m.containerHeight(),
		RowHeight:        m.cfg.RowHeight,
		VirtualScrolling: m.cfg.VirtualScrolling,
		PageSize:         m.cfg.PageSize,
	}, len(m.projected))

	event := table.ChangeEvent{
		Reason:   reason,
		RowCount: len(m.projected),
		Start:    m.visible.Start,
		End:      m.visible.End,
	}
	m.events.Publish(event)

	m.logger.Debug().
		Str("reason", reason.String()).
		Int("rows", event.RowCount).
		Int("start", event.Start).
		Int("end", event.End).
		Uint64("recomputes", m.projector.Recomputes()).
		Msg("table recomputed")
}

// shutdown stops the timers and releases observers.
func (m *TableModel) shutdown() {
	m.quitting = true
	m.resizeGate.Stop()
	m.scrollGate.Stop()
	m.events.Close()
}

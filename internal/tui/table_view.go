package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tablekit/tablekit/internal/table"
)

// Styles for the table chrome. Package-level so the render hot path does not
// allocate styles per frame.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Underline(true)

	headerSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Underline(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	rowAltStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Sort direction indicators shown in column headers.
const (
	sortAscIndicator  = " ▲"
	sortDescIndicator = " ▼"
)

// View implements tea.Model. It materializes only the windowed row range and
// displays the on-screen portion of it.
func (m *TableModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(m.titleLine()))
	b.WriteString("\n")
	b.WriteString(m.headerLine())
	b.WriteString("\n")
	b.WriteString(m.dataLines())
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.statusLine()))

	return b.String()
}

// titleLine summarizes the projection against the raw data.
func (m *TableModel) titleLine() string {
	if len(m.projected) == len(m.rows) {
		return fmt.Sprintf("tablekit · %d rows", len(m.rows))
	}
	return fmt.Sprintf("tablekit · %d of %d rows", len(m.projected), len(m.rows))
}

// headerLine renders the column headers with sort indicators.
func (m *TableModel) headerLine() string {
	if len(m.columns) == 0 {
		return ""
	}

	colWidth := m.columnWidth()
	cells := make([]string, 0, len(m.columns))
	for i, col := range m.columns {
		label := col.Header
		if m.sort.Field == col.Field {
			switch m.sort.Direction {
			case table.SortAsc:
				label += sortAscIndicator
			case table.SortDesc:
				label += sortDescIndicator
			}
		}

		style := headerStyle
		if i == m.selectedCol {
			style = headerSelectedStyle
		}
		cells = append(cells, style.Width(colWidth).MaxWidth(colWidth).Render(label))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// dataLines materializes the windowed range and shows the rows that fall
// inside the viewport. Buffer rows above and below are rendered but held
// off-screen, which keeps scrolling smooth without re-rendering.
func (m *TableModel) dataLines() string {
	if m.visible.IsEmpty() {
		return rowStyle.Render("(no rows)")
	}

	colWidth := m.columnWidth()

	// Materialize every row in the range, keyed by absolute index.
	rendered := make(map[int]string, m.visible.Len())
	for _, slot := range m.visible.Slots() {
		rendered[slot.Index] = m.renderRow(m.projected[slot.Index], slot.Index, colWidth)
	}

	// The on-screen portion starts at the scroll position.
	top := m.scrollOffset / m.cfg.RowHeight
	screenRows := m.containerHeight() / m.cfg.RowHeight

	lines := make([]string, 0, screenRows)
	for i := top; i < top+screenRows && i < len(m.projected); i++ {
		if line, ok := rendered[i]; ok {
			lines = append(lines, line)
		}
	}

	return strings.Join(lines, "\n")
}

// renderRow formats a single row's cells at the given column width.
func (m *TableModel) renderRow(row table.Row, index, colWidth int) string {
	style := rowStyle
	if index%2 == 1 {
		style = rowAltStyle
	}

	cells := make([]string, 0, len(m.columns))
	for _, col := range m.columns {
		cells = append(cells, style.Width(colWidth).MaxWidth(colWidth).Render(cellString(row[col.Field])))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// filterLine shows the filter prompt while editing, or the active filter.
func (m *TableModel) filterLine() string {
	if m.filtering {
		return m.filterInput.View()
	}
	if m.filter.IsZero() {
		return statusStyle.Render("press / to filter, s to sort, q to quit")
	}
	return statusStyle.Render(fmt.Sprintf("filter: %s contains %q", m.filter.Field, m.filter.Value))
}

// statusLine reports the materialized range and scroll position.
func (m *TableModel) statusLine() string {
	if m.visible.IsEmpty() {
		return "no rows"
	}
	return fmt.Sprintf(
		"rows %d-%d of %d · scroll %d/%d",
		m.visible.Start+1,
		m.visible.End,
		len(m.projected),
		m.scrollOffset,
		m.visible.TotalHeight,
	)
}

// columnWidth divides the terminal width evenly across columns.
func (m *TableModel) columnWidth() int {
	if len(m.columns) == 0 {
		return m.width
	}
	w := m.width / len(m.columns)
	if w < 4 {
		return 4
	}
	return w
}

// cellString converts a cell value for display.
func cellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

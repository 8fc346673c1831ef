package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/tablekit/internal/table"
)

func testColumns() []table.Column {
	return []table.Column{
		{Field: "name", Header: "Name", Sortable: true, Filterable: true},
		{Field: "age", Header: "Age", Sortable: true, Filterable: true},
	}
}

func testRows(n int) []table.Row {
	rows := make([]table.Row, 0, n)
	for i := range n {
		rows = append(rows, table.Row{
			"name": "row-" + string(rune('a'+i%26)),
			"age":  float64(i),
		})
	}
	return rows
}

func newTestModel(t *testing.T, rowCount int) *TableModel {
	t.Helper()
	cfg := table.DefaultConfig()
	require.NoError(t, cfg.Validate())

	m := NewTableModel(testColumns(), testRows(rowCount), cfg, zerolog.Nop())
	t.Cleanup(m.shutdown)
	return m
}

// resize applies a window size immediately, bypassing the debounce timer.
func resize(m *TableModel, width, height int) {
	_, _ = m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	_, _ = m.Update(recomputeMsg{reason: table.ChangeResize})
}

func TestTableModel_InitialRangeCoversViewport(t *testing.T) {
	m := newTestModel(t, 1000)
	resize(m, 80, 24)

	r := m.VisibleRange()
	assert.Equal(t, 0, r.Start)
	assert.Greater(t, r.End, 0)
	assert.LessOrEqual(t, r.End, 1000)
	assert.Equal(t, 1000, r.TotalHeight)
}

func TestTableModel_RangeInvariantUnderNavigation(t *testing.T) {
	m := newTestModel(t, 500)
	resize(m, 80, 24)

	keys := []tea.KeyMsg{
		{Type: tea.KeyDown},
		{Type: tea.KeyPgDown},
		{Type: tea.KeyPgDown},
		{Type: tea.KeyEnd},
		{Type: tea.KeyUp},
		{Type: tea.KeyPgUp},
		{Type: tea.KeyHome},
	}

	for _, key := range keys {
		_, _ = m.Update(key)
		_, _ = m.Update(recomputeMsg{reason: table.ChangeScroll})

		r := m.VisibleRange()
		require.GreaterOrEqual(t, r.Start, 0)
		require.LessOrEqual(t, r.Start, r.End)
		require.LessOrEqual(t, r.End, len(m.Projection()))
	}
}

func TestTableModel_EndKeyReachesLastRow(t *testing.T) {
	m := newTestModel(t, 300)
	resize(m, 80, 24)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	_, _ = m.Update(recomputeMsg{reason: table.ChangeScroll})

	assert.Equal(t, 300, m.VisibleRange().End)
	assert.Equal(t, m.maxScroll(), m.ScrollOffset())
}

func TestTableModel_FilterNarrowsProjection(t *testing.T) {
	cfg := table.DefaultConfig()
	rows := []table.Row{
		{"name": "John", "age": float64(30)},
		{"name": "Amy", "age": float64(10)},
		{"name": "Joanna", "age": float64(20)},
	}
	m := NewTableModel(testColumns(), rows, cfg, zerolog.Nop())
	t.Cleanup(m.shutdown)
	resize(m, 80, 24)

	// Open the filter prompt, type "jo", apply.
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := m.Projection()
	require.Len(t, got, 2)
	assert.Equal(t, "John", got[0]["name"])
	assert.Equal(t, "Joanna", got[1]["name"])
	assert.Equal(t, 0, m.ScrollOffset(), "applying a filter resets scroll")
}

func TestTableModel_FilterEscCancels(t *testing.T) {
	m := newTestModel(t, 10)
	resize(m, 80, 24)

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Len(t, m.Projection(), 10, "canceled filter must not apply")
}

func TestTableModel_SortCyclesAscDescOff(t *testing.T) {
	m := newTestModel(t, 50)
	resize(m, 80, 24)

	// Move to the age column and cycle sort.
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	first := m.Projection()[0]["age"].(float64)
	assert.Equal(t, float64(0), first, "ascending puts smallest first")

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	first = m.Projection()[0]["age"].(float64)
	assert.Equal(t, float64(49), first, "descending puts largest first")

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	first = m.Projection()[0]["age"].(float64)
	assert.Equal(t, float64(0), first, "third press restores input order")
}

func TestTableModel_ProjectionCacheHitOnPureScroll(t *testing.T) {
	m := newTestModel(t, 200)
	resize(m, 80, 24)

	before := m.Recomputes()

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	_, _ = m.Update(recomputeMsg{reason: table.ChangeScroll})
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	_, _ = m.Update(recomputeMsg{reason: table.ChangeScroll})

	assert.Equal(t, before, m.Recomputes(), "scrolling must reuse the cached projection")
}

func TestTableModel_PublishesChangeEvents(t *testing.T) {
	m := newTestModel(t, 100)

	var events []table.ChangeEvent
	m.Events().Subscribe(func(e table.ChangeEvent) { events = append(events, e) })

	resize(m, 80, 24)

	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, table.ChangeResize, last.Reason)
	assert.Equal(t, 100, last.RowCount)
	assert.LessOrEqual(t, last.End, 100)
}

func TestTableModel_ViewRendersChromeAndRows(t *testing.T) {
	m := newTestModel(t, 100)
	resize(m, 80, 24)

	view := m.View()
	assert.Contains(t, view, "tablekit")
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "Age")
	assert.Contains(t, view, "rows 1-")
}

func TestTableModel_ViewDoesNotRenderAllRows(t *testing.T) {
	m := newTestModel(t, 10000)
	resize(m, 80, 24)

	view := m.View()
	assert.NotEmpty(t, view)
	assert.Less(t, len(view), 100000, "windowed rendering must not materialize 10k rows")
}

func TestTableModel_EmptyData(t *testing.T) {
	m := NewTableModel(testColumns(), nil, table.DefaultConfig(), zerolog.Nop())
	t.Cleanup(m.shutdown)
	resize(m, 80, 24)

	assert.True(t, m.VisibleRange().IsEmpty())
	assert.Contains(t, m.View(), "no rows")
}

func TestTableModel_PageModeShowsFixedPage(t *testing.T) {
	cfg := table.DefaultConfig()
	cfg.VirtualScrolling = false
	cfg.PageSize = 25

	m := NewTableModel(testColumns(), testRows(200), cfg, zerolog.Nop())
	t.Cleanup(m.shutdown)
	resize(m, 80, 24)

	r := m.VisibleRange()
	assert.Equal(t, 0, r.Start)
	assert.Equal(t, 25, r.End)
}

func TestTableModel_QuitStopsTimersAndObservers(t *testing.T) {
	m := newTestModel(t, 10)

	fired := 0
	m.Events().Subscribe(func(table.ChangeEvent) { fired++ })

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd, "quit key must return tea.Quit")
	assert.Equal(t, "", model.(*TableModel).View())
	assert.Equal(t, 0, m.Events().Len())
}

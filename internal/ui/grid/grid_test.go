package grid

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/cellkit/internal/cell"
	"github.com/zjrosen/cellkit/internal/ui/cells"
	"github.com/zjrosen/cellkit/internal/ui/shared/surface"
)

// tileSource has sections of numbered tiles labelled "<section>-<item>".
type tileSource struct {
	items []int
}

func (s *tileSource) NumberOfSections() int   { return len(s.items) }
func (s *tileSource) NumberOfItems(i int) int { return s.items[i] }

func (s *tileSource) CellForItem(m *Model, pos cell.Position) (surface.Cell, error) {
	tile, err := cell.Fetch[*cells.GridCell](m, pos)
	if err != nil {
		return nil, err
	}
	tile.Configure(fmt.Sprintf("T%d-%d", pos.Section, pos.Row), fmt.Sprint(pos.Row*10))
	return tile, nil
}

func newTestGrid(t *testing.T, cfg Config, items ...int) *Model {
	t.Helper()
	m := New(cfg, &tileSource{items: items})
	require.NoError(t, cell.Register[*cells.GridCell](m))
	m.SetSize(37, 12)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func selected(t *testing.T, m *Model) cell.Position {
	t.Helper()
	pos, ok := m.Selected()
	require.True(t, ok)
	return pos
}

func TestColumns_FitWidth(t *testing.T) {
	m := newTestGrid(t, Config{}, 5)

	m.SetSize(40, 10)
	require.Equal(t, 2, m.Columns())
	m.SetSize(60, 10)
	require.Equal(t, 3, m.Columns())
	m.SetSize(5, 10)
	require.Equal(t, 1, m.Columns())

	fixed := newTestGrid(t, Config{Columns: 4}, 5)
	require.Equal(t, 4, fixed.Columns())
}

func TestProduceInstance_InvalidPosition(t *testing.T) {
	m := newTestGrid(t, Config{}, 5, 2)

	for _, pos := range []cell.Position{{Section: -1}, {Section: 2}, {Section: 1, Row: 2}, {Section: 0, Row: -1}} {
		_, err := cell.Fetch[*cells.GridCell](m, pos)
		require.ErrorIs(t, err, cell.ErrInvalidPosition, "position %s", pos)
	}
}

func TestFetch_RoundTrip(t *testing.T) {
	m := newTestGrid(t, Config{}, 5)

	tile, err := cell.Fetch[*cells.GridCell](m, cell.Position{Row: 3})
	require.NoError(t, err)
	require.True(t, tile.Layout().Border)
	require.Equal(t, 18, tile.Layout().Width)
}

func TestFetch_TypeMismatchPanics(t *testing.T) {
	m := newTestGrid(t, Config{}, 5)
	row, err := cell.LoadTemplate[*cells.RowCell]()
	require.NoError(t, err)
	m.StoreTemplate(cell.Identifier[*cells.GridCell](), row)

	defer func() {
		r := recover()
		mismatch, ok := r.(*cell.TypeMismatchError)
		require.True(t, ok, "expected *cell.TypeMismatchError panic, got %v", r)
		require.Equal(t, "GridCell", mismatch.Identifier)
		require.Equal(t, "*cells.RowCell", mismatch.Actual)
	}()
	_, _ = cell.Fetch[*cells.GridCell](m, cell.Position{})
}

func TestUpdate_Navigation(t *testing.T) {
	// Columns 2 lays out [0:0 0:1] [0:2 0:3] [0:4] [1:0 1:1].
	m := newTestGrid(t, Config{Columns: 2, Focused: true}, 5, 2)

	steps := []struct {
		key  string
		want cell.Position
	}{
		{key: "l", want: cell.Position{Section: 0, Row: 1}},
		{key: "l", want: cell.Position{Section: 0, Row: 2}},
		{key: "j", want: cell.Position{Section: 0, Row: 4}},
		{key: "j", want: cell.Position{Section: 1, Row: 0}},
		{key: "l", want: cell.Position{Section: 1, Row: 1}},
		{key: "k", want: cell.Position{Section: 0, Row: 4}},
		{key: "h", want: cell.Position{Section: 0, Row: 3}},
		{key: "G", want: cell.Position{Section: 1, Row: 1}},
		{key: "l", want: cell.Position{Section: 1, Row: 1}},
		{key: "g", want: cell.Position{Section: 0, Row: 0}},
		{key: "h", want: cell.Position{Section: 0, Row: 0}},
	}
	for i, step := range steps {
		m.Update(keyMsg(step.key))
		require.Equal(t, step.want, selected(t, m), "step %d (%s)", i, step.key)
	}
}

func TestUpdate_IgnoresKeysWhenUnfocused(t *testing.T) {
	m := newTestGrid(t, Config{Columns: 2}, 5)

	m.Update(keyMsg("l"))
	require.Equal(t, cell.Position{}, selected(t, m))

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	require.Equal(t, cell.Position{Row: 2}, selected(t, m), "wheel scrolls regardless of focus")
}

func TestView_Dimensions(t *testing.T) {
	m := newTestGrid(t, Config{Columns: 2}, 5)

	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 12)
	for i, line := range lines {
		require.Equal(t, 37, lipgloss.Width(line), "line %d", i)
	}

	plain := ansi.Strip(view)
	require.Contains(t, plain, "T0-0")
	require.Contains(t, plain, "T0-1")
	require.Contains(t, plain, "T0-4")
}

func TestView_Bordered(t *testing.T) {
	m := newTestGrid(t, Config{Title: "Tiles", ShowBorder: true, Columns: 2, Focused: true}, 3)
	m.SetSize(39, 10)
	m.Update(keyMsg("l"))

	lines := strings.Split(ansi.Strip(m.View()), "\n")
	require.Len(t, lines, 10)
	require.Contains(t, lines[0], "Tiles")
	require.Contains(t, lines[9], "2/3")
}

func TestView_ScrollsToCursorRow(t *testing.T) {
	m := newTestGrid(t, Config{Columns: 2, Focused: true}, 5)
	m.SetSize(37, 4)

	m.Update(keyMsg("j"))
	m.Update(keyMsg("j"))
	plain := ansi.Strip(m.View())
	require.Contains(t, plain, "T0-4")
	require.NotContains(t, plain, "T0-0")
}

func TestView_ShrinksTilesToFitColumns(t *testing.T) {
	m := newTestGrid(t, Config{Columns: 3}, 3)
	m.SetSize(20, 4)

	for _, line := range strings.Split(m.View(), "\n") {
		require.Equal(t, 20, lipgloss.Width(line))
	}
}

func TestView_Empty(t *testing.T) {
	m := newTestGrid(t, Config{EmptyMessage: "No tiles"})

	_, ok := m.Selected()
	require.False(t, ok)
	require.Contains(t, ansi.Strip(m.View()), "No tiles")
}

func TestReload_ClampsCursor(t *testing.T) {
	src := &tileSource{items: []int{5}}
	m := New(Config{Columns: 2, Focused: true}, src)
	require.NoError(t, cell.Register[*cells.GridCell](m))
	m.SetSize(37, 12)
	m.Update(keyMsg("G"))
	require.Equal(t, cell.Position{Row: 4}, selected(t, m))

	src.items = []int{3}
	m.Reload()
	require.Equal(t, cell.Position{Row: 2}, selected(t, m))
}

package list

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/cellkit/internal/cell"
	"github.com/zjrosen/cellkit/internal/ui/cells"
	"github.com/zjrosen/cellkit/internal/ui/shared/surface"
)

type section struct {
	title string
	rows  []string
}

// issueSource puts a header at row 0 of every section.
type issueSource struct {
	sections []section
}

func (s *issueSource) NumberOfSections() int { return len(s.sections) }

func (s *issueSource) NumberOfRows(i int) int { return len(s.sections[i].rows) + 1 }

func (s *issueSource) CellForRow(m *Model, pos cell.Position) (surface.Cell, error) {
	sec := s.sections[pos.Section]
	if pos.Row == 0 {
		header, err := cell.Fetch[*cells.SectionHeaderCell](m, pos)
		if err != nil {
			return nil, err
		}
		header.Configure(sec.title, len(sec.rows))
		return header, nil
	}

	row, err := cell.Fetch[*cells.RowCell](m, pos)
	if err != nil {
		return nil, err
	}
	row.Configure("●", sec.rows[pos.Row-1], "open")
	return row, nil
}

func sampleSource() *issueSource {
	return &issueSource{sections: []section{
		{title: "Open", rows: []string{"Fix login", "Add search", "Bump deps"}},
		{title: "Closed", rows: []string{"Write docs", "Ship v1"}},
	}}
}

func newTestList(t *testing.T, cfg Config, src DataSource) *Model {
	t.Helper()
	m := New(cfg, src)
	require.NoError(t, cell.Register[*cells.RowCell](m))
	require.NoError(t, cell.Register[*cells.SectionHeaderCell](m))
	m.SetSize(40, 10)
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func plainLines(view string) []string {
	return strings.Split(ansi.Strip(view), "\n")
}

func TestProduceInstance_InvalidPosition(t *testing.T) {
	m := newTestList(t, Config{Title: "Issues"}, sampleSource())

	tests := []struct {
		name string
		pos  cell.Position
	}{
		{name: "negative section", pos: cell.Position{Section: -1}},
		{name: "section past end", pos: cell.Position{Section: 2}},
		{name: "negative row", pos: cell.Position{Section: 0, Row: -1}},
		{name: "row past end", pos: cell.Position{Section: 0, Row: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.ProduceInstance("RowCell", tt.pos)
			require.ErrorIs(t, err, cell.ErrInvalidPosition)

			_, err = cell.Fetch[*cells.RowCell](m, tt.pos)
			require.ErrorIs(t, err, cell.ErrInvalidPosition)
		})
	}
}

func TestProduceInstance_ValidityMatchesDataSource(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		counts := rapid.SliceOfN(rapid.IntRange(0, 5), 0, 4).Draw(t, "rows")
		src := &countSource{rows: counts}
		m := New(Config{}, src)
		cell.RegisterClass[*cells.SpacerCell](m)

		pos := cell.Position{
			Section: rapid.IntRange(-1, 5).Draw(t, "section"),
			Row:     rapid.IntRange(-1, 6).Draw(t, "row"),
		}
		_, err := m.ProduceInstance("SpacerCell", pos)

		valid := pos.Section >= 0 && pos.Section < len(counts) && pos.Row >= 0 && pos.Row < counts[pos.Section]
		if valid && err != nil {
			t.Fatalf("valid position %s rejected: %v", pos, err)
		}
		if !valid && err == nil {
			t.Fatalf("invalid position %s accepted", pos)
		}
	})
}

// countSource has the given number of spacer rows per section.
type countSource struct {
	rows []int
}

func (s *countSource) NumberOfSections() int  { return len(s.rows) }
func (s *countSource) NumberOfRows(i int) int { return s.rows[i] }
func (s *countSource) CellForRow(m *Model, pos cell.Position) (surface.Cell, error) {
	spacer, err := cell.Fetch[*cells.SpacerCell](m, pos)
	if err != nil {
		return nil, err
	}
	return spacer, nil
}

func TestProduceInstance_NotRegistered(t *testing.T) {
	m := New(Config{}, sampleSource())

	_, err := m.ProduceInstance("RowCell", cell.Position{Section: 0, Row: 1})
	require.ErrorIs(t, err, cell.ErrNotRegistered)
}

func TestFetch_ProducesFreshConfiguredInstances(t *testing.T) {
	m := newTestList(t, Config{}, sampleSource())
	pos := cell.Position{Section: 0, Row: 1}

	first, err := cell.Fetch[*cells.RowCell](m, pos)
	require.NoError(t, err)
	require.Equal(t, "RowCell", first.Identifier())
	require.Equal(t, 1, first.Layout().Height)

	second, err := cell.Fetch[*cells.RowCell](m, pos)
	require.NoError(t, err)
	require.NotSame(t, first, second)
}

func TestFetch_TypeMismatchPanics(t *testing.T) {
	m := newTestList(t, Config{}, sampleSource())
	grid, err := cell.LoadTemplate[*cells.GridCell]()
	require.NoError(t, err)
	m.StoreTemplate("RowCell", grid)

	require.PanicsWithError(t,
		`cell "RowCell": expected instance of *cells.RowCell, container produced *cells.GridCell`,
		func() { _, _ = cell.Fetch[*cells.RowCell](m, cell.Position{Section: 0, Row: 1}) },
	)
}

func TestView_BorderedDimensions(t *testing.T) {
	m := newTestList(t, Config{Title: "Issues", ShowBorder: true, Focused: true}, sampleSource())

	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 10)
	for i, line := range lines {
		require.Equal(t, 40, lipgloss.Width(line), "line %d", i)
	}

	plain := plainLines(view)
	require.Contains(t, plain[0], "Issues")
	require.Contains(t, plain[1], "▸ Open")
	require.Contains(t, plain[2], "Fix login")
	require.Contains(t, plain[5], "▸ Closed")
	require.Contains(t, plain[9], "1/7")
}

func TestUpdate_KeyNavigation(t *testing.T) {
	m := newTestList(t, Config{Focused: true}, sampleSource())

	m.Update(keyMsg("j"))
	m.Update(keyMsg("j"))
	pos, ok := m.Selected()
	require.True(t, ok)
	require.Equal(t, cell.Position{Section: 0, Row: 2}, pos)

	m.Update(keyMsg("G"))
	pos, _ = m.Selected()
	require.Equal(t, cell.Position{Section: 1, Row: 2}, pos)

	m.Update(keyMsg("j"))
	pos, _ = m.Selected()
	require.Equal(t, cell.Position{Section: 1, Row: 2}, pos, "cursor stops at the last row")

	m.Update(keyMsg("g"))
	m.Update(keyMsg("k"))
	pos, _ = m.Selected()
	require.Equal(t, cell.Position{}, pos, "cursor stops at the first row")
}

func TestUpdate_IgnoresKeysWhenUnfocused(t *testing.T) {
	m := newTestList(t, Config{}, sampleSource())

	m.Update(keyMsg("j"))
	pos, _ := m.Selected()
	require.Equal(t, cell.Position{}, pos)
}

func TestUpdate_MouseWheelMovesCursor(t *testing.T) {
	m := newTestList(t, Config{}, sampleSource())

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	pos, _ := m.Selected()
	require.Equal(t, cell.Position{Section: 0, Row: 1}, pos)
}

func TestView_ScrollsToKeepCursorVisible(t *testing.T) {
	m := newTestList(t, Config{Focused: true}, sampleSource())
	m.SetSize(30, 3)

	m.Update(keyMsg("G"))
	plain := plainLines(m.View())
	require.Len(t, plain, 3)
	require.Contains(t, plain[0], "▸ Closed")
	require.Contains(t, plain[2], "Ship v1")

	m.Update(keyMsg("g"))
	plain = plainLines(m.View())
	require.Contains(t, plain[0], "▸ Open")
}

func TestSelect(t *testing.T) {
	m := newTestList(t, Config{Focused: true}, sampleSource())

	m.Select(cell.Position{Section: 1, Row: 1})
	pos, _ := m.Selected()
	require.Equal(t, cell.Position{Section: 1, Row: 1}, pos)

	m.Select(cell.Position{Section: 9, Row: 9})
	pos, _ = m.Selected()
	require.Equal(t, cell.Position{Section: 1, Row: 1}, pos, "invalid positions are ignored")
}

func TestReload_ClampsCursor(t *testing.T) {
	src := sampleSource()
	m := newTestList(t, Config{Focused: true}, src)
	m.Update(keyMsg("G"))

	src.sections = src.sections[:1]
	m.Reload()

	pos, _ := m.Selected()
	require.Equal(t, cell.Position{Section: 0, Row: 3}, pos)
}

func TestView_Empty(t *testing.T) {
	m := newTestList(t, Config{EmptyMessage: "Nothing here"}, &issueSource{})

	_, ok := m.Selected()
	require.False(t, ok)
	require.Contains(t, ansi.Strip(m.View()), "Nothing here")
}

func TestView_RendersDataSourceErrorsInPlace(t *testing.T) {
	m := New(Config{}, sampleSource())
	require.NoError(t, cell.Register[*cells.SectionHeaderCell](m))
	m.SetSize(60, 7)

	plain := plainLines(m.View())
	require.Contains(t, plain[0], "▸ Open")
	require.Contains(t, plain[1], "!ERR")
	require.Contains(t, plain[1], "not registered")
	for _, line := range strings.Split(m.View(), "\n") {
		require.Equal(t, 60, lipgloss.Width(line))
	}
}

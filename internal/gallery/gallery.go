// Package gallery is the interactive demo: a sectioned list and a grid of
// tiles, each a cell container with the built-in kinds registered on it.
package gallery

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/cellkit/internal/cell"
	"github.com/zjrosen/cellkit/internal/keys"
	"github.com/zjrosen/cellkit/internal/log"
	"github.com/zjrosen/cellkit/internal/ui/cells"
	"github.com/zjrosen/cellkit/internal/ui/grid"
	"github.com/zjrosen/cellkit/internal/ui/list"
	"github.com/zjrosen/cellkit/internal/ui/styles"
)

// Pane identifies one of the two containers.
type Pane int

const (
	PaneList Pane = iota
	PaneGrid
)

const (
	zoneListPane = "gallery:list"
	zoneGridPane = "gallery:grid"
)

// Options configures the gallery.
type Options struct {
	ShowBorder  bool
	GridColumns int
	CellWidth   int
	StartView   string // "list" or "grid"
}

// Model is the gallery's bubbletea model.
type Model struct {
	list *list.Model
	grid *grid.Model
	help help.Model
	keys keys.KeyMap

	focus  Pane
	width  int
	height int
}

// New builds the gallery and registers the cell kinds on both containers.
// A kind whose template cannot be found fails here with the bundle's
// *cell.TemplateNotFoundError.
func New(opts Options, issues []Issue) (Model, error) {
	l := list.New(list.Config{
		Title:      "Issues",
		ShowBorder: opts.ShowBorder,
		ZonePrefix: "list",
	}, newIssueList(issues))
	g := grid.New(grid.Config{
		Title:      "Stats",
		ShowBorder: opts.ShowBorder,
		ZonePrefix: "grid",
		Columns:    opts.GridColumns,
		CellWidth:  opts.CellWidth,
	}, newStatsGrid(issues))

	if err := registerList(l); err != nil {
		return Model{}, err
	}
	if err := cell.Register[*cells.GridCell](g); err != nil {
		return Model{}, fmt.Errorf("register grid cells: %w", err)
	}

	m := Model{
		list: l,
		grid: g,
		help: help.New(),
		keys: keys.DefaultKeyMap(),
	}
	if opts.StartView == "grid" {
		m.focus = PaneGrid
	}
	m.applyFocus()
	return m, nil
}

func registerList(l *list.Model) error {
	if err := cell.Register[*cells.SectionHeaderCell](l); err != nil {
		return fmt.Errorf("register list cells: %w", err)
	}
	if err := cell.Register[*cells.RowCell](l); err != nil {
		return fmt.Errorf("register list cells: %w", err)
	}
	cell.RegisterClass[*cells.SpacerCell](l)
	log.Debug(log.CatUI, "list cells registered", "identifiers", strings.Join(l.Identifiers(), ","))
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.SwitchPane):
			m.focus = 1 - m.focus
			m.applyFocus()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.SetSize(m.width, m.height)
			return m, nil
		}
		if m.focus == PaneGrid {
			return m, m.grid.Update(msg)
		}
		return m, m.list.Update(msg)

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			if z := zone.Get(zoneListPane); z != nil && z.InBounds(msg) {
				m.focus = PaneList
			} else if z := zone.Get(zoneGridPane); z != nil && z.InBounds(msg) {
				m.focus = PaneGrid
			}
			m.applyFocus()
		}
		if z := zone.Get(zoneGridPane); z != nil && z.InBounds(msg) {
			return m, m.grid.Update(msg)
		}
		return m, m.list.Update(msg)
	}
	return m, nil
}

// Focus returns the focused pane.
func (m Model) Focus() Pane {
	return m.focus
}

// Selected returns the cursor position of the given pane.
func (m Model) Selected(p Pane) (cell.Position, bool) {
	if p == PaneGrid {
		return m.grid.Selected()
	}
	return m.list.Selected()
}

func (m *Model) applyFocus() {
	m.list.SetFocused(m.focus == PaneList)
	m.grid.SetFocused(m.focus == PaneGrid)
}

// SetSize lays out the panes: the list takes three fifths of the width and
// the help line sits underneath.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	paneHeight := max(height-lipgloss.Height(m.help.View(m.keys)), 1)
	listWidth := width * 3 / 5
	m.list.SetSize(listWidth, paneHeight)
	m.grid.SetSize(width-listWidth, paneHeight)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		zone.Mark(zoneListPane, m.list.View()),
		zone.Mark(zoneGridPane, m.grid.View()),
	)
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left,
		panes,
		styles.HelpStyle.Render(m.help.View(m.keys)),
	))
}

// Render draws one static frame with the given pane focused.
func Render(opts Options, issues []Issue, focus Pane, width, height int) (string, error) {
	if width < 1 || height < 1 {
		return "", fmt.Errorf("render size must be positive, got %dx%d", width, height)
	}
	m, err := New(opts, issues)
	if err != nil {
		return "", err
	}
	m.focus = focus
	m.applyFocus()
	m.SetSize(width, height)
	return m.View(), nil
}

// Package list implements a scrolling, sectioned list of cells.
//
// The list is a cell.Container: kinds are registered on it with
// cell.Register and its DataSource fetches instances back with cell.Fetch
// while the list renders.
package list

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/cellkit/internal/cell"
	"github.com/zjrosen/cellkit/internal/keys"
	"github.com/zjrosen/cellkit/internal/log"
	"github.com/zjrosen/cellkit/internal/ui/shared/panes"
	"github.com/zjrosen/cellkit/internal/ui/shared/surface"
	"github.com/zjrosen/cellkit/internal/ui/styles"
)

// DataSource supplies the list's shape and its cells.
type DataSource interface {
	NumberOfSections() int
	NumberOfRows(section int) int
	// CellForRow returns the cell for pos, typically via cell.Fetch on m.
	CellForRow(m *Model, pos cell.Position) (surface.Cell, error)
}

// Config configures a list.
type Config struct {
	Title        string
	ShowBorder   bool
	EmptyMessage string // shown when the data source has no rows
	ZonePrefix   string // bubblezone id prefix, defaults to "list"
	Focused      bool
}

// Model is the list state.
type Model struct {
	cell.TemplateTable

	config Config
	source DataSource
	keys   keys.KeyMap

	width  int
	height int
	cursor int // index into positions()
	offset int // first visible index
}

var _ cell.Container = (*Model)(nil)

// New creates a list reading from source.
func New(cfg Config, source DataSource) *Model {
	if cfg.EmptyMessage == "" {
		cfg.EmptyMessage = "No cells"
	}
	if cfg.ZonePrefix == "" {
		cfg.ZonePrefix = "list"
	}
	return &Model{
		config: cfg,
		source: source,
		keys:   keys.DefaultKeyMap(),
	}
}

// ProduceInstance returns a fresh instance of the template stored under
// identifier. pos must address a row of the data source.
func (m *Model) ProduceInstance(identifier string, pos cell.Position) (any, error) {
	if !m.valid(pos) {
		return nil, fmt.Errorf("list %q: produce %q at %s: %w", m.config.Title, identifier, pos, cell.ErrInvalidPosition)
	}
	return m.Instantiate(identifier)
}

func (m *Model) valid(pos cell.Position) bool {
	if pos.Section < 0 || pos.Section >= m.source.NumberOfSections() {
		return false
	}
	return pos.Row >= 0 && pos.Row < m.source.NumberOfRows(pos.Section)
}

// positions flattens the data source into display order.
func (m *Model) positions() []cell.Position {
	var out []cell.Position
	for s := range m.source.NumberOfSections() {
		for r := range m.source.NumberOfRows(s) {
			out = append(out, cell.Position{Section: s, Row: r})
		}
	}
	return out
}

// SetSize sets the outer dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// SetFocused toggles focus. Only a focused list reacts to keys and draws
// its selection.
func (m *Model) SetFocused(focused bool) {
	m.config.Focused = focused
}

// Focused reports whether the list has focus.
func (m *Model) Focused() bool {
	return m.config.Focused
}

// Selected returns the position under the cursor.
func (m *Model) Selected() (cell.Position, bool) {
	all := m.positions()
	if len(all) == 0 {
		return cell.Position{}, false
	}
	return all[min(m.cursor, len(all)-1)], true
}

// Select moves the cursor to pos. Invalid positions are ignored.
func (m *Model) Select(pos cell.Position) {
	for i, p := range m.positions() {
		if p == pos {
			m.cursor = i
			m.ensureVisible()
			return
		}
	}
}

// Reload clamps the cursor after the data source changed.
func (m *Model) Reload() {
	m.cursor = min(m.cursor, max(len(m.positions())-1, 0))
	m.ensureVisible()
}

// Update handles key and mouse input.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.config.Focused {
			return nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Top):
			m.move(-len(m.positions()))
		case key.Matches(msg, m.keys.Bottom):
			m.move(len(m.positions()))
		}
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action == tea.MouseActionPress {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.move(-1)
			return
		case tea.MouseButtonWheelDown:
			m.move(1)
			return
		}
	}
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return
	}
	for i, pos := range m.positions() {
		if z := zone.Get(surface.ZoneID(m.config.ZonePrefix, pos)); z != nil && z.InBounds(msg) {
			m.cursor = i
			m.ensureVisible()
			log.Debug(log.CatUI, "list cell clicked", "list", m.config.Title, "position", pos.String())
			return
		}
	}
}

func (m *Model) move(delta int) {
	n := len(m.positions())
	if n == 0 {
		return
	}
	m.cursor = max(0, min(m.cursor+delta, n-1))
	m.ensureVisible()
}

func (m *Model) innerSize() (int, int) {
	if m.config.ShowBorder {
		return max(m.width-2, 0), max(m.height-2, 0)
	}
	return m.width, m.height
}

// ensureVisible scrolls so the cursor row is fully on screen when it fits.
func (m *Model) ensureVisible() {
	all := m.positions()
	if len(all) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	m.cursor = min(m.cursor, len(all)-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
		return
	}

	width, height := m.innerSize()
	if width < 1 || height < 1 {
		return
	}
	used := 0
	for i := m.offset; i <= m.cursor; i++ {
		used += m.rowHeight(all[i], width)
	}
	for used > height && m.offset < m.cursor {
		used -= m.rowHeight(all[m.offset], width)
		m.offset++
	}
}

func (m *Model) rowHeight(pos cell.Position, width int) int {
	c, err := m.source.CellForRow(m, pos)
	if err != nil {
		return 1
	}
	if h, ok := c.(interface{ Height() int }); ok {
		return max(h.Height(), 1)
	}
	return max(lipgloss.Height(c.View(width, false)), 1)
}

// View renders the visible rows.
func (m *Model) View() string {
	width, height := m.innerSize()
	if width < 1 || height < 1 {
		return ""
	}

	all := m.positions()
	var lines []string
	if len(all) == 0 {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.HelpStyle.Render(m.config.EmptyMessage)))
	}
	for i := m.offset; i < len(all) && len(lines) < height; i++ {
		view := m.renderRow(all[i], width, m.config.Focused && i == m.cursor)
		lines = append(lines, strings.Split(view, "\n")...)
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	content := strings.Join(lines, "\n")
	if !m.config.ShowBorder {
		for len(lines) < height {
			lines = append(lines, strings.Repeat(" ", width))
		}
		return strings.Join(lines, "\n")
	}

	footer := ""
	if len(all) > 0 {
		footer = fmt.Sprintf("%d/%d", min(m.cursor, len(all)-1)+1, len(all))
	}
	return panes.BorderedPane(panes.BorderConfig{
		Content: content,
		Width:   m.width,
		Height:  m.height,
		Title:   m.config.Title,
		Footer:  footer,
		Focused: m.config.Focused,
	})
}

// renderRow draws one cell wrapped in its click zone. Data source errors are
// drawn in place of the cell.
func (m *Model) renderRow(pos cell.Position, width int, selected bool) string {
	c, err := m.source.CellForRow(m, pos)
	var view string
	if err != nil {
		log.ErrorErr(log.CatUI, "cell for row failed", err, "position", pos.String())
		view = styles.ErrorStyle.Render(styles.FitWidth("!ERR "+err.Error(), width))
	} else {
		view = c.View(width, selected)
	}
	return zone.Mark(surface.ZoneID(m.config.ZonePrefix, pos), view)
}

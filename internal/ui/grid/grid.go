// Package grid implements a scrolling grid of tiles grouped by section.
//
// Items of a section flow left to right into rows of Columns tiles; every
// section starts on a new row. Like list.Model, the grid is a
// cell.Container whose positions are (section, item).
package grid

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

// DefaultCellWidth is the tile width when Config.CellWidth is unset.
const DefaultCellWidth = 18

const gap = 1

// DataSource supplies the grid's shape and its tiles.
type DataSource interface {
	NumberOfSections() int
	NumberOfItems(section int) int
	// CellForItem returns the tile for pos, typically via cell.Fetch on m.
	CellForItem(m *Model, pos cell.Position) (surface.Cell, error)
}

// Config configures a grid.
type Config struct {
	Title        string
	ShowBorder   bool
	EmptyMessage string
	ZonePrefix   string // bubblezone id prefix, defaults to "grid"
	Focused      bool
	Columns      int // 0 fits as many tiles as the width allows
	CellWidth    int
}

// Model is the grid state.
type Model struct {
	cell.TemplateTable

	config Config
	source DataSource
	keys   keys.KeyMap

	width  int
	height int
	row    int // cursor row in layout()
	col    int
	offset int // first visible layout row
}

var _ cell.Container = (*Model)(nil)

// New creates a grid reading from source.
func New(cfg Config, source DataSource) *Model {
	if cfg.EmptyMessage == "" {
		cfg.EmptyMessage = "No cells"
	}
	if cfg.ZonePrefix == "" {
		cfg.ZonePrefix = "grid"
	}
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = DefaultCellWidth
	}
	return &Model{
		config: cfg,
		source: source,
		keys:   keys.DefaultKeyMap(),
	}
}

// ProduceInstance returns a fresh instance of the template stored under
// identifier. pos.Row is the item index within pos.Section.
func (m *Model) ProduceInstance(identifier string, pos cell.Position) (any, error) {
	if pos.Section < 0 || pos.Section >= m.source.NumberOfSections() ||
		pos.Row < 0 || pos.Row >= m.source.NumberOfItems(pos.Section) {
		return nil, fmt.Errorf("grid %q: produce %q at %s: %w", m.config.Title, identifier, pos, cell.ErrInvalidPosition)
	}
	return m.Instantiate(identifier)
}

// SetSize sets the outer dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clamp()
	m.ensureVisible()
}

// SetFocused toggles focus.
func (m *Model) SetFocused(focused bool) {
	m.config.Focused = focused
}

// Focused reports whether the grid has focus.
func (m *Model) Focused() bool {
	return m.config.Focused
}

// Columns returns the number of tiles per row at the current width.
func (m *Model) Columns() int {
	if m.config.Columns > 0 {
		return m.config.Columns
	}
	width, _ := m.innerSize()
	return max((width+gap)/(m.config.CellWidth+gap), 1)
}

func (m *Model) tileWidth() int {
	width, _ := m.innerSize()
	cols := m.Columns()
	if cols*m.config.CellWidth+(cols-1)*gap <= width {
		return m.config.CellWidth
	}
	return max((width-(cols-1)*gap)/cols, 1)
}

// layout groups positions into display rows.
func (m *Model) layout() [][]cell.Position {
	cols := m.Columns()
	var rows [][]cell.Position
	for s := range m.source.NumberOfSections() {
		var current []cell.Position
		for i := range m.source.NumberOfItems(s) {
			current = append(current, cell.Position{Section: s, Row: i})
			if len(current) == cols {
				rows = append(rows, current)
				current = nil
			}
		}
		if len(current) > 0 {
			rows = append(rows, current)
		}
	}
	return rows
}

// Selected returns the position under the cursor.
func (m *Model) Selected() (cell.Position, bool) {
	rows := m.layout()
	if len(rows) == 0 {
		return cell.Position{}, false
	}
	r := min(m.row, len(rows)-1)
	return rows[r][min(m.col, len(rows[r])-1)], true
}

// Select moves the cursor to pos. Invalid positions are ignored.
func (m *Model) Select(pos cell.Position) {
	for r, row := range m.layout() {
		for c, p := range row {
			if p == pos {
				m.row, m.col = r, c
				m.ensureVisible()
				return
			}
		}
	}
}

// Reload clamps the cursor after the data source changed.
func (m *Model) Reload() {
	m.clamp()
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
			m.moveRow(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveRow(1)
		case key.Matches(msg, m.keys.Left):
			m.moveCol(-1)
		case key.Matches(msg, m.keys.Right):
			m.moveCol(1)
		case key.Matches(msg, m.keys.Top):
			m.row, m.col = 0, 0
			m.ensureVisible()
		case key.Matches(msg, m.keys.Bottom):
			rows := m.layout()
			if len(rows) > 0 {
				m.row = len(rows) - 1
				m.col = len(rows[m.row]) - 1
				m.ensureVisible()
			}
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
			m.moveRow(-1)
			return
		case tea.MouseButtonWheelDown:
			m.moveRow(1)
			return
		}
	}
	if msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionRelease {
		return
	}
	for r, row := range m.layout() {
		for c, pos := range row {
			if z := zone.Get(surface.ZoneID(m.config.ZonePrefix, pos)); z != nil && z.InBounds(msg) {
				m.row, m.col = r, c
				m.ensureVisible()
				log.Debug(log.CatUI, "grid cell clicked", "grid", m.config.Title, "position", pos.String())
				return
			}
		}
	}
}

// moveRow moves vertically, keeping the column when the target row is long
// enough.
func (m *Model) moveRow(delta int) {
	rows := m.layout()
	if len(rows) == 0 {
		return
	}
	m.row = max(0, min(m.row+delta, len(rows)-1))
	m.col = min(m.col, len(rows[m.row])-1)
	m.ensureVisible()
}

// moveCol moves horizontally, wrapping onto the previous or next row.
func (m *Model) moveCol(delta int) {
	rows := m.layout()
	if len(rows) == 0 {
		return
	}
	m.clamp()
	next := m.col + delta
	switch {
	case next < 0:
		if m.row > 0 {
			m.row--
			m.col = len(rows[m.row]) - 1
		}
	case next >= len(rows[m.row]):
		if m.row < len(rows)-1 {
			m.row++
			m.col = 0
		}
	default:
		m.col = next
	}
	m.ensureVisible()
}

func (m *Model) clamp() {
	rows := m.layout()
	if len(rows) == 0 {
		m.row, m.col, m.offset = 0, 0, 0
		return
	}
	m.row = max(0, min(m.row, len(rows)-1))
	m.col = max(0, min(m.col, len(rows[m.row])-1))
}

func (m *Model) innerSize() (int, int) {
	if m.config.ShowBorder {
		return max(m.width-2, 0), max(m.height-2, 0)
	}
	return m.width, m.height
}

func (m *Model) ensureVisible() {
	rows := m.layout()
	if len(rows) == 0 {
		return
	}
	if m.row < m.offset {
		m.offset = m.row
		return
	}

	_, height := m.innerSize()
	if height < 1 {
		return
	}
	used := 0
	for r := m.offset; r <= m.row; r++ {
		used += m.rowHeight(rows[r])
	}
	for used > height && m.offset < m.row {
		used -= m.rowHeight(rows[m.offset])
		m.offset++
	}
}

func (m *Model) rowHeight(row []cell.Position) int {
	h := 1
	for _, pos := range row {
		c, err := m.source.CellForItem(m, pos)
		if err != nil {
			continue
		}
		if hc, ok := c.(interface{ Height() int }); ok {
			h = max(h, hc.Height())
		} else {
			h = max(h, lipgloss.Height(c.View(m.tileWidth(), false)))
		}
	}
	return h
}

// View renders the visible rows of tiles.
func (m *Model) View() string {
	width, height := m.innerSize()
	if width < 1 || height < 1 {
		return ""
	}

	rows := m.layout()
	var lines []string
	if len(rows) == 0 {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.HelpStyle.Render(m.config.EmptyMessage)))
	}
	for r := m.offset; r < len(rows) && len(lines) < height; r++ {
		for _, line := range strings.Split(m.renderRow(r, rows[r]), "\n") {
			lines = append(lines, styles.FitWidth(line, width))
		}
	}
	if len(lines) > height {
		lines = lines[:height]
	}

	if !m.config.ShowBorder {
		for len(lines) < height {
			lines = append(lines, strings.Repeat(" ", width))
		}
		return strings.Join(lines, "\n")
	}

	footer := ""
	if len(rows) > 0 {
		index, total := 0, 0
		for r, row := range rows {
			if r < m.row {
				index += len(row)
			}
			total += len(row)
		}
		footer = fmt.Sprintf("%d/%d", index+min(m.col, len(rows[min(m.row, len(rows)-1)])-1)+1, total)
	}
	return panes.BorderedPane(panes.BorderConfig{
		Content: strings.Join(lines, "\n"),
		Width:   m.width,
		Height:  m.height,
		Title:   m.config.Title,
		Footer:  footer,
		Focused: m.config.Focused,
	})
}

func (m *Model) renderRow(r int, row []cell.Position) string {
	tileWidth := m.tileWidth()
	parts := make([]string, 0, 2*len(row))
	for c, pos := range row {
		if c > 0 {
			parts = append(parts, strings.Repeat(" ", gap))
		}
		selected := m.config.Focused && r == m.row && c == m.col
		parts = append(parts, m.renderTile(pos, tileWidth, selected))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderTile(pos cell.Position, width int, selected bool) string {
	c, err := m.source.CellForItem(m, pos)
	var view string
	if err != nil {
		log.ErrorErr(log.CatUI, "cell for item failed", err, "position", pos.String())
		view = styles.ErrorStyle.Render(styles.FitWidth("!ERR "+err.Error(), width))
	} else {
		view = c.View(width, selected)
	}
	return zone.Mark(surface.ZoneID(m.config.ZonePrefix, pos), view)
}

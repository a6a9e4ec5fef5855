package gallery

import (
	"fmt"
	"strconv"

	"github.com/zjrosen/cellkit/internal/cell"
	"github.com/zjrosen/cellkit/internal/ui/cells"
	"github.com/zjrosen/cellkit/internal/ui/grid"
	"github.com/zjrosen/cellkit/internal/ui/list"
	"github.com/zjrosen/cellkit/internal/ui/shared/surface"
)

// Issue is one row of gallery data.
type Issue struct {
	ID       string
	Title    string
	Status   string // open, in_progress or closed
	Priority int    // 0 (critical) to 4 (backlog)
}

var statusOrder = []struct {
	status string
	title  string
}{
	{status: "open", title: "Open"},
	{status: "in_progress", title: "In Progress"},
	{status: "closed", title: "Closed"},
}

// SampleIssues returns the data shown by the gallery.
func SampleIssues() []Issue {
	return []Issue{
		{ID: "ck-1", Title: "Register kinds on the list", Status: "closed", Priority: 1},
		{ID: "ck-2", Title: "Load templates from a user directory", Status: "in_progress", Priority: 1},
		{ID: "ck-3", Title: "Trace template lookups", Status: "closed", Priority: 2},
		{ID: "ck-4", Title: "Grid tiles shrink on narrow terminals", Status: "open", Priority: 2},
		{ID: "ck-5", Title: "Report type mismatches with both type names", Status: "open", Priority: 0},
		{ID: "ck-6", Title: "TOML templates", Status: "closed", Priority: 3},
		{ID: "ck-7", Title: "Mouse selection in grids", Status: "in_progress", Priority: 2},
		{ID: "ck-8", Title: "Theme colors from config", Status: "open", Priority: 4},
	}
}

type issueGroup struct {
	title  string
	issues []Issue
}

// issueList feeds the list pane. Each section is a header row, one row per
// issue and, between sections, a spacer.
type issueList struct {
	groups []issueGroup
}

func newIssueList(issues []Issue) *issueList {
	s := &issueList{}
	for _, st := range statusOrder {
		g := issueGroup{title: st.title}
		for _, is := range issues {
			if is.Status == st.status {
				g.issues = append(g.issues, is)
			}
		}
		if len(g.issues) > 0 {
			s.groups = append(s.groups, g)
		}
	}
	return s
}

func (s *issueList) NumberOfSections() int {
	return len(s.groups)
}

func (s *issueList) NumberOfRows(section int) int {
	n := len(s.groups[section].issues) + 1
	if section < len(s.groups)-1 {
		n++
	}
	return n
}

func (s *issueList) CellForRow(m *list.Model, pos cell.Position) (surface.Cell, error) {
	g := s.groups[pos.Section]
	switch {
	case pos.Row == 0:
		header, err := cell.Fetch[*cells.SectionHeaderCell](m, pos)
		if err != nil {
			return nil, err
		}
		header.Configure(g.title, len(g.issues))
		return header, nil

	case pos.Row <= len(g.issues):
		is := g.issues[pos.Row-1]
		row, err := cell.Fetch[*cells.RowCell](m, pos)
		if err != nil {
			return nil, err
		}
		row.Configure(fmt.Sprintf("P%d", is.Priority), is.ID+" "+is.Title, is.Status)
		return row, nil

	default:
		spacer, err := cell.Fetch[*cells.SpacerCell](m, pos)
		if err != nil {
			return nil, err
		}
		return spacer, nil
	}
}

type tile struct {
	label string
	value string
}

// statsGrid feeds the grid pane with issue counts by status, then by priority.
type statsGrid struct {
	sections [][]tile
}

func newStatsGrid(issues []Issue) *statsGrid {
	byStatus := make([]tile, 0, len(statusOrder))
	for _, st := range statusOrder {
		n := 0
		for _, is := range issues {
			if is.Status == st.status {
				n++
			}
		}
		byStatus = append(byStatus, tile{label: st.title, value: strconv.Itoa(n)})
	}

	byPriority := make([]tile, 0, 5)
	for p := range 5 {
		n := 0
		for _, is := range issues {
			if is.Priority == p {
				n++
			}
		}
		byPriority = append(byPriority, tile{label: fmt.Sprintf("P%d", p), value: strconv.Itoa(n)})
	}

	return &statsGrid{sections: [][]tile{byStatus, byPriority}}
}

func (s *statsGrid) NumberOfSections() int {
	return len(s.sections)
}

func (s *statsGrid) NumberOfItems(section int) int {
	return len(s.sections[section])
}

func (s *statsGrid) CellForItem(m *grid.Model, pos cell.Position) (surface.Cell, error) {
	t := s.sections[pos.Section][pos.Row]
	tile, err := cell.Fetch[*cells.GridCell](m, pos)
	if err != nil {
		return nil, err
	}
	tile.Configure(t.label, t.value)
	return tile, nil
}

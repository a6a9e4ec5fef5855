package cells

import (
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/cellkit/internal/bundle"
	"github.com/zjrosen/cellkit/internal/cell"
	"github.com/zjrosen/cellkit/internal/templates"
)

func produce[K cell.TemplateLoadable](t *testing.T) K {
	t.Helper()
	tmpl, err := cell.LoadTemplate[K]()
	require.NoError(t, err)
	inst, err := tmpl.Instantiate()
	require.NoError(t, err)
	k, ok := inst.(K)
	require.True(t, ok, "instance type %T", inst)
	return k
}

func requireWidth(t *testing.T, view string, width int) {
	t.Helper()
	for i, line := range strings.Split(view, "\n") {
		require.Equal(t, width, lipgloss.Width(line), "line %d: %q", i, ansi.Strip(line))
	}
}

func TestIdentifiers(t *testing.T) {
	require.Equal(t, "RowCell", cell.Identifier[*RowCell]())
	require.Equal(t, "SectionHeaderCell", cell.Identifier[*SectionHeaderCell]())
	require.Equal(t, "GridCell", cell.Identifier[*GridCell]())
	require.Equal(t, "SpacerCell", cell.Identifier[*SpacerCell]())
}

func TestEveryTemplatedKindHasEmbeddedTemplate(t *testing.T) {
	ids, err := DefaultBundle().Identifiers()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		cell.Identifier[*RowCell](),
		cell.Identifier[*SectionHeaderCell](),
		cell.Identifier[*GridCell](),
	}, ids)
}

func TestRowCell_View(t *testing.T) {
	row := produce[*RowCell](t)
	require.Equal(t, "RowCell", row.Identifier())
	row.Configure("●", "Fix login redirect", "open")

	view := row.View(40, false)
	requireWidth(t, view, 40)
	require.Equal(t, 1, row.Height())
	require.Equal(t, 1, lipgloss.Height(view))

	plain := ansi.Strip(view)
	require.True(t, strings.HasPrefix(plain, " ● "), "left padding then marker: %q", plain)
	require.Contains(t, plain, "Fix login redirect")
	require.True(t, strings.HasSuffix(plain, "open "), "status is right aligned before padding: %q", plain)
}

func TestRowCell_TruncatesLongTitle(t *testing.T) {
	row := produce[*RowCell](t)
	row.Configure("●", strings.Repeat("long ", 20), "closed")

	view := row.View(30, true)
	requireWidth(t, view, 30)
	require.Contains(t, ansi.Strip(view), "...")
	require.Contains(t, ansi.Strip(view), "closed")
}

func TestRowCell_NarrowerThanFixedSlots(t *testing.T) {
	row := produce[*RowCell](t)
	row.Configure("●", "title", "in_progress")

	requireWidth(t, row.View(8, false), 8)
}

func TestSectionHeaderCell_View(t *testing.T) {
	header := produce[*SectionHeaderCell](t)
	header.Configure("Open", 3)

	view := header.View(24, false)
	requireWidth(t, view, 24)
	plain := ansi.Strip(view)
	require.True(t, strings.HasPrefix(plain, "▸ Open"))
	require.True(t, strings.HasSuffix(plain, "3"))
}

func TestGridCell_View(t *testing.T) {
	tile := produce[*GridCell](t)
	tile.Configure("Ready", "12")

	require.Equal(t, 4, tile.Height(), "two content lines plus border")

	view := tile.View(18, false)
	requireWidth(t, view, 18)
	lines := strings.Split(ansi.Strip(view), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[0], "╭"))
	require.Contains(t, lines[1], "Ready")
	require.Contains(t, lines[2], "12")
}

func TestGridCell_CentersInWiderSpace(t *testing.T) {
	tile := produce[*GridCell](t)
	tile.Configure("Ready", "12")

	view := tile.View(30, false)
	requireWidth(t, view, 30)
	require.True(t, strings.HasPrefix(ansi.Strip(view), "      ╭"), "18-wide tile centered in 30 columns")
}

func TestSpacerCell_CodeOnlyTemplate(t *testing.T) {
	tmpl := (&cell.Template{Identifier: "SpacerCell"}).Bind(nil)
	var spacer SpacerCell
	spacer.AwakeFromTemplate(tmpl)

	view := spacer.View(10, false)
	require.Equal(t, strings.Repeat(" ", 10), ansi.Strip(view))
	require.Equal(t, 1, spacer.Height())
}

func TestBase_VerticalSlotsBeyondHeightAreDropped(t *testing.T) {
	var b Base
	b.AwakeFromTemplate(&cell.Template{Layout: cell.Layout{
		Height:   1,
		Vertical: true,
		Slots:    []cell.Slot{{Key: "a"}, {Key: "b"}},
	}})
	b.Set("a", "first")
	b.Set("b", "second")

	view := ansi.Strip(b.View(10, false))
	require.Equal(t, "first     ", view)
}

func TestBase_SinglePaddingValueAppliesToBothAxes(t *testing.T) {
	var b Base
	b.AwakeFromTemplate(&cell.Template{Layout: cell.Layout{
		Padding: []int{1},
		Slots:   []cell.Slot{{Key: "a", Align: "center"}},
	}})
	b.Set("a", "x")

	view := b.View(7, false)
	requireWidth(t, view, 7)
	require.Equal(t, 3, b.Height())
	require.Equal(t, []string{"       ", "   x   ", "       "}, strings.Split(ansi.Strip(view), "\n"))
}

func TestSetBundle_OverridesTemplates(t *testing.T) {
	user := fstest.MapFS{
		"cells/RowCell.yaml": &fstest.MapFile{Data: []byte("height: 2\nslots:\n  - key: title\n")},
	}
	prev := SetBundle(bundle.New(templates.DefaultNamespace, []fs.FS{user, templates.CellsFS()}))
	t.Cleanup(func() { SetBundle(prev) })

	row := produce[*RowCell](t)
	require.Equal(t, 2, row.Layout().Height)

	header := produce[*SectionHeaderCell](t)
	require.Equal(t, "cells/SectionHeaderCell.toml", headerSource(t))
	require.NotEmpty(t, header.Layout().Slots)
}

func headerSource(t *testing.T) string {
	t.Helper()
	tmpl, err := Bundle().Lookup("SectionHeaderCell")
	require.NoError(t, err)
	return tmpl.Source
}

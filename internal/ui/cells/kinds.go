package cells

import (
	"strconv"

	"github.com/zjrosen/cellkit/internal/cell"
)

// RowCell is a one-line list row with a marker, a title and a trailing status.
type RowCell struct {
	Base
}

func (RowCell) TemplateBundle() cell.Bundle { return Bundle() }

// Configure fills the row's slots.
func (c *RowCell) Configure(marker, title, status string) {
	c.Set("marker", marker)
	c.Set("title", title)
	c.Set("status", status)
}

// SectionHeaderCell titles a list section and shows how many rows it holds.
type SectionHeaderCell struct {
	Base
}

func (SectionHeaderCell) TemplateBundle() cell.Bundle { return Bundle() }

// Configure fills the header's slots.
func (c *SectionHeaderCell) Configure(title string, count int) {
	c.Set("title", title)
	c.Set("count", strconv.Itoa(count))
}

// GridCell is a bordered tile with a label above a value.
type GridCell struct {
	Base
}

func (GridCell) TemplateBundle() cell.Bundle { return Bundle() }

// Configure fills the tile's slots.
func (c *GridCell) Configure(label, value string) {
	c.Set("label", label)
	c.Set("value", value)
}

// SpacerCell is a blank line between rows. It has no template and is
// registered with cell.RegisterClass.
type SpacerCell struct {
	Base
}

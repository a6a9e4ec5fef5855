// Package surface defines what list and grid containers render.
package surface

import (
	"fmt"

	"github.com/zjrosen/cellkit/internal/cell"
)

// Cell is an instance a container can draw.
// View must return lines of exactly width columns.
type Cell interface {
	View(width int, selected bool) string
}

// ZoneID returns the bubblezone id marking the cell at pos.
// prefix keeps ids unique when several containers share the screen.
func ZoneID(prefix string, pos cell.Position) string {
	return fmt.Sprintf("%s:%d:%d", prefix, pos.Section, pos.Row)
}

// Package cells contains the built-in cell kinds.
//
// Every kind embeds Base, which renders the layout of the template the kind
// was produced from. Kinds resolve their templates from the package bundle,
// which defaults to the embedded templates and can be replaced at startup to
// layer a user template directory in front of them.
package cells

import (
	"io/fs"

	"github.com/zjrosen/cellkit/internal/bundle"
	"github.com/zjrosen/cellkit/internal/cell"
	"github.com/zjrosen/cellkit/internal/templates"
)

var current cell.Bundle = DefaultBundle()

// DefaultBundle returns a bundle over the embedded templates only.
func DefaultBundle() *bundle.Bundle {
	return bundle.New(templates.DefaultNamespace, []fs.FS{templates.CellsFS()})
}

// Bundle returns the bundle the built-in kinds load their templates from.
func Bundle() cell.Bundle {
	return current
}

// SetBundle replaces the bundle used by the built-in kinds and returns the
// previous one. Call it before registering kinds on any container.
func SetBundle(b cell.Bundle) cell.Bundle {
	prev := current
	current = b
	return prev
}

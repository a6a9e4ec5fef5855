package templates

import (
	"embed"
	"io/fs"
)

// DefaultNamespace is the directory holding the built-in cell templates.
const DefaultNamespace = "cells"

// cellTemplates embeds the built-in cell layouts.
// The structure is:
//   - cells/<Identifier>.yaml (or .toml), one file per cell kind
//
//go:embed cells
var cellTemplates embed.FS

// CellsFS returns the embedded filesystem containing the built-in cell templates.
// Bundles use it as their last lookup layer.
func CellsFS() fs.FS {
	return cellTemplates
}

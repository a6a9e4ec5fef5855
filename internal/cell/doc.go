// Package cell registers and fetches list/grid cells by Go type instead of
// by hand-written string identifiers.
//
// A cell kind is any Go type. Its identifier is derived from the declared
// type name (or supplied by implementing Identifiable), and a kind that also
// implements TemplateLoadable can resolve its layout template from a Bundle.
//
// Registration and retrieval are free generic functions over a Container:
//
//	if err := cell.Register[*cells.RowCell](listView); err != nil {
//	    return err
//	}
//	row, err := cell.Fetch[*cells.RowCell](listView, cell.Position{Section: 0, Row: 3})
//
// Fetch panics with *TypeMismatchError when the container hands back an
// instance of another type. That only happens when two kinds were registered
// under the same identifier, which is a programming error. Use TryFetch to
// receive the mismatch as an error instead.
//
// Nothing in this package is safe for concurrent use with the same
// container; callers run register and fetch on the goroutine that owns it.
package cell

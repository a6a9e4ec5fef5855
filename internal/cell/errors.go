package cell

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateNotFound matches every *TemplateNotFoundError via errors.Is.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrNotRegistered is returned by containers asked to produce an instance
	// for an identifier that was never registered on them.
	ErrNotRegistered = errors.New("identifier not registered")

	// ErrInvalidPosition is returned by containers when a position lies
	// outside their data source.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrNoConstructor is returned when a stored template was never bound to
	// a kind and therefore cannot produce instances.
	ErrNoConstructor = errors.New("template has no bound kind")
)

// TemplateNotFoundError reports a bundle lookup that found no template for an
// identifier. Callers can recover, typically by pointing the kind at the
// right bundle.
type TemplateNotFoundError struct {
	Identifier string
	Namespace  string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found in namespace %q", e.Identifier, e.Namespace)
}

// Is reports whether target is ErrTemplateNotFound.
func (e *TemplateNotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}

// TypeMismatchError reports that a container produced an instance whose type
// differs from the kind the caller fetched. It signals an earlier
// registration mistake and is raised as a panic by Fetch.
type TypeMismatchError struct {
	Identifier string
	Expected   string
	Actual     string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cell %q: expected instance of %s, container produced %s", e.Identifier, e.Expected, e.Actual)
}

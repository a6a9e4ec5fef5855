package cell

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/zjrosen/cellkit/internal/log"
)

// Position locates a cell inside a container. List containers read it as
// section/row; grid containers treat Row as the item index in the section.
type Position struct {
	Section int
	Row     int
}

func (p Position) String() string {
	return fmt.Sprintf("(section:%d, row:%d)", p.Section, p.Row)
}

// Container stores templates under identifiers and produces instances for
// positions. The list and grid views implement it.
type Container interface {
	StoreTemplate(identifier string, tmpl *Template)
	ProduceInstance(identifier string, pos Position) (any, error)
}

// TemplateTable is an identifier -> template table that containers embed.
// The zero value is ready to use.
type TemplateTable struct {
	templates map[string]*Template
}

// StoreTemplate stores tmpl under identifier, replacing any earlier entry.
func (t *TemplateTable) StoreTemplate(identifier string, tmpl *Template) {
	if t.templates == nil {
		t.templates = make(map[string]*Template)
	}

	if prev, ok := t.templates[identifier]; ok && prev.kind != nil && tmpl.kind != nil && prev.kind != tmpl.kind {
		log.Warn(log.CatRegistry, "identifier reused by a different kind",
			"identifier", identifier, "previous", prev.kind, "next", tmpl.kind)
	}

	t.templates[identifier] = tmpl
	log.Debug(log.CatRegistry, "template stored", "identifier", identifier, "namespace", tmpl.Namespace)
}

// Template returns the template stored under identifier.
func (t *TemplateTable) Template(identifier string) (*Template, bool) {
	tmpl, ok := t.templates[identifier]
	return tmpl, ok
}

// Identifiers returns the registered identifiers in sorted order.
func (t *TemplateTable) Identifiers() []string {
	ids := make([]string, 0, len(t.templates))
	for id := range t.templates {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Instantiate produces a fresh instance from the template stored under
// identifier. Containers call it after validating the position.
func (t *TemplateTable) Instantiate(identifier string) (any, error) {
	tmpl, ok := t.templates[identifier]
	if !ok {
		return nil, fmt.Errorf("produce %q: %w", identifier, ErrNotRegistered)
	}
	return tmpl.Instantiate()
}

// Register loads K's template and stores it on c under K's identifier.
// Registering again overwrites the previous entry. The only error is the
// template loading error, returned unchanged.
func Register[K TemplateLoadable](c Container) error {
	tmpl, err := LoadTemplate[K]()
	if err != nil {
		return err
	}
	c.StoreTemplate(Identifier[K](), tmpl)
	return nil
}

// RegisterClass stores a code-only template for K, for kinds that carry no
// template of their own.
func RegisterClass[K any](c Container) {
	id := Identifier[K]()
	tmpl := &Template{Identifier: id}
	c.StoreTemplate(id, tmpl.Bind(reflect.TypeFor[K]()))
}

// Fetch asks c for an instance of K at pos.
//
// Container errors (unregistered identifier, bad position) are returned.
// An instance of any other type panics with *TypeMismatchError.
func Fetch[K any](c Container, pos Position) (K, error) {
	k, err := TryFetch[K](c, pos)
	if mismatch, ok := err.(*TypeMismatchError); ok {
		panic(mismatch)
	}
	return k, err
}

// TryFetch is Fetch with the type mismatch returned as an error.
func TryFetch[K any](c Container, pos Position) (K, error) {
	var zero K
	id := Identifier[K]()

	inst, err := c.ProduceInstance(id, pos)
	if err != nil {
		return zero, err
	}

	k, ok := inst.(K)
	if !ok {
		return zero, &TypeMismatchError{
			Identifier: id,
			Expected:   reflect.TypeFor[K]().String(),
			Actual:     fmt.Sprintf("%T", inst),
		}
	}
	return k, nil
}

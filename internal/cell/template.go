package cell

import (
	"fmt"
	"reflect"
)

// Bundle locates templates for a namespace.
// Lookup returns a *TemplateNotFoundError when nothing matches identifier.
type Bundle interface {
	Namespace() string
	Lookup(identifier string) (*Template, error)
}

// TemplateLoadable is implemented by kinds that know which bundle holds their
// template. The method must not depend on receiver state.
type TemplateLoadable interface {
	TemplateBundle() Bundle
}

// Awakener is implemented by instances that configure themselves from the
// template they were produced from.
type Awakener interface {
	AwakeFromTemplate(t *Template)
}

// Layout is the declarative part of a template, decoded from the bundle file.
// Height counts content lines, excluding border and padding. Slots sit side by
// side on one line unless Vertical stacks them one per line.
type Layout struct {
	Height   int       `yaml:"height" toml:"height"`
	Width    int       `yaml:"width" toml:"width"`
	Border   bool      `yaml:"border" toml:"border"`
	Vertical bool      `yaml:"vertical" toml:"vertical"`
	Padding  []int     `yaml:"padding" toml:"padding"` // [vertical, horizontal]
	Style    StyleSpec `yaml:"style" toml:"style"`
	Slots    []Slot    `yaml:"slots" toml:"slots"`
}

// StyleSpec holds color and emphasis settings as hex strings.
type StyleSpec struct {
	Foreground         string `yaml:"foreground" toml:"foreground"`
	Background         string `yaml:"background" toml:"background"`
	SelectedForeground string `yaml:"selected_foreground" toml:"selected_foreground"`
	SelectedBackground string `yaml:"selected_background" toml:"selected_background"`
	BorderColor        string `yaml:"border_color" toml:"border_color"`
	Bold               bool   `yaml:"bold" toml:"bold"`
	Italic             bool   `yaml:"italic" toml:"italic"`
}

// Slot is one named piece of content inside a cell.
// Width 0 means flex: the slot takes whatever the fixed slots leave.
type Slot struct {
	Key    string `yaml:"key" toml:"key"`
	Width  int    `yaml:"width" toml:"width"`
	Align  string `yaml:"align" toml:"align"` // "left" (default), "center", "right"
	Color  string `yaml:"color" toml:"color"`
	Prefix string `yaml:"prefix" toml:"prefix"`
}

// Template is a loaded layout plus the kind it produces.
// Templates are immutable once bound; Bind returns a copy.
type Template struct {
	Identifier string
	Namespace  string
	Source     string // path inside the bundle, empty for code-only templates
	Layout     Layout

	kind reflect.Type
}

// Kind returns the Go type the template produces, or nil when unbound.
func (t *Template) Kind() reflect.Type {
	return t.kind
}

// Bind returns a copy of t that produces instances of kind.
func (t *Template) Bind(kind reflect.Type) *Template {
	bound := *t
	bound.kind = kind
	return &bound
}

// Instantiate constructs a new instance of the bound kind and awakens it.
func (t *Template) Instantiate() (any, error) {
	if t.kind == nil {
		return nil, fmt.Errorf("instantiate %q: %w", t.Identifier, ErrNoConstructor)
	}

	inst := newKind(t.kind)
	if a, ok := inst.(Awakener); ok {
		a.AwakeFromTemplate(t)
	}
	return inst, nil
}

// LoadTemplate resolves K's template from its bundle and binds it to K.
// A missing template is returned unchanged as *TemplateNotFoundError.
func LoadTemplate[K TemplateLoadable]() (*Template, error) {
	bundle := zeroKind[K]().TemplateBundle()
	if bundle == nil {
		return nil, &TemplateNotFoundError{Identifier: Identifier[K]()}
	}

	tmpl, err := bundle.Lookup(Identifier[K]())
	if err != nil {
		return nil, err
	}
	return tmpl.Bind(reflect.TypeFor[K]()), nil
}

package cell

import "reflect"

// Identifiable lets a kind choose its own identifier instead of the
// derived type name. The method must not depend on receiver state.
type Identifiable interface {
	ReuseIdentifier() string
}

// Identifier returns the identifier for kind K.
//
// Kinds implementing Identifiable supply their own value. Otherwise the
// declared type name is used, with pointer kinds named after their element
// type, so *RowCell and RowCell both map to "RowCell".
func Identifier[K any]() string {
	if id, ok := any(zeroKind[K]()).(Identifiable); ok {
		return id.ReuseIdentifier()
	}
	return typeName(reflect.TypeFor[K]())
}

// typeName is the derived identifier for t.
// Unnamed types (struct literals, slices) fall back to their string form.
func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}

// zeroKind returns a usable receiver for K's static methods.
// Pointer kinds get a freshly allocated element so value-receiver methods
// promoted to the pointer type do not dereference nil.
func zeroKind[K any]() K {
	if k, ok := newKind(reflect.TypeFor[K]()).(K); ok {
		return k
	}
	var zero K
	return zero
}

// newKind constructs an instance of t. Pointer types are allocated, every
// other type is its zero value.
func newKind(t reflect.Type) any {
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface()
	}
	return reflect.Zero(t).Interface()
}

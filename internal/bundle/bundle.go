// Package bundle resolves cell templates from layered filesystems.
//
// A Bundle owns one namespace, which is a directory inside each layer.
// Templates live at <namespace>/<Identifier>.<ext> where ext is yaml, yml or
// toml. Layers are searched in order, so a user template directory placed
// before the embedded defaults overrides individual cells.
//
// Resolved templates are cached for the life of the process.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	stdpath "path"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/cellkit/internal/cell"
	"github.com/zjrosen/cellkit/internal/log"
)

// Bundle implements cell.Bundle over one or more fs.FS layers.
type Bundle struct {
	namespace string
	layers    []fs.FS
	cache     *TemplateCache
	tracer    trace.Tracer
}

var _ cell.Bundle = (*Bundle)(nil)

// Option configures a Bundle.
type Option func(*Bundle)

// WithCache shares a template cache between bundles.
func WithCache(c *TemplateCache) Option {
	return func(b *Bundle) {
		b.cache = c
	}
}

// WithTracer sets the tracer used for lookup spans.
// Defaults to the global otel tracer provider.
func WithTracer(t trace.Tracer) Option {
	return func(b *Bundle) {
		b.tracer = t
	}
}

// New creates a bundle for namespace searching layers in order.
func New(namespace string, layers []fs.FS, opts ...Option) *Bundle {
	b := &Bundle{
		namespace: namespace,
		layers:    layers,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.cache == nil {
		b.cache = NewTemplateCache()
	}
	if b.tracer == nil {
		b.tracer = otel.Tracer("cellkit/bundle")
	}
	return b
}

// Namespace returns the bundle's namespace.
func (b *Bundle) Namespace() string {
	return b.namespace
}

// Lookup returns the template for identifier, loading it on first use.
func (b *Bundle) Lookup(identifier string) (*cell.Template, error) {
	_, span := b.tracer.Start(context.Background(), "bundle.lookup",
		trace.WithAttributes(
			attribute.String("cell.identifier", identifier),
			attribute.String("cell.namespace", b.namespace),
		),
	)
	defer span.End()

	tmpl, cached, err := b.cache.GetOrLoad(b.namespace, identifier, func() (*cell.Template, error) {
		return b.load(identifier)
	})
	span.SetAttributes(attribute.Bool("cache.hit", cached))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, cell.ErrTemplateNotFound) {
			log.Warn(log.CatBundle, "template not found", "identifier", identifier, "namespace", b.namespace)
		} else {
			log.ErrorErr(log.CatBundle, "template load failed", err, "identifier", identifier)
		}
		return nil, err
	}

	span.SetAttributes(attribute.String("cell.source", tmpl.Source))
	span.SetStatus(codes.Ok, "")
	return tmpl, nil
}

// load reads and decodes the first matching file across layers.
func (b *Bundle) load(identifier string) (*cell.Template, error) {
	for i, layer := range b.layers {
		path, format, ok := b.find(layer, identifier)
		if !ok {
			continue
		}

		data, err := fs.ReadFile(layer, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		layout, err := decodeLayout(format, data)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", path, err)
		}

		log.Debug(log.CatBundle, "template loaded", "identifier", identifier, "path", path, "layer", i)
		return &cell.Template{
			Identifier: identifier,
			Namespace:  b.namespace,
			Source:     path,
			Layout:     layout,
		}, nil
	}

	return nil, &cell.TemplateNotFoundError{Identifier: identifier, Namespace: b.namespace}
}

// find locates identifier's file in one layer.
// Use path.Join (not filepath.Join) since fs.FS always uses forward slashes.
func (b *Bundle) find(layer fs.FS, identifier string) (string, Format, bool) {
	if identifier == "" || strings.ContainsAny(identifier, "/\\") {
		return "", "", false
	}
	for _, e := range extensions {
		path := stdpath.Join(b.namespace, identifier+e.ext)
		if info, err := fs.Stat(layer, path); err == nil && !info.IsDir() {
			return path, e.format, true
		}
	}
	return "", "", false
}

// Identifiers lists every identifier available in the namespace across all
// layers, sorted.
func (b *Bundle) Identifiers() ([]string, error) {
	seen := make(map[string]struct{})
	for _, layer := range b.layers {
		entries, err := fs.ReadDir(layer, b.namespace)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("scan namespace %s: %w", b.namespace, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || formatFor(entry.Name()) == "" {
				continue
			}
			seen[strings.TrimSuffix(entry.Name(), stdpath.Ext(entry.Name()))] = struct{}{}
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Templates loads every template in the namespace.
func (b *Bundle) Templates() ([]*cell.Template, error) {
	ids, err := b.Identifiers()
	if err != nil {
		return nil, err
	}

	templates := make([]*cell.Template, 0, len(ids))
	for _, id := range ids {
		tmpl, err := b.Lookup(id)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}

package openapi

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrSchemaNotFound is returned when a named component schema is missing.
var ErrSchemaNotFound = errors.New("openapi: schema not found")

// Document wraps a parsed OpenAPI document.
type Document struct {
	spec *openapi3.T
	raw  []byte
}

// ParseOptions configures Parse.
type ParseOptions struct {
	// Validate runs kin-openapi document validation (examples excluded).
	Validate bool
}

// ParseOption mutates ParseOptions.
type ParseOption func(*ParseOptions)

// WithValidation toggles document validation after loading.
func WithValidation(enabled bool) ParseOption {
	return func(opts *ParseOptions) {
		opts.Validate = enabled
	}
}

// Parse loads a JSON or YAML OpenAPI document. Local $refs are resolved;
// external references are rejected.
func Parse(ctx context.Context, data []byte, options ...ParseOption) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	cfg := ParseOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if cfg.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return &Document{spec: spec, raw: append([]byte(nil), data...)}, nil
}

// Load reads a document from files when non-nil, or from the operating
// system otherwise, and parses it.
func Load(ctx context.Context, files fs.FS, name string, options ...ParseOption) (*Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("openapi: document path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if files != nil {
		data, err = fs.ReadFile(files, name)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", name, err)
	}
	return Parse(ctx, data, options...)
}

// Raw returns a copy of the original payload.
func (d *Document) Raw() []byte {
	if d == nil {
		return nil
	}
	return append([]byte(nil), d.raw...)
}

// Title reports info.title when present.
func (d *Document) Title() string {
	if d == nil || d.spec == nil || d.spec.Info == nil {
		return ""
	}
	return d.spec.Info.Title
}

// SchemaNames lists the component schema names in sorted order.
func (d *Document) SchemaNames() []string {
	if d == nil || d.spec == nil || d.spec.Components == nil {
		return nil
	}
	names := make([]string, 0, len(d.spec.Components.Schemas))
	for name := range d.spec.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schema returns the named component schema.
func (d *Document) Schema(name string) (*openapi3.SchemaRef, error) {
	if d == nil || d.spec == nil || d.spec.Components == nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}
	ref, ok := d.spec.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}
	return ref, nil
}

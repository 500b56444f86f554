// Package regform renders, drives, and validates the university student
// registration form.
//
// The form logic lives in pkg/registration; this package wires the pieces
// callers usually want together: the HTML renderer, the renderer registry,
// the OpenAPI contract and its record validator, and theme resolution.
// Construction helpers live here so the internal implementations stay hidden
// behind the interfaces in pkg/openapi.
package regform

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"

	internalbuilder "github.com/goliatone/go-regform/internal/openapi/builder"
	internalloader "github.com/goliatone/go-regform/internal/openapi/loader"
	internalvalidator "github.com/goliatone/go-regform/internal/openapi/validator"
	"github.com/goliatone/go-regform/pkg/catalog"
	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/theming"
)

// RenderOptions describes per-request state renderers draw.
type RenderOptions = render.RenderOptions

// Record is the flat field map a successful submit produces.
type Record = registration.Record

// NewLoader constructs a contract loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalloader.New(cfg)
}

// NewBuilder constructs the OpenAPI document builder.
func NewBuilder() pkgopenapi.Builder {
	return internalbuilder.New()
}

// NewRecordValidator checks records against the record schema of doc.
func NewRecordValidator(ctx context.Context, doc pkgopenapi.Document) (pkgopenapi.Validator, error) {
	v, err := internalvalidator.New(ctx, doc)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// BuildContract describes the registration endpoints for the options in c. A
// nil catalog uses the embedded default.
func BuildContract(ctx context.Context, c *catalog.Catalog) (pkgopenapi.Document, error) {
	schema, err := registration.NewSchema(c)
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	return NewBuilder().Build(ctx, pkgopenapi.Describe(schema))
}

// NewRegistry returns a registry holding renderers. A default HTML
// renderer (full document, default styles) is added unless one of them is
// already named "vanilla".
func NewRegistry(renderers ...render.Renderer) (*render.Registry, error) {
	for _, renderer := range renderers {
		if renderer != nil && renderer.Name() == "vanilla" {
			return render.NewRegistry(renderers...)
		}
	}
	html, err := vanilla.New(vanilla.WithDocument(), vanilla.WithDefaultStyles())
	if err != nil {
		return nil, err
	}
	return render.NewRegistry(append([]render.Renderer{html}, renderers...)...)
}

// GenerateHTML renders the current state of form as HTML.
func GenerateHTML(ctx context.Context, form *registration.Form, options ...vanilla.Option) ([]byte, error) {
	if form == nil {
		return nil, fmt.Errorf("regform: form is required")
	}
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form.Schema().Form(), form.RenderOptions())
}

// ResolveTheme loads the manifest at path, or the embedded one when path is
// empty, and resolves variant against it.
func ResolveTheme(path, variant string) (*theme.RendererConfig, error) {
	var (
		manifest *theme.Manifest
		err      error
	)
	if path == "" {
		manifest, err = theming.Default()
	} else {
		manifest, err = theming.LoadManifestFile(path)
	}
	if err != nil {
		return nil, err
	}
	return theming.Resolve(manifest, variant)
}

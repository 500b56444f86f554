package openapi

import (
	"context"
	"io/fs"
)

// Loader reads a previously exported contract document.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem resolves SourceFromFS locations. File sources always read
	// from the operating system.
	FileSystem fs.FS
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for fs sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Builder turns a Spec into a serialized OpenAPI document.
type Builder interface {
	Build(ctx context.Context, spec Spec) (Document, error)
}

// Violations lists validation messages keyed by JSON pointer ("/zipCode").
// Messages not tied to a property use the key "/".
type Violations map[string][]string

// Validator checks a submitted record against the record schema of a
// contract document.
type Validator interface {
	ValidateRecord(ctx context.Context, record map[string]string) (Violations, error)
}

// Construction helpers live in the root regform package to avoid import cycles.

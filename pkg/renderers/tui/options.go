package tui

import (
	"github.com/goliatone/go-regform/pkg/registration"
)

// OutputFormat controls how the submitted record is serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional message prefixes.
type Theme struct {
	SectionPrefix string
	InfoPrefix    string
	ErrorPrefix   string
}

// SubmitTransformer mutates the record before serialization.
type SubmitTransformer func(registration.Record) (registration.Record, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithFormOptions forwards options to the registration form each Render
// mounts, such as a logger or a metrics recorder.
func WithFormOptions(opts ...registration.Option) Option {
	return func(r *Renderer) {
		r.formOptions = append(r.formOptions, opts...)
	}
}

// WithSubmitTransformer lets callers mutate the record prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

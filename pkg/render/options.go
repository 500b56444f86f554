package render

import "github.com/goliatone/go-regform/pkg/model"

// BannerKind selects the banner style.
type BannerKind string

const (
	BannerNone    BannerKind = ""
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is the dismissible status message drawn above the form.
type Banner struct {
	Kind    BannerKind
	Message string
}

// Visible reports whether the banner should be drawn.
func (b Banner) Visible() bool {
	return b.Kind != BannerNone && b.Message != ""
}

// RenderOptions describe per-request data that renderers use to draw the
// current form state without mutating the form model.
type RenderOptions struct {
	// Method overrides the HTTP method declared by the form model.
	Method string
	// Action overrides the form endpoint.
	Action string
	// Values pre-populates controls keyed by field name.
	Values map[string]string
	// Errors carries inline messages keyed by field name.
	Errors map[string][]string
	// FormErrors are messages not tied to one field.
	FormErrors []string
	// Expanded holds the open/closed flag of every section. Sections missing
	// from the map fall back to the model default.
	Expanded map[model.SectionID]bool
	// Choices holds the option list each choice field offers for the current
	// state. Fields missing from the map use their static options.
	Choices map[string][]model.Option
	// Disabled marks controls that cannot be edited yet.
	Disabled map[string]bool
	// Progress is the completion percentage, 0..100.
	Progress int
	Banner   Banner
	// Focus names the control that should receive focus on load. Its section
	// is drawn open.
	Focus string
	// Hidden carries extra hidden inputs such as CSRF tokens.
	Hidden map[string]string
}

// SectionOpen resolves whether a section should be drawn open.
func (o RenderOptions) SectionOpen(section model.Section) bool {
	if o.Focus != "" {
		for _, field := range section.Fields {
			if field.Name == o.Focus {
				return true
			}
		}
	}
	if open, ok := o.Expanded[section.ID]; ok {
		return open
	}
	return section.Expanded
}

// OptionsFor returns the options to draw for field.
func (o RenderOptions) OptionsFor(field model.Field) []model.Option {
	if options, ok := o.Choices[field.Name]; ok {
		return options
	}
	return field.Options
}

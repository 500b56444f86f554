package registration

import (
	"math"

	"github.com/goliatone/go-regform/pkg/model"
)

// Status is the banner shown after a submit attempt.
type Status string

const (
	StatusIdle    Status = ""
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

const (
	SuccessMessage = "You successfully enrolled! Our team will review your application soon."
	ErrorMessage   = "Please complete all required fields before submitting. Scroll to the highlighted fields above."
	// RequiredMessage is the inline message shown under a flagged field.
	RequiredMessage = "This field is required"
)

// Message returns the banner text for s.
func (s Status) Message() string {
	switch s {
	case StatusSuccess:
		return SuccessMessage
	case StatusError:
		return ErrorMessage
	default:
		return ""
	}
}

// State is the complete form state. Reducers never mutate a State in place;
// use Clone before editing one by hand.
type State struct {
	Values   map[string]string
	Expanded map[model.SectionID]bool
	Touched  map[string]bool
	Errors   map[string]bool
	Status   Status
	// Token identifies the latest submit attempt. A dismissal only clears the
	// banner when it carries the current token.
	Token uint64
}

// NewState returns the mount-time state for form: every field empty and the
// sections expanded as declared.
func NewState(form model.FormModel) State {
	state := State{
		Values:   make(map[string]string),
		Expanded: make(map[model.SectionID]bool, len(form.Sections)),
		Touched:  make(map[string]bool),
		Errors:   make(map[string]bool),
	}
	for _, section := range form.Sections {
		state.Expanded[section.ID] = section.Expanded
		for _, field := range section.Fields {
			state.Values[field.Name] = ""
		}
	}
	return state
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := State{
		Values:   make(map[string]string, len(s.Values)),
		Expanded: make(map[model.SectionID]bool, len(s.Expanded)),
		Touched:  make(map[string]bool, len(s.Touched)),
		Errors:   make(map[string]bool, len(s.Errors)),
		Status:   s.Status,
		Token:    s.Token,
	}
	for k, v := range s.Values {
		out.Values[k] = v
	}
	for k, v := range s.Expanded {
		out.Expanded[k] = v
	}
	for k, v := range s.Touched {
		out.Touched[k] = v
	}
	for k, v := range s.Errors {
		out.Errors[k] = v
	}
	return out
}

// Value returns the current value of a field.
func (s State) Value(name string) string {
	return s.Values[name]
}

// HasError reports whether a field is flagged by the last submit.
func (s State) HasError(name string) bool {
	return s.Errors[name]
}

// Filled counts fields holding a non-empty value. Whitespace counts as filled.
func (s State) Filled() int {
	n := 0
	for _, value := range s.Values {
		if value != "" {
			n++
		}
	}
	return n
}

// Progress returns the rounded percentage of filled fields.
func Progress(s State) int {
	total := len(s.Values)
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.Filled()) / float64(total)))
}

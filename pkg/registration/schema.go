package registration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

// ErrUnknownField is reported when an action names a field the form does not
// declare.
var ErrUnknownField = errors.New("registration: unknown field")

// Schema binds the form definition to its catalog and required list. It holds
// no mutable state; Reduce is a pure function of its arguments.
type Schema struct {
	form     model.FormModel
	catalog  *catalog.Catalog
	required []string
	fields   map[string]model.Field
	order    []string
}

// NewSchema builds the schema for the registration form using c for option
// lists. A nil catalog falls back to the embedded default.
func NewSchema(c *catalog.Catalog) (*Schema, error) {
	if c == nil {
		var err error
		c, err = catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("registration: load catalog: %w", err)
		}
	}
	form := Definition(c)
	s := &Schema{
		form:     form,
		catalog:  c,
		required: RequiredFields(),
		fields:   make(map[string]model.Field),
	}
	for _, field := range form.Fields() {
		s.fields[field.Name] = field
		s.order = append(s.order, field.Name)
	}
	return s, nil
}

// MustSchema panics when NewSchema fails.
func MustSchema(c *catalog.Catalog) *Schema {
	s, err := NewSchema(c)
	if err != nil {
		panic(err)
	}
	return s
}

// Form returns the form model.
func (s *Schema) Form() model.FormModel {
	return s.form
}

// Catalog returns the catalog backing the option lists.
func (s *Schema) Catalog() *catalog.Catalog {
	return s.catalog
}

// Field returns the field declaration for name.
func (s *Schema) Field(name string) (model.Field, bool) {
	field, ok := s.fields[name]
	return field, ok
}

// FieldNames returns the field names in render order.
func (s *Schema) FieldNames() []string {
	return append([]string(nil), s.order...)
}

// Required returns the required field list in focus order.
func (s *Schema) Required() []string {
	return append([]string(nil), s.required...)
}

// SectionOf returns the section a field belongs to.
func (s *Schema) SectionOf(name string) (model.SectionID, bool) {
	field, ok := s.fields[name]
	if !ok {
		return "", false
	}
	return field.Section, true
}

// NewState returns the mount-time state.
func (s *Schema) NewState() State {
	return NewState(s.form)
}

// OptionsFor resolves the option list a choice field offers in state. Fields
// depending on the academic level yield nil until a level is chosen.
func (s *Schema) OptionsFor(state State, name string) []model.Option {
	field, ok := s.fields[name]
	if !ok || field.Input != model.InputKindChoice {
		return nil
	}
	if field.DependsOn == "" {
		return field.Options
	}
	level := state.Values[field.DependsOn]
	switch name {
	case FieldDegreeProgram:
		return s.catalog.ProgramOptions(level)
	case FieldCollegeDepartment:
		return s.catalog.DepartmentOptions(level)
	default:
		return nil
	}
}

// Disabled reports whether a dependent field has nothing to offer yet.
func (s *Schema) Disabled(state State, name string) bool {
	field, ok := s.fields[name]
	if !ok || field.DependsOn == "" {
		return false
	}
	return state.Values[field.DependsOn] == ""
}

// Accept checks a candidate value against the field's filter.
func (s *Schema) Accept(state State, name, value string) error {
	field, ok := s.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if field.Input == model.InputKindChoice {
		return validation.CheckChoice(value, s.OptionsFor(state, name))
	}
	return validation.Check(field.Input, value)
}

// Incomplete returns the required fields whose trimmed value is empty, in
// focus order.
func (s *Schema) Incomplete(state State) []string {
	var out []string
	for _, name := range s.required {
		if strings.TrimSpace(state.Values[name]) == "" {
			out = append(out, name)
		}
	}
	return out
}

// Record copies the state values into a submission record.
func (s *Schema) Record(state State) Record {
	record := make(Record, len(s.order))
	for _, name := range s.order {
		record[name] = state.Values[name]
	}
	return record
}

// Reduce applies action to state and returns the next state plus the side
// effects the caller must perform. The input state is left untouched.
func (s *Schema) Reduce(state State, action Action) (State, []Effect) {
	switch a := action.(type) {
	case SetField:
		return s.reduceSetField(state, a)
	case ToggleSection:
		if _, ok := state.Expanded[a.Section]; !ok {
			return state, nil
		}
		next := state.Clone()
		next.Expanded[a.Section] = !next.Expanded[a.Section]
		return next, nil
	case MarkTouched:
		if _, ok := s.fields[a.Name]; !ok || state.Touched[a.Name] {
			return state, nil
		}
		next := state.Clone()
		next.Touched[a.Name] = true
		return next, nil
	case Submit:
		return s.reduceSubmit(state)
	case Reset:
		next := state.Clone()
		for _, name := range s.order {
			next.Values[name] = ""
		}
		next.Touched = make(map[string]bool)
		return next, nil
	case DismissBanner:
		if state.Status == StatusIdle || a.Token != state.Token {
			return state, nil
		}
		next := state.Clone()
		next.Status = StatusIdle
		return next, nil
	default:
		return state, nil
	}
}

func (s *Schema) reduceSetField(state State, a SetField) (State, []Effect) {
	if err := s.Accept(state, a.Name, a.Value); err != nil {
		return state, []Effect{InputRejected{Name: a.Name, Value: a.Value, Err: err}}
	}

	next := state.Clone()
	previous := next.Values[a.Name]
	next.Values[a.Name] = a.Value
	if a.Name == FieldAcademicLevel && previous != a.Value {
		next.Values[FieldDegreeProgram] = ""
		next.Values[FieldCollegeDepartment] = ""
	}
	delete(next.Errors, a.Name)
	return next, nil
}

func (s *Schema) reduceSubmit(state State) (State, []Effect) {
	next := state.Clone()
	next.Token++

	incomplete := s.Incomplete(state)
	if len(incomplete) > 0 {
		next.Errors = make(map[string]bool, len(incomplete))
		for _, name := range incomplete {
			next.Errors[name] = true
		}
		next.Status = StatusError
		return next, []Effect{
			FocusField{Name: incomplete[0]},
			ScheduleDismiss{After: ErrorDismissDelay, Token: next.Token},
		}
	}

	next.Errors = make(map[string]bool)
	next.Status = StatusSuccess
	return next, []Effect{
		TraceSubmission{Record: s.Record(next)},
		ScrollToTop{},
		ScheduleDismiss{After: SuccessDismissDelay, Token: next.Token},
	}
}

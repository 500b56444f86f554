package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
)

// noneOption is offered first for optional choice fields.
const noneOption = "(none)"

// Renderer implements render.Renderer as a sequential prompt session: it
// walks the sections, asks for each field through the PromptDriver, submits,
// and re-asks the flagged fields until the registration goes through.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	formOptions       []registration.Option
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme: Theme{
			SectionPrefix: "==",
			InfoPrefix:    "-",
			ErrorPrefix:   "!",
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver()
	}
	switch r.outputFormat {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render runs the prompt session and returns the serialized record. Values in
// opts prefill the answers.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	focus := &focusTracker{}
	formOpts := append([]registration.Option{
		registration.WithScheduler(registration.NopScheduler{}),
		registration.WithInitialValues(opts.Values),
	}, r.formOptions...)
	formOpts = append(formOpts, registration.WithFocusPort(focus))

	reg, err := registration.New(formOpts...)
	if err != nil {
		return nil, fmt.Errorf("tui: mount form: %w", err)
	}
	defer reg.Close()

	s := &session{ctx: ctx, r: r, form: reg, model: form}
	result, err := s.run(focus)
	if err != nil {
		return nil, err
	}

	record := result.Record
	if r.submitTransformer != nil {
		record, err = r.submitTransformer(record)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(form, record)
}

type session struct {
	ctx   context.Context
	r     *Renderer
	form  *registration.Form
	model model.FormModel
}

func (s *session) run(focus *focusTracker) (registration.Result, error) {
	s.info(s.r.theme.SectionPrefix, s.model.Title)

	for _, section := range s.model.Sections {
		if err := s.section(section); err != nil {
			return registration.Result{}, err
		}
	}

	for {
		result := s.form.Submit()
		if result.OK() {
			s.info(s.r.theme.InfoPrefix, result.Status.Message())
			return result, nil
		}

		s.info(s.r.theme.ErrorPrefix, result.Status.Message())
		for _, name := range result.Incomplete {
			s.info(s.r.theme.ErrorPrefix, "  "+s.label(name))
		}
		again, err := s.r.driver.Confirm(s.ctx, ConfirmConfig{
			Message: "Fill in the missing fields now?",
			Default: true,
		})
		if err != nil {
			return registration.Result{}, err
		}
		if !again {
			return registration.Result{}, fmt.Errorf("%w: %d required fields missing", ErrIncomplete, len(result.Incomplete))
		}

		for _, name := range focus.order(result.Incomplete) {
			field, ok := s.form.Schema().Field(name)
			if !ok {
				continue
			}
			if err := s.field(field); err != nil {
				return registration.Result{}, err
			}
		}
	}
}

func (s *session) section(section model.Section) error {
	if !s.form.State().Expanded[section.ID] {
		s.form.ToggleSection(section.ID)
	}
	title := section.Title
	if section.Icon != "" {
		title = section.Icon + " " + title
	}
	s.info(s.r.theme.SectionPrefix, title)

	for _, field := range section.Fields {
		if _, ok := s.form.Schema().Field(field.Name); !ok {
			continue
		}
		if err := s.field(field); err != nil {
			return err
		}
	}
	s.info(s.r.theme.InfoPrefix, fmt.Sprintf("Progress: %d%%", s.form.Progress()))
	return nil
}

func (s *session) field(field model.Field) error {
	defer s.form.MarkTouched(field.Name)
	if field.Input == model.InputKindChoice {
		return s.choice(field)
	}

	for {
		current := s.form.State().Value(field.Name)
		value, err := s.r.driver.Input(s.ctx, InputConfig{
			Name:    field.Name,
			Message: s.message(field),
			Default: current,
			Help:    help(field),
			Validator: func(candidate string) error {
				return s.form.Schema().Accept(s.form.State(), field.Name, candidate)
			},
		})
		if err != nil {
			return err
		}
		if s.form.SetField(field.Name, value) {
			return nil
		}
		reason := validation.Message(s.form.Schema().Accept(s.form.State(), field.Name, value))
		s.info(s.r.theme.ErrorPrefix, fmt.Sprintf("%s %s", s.label(field.Name), reason))
	}
}

func (s *session) choice(field model.Field) error {
	options := s.form.Options(field.Name)
	if len(options) == 0 {
		if field.DependsOn != "" {
			s.info(s.r.theme.InfoPrefix, fmt.Sprintf("%s: choose %s first", field.Label, s.label(field.DependsOn)))
		}
		return nil
	}

	var labels, descriptions, values []string
	if !field.Required {
		labels = append(labels, noneOption)
		descriptions = append(descriptions, "")
		values = append(values, "")
	}
	current := s.form.State().Value(field.Name)
	defaultIndex := 0
	for _, option := range options {
		if option.Value == current {
			defaultIndex = len(values)
		}
		label := option.Label
		if label == "" {
			label = option.Value
		}
		labels = append(labels, label)
		descriptions = append(descriptions, option.Group)
		values = append(values, option.Value)
	}

	cfg := SelectConfig{
		Name:         field.Name,
		Message:      s.message(field),
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         help(field),
		PageSize:     10,
	}
	if hasAny(descriptions) {
		cfg.Descriptions = descriptions
	}
	idx, err := s.r.driver.Select(s.ctx, cfg)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(values) {
		return fmt.Errorf("tui: selection %d out of range for %s", idx, field.Name)
	}
	s.form.SetField(field.Name, values[idx])
	return nil
}

func (s *session) message(field model.Field) string {
	label := field.QualifiedLabel()
	if field.Required {
		label += " *"
	}
	return label
}

func (s *session) label(name string) string {
	field, ok := s.form.Schema().Field(name)
	if !ok {
		return name
	}
	return field.QualifiedLabel()
}

func (s *session) info(prefix, msg string) {
	if msg == "" {
		return
	}
	if prefix != "" {
		msg = prefix + " " + msg
	}
	_ = s.r.driver.Info(s.ctx, msg)
}

func help(field model.Field) string {
	if field.Description != "" {
		return field.Description
	}
	return field.Placeholder
}

func hasAny(values []string) bool {
	for _, value := range values {
		if value != "" {
			return true
		}
	}
	return false
}

// focusTracker receives the focus effect of a failed submit so the session
// re-asks that field first.
type focusTracker struct {
	last string
}

func (f *focusTracker) Focus(field string) { f.last = field }

func (f *focusTracker) ScrollToTop() {}

func (f *focusTracker) order(incomplete []string) []string {
	if f.last == "" {
		return incomplete
	}
	out := []string{f.last}
	for _, name := range incomplete {
		if name != f.last {
			out = append(out, name)
		}
	}
	return out
}

func (r *Renderer) serialize(form model.FormModel, record registration.Record) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for name, value := range record {
			values.Set(name, value)
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(form, record)), nil
	default:
		return json.Marshal(map[string]string(record))
	}
}

func prettyPrint(form model.FormModel, record registration.Record) string {
	var b strings.Builder
	for _, section := range form.Sections {
		fmt.Fprintf(&b, "%s\n", section.Title)
		for _, field := range section.Fields {
			value := record[field.Name]
			if value == "" {
				value = "-"
			}
			fmt.Fprintf(&b, "  %s: %s\n", field.QualifiedLabel(), value)
		}
	}
	return b.String()
}

package openapi

import (
	"net/http"
	"sort"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/registration"
)

// Component schema names.
const (
	RecordSchemaName   = "RegistrationRecord"
	ResultSchemaName   = "SubmitResult"
	OptionSchemaName   = "Option"
	OptionsSchemaName  = "DependentOptions"
	ContractVersion    = "1.0.0"
	RegisterPath       = "/register"
	OptionsPath        = "/register/options"
	ContractPath       = "/register/contract"
	mediaJSON          = "application/json"
	mediaForm          = "application/x-www-form-urlencoded"
	mediaHTML          = "text/html"
	componentRefPrefix = "#/components/schemas/"
)

// Patterns mirror the keystroke filters. Phone patterns cap the digit count
// while allowing separators anywhere.
var inputPatterns = map[model.InputKind]string{
	model.InputKindName:     `^[a-zA-Z\s\-']*$`,
	model.InputKindMobile:   `^[\s\-+()]*(?:\d[\s\-+()]*){0,11}$`,
	model.InputKindLandline: `^[\s\-+()]*(?:\d[\s\-+()]*){0,8}$`,
	model.InputKindZipCode:  `^\d{0,4}$`,
	model.InputKindYear:     `^\d{0,4}$`,
	model.InputKindGrade:    `^(?:0*100(?:\.0{0,2})?|0*\d{1,2}(?:\.\d{0,2})?)?$`,
}

// Ref returns a schema pointing at a named component.
func Ref(name string) Schema {
	return Schema{Ref: componentRefPrefix + name}
}

// RecordSchema describes the flat record a successful submit produces: one
// string property per field, the filter as a pattern, the option list as an
// enum and required fields as non-empty.
func RecordSchema(s *registration.Schema) Schema {
	form := s.Form()
	record := Schema{
		Type:        "object",
		Description: form.Title,
		Properties:  make(map[string]Schema),
		Required:    append([]string(nil), s.Required()...),
		Closed:      true,
	}

	for _, field := range form.Fields() {
		prop := Schema{
			Type:        "string",
			Description: field.QualifiedLabel(),
			Pattern:     inputPatterns[field.Input],
			MaxLength:   field.MaxLength,
		}
		if field.Required {
			prop.MinLength = 1
		}
		if field.Input == model.InputKindChoice {
			prop.Enum = choiceEnum(s, field)
		}
		record.Properties[field.Name] = prop
	}
	return record
}

// Describe builds the contract of the registration endpoints.
func Describe(s *registration.Schema) Spec {
	levels := make([]string, 0)
	for _, option := range s.Catalog().LevelOptions() {
		levels = append(levels, option.Value)
	}

	option := Schema{
		Type: "object",
		Properties: map[string]Schema{
			"value": {Type: "string"},
			"label": {Type: "string"},
			"group": {Type: "string"},
		},
		Required: []string{"value", "label"},
	}
	optionList := Schema{Type: "array", Items: &Schema{Ref: componentRefPrefix + OptionSchemaName}}
	dependent := Schema{
		Type: "object",
		Properties: map[string]Schema{
			"level":       {Type: "string"},
			"departments": optionList,
			"programs":    optionList,
		},
		Required: []string{"level", "departments", "programs"},
	}
	result := Schema{
		Type: "object",
		Properties: map[string]Schema{
			"status":       {Type: "string", Enum: []string{"idle", string(registration.StatusSuccess), string(registration.StatusError)}},
			"message":      {Type: "string"},
			"submissionId": {Type: "string"},
			"progress":     {Type: "integer"},
			"incomplete":   {Type: "array", Items: &Schema{Type: "string"}},
			"errors":       {Type: "object", Description: "Messages keyed by field name."},
			"formErrors":   {Type: "array", Items: &Schema{Type: "string"}},
			"record":       Ref(RecordSchemaName),
		},
		Required: []string{"status", "message", "progress"},
	}

	register := MustNewOperation("submitRegistration", http.MethodPost, RegisterPath, Ref(RecordSchemaName), map[string]Schema{
		"200": Ref(ResultSchemaName),
		"422": Ref(ResultSchemaName),
	})
	register.Description = "Checks the input filters and the required fields. Nothing is stored; a successful submit only returns the record. A reset returns an idle result."
	register.Summary = "Submit the registration form"
	register.RequestTypes = []string{mediaForm, mediaJSON}

	page := MustNewOperation("getRegistrationForm", http.MethodGet, RegisterPath, Schema{}, map[string]Schema{
		"200": {Type: "string", Format: mediaHTML},
	})
	page.Summary = "Render the registration form page"

	options := MustNewOperation("getDependentOptions", http.MethodGet, OptionsPath, Schema{}, map[string]Schema{
		"200": Ref(OptionsSchemaName),
	})
	options.Summary = "List departments and degree programs for an academic level"
	options.Parameters = []Parameter{{
		Name:        "level",
		Description: "Academic level; empty returns empty lists.",
		Schema:      Schema{Type: "string", Enum: append([]string{""}, levels...)},
	}, {
		Name:        "q",
		Description: "Narrows the programs to labels containing the text.",
		Schema:      Schema{Type: "string"},
	}, {
		Name:        "limit",
		Description: "Caps the narrowed program list.",
		Schema:      Schema{Type: "integer"},
	}}

	contract := MustNewOperation("getContract", http.MethodGet, ContractPath, Schema{}, map[string]Schema{
		"200": {Type: "object"},
	})
	contract.Summary = "This document"

	return Spec{
		Title:       s.Form().Title,
		Version:     ContractVersion,
		Description: s.Form().Subtitle,
		Schemas: map[string]Schema{
			RecordSchemaName:  RecordSchema(s),
			ResultSchemaName:  result,
			OptionSchemaName:  option,
			OptionsSchemaName: dependent,
		},
		Operations: []Operation{page, register, options, contract},
	}
}

// ResponseMediaType reports the media type a response schema is served as.
// Plain string schemas formatted as text/html describe the form page.
func ResponseMediaType(schema Schema) string {
	if schema.Type == "string" && schema.Format == mediaHTML {
		return mediaHTML
	}
	return mediaJSON
}

// choiceEnum lists every value a choice field can hold. Dependent fields
// accept the union over all academic levels; the per-level restriction is
// enforced by the form itself.
func choiceEnum(s *registration.Schema, field model.Field) []string {
	var values []string
	if !field.Required {
		values = append(values, "")
	}
	if field.DependsOn == "" {
		for _, option := range field.Options {
			values = append(values, option.Value)
		}
		return values
	}

	seen := make(map[string]struct{})
	var union []string
	for _, level := range s.Catalog().LevelOptions() {
		var options []model.Option
		switch field.Name {
		case registration.FieldDegreeProgram:
			options = s.Catalog().ProgramOptions(level.Value)
		case registration.FieldCollegeDepartment:
			options = s.Catalog().DepartmentOptions(level.Value)
		}
		for _, option := range options {
			if _, dup := seen[option.Value]; dup {
				continue
			}
			seen[option.Value] = struct{}{}
			union = append(union, option.Value)
		}
	}
	sort.Strings(union)
	return append(values, union...)
}

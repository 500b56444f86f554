package openapi

import (
	"errors"
	"fmt"
	"sort"
)

// Source identifies where a contract document originated.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile      SourceKind = "file"
	SourceKindFS        SourceKind = "fs"
	SourceKindGenerated SourceKind = "generated"
)

// Document wraps the raw OpenAPI payload and its origin.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the OpenAPI payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Parameter is a query parameter of an operation.
type Parameter struct {
	Name        string
	Description string
	Required    bool
	Schema      Schema
}

// Operation models one endpoint of the contract.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Parameters  []Parameter
	// RequestBody is empty for operations without a body.
	RequestBody Schema
	// RequestTypes lists the accepted request media types.
	RequestTypes []string
	// Responses maps status codes ("200", "422") to their JSON body schema.
	Responses map[string]Schema
}

// NewOperation validates core fields and initialises response maps.
func NewOperation(id, method, path string, request Schema, responses map[string]Schema) (Operation, error) {
	if id == "" {
		return Operation{}, errors.New("openapi: operation id is required")
	}
	if method == "" {
		return Operation{}, errors.New("openapi: operation method is required")
	}
	if path == "" {
		return Operation{}, errors.New("openapi: operation path is required")
	}
	if responses == nil {
		responses = make(map[string]Schema)
	}

	return Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		RequestBody: request,
		Responses:   responses,
	}, nil
}

// MustNewOperation panics when construction fails.
func MustNewOperation(id, method, path string, request Schema, responses map[string]Schema) Operation {
	op, err := NewOperation(id, method, path, request, responses)
	if err != nil {
		panic(err)
	}
	return op
}

// HasResponse reports whether a response code has a schema registered.
func (op Operation) HasResponse(code string) bool {
	_, ok := op.Responses[code]
	return ok
}

// ResponseCodes returns the registered status codes in ascending order.
func (op Operation) ResponseCodes() []string {
	codes := make([]string, 0, len(op.Responses))
	for code := range op.Responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Schema represents request/response bodies and nested fields.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Pattern     string
	MinLength   int
	MaxLength   int
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	Enum        []string
	Description string
	// Closed rejects properties that are not declared.
	Closed bool
}

// IsZero reports whether s describes nothing.
func (s Schema) IsZero() bool {
	return s.Ref == "" && s.Type == ""
}

// Clone creates a deep copy of the schema tree.
func (s Schema) Clone() Schema {
	cloned := s
	if len(s.Required) > 0 {
		cloned.Required = append([]string(nil), s.Required...)
	}
	if len(s.Enum) > 0 {
		cloned.Enum = append([]string(nil), s.Enum...)
	}
	if len(s.Properties) > 0 {
		cloned.Properties = make(map[string]Schema, len(s.Properties))
		for k, v := range s.Properties {
			cloned.Properties[k] = v.Clone()
		}
	}
	if s.Items != nil {
		items := s.Items.Clone()
		cloned.Items = &items
	}
	return cloned
}

// Validate performs basic sanity checks before a schema is built.
func (s Schema) Validate() error {
	if s.Type == "" && s.Ref == "" {
		return errors.New("openapi: schema requires either type or ref")
	}
	if s.Type == "array" && s.Items == nil {
		return errors.New("openapi: array schema must define items")
	}
	for _, name := range s.Required {
		if _, ok := s.Properties[name]; !ok {
			return fmt.Errorf("openapi: required property %q is not declared", name)
		}
	}
	for name, prop := range s.Properties {
		if err := prop.Validate(); err != nil {
			return fmt.Errorf("openapi: property %q: %w", name, err)
		}
	}
	if s.Items != nil {
		if err := s.Items.Validate(); err != nil {
			return fmt.Errorf("openapi: items: %w", err)
		}
	}
	return nil
}

// Spec is the full contract before serialization.
type Spec struct {
	Title       string
	Version     string
	Description string
	// Schemas are the named component schemas operations refer to.
	Schemas    map[string]Schema
	Operations []Operation
}

// Validate checks every schema and operation of the spec.
func (s Spec) Validate() error {
	if s.Title == "" || s.Version == "" {
		return errors.New("openapi: spec title and version are required")
	}
	for name, schema := range s.Schemas {
		if err := schema.Validate(); err != nil {
			return fmt.Errorf("openapi: schema %q: %w", name, err)
		}
	}
	seen := make(map[string]struct{}, len(s.Operations))
	for _, op := range s.Operations {
		if _, dup := seen[op.ID]; dup {
			return fmt.Errorf("openapi: duplicate operation id %q", op.ID)
		}
		seen[op.ID] = struct{}{}
		if len(op.Responses) == 0 {
			return fmt.Errorf("openapi: operation %q has no responses", op.ID)
		}
	}
	return nil
}

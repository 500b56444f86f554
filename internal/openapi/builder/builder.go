package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
)

// OpenAPIVersion is the version written into generated documents.
const OpenAPIVersion = "3.0.3"

const componentPrefix = "#/components/schemas/"

// Builder implements pkgopenapi.Builder with kin-openapi.
type Builder struct{}

var _ pkgopenapi.Builder = Builder{}

// New returns a Builder.
func New() pkgopenapi.Builder {
	return Builder{}
}

// Build converts spec into a validated OpenAPI document serialized as JSON.
func (Builder) Build(ctx context.Context, spec pkgopenapi.Spec) (pkgopenapi.Document, error) {
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}
	doc, err := Convert(spec)
	if err != nil {
		return pkgopenapi.Document{}, err
	}
	if err := doc.Validate(ctx); err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi builder: validate: %w", err)
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi builder: marshal: %w", err)
	}
	return pkgopenapi.NewDocument(pkgopenapi.SourceGenerated(spec.Title), raw)
}

// Convert maps spec onto kin-openapi types without validating the result.
func Convert(spec pkgopenapi.Spec) (*openapi3.T, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	c := &converter{components: make(map[string]*openapi3.Schema, len(spec.Schemas))}
	names := make([]string, 0, len(spec.Schemas))
	for name := range spec.Schemas {
		c.components[name] = &openapi3.Schema{}
		names = append(names, name)
	}
	sort.Strings(names)

	schemas := make(openapi3.Schemas, len(names))
	for _, name := range names {
		built := c.schema(spec.Schemas[name])
		if built.Value != nil {
			*c.components[name] = *built.Value
		}
		schemas[name] = openapi3.NewSchemaRef("", c.components[name])
	}

	doc := &openapi3.T{
		OpenAPI: OpenAPIVersion,
		Info: &openapi3.Info{
			Title:       spec.Title,
			Version:     spec.Version,
			Description: spec.Description,
		},
		Paths:      openapi3.NewPaths(),
		Components: &openapi3.Components{Schemas: schemas},
	}
	for _, op := range spec.Operations {
		doc.AddOperation(op.Path, strings.ToUpper(op.Method), c.operation(op))
	}
	if c.err != nil {
		return nil, c.err
	}
	return doc, nil
}

type converter struct {
	components map[string]*openapi3.Schema
	err        error
}

func (c *converter) schema(s pkgopenapi.Schema) *openapi3.SchemaRef {
	if s.Ref != "" {
		name := strings.TrimPrefix(s.Ref, componentPrefix)
		target, ok := c.components[name]
		if !ok && c.err == nil {
			c.err = fmt.Errorf("openapi builder: unknown schema reference %q", s.Ref)
		}
		return openapi3.NewSchemaRef(s.Ref, target)
	}

	out := &openapi3.Schema{
		Type:        &openapi3.Types{s.Type},
		Description: s.Description,
		Pattern:     s.Pattern,
		MinLength:   uint64(s.MinLength),
	}
	if s.Format != "" && s.Format != "text/html" {
		out.Format = s.Format
	}
	if s.MaxLength > 0 {
		out.WithMaxLength(int64(s.MaxLength))
	}
	if len(s.Enum) > 0 {
		values := make([]any, len(s.Enum))
		for i, v := range s.Enum {
			values[i] = v
		}
		out.Enum = values
	}
	if len(s.Properties) > 0 {
		out.Properties = make(openapi3.Schemas, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = c.schema(prop)
		}
	}
	if len(s.Required) > 0 {
		out.Required = append([]string(nil), s.Required...)
	}
	if s.Items != nil {
		out.Items = c.schema(*s.Items)
	}
	if s.Closed {
		out.WithoutAdditionalProperties()
	}
	return openapi3.NewSchemaRef("", out)
}

func (c *converter) operation(op pkgopenapi.Operation) *openapi3.Operation {
	out := openapi3.NewOperation()
	out.OperationID = op.ID
	out.Summary = op.Summary
	out.Description = op.Description

	for _, param := range op.Parameters {
		p := openapi3.NewQueryParameter(param.Name).
			WithDescription(param.Description).
			WithSchema(c.schema(param.Schema).Value)
		p.Required = param.Required
		out.Parameters = append(out.Parameters, &openapi3.ParameterRef{Value: p})
	}

	if !op.RequestBody.IsZero() {
		types := op.RequestTypes
		if len(types) == 0 {
			types = []string{"application/json"}
		}
		ref := c.schema(op.RequestBody)
		content := make(openapi3.Content, len(types))
		for _, mediaType := range types {
			content[mediaType] = &openapi3.MediaType{Schema: ref}
		}
		body := openapi3.NewRequestBody().WithRequired(true).WithContent(content)
		out.RequestBody = &openapi3.RequestBodyRef{Value: body}
	}

	out.Responses = openapi3.NewResponsesWithCapacity(len(op.Responses))
	for _, code := range op.ResponseCodes() {
		schema := op.Responses[code]
		status, err := strconv.Atoi(code)
		if err != nil {
			if c.err == nil {
				c.err = fmt.Errorf("openapi builder: operation %q: invalid status %q", op.ID, code)
			}
			continue
		}
		description := http.StatusText(status)
		if description == "" {
			description = code
		}
		mediaType := pkgopenapi.ResponseMediaType(schema)
		response := openapi3.NewResponse().
			WithDescription(description).
			WithContent(openapi3.Content{mediaType: &openapi3.MediaType{Schema: c.schema(schema)}})
		out.Responses.Set(code, &openapi3.ResponseRef{Value: response})
	}
	return out
}

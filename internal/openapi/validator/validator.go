package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
)

// Validator implements pkgopenapi.Validator against the record schema of a
// loaded contract.
type Validator struct {
	schema *openapi3.Schema
}

var _ pkgopenapi.Validator = (*Validator)(nil)

// New loads doc, validates it, and selects the record schema.
func New(ctx context.Context, doc pkgopenapi.Document) (*Validator, error) {
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi validator: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi validator: load document: %w", err)
	}
	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi validator: validate document: %w", err)
	}
	if spec.Components == nil {
		return nil, errors.New("openapi validator: document has no components")
	}
	ref, ok := spec.Components.Schemas[pkgopenapi.RecordSchemaName]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi validator: schema %q not found", pkgopenapi.RecordSchemaName)
	}
	return &Validator{schema: ref.Value}, nil
}

// ValidateRecord checks record and returns every violation keyed by JSON
// pointer. A nil map means the record is valid.
func (v *Validator) ValidateRecord(ctx context.Context, record map[string]string) (pkgopenapi.Violations, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value := make(map[string]any, len(record))
	for name, field := range record {
		value[name] = field
	}

	err := v.schema.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil, nil
	}
	violations := pkgopenapi.Violations{}
	if !collect(err, violations) {
		return nil, fmt.Errorf("openapi validator: %w", err)
	}
	return violations, nil
}

func collect(err error, out pkgopenapi.Violations) bool {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			if !collect(inner, out) {
				return false
			}
		}
		return true
	case *openapi3.SchemaError:
		pointer := "/" + strings.Join(e.JSONPointer(), "/")
		reason := e.Reason
		if reason == "" {
			reason = e.Error()
		}
		out[pointer] = append(out[pointer], reason)
		return true
	default:
		return false
	}
}

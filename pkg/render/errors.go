package render

import (
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages keyed by field name.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates and normalises form-level messages, trimming
// whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload maps an error payload keyed by JSON pointer or dotted path
// ("/firstName", "body.zipCode", "$.email") onto the form's field names.
// Paths that do not resolve to a field become form-level messages.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}

	known := make(map[string]struct{})
	for _, field := range form.Fields() {
		known[field.Name] = struct{}{}
	}

	for raw, messages := range payload {
		messages = normalizeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		name := fieldFromPath(raw)
		if _, ok := known[name]; !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// fieldFromPath returns the last meaningful segment of a pointer or dotted
// path.
func fieldFromPath(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimLeft(clean, "#$./")
	if clean == "" {
		return ""
	}
	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	for len(parts) > 1 && isWrapperSegment(parts[0]) {
		parts = parts[1:]
	}
	if len(parts) != 1 {
		return ""
	}
	segment := strings.ReplaceAll(parts[0], "~1", "/")
	return strings.ReplaceAll(segment, "~0", "~")
}

func isWrapperSegment(segment string) bool {
	switch strings.ToLower(segment) {
	case "body", "request", "payload", "data", "record":
		return true
	default:
		return false
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

package vanilla

import "strings"

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "rf-" + trimmed
}

func errorID(name string) string {
	id := controlID(name)
	if id == "" {
		return ""
	}
	return id + "-error"
}

func sectionID(id string) string {
	return "rf-section-" + strings.TrimSpace(id)
}

// htmlInputType maps a field type onto the input element's type attribute.
// Select and radio fields are drawn by their own branches of the template.
func htmlInputType(fieldType string) string {
	switch fieldType {
	case "email", "tel", "date", "number":
		return fieldType
	default:
		return "text"
	}
}

// inputMode hints the on-screen keyboard for filtered inputs.
func inputMode(kind string) string {
	switch kind {
	case "mobile", "landline":
		return "tel"
	case "zip", "year":
		return "numeric"
	case "grade":
		return "decimal"
	default:
		return ""
	}
}

package vanilla

// ChromeClass is a typed identifier for the semantic CSS classes the form
// template emits.
type ChromeClass string

const (
	ClassForm     ChromeClass = "regform"
	ClassHeader   ChromeClass = "regform-header"
	ClassProgress ChromeClass = "regform-progress"
	ClassBanner   ChromeClass = "regform-banner"
	ClassSection  ChromeClass = "regform-section"
	ClassGroup    ChromeClass = "regform-group"
	ClassField    ChromeClass = "regform-field"
	ClassInvalid  ChromeClass = "regform-field--invalid"
	ClassActions  ChromeClass = "regform-actions"
	ClassErrors   ChromeClass = "regform-errors"
)

func chromeClasses() map[string]string {
	return map[string]string{
		"form":     string(ClassForm),
		"header":   string(ClassHeader),
		"progress": string(ClassProgress),
		"banner":   string(ClassBanner),
		"section":  string(ClassSection),
		"group":    string(ClassGroup),
		"field":    string(ClassField),
		"invalid":  string(ClassInvalid),
		"actions":  string(ClassActions),
		"errors":   string(ClassErrors),
	}
}

package model

// FieldType is the control rendered for a field.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeEmail  FieldType = "email"
	FieldTypeTel    FieldType = "tel"
	FieldTypeDate   FieldType = "date"
	FieldTypeNumber FieldType = "number"
	FieldTypeSelect FieldType = "select"
	FieldTypeRadio  FieldType = "radio"
)

// InputKind selects the keystroke filter guarding a field. Fields with
// InputKindFree accept any input.
type InputKind string

const (
	InputKindFree     InputKind = "free"
	InputKindName     InputKind = "name"
	InputKindMobile   InputKind = "mobile"
	InputKindLandline InputKind = "landline"
	InputKindZipCode  InputKind = "zip"
	InputKindYear     InputKind = "year"
	InputKindGrade    InputKind = "grade"
	InputKindChoice   InputKind = "choice"
)

// SectionID identifies one of the collapsible groupings of the form.
type SectionID string

const (
	SectionPersonal   SectionID = "personal"
	SectionContact    SectionID = "contact"
	SectionAcademic   SectionID = "academic"
	SectionEnrollment SectionID = "enrollment"
)

// Option is a selectable value. Group carries the optgroup label when the
// option list is categorised.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Group string `json:"group,omitempty"`
}

// Field models an individual input. Options is only populated for choice
// fields whose list does not depend on another field; dependent lists are
// resolved per state through DependsOn.
type Field struct {
	Name        string            `json:"name"`
	Type        FieldType         `json:"type"`
	Input       InputKind         `json:"input"`
	Section     SectionID         `json:"section"`
	Group       string            `json:"group,omitempty"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	MaxLength   int               `json:"maxLength,omitempty"`
	Options     []Option          `json:"options,omitempty"`
	DependsOn   string            `json:"dependsOn,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Section groups fields under a collapsible header.
type Section struct {
	ID       SectionID `json:"id"`
	Title    string    `json:"title"`
	Icon     string    `json:"icon,omitempty"`
	Expanded bool      `json:"expanded"`
	Fields   []Field   `json:"fields"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Subtitle string            `json:"subtitle,omitempty"`
	Endpoint string            `json:"endpoint,omitempty"`
	Method   string            `json:"method,omitempty"`
	Sections []Section         `json:"sections"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Fields flattens the sections in declaration order.
func (f FormModel) Fields() []Field {
	var out []Field
	for _, section := range f.Sections {
		out = append(out, section.Fields...)
	}
	return out
}

// Field returns the field with the given name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, section := range f.Sections {
		for _, field := range section.Fields {
			if field.Name == name {
				return field, true
			}
		}
	}
	return Field{}, false
}

// Section returns the section with the given identifier.
func (f FormModel) Section(id SectionID) (Section, bool) {
	for _, section := range f.Sections {
		if section.ID == id {
			return section, true
		}
	}
	return Section{}, false
}

package registration

import (
	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/model"
)

// Field names. They double as the element ids adapters focus and the keys of
// the submitted record.
const (
	FieldFirstName   = "firstName"
	FieldMiddleName  = "middleName"
	FieldLastName    = "lastName"
	FieldSuffix      = "suffix"
	FieldDateOfBirth = "dateOfBirth"
	FieldGender      = "gender"
	FieldNationality = "nationality"
	FieldReligion    = "religion"

	FieldEmail        = "email"
	FieldMobileNumber = "mobileNumber"
	FieldLandline     = "landline"
	FieldStreet       = "street"
	FieldBarangay     = "barangay"
	FieldCity         = "city"
	FieldProvince     = "province"
	FieldZipCode      = "zipCode"

	FieldGSSchoolName     = "gsSchoolName"
	FieldGSYearGraduated  = "gsYearGraduated"
	FieldGSSchoolAddress  = "gsSchoolAddress"
	FieldJHSSchoolName    = "jhsSchoolName"
	FieldJHSYearGraduated = "jhsYearGraduated"
	FieldJHSSchoolAddress = "jhsSchoolAddress"
	FieldSHSSchoolName    = "shsSchoolName"
	FieldSHSYearGraduated = "shsYearGraduated"
	FieldSHSGradeAverage  = "shsGradeAverage"
	FieldSHSSchoolAddress = "shsSchoolAddress"

	FieldAcademicLevel     = "academicLevel"
	FieldSemester          = "semester"
	FieldCampus            = "campus"
	FieldCollegeDepartment = "collegeDepartment"
	FieldDegreeProgram     = "degreeProgram"
)

const (
	FormID       = "student-registration"
	FormTitle    = "ADEi University Student Registration"
	FormSubtitle = "Complete your enrollment in just a few steps"
)

// requiredFields is the submit-time completeness list, in focus order. It
// leaves out the grade school and junior high blocks even though the form
// draws them like required inputs.
var requiredFields = []string{
	FieldFirstName, FieldLastName, FieldDateOfBirth, FieldGender, FieldNationality, FieldReligion,
	FieldEmail, FieldMobileNumber, FieldStreet, FieldBarangay, FieldCity, FieldProvince, FieldZipCode,
	FieldSHSSchoolName, FieldSHSYearGraduated, FieldSHSGradeAverage, FieldSHSSchoolAddress,
	FieldAcademicLevel, FieldSemester, FieldCampus, FieldCollegeDepartment, FieldDegreeProgram,
}

// RequiredFields returns the fields whose emptiness blocks submission, in the
// order used to pick the field to focus.
func RequiredFields() []string {
	return append([]string(nil), requiredFields...)
}

// FieldNames returns every field of the default definition in render order.
func FieldNames() []string {
	def := Definition(nil)
	fields := def.Fields()
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = field.Name
	}
	return out
}

// Definition builds the registration form model. Static option lists come from
// c; a nil catalog leaves them empty. Degree program and department options
// depend on the academic level and are resolved per state.
func Definition(c *catalog.Catalog) model.FormModel {
	var genders, nationalities, levels, semesters, campuses []model.Option
	if c != nil {
		genders = catalog.Options(c.Genders)
		nationalities = catalog.Options(c.Nationalities)
		levels = c.LevelOptions()
		semesters = catalog.Options(c.Semesters)
		campuses = catalog.Options(c.Campuses)
	}

	form := model.FormModel{
		ID:       FormID,
		Title:    FormTitle,
		Subtitle: FormSubtitle,
		Method:   "POST",
		Sections: []model.Section{
			{
				ID:       model.SectionPersonal,
				Title:    "Personal Information",
				Icon:     "👤",
				Expanded: true,
				Fields: []model.Field{
					nameField(FieldFirstName, "First Name", "Letters only"),
					nameField(FieldMiddleName, "Middle Name", "Letters only"),
					nameField(FieldLastName, "Last Name", "Letters only"),
					nameField(FieldSuffix, "Suffix", "Jr., Sr., III"),
					{Name: FieldDateOfBirth, Type: model.FieldTypeDate, Input: model.InputKindFree, Label: "Date of Birth"},
					{Name: FieldGender, Type: model.FieldTypeSelect, Input: model.InputKindChoice, Label: "Gender", Placeholder: "-- Select Gender --", Options: genders},
					{Name: FieldNationality, Type: model.FieldTypeSelect, Input: model.InputKindChoice, Label: "Nationality", Placeholder: "-- Select Nationality --", Options: nationalities},
					nameField(FieldReligion, "Religion", "Letters only"),
				},
			},
			{
				ID:    model.SectionContact,
				Title: "Contact Details",
				Icon:  "📞",
				Fields: []model.Field{
					{Name: FieldEmail, Type: model.FieldTypeEmail, Input: model.InputKindFree, Label: "Email Address", Placeholder: "your.email@example.com", Description: "Valid email format required"},
					{Name: FieldMobileNumber, Type: model.FieldTypeTel, Input: model.InputKindMobile, Label: "Mobile Number", Placeholder: "+63 9XX XXXX XXX"},
					{Name: FieldLandline, Type: model.FieldTypeTel, Input: model.InputKindLandline, Label: "Landline", Placeholder: "(02) XXXX XXXX"},
					addressField(FieldStreet, "Street Address"),
					addressField(FieldBarangay, "Barangay"),
					addressField(FieldCity, "City/Municipality"),
					addressField(FieldProvince, "Province"),
					{Name: FieldZipCode, Type: model.FieldTypeText, Input: model.InputKindZipCode, Group: groupAddress, Label: "Zip Code", Placeholder: "e.g., 1000", MaxLength: 4},
				},
			},
			{
				ID:    model.SectionAcademic,
				Title: "Academic History",
				Icon:  "🎓",
				Fields: []model.Field{
					schoolNameField(FieldGSSchoolName, groupGradeSchool),
					yearField(FieldGSYearGraduated, groupGradeSchool),
					schoolAddressField(FieldGSSchoolAddress, groupGradeSchool),
					schoolNameField(FieldJHSSchoolName, groupJuniorHigh),
					yearField(FieldJHSYearGraduated, groupJuniorHigh),
					schoolAddressField(FieldJHSSchoolAddress, groupJuniorHigh),
					schoolNameField(FieldSHSSchoolName, groupSeniorHigh),
					yearField(FieldSHSYearGraduated, groupSeniorHigh),
					{Name: FieldSHSGradeAverage, Type: model.FieldTypeNumber, Input: model.InputKindGrade, Group: groupSeniorHigh, Label: "Grade Average", Placeholder: "0-100"},
					schoolAddressField(FieldSHSSchoolAddress, groupSeniorHigh),
				},
			},
			{
				ID:    model.SectionEnrollment,
				Title: "Enrollment Choices",
				Icon:  "📝",
				Fields: []model.Field{
					{Name: FieldAcademicLevel, Type: model.FieldTypeRadio, Input: model.InputKindChoice, Label: "Academic Level", Options: levels},
					{Name: FieldSemester, Type: model.FieldTypeRadio, Input: model.InputKindChoice, Label: "Semester", Options: semesters},
					{Name: FieldCampus, Type: model.FieldTypeRadio, Input: model.InputKindChoice, Label: "Campus", Options: campuses},
					{Name: FieldCollegeDepartment, Type: model.FieldTypeSelect, Input: model.InputKindChoice, Label: "College Department", Placeholder: "-- Select College Department --", DependsOn: FieldAcademicLevel},
					{Name: FieldDegreeProgram, Type: model.FieldTypeSelect, Input: model.InputKindChoice, Label: "Degree Program", Placeholder: "-- Select Degree Program --", DependsOn: FieldAcademicLevel},
				},
			},
		},
	}

	required := make(map[string]struct{}, len(requiredFields))
	for _, name := range requiredFields {
		required[name] = struct{}{}
	}
	for si := range form.Sections {
		for fi := range form.Sections[si].Fields {
			field := &form.Sections[si].Fields[fi]
			field.Section = form.Sections[si].ID
			_, field.Required = required[field.Name]
		}
	}
	return form
}

const (
	groupAddress     = "Complete Home Address"
	groupGradeSchool = "Grade School"
	groupJuniorHigh  = "Junior High School"
	groupSeniorHigh  = "Senior High School"
)

func nameField(name, label, placeholder string) model.Field {
	return model.Field{Name: name, Type: model.FieldTypeText, Input: model.InputKindName, Label: label, Placeholder: placeholder}
}

func addressField(name, label string) model.Field {
	return model.Field{Name: name, Type: model.FieldTypeText, Input: model.InputKindFree, Group: groupAddress, Label: label}
}

func schoolNameField(name, group string) model.Field {
	return model.Field{Name: name, Type: model.FieldTypeText, Input: model.InputKindFree, Group: group, Label: "School Name"}
}

func yearField(name, group string) model.Field {
	return model.Field{Name: name, Type: model.FieldTypeNumber, Input: model.InputKindYear, Group: group, Label: "Year Graduated", Placeholder: "YYYY", MaxLength: 4}
}

func schoolAddressField(name, group string) model.Field {
	return model.Field{Name: name, Type: model.FieldTypeText, Input: model.InputKindFree, Group: group, Label: "School Address"}
}

package testsupport

import (
	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/registration"
)

// CompleteValues returns a valid value for every field of the registration
// form, enough for a submit to succeed.
func CompleteValues() map[string]string {
	return map[string]string{
		registration.FieldFirstName:   "Maria",
		registration.FieldMiddleName:  "Santos",
		registration.FieldLastName:    "Dela Cruz",
		registration.FieldSuffix:      "",
		registration.FieldDateOfBirth: "2006-05-14",
		registration.FieldGender:      "Female",
		registration.FieldNationality: "Filipino",
		registration.FieldReligion:    "Roman Catholic",

		registration.FieldEmail:        "maria.delacruz@example.com",
		registration.FieldMobileNumber: "09171234567",
		registration.FieldLandline:     "8123 4567",
		registration.FieldStreet:       "123 Rizal Street",
		registration.FieldBarangay:     "San Antonio",
		registration.FieldCity:         "Pasig",
		registration.FieldProvince:     "Metro Manila",
		registration.FieldZipCode:      "1600",

		registration.FieldGSSchoolName:     "Pasig Elementary School",
		registration.FieldGSYearGraduated:  "2018",
		registration.FieldGSSchoolAddress:  "Pasig City",
		registration.FieldJHSSchoolName:    "Rizal High School",
		registration.FieldJHSYearGraduated: "2022",
		registration.FieldJHSSchoolAddress: "Pasig City",
		registration.FieldSHSSchoolName:    "Rizal Senior High School",
		registration.FieldSHSYearGraduated: "2024",
		registration.FieldSHSGradeAverage:  "92.5",
		registration.FieldSHSSchoolAddress: "Pasig City",

		registration.FieldAcademicLevel:     catalog.LevelUndergraduate,
		registration.FieldSemester:          "First Semester",
		registration.FieldCampus:            "Manila",
		registration.FieldCollegeDepartment: "ComputerStudies",
		registration.FieldDegreeProgram:     "BS Computer Science",
	}
}

// Fill applies values in the form's field order so the academic level lands
// before the fields that depend on it. It returns the names of rejected
// fields.
func Fill(form *registration.Form, values map[string]string) []string {
	var rejected []string
	for _, name := range form.Schema().FieldNames() {
		value, ok := values[name]
		if !ok {
			continue
		}
		if !form.SetField(name, value) {
			rejected = append(rejected, name)
		}
	}
	return rejected
}

package model

import "testing"

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"firstName":        "First Name",
		"shsGradeAverage":  "Shs Grade Average",
		"zip_code":         "Zip Code",
		"address-line2":    "Address Line 2",
		"jhsYearGraduated": "Jhs Year Graduated",
	}
	for input, want := range cases {
		if got := DefaultLabeler(input); got != want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFieldLabels(t *testing.T) {
	named := Field{Name: "shsYearGraduated", Label: "Year Graduated", Group: "Senior High School"}
	if got := named.QualifiedLabel(); got != "Senior High School / Year Graduated" {
		t.Fatalf("qualified = %q", got)
	}

	bare := Field{Name: "zipCode"}
	if got := bare.DisplayLabel(); got != "Zip Code" {
		t.Fatalf("display = %q", got)
	}
	if got := bare.QualifiedLabel(); got != "Zip Code" {
		t.Fatalf("qualified without group = %q", got)
	}
}

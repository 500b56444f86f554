package validator

import (
	"context"
	"testing"

	"github.com/goliatone/go-regform/internal/openapi/builder"
	"github.com/goliatone/go-regform/pkg/catalog"
	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	ctx := context.Background()
	spec := pkgopenapi.Describe(registration.MustSchema(catalog.MustDefault()))
	doc, err := builder.New().Build(ctx, spec)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	v, err := New(ctx, doc)
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	return v
}

func TestValidateRecordAcceptsCompleteRecord(t *testing.T) {
	v := newValidator(t)

	violations, err := v.ValidateRecord(context.Background(), testsupport.CompleteValues())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
}

func TestValidateRecordFlagsFields(t *testing.T) {
	v := newValidator(t)

	cases := []struct {
		name    string
		field   string
		value   string
		pointer string
	}{
		{name: "missing required", field: registration.FieldEmail, value: "", pointer: "/email"},
		{name: "digits in name", field: registration.FieldFirstName, value: "R2D2", pointer: "/firstName"},
		{name: "zip too long", field: registration.FieldZipCode, value: "12345", pointer: "/zipCode"},
		{name: "twelve digit mobile", field: registration.FieldMobileNumber, value: "091712345678", pointer: "/mobileNumber"},
		{name: "nine digit landline", field: registration.FieldLandline, value: "8123 45678", pointer: "/landline"},
		{name: "grade above range", field: registration.FieldSHSGradeAverage, value: "100.01", pointer: "/shsGradeAverage"},
		{name: "grade negative", field: registration.FieldSHSGradeAverage, value: "-1", pointer: "/shsGradeAverage"},
		{name: "unknown campus", field: registration.FieldCampus, value: "Cebu", pointer: "/campus"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record := testsupport.CompleteValues()
			record[tc.field] = tc.value

			violations, err := v.ValidateRecord(context.Background(), record)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if len(violations[tc.pointer]) == 0 {
				t.Fatalf("expected violation at %s, got %v", tc.pointer, violations)
			}
			if len(violations) != 1 {
				t.Fatalf("expected a single violated property, got %v", violations)
			}
		})
	}
}

func TestValidateRecordAcceptsBoundaryValues(t *testing.T) {
	v := newValidator(t)

	record := testsupport.CompleteValues()
	record[registration.FieldMobileNumber] = "+63 (917) 123-456"
	record[registration.FieldSHSGradeAverage] = "100.00"
	record[registration.FieldZipCode] = "1234"

	violations, err := v.ValidateRecord(context.Background(), record)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
}

func TestValidateRecordMissingAndUnknownProperties(t *testing.T) {
	v := newValidator(t)

	record := testsupport.CompleteValues()
	delete(record, registration.FieldCity)
	record["nickname"] = "Mia"

	violations, err := v.ValidateRecord(context.Background(), record)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(violations["/city"]) == 0 {
		t.Fatalf("expected missing city, got %v", violations)
	}
	if len(violations["/"]) == 0 {
		t.Fatalf("expected unsupported property at the root, got %v", violations)
	}
}

func TestNewRejectsDocumentWithoutRecord(t *testing.T) {
	doc := pkgopenapi.MustNewDocument(pkgopenapi.SourceGenerated("empty"), []byte(`{
  "openapi": "3.0.3",
  "info": {"title": "empty", "version": "1"},
  "paths": {}
}`))
	if _, err := New(context.Background(), doc); err == nil {
		t.Fatalf("expected error for document without record schema")
	}
}

package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	form := model.FormModel{
		Sections: []model.Section{
			{ID: model.SectionPersonal, Fields: []model.Field{{Name: "firstName"}, {Name: "lastName"}}},
			{ID: model.SectionContact, Fields: []model.Field{{Name: "zipCode"}, {Name: "email/alt"}}},
		},
	}

	payload := map[string][]string{
		"/firstName":        {"First name is required", " First name is required "},
		"body.zipCode":      {"Zip too long"},
		"$.lastName":        {"Letters only"},
		"/email~1alt":       {"Bad email"},
		"non_field_errors":  {"Form level error"},
		"/unknown":          {"Unknown field"},
		"/record/firstName": {"Second message"},
		"":                  {"  "},
	}

	mapped := render.MapErrorPayload(form, payload)

	wantFields := map[string][]string{
		"firstName": {"First name is required", "Second message"},
		"lastName":  {"Letters only"},
		"zipCode":   {"Zip too long"},
		"email/alt": {"Bad email"},
	}
	sortStrings := cmpopts.SortSlices(func(a, b string) bool { return a < b })
	if diff := cmp.Diff(wantFields, mapped.Fields, sortStrings); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Unknown field"}
	if diff := cmp.Diff(wantForm, mapped.Form, sortStrings); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOptions_SectionOpen(t *testing.T) {
	section := model.Section{
		ID:     model.SectionContact,
		Fields: []model.Field{{Name: "email"}},
	}

	if (render.RenderOptions{}).SectionOpen(section) {
		t.Fatalf("expected model default (closed)")
	}
	if !(render.RenderOptions{Expanded: map[model.SectionID]bool{model.SectionContact: true}}).SectionOpen(section) {
		t.Fatalf("expected expanded flag to open the section")
	}
	if !(render.RenderOptions{Focus: "email"}).SectionOpen(section) {
		t.Fatalf("expected focus to open the section")
	}
}

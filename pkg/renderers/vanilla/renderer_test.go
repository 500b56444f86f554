package vanilla_test

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/theming"
)

func renderState(t *testing.T, renderer *vanilla.Renderer, actions ...registration.Action) string {
	t.Helper()

	schema := registration.MustSchema(catalog.MustDefault())
	state := schema.NewState()
	for _, action := range actions {
		state, _ = schema.Reduce(state, action)
	}
	output, err := renderer.Render(context.Background(), schema.Form(), schema.View(state))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(output)
}

func newRenderer(t *testing.T, opts ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func lineWith(t *testing.T, output, needle string) string {
	t.Helper()
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	t.Fatalf("no line contains %q", needle)
	return ""
}

func TestRenderer_InitialState(t *testing.T) {
	output := renderState(t, newRenderer(t))

	for _, want := range []string{
		`<h1>ADEi University Student Registration</h1>`,
		`<details id="rf-section-personal" class="regform-section" data-section="personal" open>`,
		`<details id="rf-section-contact" class="regform-section" data-section="contact">`,
		`<legend>Complete Home Address</legend>`,
		`<legend>Senior High School</legend>`,
		`value="0">0%</progress>`,
		`name="_action" value="reset"`,
		`name="_action" value="submit"`,
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}

	if line := lineWith(t, output, `<select id="rf-degreeProgram"`); !strings.Contains(line, " disabled") {
		t.Fatalf("degree program must be disabled without a level: %s", line)
	}
	if line := lineWith(t, output, `<select id="rf-gender"`); strings.Contains(line, " disabled") {
		t.Fatalf("gender must be enabled: %s", line)
	}
	if line := lineWith(t, output, `id="rf-zipCode"`); !strings.Contains(line, `maxlength="4"`) || !strings.Contains(line, `inputmode="numeric"`) {
		t.Fatalf("zip input attributes missing: %s", line)
	}
	if strings.Contains(output, "regform-banner") && strings.Contains(output, `role="alert"`) {
		t.Fatalf("no banner expected before submit")
	}
	if strings.Contains(output, "<!DOCTYPE html>") {
		t.Fatalf("fragment expected without WithDocument")
	}
}

func TestRenderer_SubmitErrorState(t *testing.T) {
	output := renderState(t, newRenderer(t),
		registration.SetField{Name: registration.FieldFirstName, Value: "Maria"},
		registration.Submit{},
	)

	banner := lineWith(t, output, `role="alert"`)
	if !strings.Contains(banner, registration.ErrorMessage) {
		t.Fatalf("error banner text missing: %s", banner)
	}
	focused := lineWith(t, output, `id="rf-lastName"`)
	if !strings.Contains(focused, " autofocus") || !strings.Contains(focused, `aria-invalid="true"`) {
		t.Fatalf("last name should be focused and invalid: %s", focused)
	}
	if line := lineWith(t, output, `id="rf-firstName"`); strings.Contains(line, "aria-invalid") {
		t.Fatalf("first name is filled and must not be invalid: %s", line)
	}
	if !strings.Contains(output, `<p id="rf-lastName-error" class="regform-errors">This field is required</p>`) {
		t.Fatalf("inline error missing")
	}
	if !strings.Contains(output, `data-section="enrollment">`) {
		t.Fatalf("enrollment section should stay closed")
	}
}

func TestRenderer_DependentOptions(t *testing.T) {
	output := renderState(t, newRenderer(t),
		registration.SetField{Name: registration.FieldAcademicLevel, Value: catalog.LevelUndergraduate},
		registration.SetField{Name: registration.FieldDegreeProgram, Value: "BS Computer Science"},
	)

	if !strings.Contains(output, `<optgroup label="College of Computer Studies">`) {
		t.Fatalf("expected program categories as optgroups")
	}
	if !strings.Contains(output, `<option value="BS Computer Science" selected>BS Computer Science</option>`) {
		t.Fatalf("expected selected program")
	}
	if !strings.Contains(output, `<option value="ComputerStudies">College of Computer Studies</option>`) {
		t.Fatalf("expected department labels")
	}
	radio := lineWith(t, output, `value="Undergraduate"`)
	if !strings.Contains(radio, " checked") {
		t.Fatalf("level radio not checked: %s", radio)
	}
}

func TestRenderer_ThemeAndDocument(t *testing.T) {
	manifest, err := theming.Default()
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	cfg, err := theming.Resolve(manifest, "dark")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	output := renderState(t, newRenderer(t,
		vanilla.WithTheme(cfg),
		vanilla.WithDocument(),
		vanilla.WithStylesheet("/static/site.css"),
	))

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<link rel="stylesheet" href="/assets/regform.css">`,
		`<link rel="stylesheet" href="/static/site.css">`,
		`--color-surface:#111827;`,
		`data-theme="adei" data-theme-variant="dark"`,
		"</html>",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestRenderer_DefaultStyles(t *testing.T) {
	output := renderState(t, newRenderer(t, vanilla.WithDefaultStyles()))
	if !strings.Contains(output, ".regform-banner--error") {
		t.Fatalf("expected inlined stylesheet")
	}
}

func TestRenderer_SanitizesMarkupAndEscapesValues(t *testing.T) {
	renderer := newRenderer(t)
	form := model.FormModel{
		ID:    "probe",
		Title: "Probe",
		Sections: []model.Section{{
			ID:       model.SectionPersonal,
			Title:    "Personal",
			Icon:     `<svg viewBox="0 0 10 10" onload="alert(1)"><path d="M0 0h10"/></svg>`,
			Expanded: true,
			Fields: []model.Field{{
				Name:        "nickname",
				Type:        model.FieldTypeText,
				Label:       "Nickname",
				Description: `Use <strong>letters</strong><script>alert(2)</script>`,
			}},
		}},
	}

	output, err := renderer.Render(context.Background(), form, render.RenderOptions{
		Values: map[string]string{"nickname": `"><script>alert(3)</script>`},
		Banner: render.Banner{Kind: render.BannerSuccess, Message: `<em>Done</em><img src=x onerror=alert(4)>`},
		Hidden: map[string]string{"_csrf": "tok"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(output)

	if strings.Contains(html, "<script>") || strings.Contains(html, "onload") || strings.Contains(html, "onerror") {
		t.Fatalf("unsafe markup leaked:\n%s", html)
	}
	for _, want := range []string{
		`<small>Use <strong>letters</strong></small>`,
		`role="status"><em>Done</em>`,
		`<path d="M0 0h10"`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`&lt;script&gt;`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestRenderer_ThemePartialOverridesTemplate(t *testing.T) {
	manifest, err := theming.LoadManifest(strings.NewReader(`
name: minimal
templates:
  regform.form: templates/minimal.tmpl
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg, err := theming.Resolve(manifest, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	renderer := newRenderer(t, vanilla.WithTheme(cfg), vanilla.WithTemplateRenderer(stubTemplates{}))
	output, err := renderer.Render(context.Background(), model.FormModel{}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(output) != "templates/minimal.tmpl" {
		t.Fatalf("expected theme partial, got %q", output)
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer := newRenderer(t)
	if renderer.Name() != "vanilla" {
		t.Fatalf("name = %q", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("content type = %q", renderer.ContentType())
	}
}

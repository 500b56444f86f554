package regform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/catalog"
	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected a non-empty stylesheet")
	}
}

func TestEmbeddedTemplatesContainForm(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
}

func TestContractRoundTrip(t *testing.T) {
	ctx := context.Background()
	doc, err := BuildContract(ctx, catalog.MustDefault())
	if err != nil {
		t.Fatalf("build contract: %v", err)
	}
	if doc.Source().Kind() != pkgopenapi.SourceKindGenerated {
		t.Fatalf("source kind = %q", doc.Source().Kind())
	}

	validator, err := NewRecordValidator(ctx, doc)
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	violations, err := validator.ValidateRecord(ctx, testsupport.CompleteValues())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("complete record should pass: %v", violations)
	}

	record := testsupport.CompleteValues()
	delete(record, registration.FieldEmail)
	violations, err = validator.ValidateRecord(ctx, record)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(violations["/"+registration.FieldEmail]) == 0 {
		t.Fatalf("expected a violation for the missing email, got %v", violations)
	}
}

func TestNewRegistry(t *testing.T) {
	prompt, err := tui.New()
	if err != nil {
		t.Fatalf("tui: %v", err)
	}
	registry, err := NewRegistry(prompt)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.Names()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
	if _, err := NewRegistry(prompt, prompt); err == nil {
		t.Fatalf("expected duplicate renderer error")
	}
}

func TestNewRegistryKeepsCallerHTMLRenderer(t *testing.T) {
	fragment, err := vanilla.New()
	if err != nil {
		t.Fatalf("vanilla: %v", err)
	}
	registry, err := NewRegistry(fragment)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	got, err := registry.Get("vanilla")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != render.Renderer(fragment) {
		t.Fatalf("expected the caller's renderer, got %T", got)
	}
	if diff := cmp.Diff([]string{"vanilla"}, registry.Names()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateHTMLDrawsState(t *testing.T) {
	form, err := registration.New(
		registration.WithScheduler(registration.NopScheduler{}),
		registration.WithInitialValues(map[string]string{registration.FieldFirstName: "Ana"}),
	)
	if err != nil {
		t.Fatalf("mount: %v", err)
	}
	defer form.Close()
	form.Submit()

	html, err := GenerateHTML(context.Background(), form)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	body := string(html)
	for _, want := range []string{`value="Ana"`, registration.ErrorMessage} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
	if _, err := GenerateHTML(context.Background(), nil); err == nil {
		t.Fatalf("expected error for a nil form")
	}
}

func TestResolveThemeDefault(t *testing.T) {
	cfg, err := ResolveTheme("", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg == nil || cfg.Theme == "" {
		t.Fatalf("expected a resolved theme, got %+v", cfg)
	}
	if _, err := ResolveTheme("", "no-such-variant"); err == nil {
		t.Fatalf("expected unknown variant error")
	}
}

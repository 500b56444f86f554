package theming_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/theming"
)

func TestDefaultManifest(t *testing.T) {
	manifest, err := theming.Default()
	if err != nil {
		t.Fatalf("default manifest: %v", err)
	}
	if manifest.Name != theming.DefaultName {
		t.Fatalf("name = %q", manifest.Name)
	}
	if _, ok := manifest.Variants["dark"]; !ok {
		t.Fatalf("expected dark variant")
	}
}

func TestResolve_VariantOverridesTokens(t *testing.T) {
	manifest, err := theming.Default()
	if err != nil {
		t.Fatalf("default manifest: %v", err)
	}

	base, err := theming.Resolve(manifest, "")
	if err != nil {
		t.Fatalf("resolve base: %v", err)
	}
	dark, err := theming.Resolve(manifest, "dark")
	if err != nil {
		t.Fatalf("resolve dark: %v", err)
	}

	if base.CSSVars["--color-surface"] != "#ffffff" {
		t.Fatalf("base surface = %q", base.CSSVars["--color-surface"])
	}
	if dark.CSSVars["--color-surface"] != "#111827" {
		t.Fatalf("dark surface = %q", dark.CSSVars["--color-surface"])
	}
	if dark.CSSVars["--color-primary"] != base.CSSVars["--color-primary"] {
		t.Fatalf("dark variant should inherit primary")
	}
	if dark.Variant != "dark" || dark.Theme != theming.DefaultName {
		t.Fatalf("unexpected selection %s/%s", dark.Theme, dark.Variant)
	}
	if got := dark.AssetURL(theming.StylesheetAsset); got != "/assets/regform.css" {
		t.Fatalf("stylesheet url = %q", got)
	}
	if got := dark.AssetURL("missing"); got != "" {
		t.Fatalf("missing asset url = %q", got)
	}
}

func TestResolve_UnknownVariant(t *testing.T) {
	manifest, _ := theming.Default()
	if _, err := theming.Resolve(manifest, "sepia"); !errors.Is(err, theming.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestLoadManifest(t *testing.T) {
	manifest, err := theming.LoadManifest(strings.NewReader(`
name: campus
tokens:
  color.primary: "#123456"
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg, err := theming.Resolve(manifest, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := theming.RootStyle(cfg); got != ":root{--color-primary:#123456;}" {
		t.Fatalf("root style = %q", got)
	}

	if _, err := theming.LoadManifest(strings.NewReader("version: 1\n")); err == nil {
		t.Fatalf("expected missing name error")
	}
	if _, err := theming.LoadManifest(strings.NewReader("name: x\ncolours: {}\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestResolve_RejectsUnsafeTokens(t *testing.T) {
	manifest, err := theming.LoadManifest(strings.NewReader(`
name: bad
tokens:
  color.primary: "red;}</style><script>"
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := theming.Resolve(manifest, ""); !errors.Is(err, theming.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCSSVarName(t *testing.T) {
	cases := map[string]string{
		"color.primary": "--color-primary",
		"--brand":       "--brand",
		"Radius_Card":   "--radius-card",
	}
	for in, want := range cases {
		if got := theming.CSSVarName(in); got != want {
			t.Fatalf("CSSVarName(%q) = %q, want %q", in, got, want)
		}
	}
}

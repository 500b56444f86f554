package pongo

import (
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-regform/pkg/theming"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
	if !pongo2.FilterExists("cssvar") {
		_ = pongo2.RegisterFilter("cssvar", filterCSSVar)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterCSSVar turns a theme token name into a CSS custom property reference:
// "color.primary" becomes "var(--color-primary)".
func filterCSSVar(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue("var(" + theming.CSSVarName(in.String()) + ")"), nil
}

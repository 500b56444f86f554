package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/validation"
)

type themeFlags struct {
	manifest string
	variant  string
}

func (f *themeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.manifest, "theme", "", "theme manifest YAML (embedded default when empty)")
	cmd.Flags().StringVar(&f.variant, "variant", "", "theme variant, such as dark")
}

func (f *themeFlags) option() (vanilla.Option, error) {
	cfg, err := regform.ResolveTheme(f.manifest, f.variant)
	if err != nil {
		return nil, err
	}
	return vanilla.WithTheme(cfg), nil
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		output   string
		fragment bool
		values   []string
		using    string
		theme    themeFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form as HTML",
		Long: `Renders the registration form as a self-contained HTML page. Prefill values
with --set name=value; a value the field would reject is an error. --renderer tui
runs the prompt session over the prefilled form instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			themeOpt, err := theme.option()
			if err != nil {
				return err
			}
			assignments, err := parseAssignments(values)
			if err != nil {
				return err
			}
			registry, err := a.renderers(cmd, themeOpt, fragment)
			if err != nil {
				return err
			}
			renderer, err := registry.Get(using)
			if err != nil {
				return err
			}

			form, err := registration.New(append(a.formOptions(),
				registration.WithScheduler(registration.NopScheduler{}),
			)...)
			if err != nil {
				return err
			}
			defer form.Close()
			if err := prefill(form, assignments); err != nil {
				return err
			}

			out, err := renderer.Render(cmd.Context(), form.Schema().Form(), form.RenderOptions())
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, out)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&fragment, "fragment", false, "emit only the <form> element")
	cmd.Flags().StringArrayVar(&values, "set", nil, "prefill a field as name=value (repeatable)")
	cmd.Flags().StringVar(&using, "renderer", "vanilla", "renderer to use: vanilla or tui")
	theme.register(cmd)
	return cmd
}

// renderers builds the registry render resolves --renderer against.
func (a *app) renderers(cmd *cobra.Command, themeOpt vanilla.Option, fragment bool) (*render.Registry, error) {
	opts := []vanilla.Option{themeOpt, vanilla.WithDefaultStyles()}
	if !fragment {
		opts = append(opts, vanilla.WithDocument())
	}
	html, err := vanilla.New(opts...)
	if err != nil {
		return nil, err
	}
	prompt, err := tui.New(
		tui.WithPromptDriver(promptDriver(cmd)),
		tui.WithFormOptions(a.formOptions()...),
	)
	if err != nil {
		return nil, err
	}
	return regform.NewRegistry(html, prompt)
}

// prefill applies assignments in field order, so a dependent choice is set
// after its parent.
func prefill(form *registration.Form, assignments map[string]string) error {
	schema := form.Schema()

	var unknown []string
	for name := range assignments {
		if _, ok := schema.Field(name); !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown field %s", strings.Join(unknown, ", "))
	}

	for _, name := range schema.FieldNames() {
		value, ok := assignments[name]
		if !ok || form.SetField(name, value) {
			continue
		}
		field, _ := schema.Field(name)
		if err := schema.Accept(form.State(), name, value); err != nil {
			return fmt.Errorf("%s: %s %s", name, field.DisplayLabel(), validation.Message(err))
		}
	}
	return nil
}

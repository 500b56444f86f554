package main

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

func newPromptCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill the form through sequential prompts",
		Long: `Asks for every field section by section, submits, and asks again for the
fields that are still missing until the registration goes through.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer, err := tui.New(
				tui.WithPromptDriver(promptDriver(cmd)),
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithFormOptions(a.formOptions()...),
			)
			if err != nil {
				return err
			}

			out, err := renderer.Render(cmd.Context(), registration.Definition(a.catalog), render.RenderOptions{})
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, out)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "record format: json, form or pretty")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

// promptDriver binds survey to the command's streams, falling back to the
// process terminal when they are not files.
func promptDriver(cmd *cobra.Command) *tui.SurveyDriver {
	stdin, ok := cmd.InOrStdin().(terminal.FileReader)
	if !ok {
		stdin = os.Stdin
	}
	stdout, ok := cmd.OutOrStdout().(terminal.FileWriter)
	if !ok {
		stdout = os.Stdout
	}
	return tui.NewSurveyDriverWithStdio(terminal.Stdio{In: stdin, Out: stdout, Err: cmd.ErrOrStderr()})
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "written to %s\n", path)
	return nil
}

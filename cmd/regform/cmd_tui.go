package main

import (
	"encoding/json"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/renderers/interactive"
)

func newTUICmd(a *app) *cobra.Command {
	var altScreen bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Fill the form in a full-screen terminal UI",
		Long: `Opens the registration form with collapsible sections, a progress bar and
the submit banners. Press ctrl+s to submit and esc to quit. The record of
the last successful submit is printed as JSON on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			programOpts := []tea.ProgramOption{
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.ErrOrStderr()),
			}
			if altScreen {
				programOpts = append(programOpts, tea.WithAltScreen())
			}

			result, err := interactive.Run(cmd.Context(),
				interactive.WithFormOptions(a.formOptions()...),
				interactive.WithProgramOptions(programOpts...),
			)
			if errors.Is(err, interactive.ErrNotSubmitted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "no registration submitted")
				return nil
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"submissionId": result.SubmissionID,
				"record":       result.Record,
			})
		},
	}
	cmd.Flags().BoolVar(&altScreen, "alt-screen", true, "draw in the alternate screen buffer")
	return cmd
}

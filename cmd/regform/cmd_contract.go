package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform"
	pkgopenapi "github.com/goliatone/go-regform/pkg/openapi"
)

// errInvalidRecord is returned when --validate finds violations.
var errInvalidRecord = errors.New("record does not match the contract")

func newContractCmd(a *app) *cobra.Command {
	var (
		output   string
		specPath string
		record   string
	)

	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Export the OpenAPI contract or validate a record against it",
		Long: `Prints the OpenAPI 3 document describing the registration routes.

With --validate, reads a JSON record and checks it against the record
schema instead. The contract is built from the catalog unless --spec
points at a previously exported document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var (
				doc pkgopenapi.Document
				err error
			)
			if specPath != "" {
				doc, err = regform.NewLoader().Load(ctx, pkgopenapi.SourceFromFile(specPath))
			} else {
				doc, err = regform.BuildContract(ctx, a.catalog)
			}
			if err != nil {
				return err
			}

			if record == "" {
				return writeOutput(cmd, output, doc.Raw())
			}

			raw, err := os.ReadFile(record)
			if err != nil {
				return fmt.Errorf("read record: %w", err)
			}
			var values map[string]string
			if err := json.Unmarshal(raw, &values); err != nil {
				return fmt.Errorf("decode record: %w", err)
			}

			validator, err := regform.NewRecordValidator(ctx, doc)
			if err != nil {
				return err
			}
			violations, err := validator.ValidateRecord(ctx, values)
			if err != nil {
				return err
			}
			if len(violations) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "record is valid")
				return nil
			}

			pointers := make([]string, 0, len(violations))
			for pointer := range violations {
				pointers = append(pointers, pointer)
			}
			sort.Strings(pointers)
			for _, pointer := range pointers {
				for _, reason := range violations[pointer] {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", pointer, reason)
				}
			}
			return fmt.Errorf("%w: %d field(s)", errInvalidRecord, len(violations))
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&specPath, "spec", "", "exported contract to load instead of building one")
	cmd.Flags().StringVar(&record, "validate", "", "JSON record file to validate")
	return cmd
}

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/registration"
)

// snapshot is written for client developers: the form model plus
// the dependent lists for every academic level.
type snapshot struct {
	Form       any                 `json:"form"`
	Required   []string            `json:"required"`
	Dependents map[string]dependent `json:"dependents"`
}

type dependent struct {
	Departments any `json:"departments"`
	Programs    any `json:"programs"`
}

func main() {
	catalogPath := flag.String("catalog", "", "option catalog YAML (embedded default when empty)")
	output := flag.String("output", "form_model.json", "snapshot destination")
	flag.Parse()

	if err := run(*catalogPath, *output); err != nil {
		fmt.Fprintf(os.Stderr, "generate-form-model: %v\n", err)
		os.Exit(1)
	}
}

func run(catalogPath, output string) error {
	c, err := loadCatalog(catalogPath)
	if err != nil {
		return err
	}
	schema, err := registration.NewSchema(c)
	if err != nil {
		return err
	}

	snap := snapshot{
		Form:       schema.Form(),
		Required:   schema.Required(),
		Dependents: make(map[string]dependent),
	}
	for _, level := range c.LevelOptions() {
		snap.Dependents[level.Value] = dependent{
			Departments: c.DepartmentOptions(level.Value),
			Programs:    c.ProgramOptions(level.Value),
		}
	}

	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(output, append(raw, '\n'), 0o644); err != nil {
		return err
	}
	fmt.Printf("form model snapshot written to %s\n", output)
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

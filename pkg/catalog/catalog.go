package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/model"
)

//go:embed data/catalog.yaml
var dataFS embed.FS

const defaultCatalogPath = "data/catalog.yaml"

const (
	LevelUndergraduate = "Undergraduate"
	LevelGraduate      = "Graduate"
)

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// ErrUnknownLevel is returned by Validate when a keyed list references a level
// missing from the level list.
var ErrUnknownLevel = errors.New("catalog: unknown academic level")

// ProgramGroup is a category of degree programs rendered as one optgroup.
type ProgramGroup struct {
	Category string   `yaml:"category" json:"category"`
	Programs []string `yaml:"programs" json:"programs"`
}

// Department is a college department choice.
type Department struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Catalog holds every option list the form offers. Degree programs and
// departments are keyed by academic level.
type Catalog struct {
	Levels         []string                  `yaml:"levels" json:"levels"`
	Genders        []string                  `yaml:"genders" json:"genders"`
	Nationalities  []string                  `yaml:"nationalities" json:"nationalities"`
	Semesters      []string                  `yaml:"semesters" json:"semesters"`
	Campuses       []string                  `yaml:"campuses" json:"campuses"`
	DegreePrograms map[string][]ProgramGroup `yaml:"degreePrograms" json:"degreePrograms"`
	Departments    map[string][]Department   `yaml:"departments" json:"departments"`
}

// Default returns the embedded catalog. The result is shared; callers must not
// mutate it.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultCatalogPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		defaultCatalog, defaultErr = Load(f)
	})
	return defaultCatalog, defaultErr
}

// MustDefault panics when the embedded catalog cannot be loaded.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load decodes and validates a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	if r == nil {
		return nil, fmt.Errorf("catalog: missing reader")
	}
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads a YAML catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Validate checks that the catalog is internally consistent.
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("catalog: nil catalog")
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("catalog: at least one academic level is required")
	}
	known := make(map[string]struct{}, len(c.Levels))
	for _, level := range c.Levels {
		level = strings.TrimSpace(level)
		if level == "" {
			return fmt.Errorf("catalog: empty academic level")
		}
		if _, dup := known[level]; dup {
			return fmt.Errorf("catalog: duplicate academic level %q", level)
		}
		known[level] = struct{}{}
	}
	for level := range c.DegreePrograms {
		if _, ok := known[level]; !ok {
			return fmt.Errorf("%w: degree programs for %q", ErrUnknownLevel, level)
		}
	}
	for level := range c.Departments {
		if _, ok := known[level]; !ok {
			return fmt.Errorf("%w: departments for %q", ErrUnknownLevel, level)
		}
	}
	return nil
}

// HasLevel reports whether level is one of the catalog's academic levels.
func (c *Catalog) HasLevel(level string) bool {
	if c == nil {
		return false
	}
	for _, candidate := range c.Levels {
		if candidate == level {
			return true
		}
	}
	return false
}

// ProgramGroups returns the degree program categories for level. An empty or
// unknown level yields nil.
func (c *Catalog) ProgramGroups(level string) []ProgramGroup {
	if c == nil || level == "" {
		return nil
	}
	groups := c.DegreePrograms[level]
	if len(groups) == 0 {
		return nil
	}
	out := make([]ProgramGroup, len(groups))
	for i, group := range groups {
		out[i] = ProgramGroup{
			Category: group.Category,
			Programs: append([]string(nil), group.Programs...),
		}
	}
	return out
}

// ProgramOptions flattens the degree programs for level into options carrying
// their category as the group.
func (c *Catalog) ProgramOptions(level string) []model.Option {
	var out []model.Option
	for _, group := range c.ProgramGroups(level) {
		for _, program := range group.Programs {
			out = append(out, model.Option{
				Value: program,
				Label: program,
				Group: group.Category,
			})
		}
	}
	return out
}

// DepartmentOptions returns the departments offered for level.
func (c *Catalog) DepartmentOptions(level string) []model.Option {
	if c == nil || level == "" {
		return nil
	}
	departments := c.Departments[level]
	if len(departments) == 0 {
		return nil
	}
	out := make([]model.Option, 0, len(departments))
	for _, dept := range departments {
		label := dept.Label
		if label == "" {
			label = dept.Value
		}
		out = append(out, model.Option{Value: dept.Value, Label: label})
	}
	return out
}

// LevelOptions returns the academic levels as options.
func (c *Catalog) LevelOptions() []model.Option {
	if c == nil {
		return nil
	}
	return Options(c.Levels)
}

// Options converts plain values into options labelled by their value.
func Options(values []string) []model.Option {
	if len(values) == 0 {
		return nil
	}
	out := make([]model.Option, len(values))
	for i, value := range values {
		out[i] = model.Option{Value: value, Label: value}
	}
	return out
}

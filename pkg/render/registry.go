package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownRenderer is returned by Registry.Get for a name nothing was
// registered under.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Registry is a fixed set of renderers keyed by Name. It is built once and
// never mutated, so lookups need no locking. `regform render --renderer`
// resolves its output through one.
type Registry struct {
	byName map[string]Renderer
	names  []string
}

// NewRegistry indexes renderers by name. Nil renderers, empty names and
// duplicate names are errors.
func NewRegistry(renderers ...Renderer) (*Registry, error) {
	r := &Registry{byName: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		if renderer == nil {
			return nil, fmt.Errorf("render: renderer is required")
		}
		name := renderer.Name()
		if name == "" {
			return nil, fmt.Errorf("render: renderer name is required")
		}
		if _, dup := r.byName[name]; dup {
			return nil, fmt.Errorf("render: renderer %q registered twice", name)
		}
		r.byName[name] = renderer
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Get returns the renderer registered as name. The error wraps
// ErrUnknownRenderer and lists the names that are available.
func (r *Registry) Get(name string) (Renderer, error) {
	if renderer, ok := r.byName[name]; ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownRenderer, name, strings.Join(r.names, ", "))
}

// Names lists the registered names in sorted order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

package interactive

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-regform/pkg/registration"
)

// ErrNotSubmitted is returned by Run when the user quits before a successful
// submit.
var ErrNotSubmitted = errors.New("interactive: form closed without a successful submit")

type config struct {
	formOptions    []registration.Option
	programOptions []tea.ProgramOption
	keys           KeyMap
	styles         Styles
	notify         func(registration.State)
}

// Option configures the interactive form.
type Option func(*config)

// WithFormOptions forwards options to the mounted registration form.
func WithFormOptions(opts ...registration.Option) Option {
	return func(c *config) {
		c.formOptions = append(c.formOptions, opts...)
	}
}

// WithProgramOptions forwards options to the bubbletea program started by
// Run, such as custom input and output streams.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(c *config) {
		c.programOptions = append(c.programOptions, opts...)
	}
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(c *config) {
		c.keys = keys
	}
}

// WithStyles replaces the default styles.
func WithStyles(styles Styles) Option {
	return func(c *config) {
		c.styles = styles
	}
}

func newConfig(opts ...Option) config {
	cfg := config{
		keys:   DefaultKeyMap(),
		styles: DefaultStyles(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

// Run mounts a form, drives it until the user quits, and returns the last
// successful submit.
func Run(ctx context.Context, opts ...Option) (registration.Result, error) {
	cfg := newConfig(opts...)

	relay := &relay{}
	cfg.notify = relay.changed

	m, err := newModel(cfg)
	if err != nil {
		return registration.Result{}, err
	}
	defer m.Close()

	programOpts := append([]tea.ProgramOption{tea.WithContext(ctx)}, cfg.programOptions...)
	program := tea.NewProgram(m, programOpts...)
	relay.attach(program)
	defer relay.detach()

	final, err := program.Run()
	if err != nil {
		return registration.Result{}, fmt.Errorf("interactive: %w", err)
	}
	done, ok := final.(Model)
	if !ok {
		return registration.Result{}, fmt.Errorf("interactive: unexpected final model %T", final)
	}
	result, ok := done.Result()
	if !ok {
		return registration.Result{}, ErrNotSubmitted
	}
	return result, nil
}

// relay forwards form change notifications to the running program. Timer
// callbacks may fire before the program is attached or after it exits.
type relay struct {
	mu      sync.Mutex
	program *tea.Program
}

func (r *relay) attach(p *tea.Program) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.program = p
}

func (r *relay) detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.program = nil
}

func (r *relay) changed(registration.State) {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Send(changedMsg{})
	}
}

package registration

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/model"
)

// FocusPort receives the focus and scroll requests produced by submit. UI
// adapters implement it; the core never touches a rendering surface.
type FocusPort interface {
	Focus(field string)
	ScrollToTop()
}

// Recorder observes form activity, typically for metrics.
type Recorder interface {
	ObserveSubmit(status Status, incomplete int)
	ObserveRejected(field string)
}

// Result summarises a submit attempt.
type Result struct {
	Status       Status
	Incomplete   []string
	Focus        string
	SubmissionID string
	Record       Record
}

// OK reports whether the submission succeeded.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Option configures a Form.
type Option func(*Form)

// WithCatalog selects the catalog used for option lists.
func WithCatalog(c *catalog.Catalog) Option {
	return func(f *Form) {
		f.catalog = c
	}
}

// WithSchema reuses a prebuilt schema. It takes precedence over WithCatalog.
func WithSchema(s *Schema) Option {
	return func(f *Form) {
		if s != nil {
			f.schema = s
		}
	}
}

// WithFocusPort wires the adapter that performs focus and scroll.
func WithFocusPort(port FocusPort) Option {
	return func(f *Form) {
		f.focus = port
	}
}

// WithScheduler overrides the scheduler used for banner dismissal.
func WithScheduler(s Scheduler) Option {
	return func(f *Form) {
		if s != nil {
			f.scheduler = s
		}
	}
}

// WithLogger sets the logger receiving the submission trace.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithRecorder attaches an activity recorder.
func WithRecorder(r Recorder) Option {
	return func(f *Form) {
		f.recorder = r
	}
}

// WithChangeNotifier registers fn to be called after state changes that happen
// outside a caller's own dispatch, such as a banner dismissal.
func WithChangeNotifier(fn func(State)) Option {
	return func(f *Form) {
		f.notify = fn
	}
}

// WithSubmissionIDs overrides the submission id generator.
func WithSubmissionIDs(fn func() string) Option {
	return func(f *Form) {
		if fn != nil {
			f.newID = fn
		}
	}
}

// WithInitialValues seeds field values through the regular filters. Rejected
// values are dropped.
func WithInitialValues(values map[string]string) Option {
	return func(f *Form) {
		f.initial = values
	}
}

// Form is one mounted registration form. It owns the state, performs reducer
// effects, and ties the dismissal timers to its own lifetime.
type Form struct {
	mu        sync.Mutex
	schema    *Schema
	catalog   *catalog.Catalog
	state     State
	focus     FocusPort
	scheduler Scheduler
	logger    *zap.Logger
	recorder  Recorder
	notify    func(State)
	newID     func() string
	initial   map[string]string
	cancel    func()
	closed    bool
	// lastID is the submission id of the latest successful submit.
	lastID string
}

// New mounts a form.
func New(opts ...Option) (*Form, error) {
	f := &Form{
		scheduler: TimerScheduler{},
		logger:    zap.NewNop(),
		newID:     func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.schema == nil {
		schema, err := NewSchema(f.catalog)
		if err != nil {
			return nil, err
		}
		f.schema = schema
	}
	f.state = f.schema.NewState()
	for _, name := range f.schema.order {
		value, ok := f.initial[name]
		if !ok {
			continue
		}
		f.state, _ = f.schema.Reduce(f.state, SetField{Name: name, Value: value})
	}
	f.initial = nil
	return f, nil
}

// Schema returns the schema the form was built from.
func (f *Form) Schema() *Schema {
	return f.schema
}

// State returns a copy of the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Clone()
}

// Progress returns the completion percentage of the current state.
func (f *Form) Progress() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Progress(f.state)
}

// Options resolves the options a choice field offers right now.
func (f *Form) Options(name string) []model.Option {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.schema.OptionsFor(f.state, name)
}

// SetField applies a change and reports whether it was accepted.
func (f *Form) SetField(name, value string) bool {
	_, effects := f.dispatch(SetField{Name: name, Value: value})
	for _, effect := range effects {
		if _, rejected := effect.(InputRejected); rejected {
			return false
		}
	}
	return !f.isClosed()
}

// MarkTouched records a blur on name.
func (f *Form) MarkTouched(name string) {
	f.dispatch(MarkTouched{Name: name})
}

// ToggleSection flips one section open or closed.
func (f *Form) ToggleSection(section model.SectionID) {
	f.dispatch(ToggleSection{Section: section})
}

// Reset clears values and touched flags.
func (f *Form) Reset() {
	f.dispatch(Reset{})
}

// Submit validates required fields and raises the matching banner.
func (f *Form) Submit() Result {
	state, effects := f.dispatch(Submit{})
	result := Result{Status: state.Status}
	for _, effect := range effects {
		switch e := effect.(type) {
		case FocusField:
			result.Focus = e.Name
		case TraceSubmission:
			result.Record = e.Record
		}
	}
	if result.Status == StatusError {
		result.Incomplete = f.schema.Incomplete(state)
	}
	if result.OK() {
		result.SubmissionID = f.submissionID()
	}
	return result
}

// Dispatch applies an arbitrary action and returns the resulting state.
func (f *Form) Dispatch(action Action) State {
	state, _ := f.dispatch(action)
	return state
}

// Close unmounts the form and cancels any pending dismissal. Later actions are
// ignored.
func (f *Form) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	return nil
}

func (f *Form) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Form) submissionID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastID
}

func (f *Form) dispatch(action Action) (State, []Effect) {
	f.mu.Lock()
	if f.closed {
		state := f.state.Clone()
		f.mu.Unlock()
		return state, nil
	}

	next, effects := f.schema.Reduce(f.state, action)
	f.state = next

	var deferred []Effect
	for _, effect := range effects {
		switch e := effect.(type) {
		case ScheduleDismiss:
			f.scheduleLocked(e)
		case TraceSubmission:
			id := f.newID()
			f.lastID = id
			f.logger.Info("registration submitted",
				zap.String("submission_id", id),
				zap.Any("record", map[string]string(e.Record)),
			)
		default:
			deferred = append(deferred, effect)
		}
	}
	state := f.state.Clone()
	f.mu.Unlock()

	f.observe(action, state, effects)
	for _, effect := range deferred {
		f.perform(effect)
	}
	return state, effects
}

func (f *Form) scheduleLocked(e ScheduleDismiss) {
	if f.cancel != nil {
		f.cancel()
	}
	token := e.Token
	f.cancel = f.scheduler.Schedule(e.After, func() {
		state, _ := f.dispatch(DismissBanner{Token: token})
		if f.notify != nil {
			f.notify(state)
		}
	})
}

func (f *Form) observe(action Action, state State, effects []Effect) {
	switch a := action.(type) {
	case Submit:
		incomplete := len(state.Errors)
		if state.Status == StatusError {
			f.logger.Debug("registration incomplete", zap.Int("missing", incomplete))
		}
		if f.recorder != nil {
			f.recorder.ObserveSubmit(state.Status, incomplete)
		}
	case SetField:
		for _, effect := range effects {
			rejected, ok := effect.(InputRejected)
			if !ok {
				continue
			}
			f.logger.Debug("input rejected",
				zap.String("field", a.Name),
				zap.Error(rejected.Err),
			)
			if f.recorder != nil {
				f.recorder.ObserveRejected(a.Name)
			}
		}
	}
}

func (f *Form) perform(effect Effect) {
	if f.focus == nil {
		return
	}
	switch e := effect.(type) {
	case FocusField:
		f.focus.Focus(e.Name)
	case ScrollToTop:
		f.focus.ScrollToTop()
	}
}

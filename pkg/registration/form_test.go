package registration_test

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type countingRecorder struct {
	mu       sync.Mutex
	submits  map[registration.Status]int
	rejected map[string]int
}

func (r *countingRecorder) ObserveSubmit(status registration.Status, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.submits == nil {
		r.submits = make(map[registration.Status]int)
	}
	r.submits[status]++
}

func (r *countingRecorder) ObserveRejected(field string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rejected == nil {
		r.rejected = make(map[string]int)
	}
	r.rejected[field]++
}

type formHarness struct {
	form      *registration.Form
	scheduler *testsupport.ManualScheduler
	focus     *testsupport.FocusRecorder
	recorder  *countingRecorder
	logs      *observer.ObservedLogs
	notified  []registration.State
}

func newHarness(t *testing.T, opts ...registration.Option) *formHarness {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	h := &formHarness{
		scheduler: testsupport.NewManualScheduler(),
		focus:     &testsupport.FocusRecorder{},
		recorder:  &countingRecorder{},
		logs:      logs,
	}
	base := []registration.Option{
		registration.WithScheduler(h.scheduler),
		registration.WithFocusPort(h.focus),
		registration.WithRecorder(h.recorder),
		registration.WithLogger(zap.New(core)),
		registration.WithSubmissionIDs(func() string { return "sub-1" }),
		registration.WithChangeNotifier(func(s registration.State) {
			h.notified = append(h.notified, s)
		}),
	}
	form, err := registration.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	t.Cleanup(func() { _ = form.Close() })
	h.form = form
	return h
}

func TestForm_SubmitIncompleteFocusesAndDismisses(t *testing.T) {
	h := newHarness(t)

	result := h.form.Submit()
	if result.OK() || result.Status != registration.StatusError {
		t.Fatalf("expected error result, got %#v", result)
	}
	if result.Focus != registration.FieldFirstName {
		t.Fatalf("focus = %q", result.Focus)
	}
	if len(result.Incomplete) != len(registration.RequiredFields()) {
		t.Fatalf("incomplete = %v", result.Incomplete)
	}
	if len(h.focus.Focused) != 1 || h.focus.Focused[0] != registration.FieldFirstName {
		t.Fatalf("focus port calls = %v", h.focus.Focused)
	}

	h.scheduler.Advance(registration.ErrorDismissDelay - time.Millisecond)
	if h.form.State().Status != registration.StatusError {
		t.Fatalf("banner dismissed too early")
	}
	h.scheduler.Advance(time.Millisecond)
	state := h.form.State()
	if state.Status != registration.StatusIdle {
		t.Fatalf("banner not dismissed after %s", registration.ErrorDismissDelay)
	}
	if !state.Errors[registration.FieldFirstName] {
		t.Fatalf("field flags survive the dismissal")
	}
	if len(h.notified) != 1 || h.notified[0].Status != registration.StatusIdle {
		t.Fatalf("expected one change notification, got %d", len(h.notified))
	}
}

func TestForm_SubmitSuccess(t *testing.T) {
	h := newHarness(t)
	if rejected := testsupport.Fill(h.form, testsupport.CompleteValues()); len(rejected) > 0 {
		t.Fatalf("fixture values rejected: %v", rejected)
	}

	result := h.form.Submit()
	if !result.OK() {
		t.Fatalf("expected success, incomplete=%v", result.Incomplete)
	}
	if result.SubmissionID != "sub-1" {
		t.Fatalf("submission id = %q", result.SubmissionID)
	}
	if result.Record[registration.FieldEmail] != "maria.delacruz@example.com" {
		t.Fatalf("unexpected record %v", result.Record)
	}
	if h.focus.Scrolls != 1 || len(h.focus.Focused) != 0 {
		t.Fatalf("expected a single scroll, got scrolls=%d focus=%v", h.focus.Scrolls, h.focus.Focused)
	}

	entries := h.logs.FilterMessage("registration submitted").All()
	if len(entries) != 1 {
		t.Fatalf("expected one trace entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["submission_id"]; got != "sub-1" {
		t.Fatalf("trace submission_id = %v", got)
	}

	h.scheduler.Advance(registration.ErrorDismissDelay)
	if h.form.State().Status != registration.StatusSuccess {
		t.Fatalf("success banner must last %s", registration.SuccessDismissDelay)
	}
	h.scheduler.Advance(registration.SuccessDismissDelay - registration.ErrorDismissDelay)
	if h.form.State().Status != registration.StatusIdle {
		t.Fatalf("success banner not dismissed")
	}
	if h.recorder.submits[registration.StatusSuccess] != 1 {
		t.Fatalf("recorder submits = %v", h.recorder.submits)
	}
}

func TestForm_ResubmitSupersedesPendingDismissal(t *testing.T) {
	h := newHarness(t)

	h.form.Submit()
	h.scheduler.Advance(3 * time.Second)
	h.form.Submit()
	if h.scheduler.Pending() != 1 {
		t.Fatalf("expected the first dismissal cancelled, pending=%d", h.scheduler.Pending())
	}

	h.scheduler.Advance(3 * time.Second)
	if h.form.State().Status != registration.StatusError {
		t.Fatalf("the first timer must not clear the second banner")
	}
	h.scheduler.Advance(2 * time.Second)
	if h.form.State().Status != registration.StatusIdle {
		t.Fatalf("second banner not dismissed")
	}
	if h.recorder.submits[registration.StatusError] != 2 {
		t.Fatalf("recorder submits = %v", h.recorder.submits)
	}
}

func TestForm_CloseCancelsPendingDismissal(t *testing.T) {
	h := newHarness(t)

	h.form.Submit()
	if err := h.form.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if h.scheduler.Pending() != 0 {
		t.Fatalf("close must cancel pending timers, pending=%d", h.scheduler.Pending())
	}
	h.scheduler.Advance(time.Minute)
	if len(h.notified) != 0 {
		t.Fatalf("no notification expected after close")
	}

	if h.form.SetField(registration.FieldFirstName, "Maria") {
		t.Fatalf("closed form must ignore changes")
	}
	if h.form.State().Values[registration.FieldFirstName] != "" {
		t.Fatalf("closed form state changed")
	}
}

func TestForm_RealTimersDoNotLeak(t *testing.T) {
	form, err := registration.New(registration.WithScheduler(registration.TimerScheduler{}))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	form.Submit()
	form.Submit()
	if err := form.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestForm_SetFieldAndRejections(t *testing.T) {
	h := newHarness(t)

	if !h.form.SetField(registration.FieldZipCode, "1234") {
		t.Fatalf("zip 1234 rejected")
	}
	if h.form.SetField(registration.FieldZipCode, "12345") {
		t.Fatalf("zip 12345 accepted")
	}
	if got := h.form.State().Values[registration.FieldZipCode]; got != "1234" {
		t.Fatalf("zip = %q", got)
	}
	if h.recorder.rejected[registration.FieldZipCode] != 1 {
		t.Fatalf("rejections = %v", h.recorder.rejected)
	}
	if len(h.logs.FilterMessage("input rejected").All()) != 1 {
		t.Fatalf("expected rejection to be logged")
	}
}

func TestForm_InitialValues(t *testing.T) {
	h := newHarness(t, registration.WithInitialValues(map[string]string{
		registration.FieldFirstName:     "Maria",
		registration.FieldLastName:      "Cruz1",
		registration.FieldAcademicLevel: "Graduate",
		registration.FieldDegreeProgram: "Master of Science in Computer Science",
	}))

	state := h.form.State()
	if state.Values[registration.FieldFirstName] != "Maria" {
		t.Fatalf("first name not seeded")
	}
	if state.Values[registration.FieldLastName] != "" {
		t.Fatalf("invalid seed must be dropped")
	}
	if state.Values[registration.FieldDegreeProgram] == "" {
		t.Fatalf("dependent seed applied before its level")
	}
	if h.form.Progress() != 10 {
		t.Fatalf("progress = %d", h.form.Progress())
	}
}

func TestForm_ToggleTouchReset(t *testing.T) {
	h := newHarness(t)

	h.form.ToggleSection(model.SectionEnrollment)
	h.form.MarkTouched(registration.FieldEmail)
	h.form.SetField(registration.FieldEmail, "a@b.c")
	h.form.Reset()

	state := h.form.State()
	if !state.Expanded[model.SectionEnrollment] {
		t.Fatalf("section toggle lost")
	}
	if state.Values[registration.FieldEmail] != "" || len(state.Touched) != 0 {
		t.Fatalf("reset did not clear values and touched flags")
	}
}

func TestForm_RenderOptions(t *testing.T) {
	h := newHarness(t)
	h.form.SetField(registration.FieldAcademicLevel, "Undergraduate")
	h.form.SetField(registration.FieldFirstName, "Maria")
	h.form.Submit()

	opts := h.form.RenderOptions(render.CSRFToken("_csrf", "tok"))
	if opts.Banner.Kind != render.BannerError || opts.Banner.Message != registration.ErrorMessage {
		t.Fatalf("banner = %#v", opts.Banner)
	}
	if opts.Focus != registration.FieldLastName {
		t.Fatalf("focus = %q", opts.Focus)
	}
	if got := opts.Errors[registration.FieldLastName]; len(got) != 1 || got[0] != registration.RequiredMessage {
		t.Fatalf("inline errors = %v", opts.Errors)
	}
	if _, ok := opts.Errors[registration.FieldFirstName]; ok {
		t.Fatalf("filled field must not carry an error")
	}
	if opts.Disabled[registration.FieldDegreeProgram] {
		t.Fatalf("programs enabled once a level is chosen")
	}
	if len(opts.Choices[registration.FieldCollegeDepartment]) != 4 {
		t.Fatalf("undergraduate departments = %v", opts.Choices[registration.FieldCollegeDepartment])
	}
	if opts.Hidden["_csrf"] != "tok" {
		t.Fatalf("hidden = %v", opts.Hidden)
	}
	if opts.Progress != 6 {
		t.Fatalf("progress = %d", opts.Progress)
	}
}

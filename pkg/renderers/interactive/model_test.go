package interactive

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-regform/pkg/catalog"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/testsupport"
)

func newTestModel(t *testing.T, opts ...registration.Option) (Model, *testsupport.ManualScheduler) {
	t.Helper()
	sched := testsupport.NewManualScheduler()
	formOpts := append([]registration.Option{registration.WithScheduler(sched)}, opts...)
	m, err := New(WithFormOptions(formOpts...))
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m, sched
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("update returned %T", next)
		}
	}
	return m
}

func repeat(msg tea.KeyMsg, n int) []tea.KeyMsg {
	out := make([]tea.KeyMsg, n)
	for i := range out {
		out[i] = msg
	}
	return out
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyReset = tea.KeyMsg{Type: tea.KeyCtrlR}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestModelTypingAppliesFilters(t *testing.T) {
	m, _ := newTestModel(t)

	if got := m.Focused(); got != "" {
		t.Fatalf("expected cursor on the first section header, got %q", got)
	}

	m = press(t, m, keyDown, runes("Ana"))
	if got := m.Focused(); got != registration.FieldFirstName {
		t.Fatalf("focused = %q", got)
	}
	if got := m.Form().State().Value(registration.FieldFirstName); got != "Ana" {
		t.Fatalf("first name = %q", got)
	}

	m = press(t, m, runes("1"))
	if got := m.Form().State().Value(registration.FieldFirstName); got != "Ana" {
		t.Fatalf("rejected keystroke changed the value to %q", got)
	}
	if !strings.Contains(m.View(), "First Name contains characters that are not allowed") {
		t.Fatalf("expected rejection notice in view:\n%s", m.View())
	}

	m = press(t, m, keyBack, keyDown)
	state := m.Form().State()
	if got := state.Value(registration.FieldFirstName); got != "An" {
		t.Fatalf("after backspace = %q", got)
	}
	if !state.Touched[registration.FieldFirstName] {
		t.Fatalf("expected first name touched after leaving it")
	}
	if got := m.Focused(); got != registration.FieldMiddleName {
		t.Fatalf("focused = %q", got)
	}
}

func TestModelEnterTogglesSection(t *testing.T) {
	m, _ := newTestModel(t)

	// Personal is open with eight fields, so the contact header is row nine.
	m = press(t, m, repeat(keyDown, 9)...)
	m = press(t, m, keyEnter)
	if !m.Form().State().Expanded[model.SectionContact] {
		t.Fatalf("expected contact section open")
	}
	if !strings.Contains(m.View(), "▾ 📞 Contact Details") {
		t.Fatalf("expected open marker in view:\n%s", m.View())
	}

	m = press(t, m, keyEnter)
	if m.Form().State().Expanded[model.SectionContact] {
		t.Fatalf("expected contact section closed")
	}
}

func TestModelSubmitIncompleteFocusesFirstMissing(t *testing.T) {
	m, sched := newTestModel(t)

	m = press(t, m, repeat(keyDown, 4)...)
	m = press(t, m, keySave)

	if got := m.Form().State().Status; got != registration.StatusError {
		t.Fatalf("status = %q", got)
	}
	if got := m.Focused(); got != registration.FieldFirstName {
		t.Fatalf("focused = %q", got)
	}
	view := m.View()
	if !strings.Contains(view, registration.ErrorMessage) {
		t.Fatalf("expected error banner:\n%s", view)
	}
	if !strings.Contains(view, registration.RequiredMessage) {
		t.Fatalf("expected inline required message:\n%s", view)
	}

	sched.Advance(registration.ErrorDismissDelay)
	if strings.Contains(m.View(), registration.ErrorMessage) {
		t.Fatalf("expected banner dismissed after the delay")
	}
}

func TestModelSubmitOpensSectionOfMissingField(t *testing.T) {
	values := testsupport.CompleteValues()
	delete(values, registration.FieldZipCode)
	m, _ := newTestModel(t, registration.WithInitialValues(values))

	if m.Form().State().Expanded[model.SectionContact] {
		t.Fatalf("contact section should start closed")
	}
	m = press(t, m, keySave)

	if !m.Form().State().Expanded[model.SectionContact] {
		t.Fatalf("expected contact section opened for the focused field")
	}
	if got := m.Focused(); got != registration.FieldZipCode {
		t.Fatalf("focused = %q", got)
	}
	if _, ok := m.Result(); ok {
		t.Fatalf("incomplete submit should not produce a result")
	}
}

func TestModelSubmitSuccess(t *testing.T) {
	m, sched := newTestModel(t,
		registration.WithInitialValues(testsupport.CompleteValues()),
		registration.WithSubmissionIDs(func() string { return "sub-1" }),
	)

	m = press(t, m, keyDown, keyDown, keySave)

	result, ok := m.Result()
	if !ok {
		t.Fatalf("expected a successful result")
	}
	if result.SubmissionID != "sub-1" {
		t.Fatalf("submission id = %q", result.SubmissionID)
	}
	if result.Record[registration.FieldEmail] != "maria.delacruz@example.com" {
		t.Fatalf("record email = %q", result.Record[registration.FieldEmail])
	}
	if m.cursor != 0 {
		t.Fatalf("expected cursor back at the top, got %d", m.cursor)
	}
	if !strings.Contains(m.View(), registration.SuccessMessage) {
		t.Fatalf("expected success banner:\n%s", m.View())
	}

	sched.Advance(registration.SuccessDismissDelay)
	if strings.Contains(m.View(), registration.SuccessMessage) {
		t.Fatalf("expected success banner dismissed")
	}
}

func TestModelChoiceCyclingAndDependents(t *testing.T) {
	m, _ := newTestModel(t)

	// Rows: personal header, eight fields, contact, academic, enrollment.
	m = press(t, m, repeat(keyDown, 11)...)
	m = press(t, m, keyEnter, keyDown)
	if got := m.Focused(); got != registration.FieldAcademicLevel {
		t.Fatalf("focused = %q", got)
	}

	m = press(t, m, keyRight)
	if got := m.Form().State().Value(registration.FieldAcademicLevel); got != catalog.LevelUndergraduate {
		t.Fatalf("level = %q", got)
	}
	m = press(t, m, keyRight, keyLeft)
	if got := m.Form().State().Value(registration.FieldAcademicLevel); got != catalog.LevelUndergraduate {
		t.Fatalf("level after cycling back = %q", got)
	}

	m = press(t, m, repeat(keyDown, 3)...)
	if got := m.Focused(); got != registration.FieldCollegeDepartment {
		t.Fatalf("focused = %q", got)
	}
	m = press(t, m, keyLeft)
	if got := m.Form().State().Value(registration.FieldCollegeDepartment); got != "Arts" {
		t.Fatalf("department = %q", got)
	}
	if !strings.Contains(m.View(), "College of Arts") {
		t.Fatalf("expected department label in view:\n%s", m.View())
	}

	m = press(t, m, keyReset)
	if got := m.Form().State().Value(registration.FieldAcademicLevel); got != "" {
		t.Fatalf("reset left level %q", got)
	}
	m = press(t, m, keyRight)
	if got := m.Form().State().Value(registration.FieldCollegeDepartment); got != "" {
		t.Fatalf("department without level = %q", got)
	}
	if !strings.Contains(m.View(), "College Department: choose Academic Level first") {
		t.Fatalf("expected dependency notice:\n%s", m.View())
	}
}

func TestModelEraseClearsChoice(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, repeat(keyDown, 7)...)
	if got := m.Focused(); got != registration.FieldNationality {
		t.Fatalf("focused = %q", got)
	}
	m = press(t, m, keyRight)
	if got := m.Form().State().Value(registration.FieldNationality); got == "" {
		t.Fatalf("expected a nationality after cycling")
	}

	m = press(t, m, keyBack)
	if got := m.Form().State().Value(registration.FieldNationality); got != "" {
		t.Fatalf("nationality after erase = %q", got)
	}
	m = press(t, m, keyBack)
	if got := m.Focused(); got != registration.FieldNationality {
		t.Fatalf("erase on an empty choice moved focus to %q", got)
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyEsc)
	if cmd == nil {
		t.Fatalf("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestRunReturnsSubmittedResult(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := Run(ctx,
		WithFormOptions(
			registration.WithScheduler(testsupport.NewManualScheduler()),
			registration.WithInitialValues(testsupport.CompleteValues()),
		),
		WithProgramOptions(
			tea.WithInput(strings.NewReader("\x13\x03")),
			tea.WithOutput(io.Discard),
			tea.WithoutRenderer(),
			tea.WithoutSignalHandler(),
		),
	)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !result.OK() {
		t.Fatalf("status = %q", result.Status)
	}
}

func TestRunWithoutSubmit(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := Run(ctx,
		WithFormOptions(registration.WithScheduler(testsupport.NewManualScheduler())),
		WithProgramOptions(
			tea.WithInput(strings.NewReader("\tAna\x03")),
			tea.WithOutput(io.Discard),
			tea.WithoutRenderer(),
			tea.WithoutSignalHandler(),
		),
	)
	if !errors.Is(err, ErrNotSubmitted) {
		t.Fatalf("expected ErrNotSubmitted, got %v", err)
	}
}

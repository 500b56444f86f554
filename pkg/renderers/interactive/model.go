package interactive

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/validation"
)

// changedMsg is sent when the form changes outside Update, such as a banner
// dismissed by its timer.
type changedMsg struct{}

// row is one selectable line: a section header or, when field is set, one of
// its fields.
type row struct {
	section model.Section
	field   *model.Field
}

// Model is the bubbletea model for one mounted registration form.
type Model struct {
	form     *registration.Form
	port     *focusPort
	keys     KeyMap
	styles   Styles
	help     help.Model
	progress progress.Model

	cursor int
	notice string
	result *registration.Result
	width  int
}

var _ tea.Model = Model{}

// New mounts a registration form and wraps it in a Model. The caller owns the
// form lifetime through Close.
func New(opts ...Option) (Model, error) {
	cfg := newConfig(opts...)
	return newModel(cfg)
}

func newModel(cfg config) (Model, error) {
	port := &focusPort{}
	formOpts := append([]registration.Option{}, cfg.formOptions...)
	formOpts = append(formOpts, registration.WithFocusPort(port))
	if cfg.notify != nil {
		formOpts = append(formOpts, registration.WithChangeNotifier(cfg.notify))
	}
	form, err := registration.New(formOpts...)
	if err != nil {
		return Model{}, fmt.Errorf("interactive: mount form: %w", err)
	}

	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	return Model{
		form:     form,
		port:     port,
		keys:     cfg.keys,
		styles:   cfg.styles,
		help:     help.New(),
		progress: bar,
	}, nil
}

// Form exposes the mounted form.
func (m Model) Form() *registration.Form {
	return m.form
}

// Result returns the last successful submission, if any.
func (m Model) Result() (registration.Result, bool) {
	if m.result == nil {
		return registration.Result{}, false
	}
	return *m.result, true
}

// Focused names the field under the cursor, or "" on a section header.
func (m Model) Focused() string {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) || rows[m.cursor].field == nil {
		return ""
	}
	return rows[m.cursor].field.Name
}

// Close unmounts the form and cancels its timers.
func (m Model) Close() error {
	return m.form.Close()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if w := msg.Width - 8; w > 10 {
			m.progress.Width = w
		}
		return m, nil
	case changedMsg:
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		m.submit()
		return m, nil
	case key.Matches(msg, m.keys.Reset):
		m.form.Reset()
		m.notice = ""
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.move(1)
		return m, nil
	}

	current := m.current()
	if current.field == nil {
		if key.Matches(msg, m.keys.Toggle) {
			m.form.ToggleSection(current.section.ID)
		}
		return m, nil
	}

	field := *current.field
	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.move(1)
	case key.Matches(msg, m.keys.Erase):
		value := []rune(m.form.State().Value(field.Name))
		switch {
		case len(value) == 0:
		case field.Input == model.InputKindChoice:
			m.edit(field, "")
		default:
			m.edit(field, string(value[:len(value)-1]))
		}
	case field.Input == model.InputKindChoice:
		switch {
		case key.Matches(msg, m.keys.Next), msg.Type == tea.KeySpace:
			m.cycle(field, 1)
		case key.Matches(msg, m.keys.Prev):
			m.cycle(field, -1)
		}
	case msg.Type == tea.KeyRunes, msg.Type == tea.KeySpace:
		text := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			text = " "
		}
		m.edit(field, m.form.State().Value(field.Name)+text)
	}
	return m, nil
}

func (m *Model) submit() {
	m.notice = ""
	result := m.form.Submit()
	if result.OK() {
		m.result = &result
	}
	m.applyFocus()
}

func (m *Model) edit(field model.Field, value string) {
	if m.form.SetField(field.Name, value) {
		m.notice = ""
		return
	}
	err := m.form.Schema().Accept(m.form.State(), field.Name, value)
	m.notice = fmt.Sprintf("%s %s", field.DisplayLabel(), validation.Message(err))
}

func (m *Model) cycle(field model.Field, step int) {
	options := m.form.Options(field.Name)
	if len(options) == 0 {
		if field.DependsOn != "" {
			m.notice = fmt.Sprintf("%s: choose %s first", field.Label, m.label(field.DependsOn))
		}
		return
	}
	current := m.form.State().Value(field.Name)
	idx := -1
	for i, option := range options {
		if option.Value == current {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step < 0:
		idx = len(options) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + step + len(options)) % len(options)
	}
	m.edit(field, options[idx].Value)
}

// move shifts the cursor and marks the field being left as touched.
func (m *Model) move(step int) {
	rows := m.rows()
	if len(rows) == 0 {
		return
	}
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if left := rows[m.cursor].field; left != nil {
		m.form.MarkTouched(left.Name)
	}
	m.cursor += step
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
}

// applyFocus consumes the request left by the last submit. A focused field
// gets its section opened and the cursor.
func (m *Model) applyFocus() {
	name, top := m.port.take()
	switch {
	case name != "":
		section, ok := m.form.Schema().SectionOf(name)
		if !ok {
			return
		}
		if !m.form.State().Expanded[section] {
			m.form.ToggleSection(section)
		}
		for i, r := range m.rows() {
			if r.field != nil && r.field.Name == name {
				m.cursor = i
				return
			}
		}
	case top:
		m.cursor = 0
	}
}

func (m Model) current() row {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}
	}
	return rows[m.cursor]
}

func (m Model) rows() []row {
	state := m.form.State()
	var rows []row
	for _, section := range m.form.Schema().Form().Sections {
		rows = append(rows, row{section: section})
		if !state.Expanded[section.ID] {
			continue
		}
		for i := range section.Fields {
			rows = append(rows, row{section: section, field: &section.Fields[i]})
		}
	}
	return rows
}

func (m Model) label(name string) string {
	field, ok := m.form.Schema().Field(name)
	if !ok {
		return name
	}
	return field.DisplayLabel()
}

// View implements tea.Model.
func (m Model) View() string {
	state := m.form.State()
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.form.Schema().Form().Title))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(float64(registration.Progress(state)) / 100))
	b.WriteString("\n\n")

	if msg := state.Status.Message(); msg != "" {
		style := m.styles.BannerError
		if state.Status == registration.StatusSuccess {
			style = m.styles.BannerSuccess
		}
		b.WriteString(style.Render(msg))
		b.WriteString("\n\n")
	}

	for i, r := range m.rows() {
		active := i == m.cursor
		if r.field == nil {
			b.WriteString(m.sectionLine(r.section, state, active))
		} else {
			b.WriteString(m.fieldLine(*r.field, state, active))
		}
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) sectionLine(section model.Section, state registration.State, active bool) string {
	marker := "▸"
	if state.Expanded[section.ID] {
		marker = "▾"
	}
	title := section.Title
	if section.Icon != "" {
		title = section.Icon + " " + title
	}
	line := fmt.Sprintf("%s %s", marker, title)
	if active {
		return m.styles.SectionActive.Render(line)
	}
	return m.styles.Section.Render(line)
}

func (m Model) fieldLine(field model.Field, state registration.State, active bool) string {
	cursor := "  "
	if active {
		cursor = m.styles.Cursor.Render("> ")
	}

	label := m.styles.Label.Render(field.QualifiedLabel())
	if field.Required {
		label += m.styles.Required.Render(" *")
	}

	value := m.display(field, state)
	line := lipgloss.JoinHorizontal(lipgloss.Top, "  ", cursor, label, ": ", value)
	if state.HasError(field.Name) {
		line += "\n      " + m.styles.FieldError.Render(registration.RequiredMessage)
	}
	return line
}

func (m Model) display(field model.Field, state registration.State) string {
	value := state.Value(field.Name)
	if value == "" {
		hint := field.Placeholder
		if m.form.Schema().Disabled(state, field.Name) {
			hint = fmt.Sprintf("choose %s first", m.label(field.DependsOn))
		}
		return m.styles.Placeholder.Render(hint)
	}
	if field.Input == model.InputKindChoice {
		for _, option := range m.form.Schema().OptionsFor(state, field.Name) {
			if option.Value == value && option.Label != "" {
				return m.styles.Value.Render(option.Label)
			}
		}
	}
	return m.styles.Value.Render(value)
}

// focusPort records the focus and scroll requests raised by submit so Update
// can apply them to the cursor.
type focusPort struct {
	mu    sync.Mutex
	field string
	top   bool
}

func (p *focusPort) Focus(field string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.field = field
}

func (p *focusPort) ScrollToTop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.top = true
}

func (p *focusPort) take() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	field, top := p.field, p.top
	p.field, p.top = "", false
	return field, top
}

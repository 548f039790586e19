package preview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"folio/internal/prefs"
	"folio/internal/site"
	"folio/internal/uistate"
)

func newTestModel(t *testing.T, store uistate.Storage, systemDark bool) Model {
	t.Helper()
	if store == nil {
		store = prefs.NewMemory()
	}
	m := New(store, site.Default(), func() bool { return systemDark })
	m.Init()
	return m
}

// key wraps one keypress the way bubbletea delivers it.
func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m = press(m, string(r))
	}
	return m
}

func TestLoadResolvesSystemDark(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, true)

	if got := m.Controller().Theme(); got != uistate.ThemeDark {
		t.Fatalf("Theme = %q, want dark from the terminal background", got)
	}
}

func TestToggleKeyPersistsAcrossSessions(t *testing.T) {
	t.Parallel()
	store := prefs.NewMemory()

	m := newTestModel(t, store, false)
	m = press(m, "t")
	if got := m.Controller().Theme(); got != uistate.ThemeDark {
		t.Fatalf("Theme after toggle = %q, want dark", got)
	}

	// A fresh session against the same store starts dark, whatever the
	// terminal background says.
	again := newTestModel(t, store, false)
	if got := again.Controller().Theme(); got != uistate.ThemeDark {
		t.Fatalf("Theme in new session = %q, want persisted dark", got)
	}
}

func TestScrollMovesActiveSection(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, false)

	// A short terminal, so the page can scroll far enough for the last
	// section to pass the activation threshold.
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(Model)

	if got := m.Controller().ActiveSectionID(); got != "hero" {
		t.Fatalf("ActiveSectionID at top = %q, want hero", got)
	}

	m.scrollTo(m.docHeight())
	if got := m.Controller().ActiveSectionID(); got != "contact" {
		t.Fatalf("ActiveSectionID at bottom = %q, want contact", got)
	}

	m.scrollTo(0)
	if got := m.Controller().ActiveSectionID(); got != "hero" {
		t.Fatalf("ActiveSectionID back at top = %q, want hero", got)
	}
}

func TestNavJumpActivatesTarget(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, false)

	// Move the selection to the last link and jump.
	links := len(m.doc.Model().NavLinks)
	for i := 0; i < links; i++ {
		m = press(m, "l")
	}
	m = press(m, "enter")

	if got := m.Controller().ActiveSectionID(); got != "contact" {
		t.Fatalf("ActiveSectionID after jump = %q, want contact", got)
	}
}

func TestRevealSurvivesScrollingAway(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, false)

	projectsBox, _ := m.doc.Model().BoxByID("projects")
	m.scrollTo(projectsBox.Top)
	projects := m.doc.ByID("projects")
	if !projects.HasClass("revealed") {
		t.Fatalf("projects section not revealed after scrolling to it")
	}

	m.scrollTo(0)
	if !projects.HasClass("revealed") {
		t.Fatalf("reveal reverted after scrolling back up")
	}
}

func TestFormFlow(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, false)

	// Tab jumps to the contact section and focuses the first field.
	m = press(m, "tab")
	if m.focusField != 0 {
		t.Fatalf("focusField = %d after tab, want 0", m.focusField)
	}
	if got := m.Controller().ActiveSectionID(); got != "contact" {
		t.Fatalf("ActiveSectionID = %q, want contact", got)
	}

	// Submit with an empty email: the error shows and nothing resets.
	m = typeText(m, "Ada")
	m = press(m, "tab")
	m = press(m, "tab")
	m = typeText(m, "hello")
	m = press(m, "enter")

	form := m.doc.Form
	if form.Status.Kind != "error" {
		t.Fatalf("Status.Kind = %q after empty email, want error", form.Status.Kind)
	}
	if form.Value("name") != "Ada" || form.Value("message") != "hello" {
		t.Fatalf("failed submit lost field values: name=%q message=%q",
			form.Value("name"), form.Value("message"))
	}

	// Fill the email and submit again: success, fields reset.
	m = press(m, "shift+tab")
	m = typeText(m, "ada@example.com")
	m = press(m, "enter")
	if form.Status.Kind != "success" {
		t.Fatalf("Status.Kind = %q after full submit, want success", form.Status.Kind)
	}
	if form.Value("name") != "" || form.Value("email") != "" || form.Value("message") != "" {
		t.Fatalf("fields not reset after success")
	}

	// Esc returns to browsing.
	m = press(m, "esc")
	if m.focusField != -1 {
		t.Fatalf("focusField = %d after esc, want -1", m.focusField)
	}
}

func TestBackspaceEditsFocusedField(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, false)

	m = press(m, "tab")
	m = typeText(m, "Adaa")
	m = press(m, "backspace")
	if got := m.doc.Form.Value("name"); got != "Ada" {
		t.Fatalf("name = %q after backspace, want Ada", got)
	}
}

func TestTypedLineAdvancesOnTicks(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, false)

	full := m.doc.Typed.Full
	for i := 0; i < len([]rune(full)); i++ {
		next, _ := m.Update(ctlMsg{msg: uistate.TypeTickMsg{At: i}})
		m = next.(Model)
	}
	if !m.doc.Typed.Done() {
		t.Fatalf("typed line not done after one tick per character")
	}
	if got := m.doc.Typed.Prefix(); got != full {
		t.Fatalf("Prefix = %q, want %q", got, full)
	}
}

func TestViewShowsValidationState(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, false)

	m = press(m, "tab")
	m = press(m, "enter")
	view := m.View()
	if !strings.Contains(view, "Please fill in all fields") {
		t.Fatalf("view does not surface the validation message:\n%s", view)
	}
}

func TestCtrlCQuitsWhileEditingForm(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, false)

	m = press(m, "tab")
	if m.focusField != 0 {
		t.Fatalf("focusField = %d after tab, want 0", m.focusField)
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("ctrl+c produced no command while editing, want tea.Quit")
	}
	if !next.(Model).quitting {
		t.Fatalf("model not quitting after ctrl+c in form focus")
	}
}

func TestQuitKey(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, nil, false)

	next, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("q produced no command, want tea.Quit")
	}
	if got := next.(Model); !got.quitting {
		t.Fatalf("model not quitting after q")
	}
	if v := next.(Model).View(); v != "" {
		t.Fatalf("View after quit = %q, want empty", v)
	}
}

package input

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTypingCallsOnChange(t *testing.T) {
	var seen []string
	m := New("user", Text, WithOnChange(func(v string) tea.Cmd {
		seen = append(seen, v)
		return nil
	}))
	m.Focus()
	typeText(m, "ab")
	if m.Value() != "ab" {
		t.Fatalf("expected value ab, got %q", m.Value())
	}
	if len(seen) != 2 || seen[1] != "ab" {
		t.Fatalf("expected two change callbacks ending in ab, got %v", seen)
	}
}

func TestPasswordVisibilityToggle(t *testing.T) {
	m := New("pass", Password)
	if m.PasswordVisible() || m.ti.EchoMode != textinput.EchoPassword {
		t.Fatalf("expected password hidden by default")
	}
	m.Focus()
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if !m.PasswordVisible() || m.ti.EchoMode != textinput.EchoNormal {
		t.Fatalf("expected ctrl+r to reveal password")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.PasswordVisible() {
		t.Fatalf("expected second toggle to hide password")
	}
}

func TestToggleVisibilityIgnoredForTextAndDisabled(t *testing.T) {
	if New("user", Text).ToggleVisibility() {
		t.Fatalf("expected text field not to toggle visibility")
	}
	m := New("pass", Password, WithDisabled())
	if m.ToggleVisibility() {
		t.Fatalf("expected disabled field not to toggle visibility")
	}
}

func TestClearRequiresClearableValueAndEnabled(t *testing.T) {
	var seen []string
	m := New("user", Text, WithClearable(), WithValue("hello"), WithOnChange(func(v string) tea.Cmd {
		seen = append(seen, v)
		return nil
	}))
	m.Focus()
	if !m.CanClear() {
		t.Fatalf("expected clearable field with value to allow clear")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.Value() != "" {
		t.Fatalf("expected cleared value, got %q", m.Value())
	}
	if len(seen) != 1 || seen[0] != "" {
		t.Fatalf("expected one change to empty, got %v", seen)
	}
	if m.CanClear() {
		t.Fatalf("expected empty field not to offer clear")
	}

	plain := New("user", Text, WithValue("hello"))
	if plain.CanClear() || plain.Clear() != nil {
		t.Fatalf("expected non-clearable field to ignore clear")
	}
	disabled := New("user", Text, WithClearable(), WithValue("hello"), WithDisabled())
	disabled.Clear()
	if disabled.Value() != "hello" {
		t.Fatalf("expected disabled field to keep its value")
	}
}

func TestDisabledIgnoresKeys(t *testing.T) {
	m := New("user", Text, WithDisabled())
	if cmd := m.Focus(); cmd != nil || m.Focused() {
		t.Fatalf("expected disabled field to refuse focus")
	}
	typeText(m, "abc")
	if m.Value() != "" {
		t.Fatalf("expected disabled field to ignore input, got %q", m.Value())
	}
}

func TestNumberRejectsNonNumericRunes(t *testing.T) {
	m := New("qty", Number)
	m.Focus()
	typeText(m, "1a2.5x")
	if m.Value() != "12.5" {
		t.Fatalf("expected 12.5, got %q", m.Value())
	}
	if !m.Valid() {
		t.Fatalf("expected 12.5 to be valid")
	}
	typeText(m, ".")
	if m.Valid() {
		t.Fatalf("expected 12.5. to be invalid")
	}
}

func TestErrorMessageNeedsFlagAndText(t *testing.T) {
	m := New("user", Text, WithLabel("Username"))
	m.SetError(false, "required")
	if strings.Contains(m.View(), "required") {
		t.Fatalf("expected message hidden without error flag")
	}
	m.SetError(true, "")
	if !m.HasError() {
		t.Fatalf("expected error flag set")
	}
	m.SetError(true, "required")
	view := m.View()
	if !strings.Contains(view, "required") || !strings.Contains(view, "Username") {
		t.Fatalf("expected label and message in view, got %q", view)
	}
}

func TestViewShowsHints(t *testing.T) {
	m := New("pass", Password, WithClearable(), WithValue("secret"))
	view := m.View()
	if strings.Contains(view, "secret") {
		t.Fatalf("expected password to be masked, got %q", view)
	}
	if !strings.Contains(view, "show") || !strings.Contains(view, "✕") {
		t.Fatalf("expected show and clear hints, got %q", view)
	}
}

// Package input provides a labelled single-line text field with password
// visibility toggling, clearing and numeric filtering on top of
// bubbles/textinput.
package input

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"github.com/atomicstack/popup-widgets/internal/logging/events"
	"github.com/atomicstack/popup-widgets/internal/theme"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Kind selects how the field echoes and filters input.
type Kind int

const (
	Text Kind = iota
	Password
	Number
)

func (k Kind) String() string {
	switch k {
	case Password:
		return "password"
	case Number:
		return "number"
	default:
		return "text"
	}
}

// ErrNotANumber is reported by Number fields holding unparsable text.
var ErrNotANumber = errors.New("not a number")

// KeyMap lists the field-level bindings.
type KeyMap struct {
	ToggleVisibility key.Binding
	Clear            key.Binding
}

// DefaultKeyMap binds ctrl+r to visibility and ctrl+l to clear.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToggleVisibility: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "show/hide"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
	}
}

// Option configures a Model.
type Option func(*Model)

// WithLabel sets the text shown above the frame.
func WithLabel(label string) Option {
	return func(m *Model) { m.label = label }
}

// WithPlaceholder sets the hint shown while the field is empty.
func WithPlaceholder(placeholder string) Option {
	return func(m *Model) { m.ti.Placeholder = placeholder }
}

// WithClearable enables the clear binding and its hint.
func WithClearable() Option {
	return func(m *Model) { m.clearable = true }
}

// WithDisabled starts the field disabled.
func WithDisabled() Option {
	return func(m *Model) { m.disabled = true }
}

// WithWidth sets the visible width of the text area in cells.
func WithWidth(width int) Option {
	return func(m *Model) { m.ti.Width = width }
}

// WithValue sets the initial value.
func WithValue(value string) Option {
	return func(m *Model) { m.ti.SetValue(value) }
}

// WithOnChange is called with the new value after every edit, including a
// clear.
func WithOnChange(fn func(string) tea.Cmd) Option {
	return func(m *Model) { m.onChange = fn }
}

// WithCursorMode sets blinking, static or hidden cursor rendering.
func WithCursorMode(mode cursor.Mode) Option {
	return func(m *Model) { m.ti.Cursor.SetMode(mode) }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) { m.keys = keys }
}

// Model is a single labelled input field.
type Model struct {
	name      string
	label     string
	kind      Kind
	ti        textinput.Model
	clearable bool
	disabled  bool
	visible   bool
	hasError  bool
	errText   string
	onChange  func(string) tea.Cmd
	keys      KeyMap
}

// New builds an unfocused field. Password fields start hidden and Number
// fields validate their value.
func New(name string, kind Kind, opts ...Option) *Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""
	m := &Model{
		name: name,
		kind: kind,
		ti:   ti,
		keys: DefaultKeyMap(),
	}
	switch kind {
	case Password:
		m.ti.EchoMode = textinput.EchoPassword
		m.ti.EchoCharacter = '•'
	case Number:
		m.ti.Validate = validateNumber
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func validateNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return ErrNotANumber
	}
	return nil
}

func (m *Model) Name() string { return m.name }
func (m *Model) Kind() Kind   { return m.kind }
func (m *Model) Value() string {
	return m.ti.Value()
}

// SetValue replaces the value without calling OnChange.
func (m *Model) SetValue(v string) {
	m.ti.SetValue(v)
}

// Valid reports whether a Number field currently parses.
func (m *Model) Valid() bool {
	return m.ti.Err == nil
}

// Focus returns the cursor command, or nil for a disabled field.
func (m *Model) Focus() tea.Cmd {
	if m.disabled {
		return nil
	}
	return m.ti.Focus()
}

func (m *Model) Blur()         { m.ti.Blur() }
func (m *Model) Focused() bool { return m.ti.Focused() }

// SetDisabled toggles the disabled state; disabling also blurs.
func (m *Model) SetDisabled(disabled bool) {
	m.disabled = disabled
	if disabled {
		m.ti.Blur()
	}
}

func (m *Model) Disabled() bool { return m.disabled }

// SetError flags the field; the message is shown only while both are set.
func (m *Model) SetError(hasError bool, message string) {
	m.hasError = hasError
	m.errText = message
}

func (m *Model) HasError() bool { return m.hasError }

// PasswordVisible reports whether a password field echoes its value.
func (m *Model) PasswordVisible() bool {
	return m.kind == Password && m.visible
}

// ToggleVisibility flips password echoing. It does nothing for other
// kinds or while disabled.
func (m *Model) ToggleVisibility() bool {
	if m.kind != Password || m.disabled {
		return false
	}
	m.visible = !m.visible
	if m.visible {
		m.ti.EchoMode = textinput.EchoNormal
	} else {
		m.ti.EchoMode = textinput.EchoPassword
	}
	events.Input.Visibility(m.name, m.visible)
	return true
}

// CanClear reports whether the clear affordance is available.
func (m *Model) CanClear() bool {
	return m.clearable && !m.disabled && m.ti.Value() != ""
}

// Clear empties the field and reports the change.
func (m *Model) Clear() tea.Cmd {
	if !m.CanClear() {
		return nil
	}
	m.ti.SetValue("")
	m.ti.CursorStart()
	events.Input.Clear(m.name)
	return m.changed()
}

func (m *Model) changed() tea.Cmd {
	if m.onChange == nil {
		return nil
	}
	return m.onChange(m.ti.Value())
}

func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.disabled {
		return m, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.ToggleVisibility):
			m.ToggleVisibility()
			return m, nil
		case key.Matches(k, m.keys.Clear):
			return m, m.Clear()
		}
		if m.kind == Number && k.Type == tea.KeyRunes && !numericRunes(k.Runes) {
			return m, nil
		}
	}
	before := m.ti.Value()
	updated, cmd := m.ti.Update(msg)
	m.ti = updated
	if m.ti.Value() != before {
		return m, tea.Batch(cmd, m.changed())
	}
	return m, cmd
}

func numericRunes(runes []rune) bool {
	for _, r := range runes {
		if !unicode.IsDigit(r) && r != '.' && r != '-' {
			return false
		}
	}
	return true
}

func (m *Model) View() string {
	styles := theme.Default()
	var parts []string
	if m.label != "" {
		parts = append(parts, styles.InputLabel.Render(m.label))
	}

	field := m.ti.View()
	var hints []string
	if m.CanClear() {
		hints = append(hints, "✕")
	}
	if m.kind == Password {
		if m.visible {
			hints = append(hints, "hide")
		} else {
			hints = append(hints, "show")
		}
	}
	if len(hints) > 0 {
		field += " " + styles.InputHint.Render(strings.Join(hints, " "))
	}

	frame := styles.InputFrame
	switch {
	case m.disabled:
		frame = styles.InputFrameDisabled
	case m.hasError || !m.Valid():
		frame = styles.InputFrameError
	}
	parts = append(parts, frame.Render(field))

	if m.hasError && m.errText != "" {
		parts = append(parts, styles.Error.Render(m.errText))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

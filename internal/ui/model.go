package ui

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/atomicstack/popup-widgets/internal/input"
	"github.com/atomicstack/popup-widgets/internal/menu"
	"github.com/atomicstack/popup-widgets/internal/nav"
	"github.com/atomicstack/popup-widgets/internal/sidebar"
	"github.com/atomicstack/popup-widgets/internal/theme"
	"github.com/atomicstack/popup-widgets/internal/toast"
	"github.com/atomicstack/popup-widgets/internal/zones"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	galleryTitle  = "popup-widgets"
	sidebarWidth  = 32
	noFocus       = -1
	inputZoneBase = "input:"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Tracker is a zones.Tracker that also measures the final frame.
type Tracker interface {
	zones.Tracker
	Scan(string) string
}

// Options configures the gallery.
type Options struct {
	Forest     menu.Forest
	Width      int
	Height     int
	ShowFooter bool
	// Zones defaults to a bubblezone-backed tracker.
	Zones Tracker
	// Navigate overrides the default NavigatedMsg outcome.
	Navigate nav.Handler
	// StaticCursor disables cursor blinking in the inputs.
	StaticCursor bool
	// Watcher, when set, feeds reloaded forests into the sidebar.
	Watcher menuSource
}

// Model implements the Bubble Tea model for the widget gallery.
type Model struct {
	sidebar     *sidebar.Model
	toasts      *toast.Model
	inputs      []*input.Model
	focus       int
	zones       Tracker
	keys        keyMap
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	location    string
	lastClose   sidebar.CloseReason

	backend        menuSource
	backendLastErr string

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the gallery. The toast manager must already be scoped
// into ctx.
func NewModel(ctx context.Context, opts Options) (*Model, error) {
	toasts, err := toast.FromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("build gallery: %w", err)
	}
	tracker := opts.Zones
	if tracker == nil {
		tracker = zones.New()
	}
	m := &Model{
		toasts:     toasts,
		focus:      noFocus,
		zones:      tracker,
		keys:       defaultKeyMap(),
		showFooter: opts.ShowFooter,
		location:   "/",
		backend:    opts.Watcher,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	sb, err := sidebar.New(opts.Forest,
		sidebar.WithTitle("Menu"),
		sidebar.WithZones(tracker),
		sidebar.WithNavigator(nav.New(opts.Navigate)),
		sidebar.WithOnClose(m.onSidebarClose),
	)
	if err != nil {
		return nil, fmt.Errorf("build gallery: %w", err)
	}
	m.sidebar = sb

	cursorMode := cursor.CursorBlink
	if opts.StaticCursor {
		cursorMode = cursor.CursorStatic
	}
	var username *input.Model
	username = input.New("username", input.Text,
		input.WithCursorMode(cursorMode),
		input.WithLabel("Username"),
		input.WithPlaceholder("your name"),
		input.WithClearable(),
		input.WithOnChange(func(v string) tea.Cmd {
			if strings.TrimSpace(v) == "" {
				username.SetError(true, "username is required")
			} else {
				username.SetError(false, "")
			}
			return nil
		}),
	)
	m.inputs = []*input.Model{
		username,
		input.New("password", input.Password,
			input.WithCursorMode(cursorMode),
			input.WithLabel("Password"),
			input.WithPlaceholder("secret"),
			input.WithClearable(),
		),
		input.New("quantity", input.Number,
			input.WithCursorMode(cursorMode),
			input.WithLabel("Quantity"),
			input.WithPlaceholder("0"),
			input.WithClearable(),
		),
	}
	m.resize()
	m.registerHandlers()
	return m, nil
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	cmds := make([]tea.Cmd, 0, 2)
	if _, cmd := m.toasts.Update(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if in := m.focusedInput(); in != nil {
		if _, cmd := in.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(nav.NavigatedMsg{}):  m.handleNavigatedMsg,
		reflect.TypeOf(sidebar.ClosedMsg{}): m.handleSidebarClosedMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if key.Matches(k, m.keys.ForceQuit) {
		return tea.Quit
	}
	if m.sidebar.IsOpen() {
		_, cmd := m.sidebar.Update(k)
		return cmd
	}
	if in := m.focusedInput(); in != nil {
		switch {
		case key.Matches(k, m.keys.NextInput):
			return m.cycleFocus(1)
		case key.Matches(k, m.keys.PrevInput):
			return m.cycleFocus(-1)
		case key.Matches(k, m.keys.Unfocus):
			m.setFocus(noFocus)
			return nil
		}
		_, cmd := in.Update(k)
		return cmd
	}
	switch {
	case key.Matches(k, m.keys.Menu):
		m.sidebar.Open()
	case key.Matches(k, m.keys.Success):
		return m.toasts.Success("Saved successfully")
	case key.Matches(k, m.keys.Error):
		return m.toasts.Error("Something went wrong")
	case key.Matches(k, m.keys.Info):
		return m.toasts.Info("Heads up: this is an info toast")
	case key.Matches(k, m.keys.Dismiss):
		m.toasts.DismissNewest()
	case key.Matches(k, m.keys.NextInput):
		return m.cycleFocus(1)
	case key.Matches(k, m.keys.PrevInput):
		return m.cycleFocus(-1)
	case key.Matches(k, m.keys.Quit):
		return tea.Quit
	}
	return nil
}

// handleMouseMsg gives toasts the first look so a press on a close glyph
// does not also count as an outside press for the sidebar.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	before := m.toasts.Len()
	m.toasts.Update(ev)
	if m.toasts.Len() != before {
		return nil
	}
	if m.sidebar.IsOpen() {
		_, cmd := m.sidebar.Update(ev)
		return cmd
	}
	if ev.Action != tea.MouseActionPress || ev.Button != tea.MouseButtonLeft {
		return nil
	}
	for i, in := range m.inputs {
		if m.zones.InBounds(inputZoneBase+in.Name(), ev) {
			return m.setFocus(i)
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.resize()
	return nil
}

func (m *Model) resize() {
	m.sidebar.SetSize(sidebarWidth, m.bodyHeight())
	m.toasts.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
}

func (m *Model) handleNavigatedMsg(msg tea.Msg) tea.Cmd {
	navigated, ok := msg.(nav.NavigatedMsg)
	if !ok {
		return nil
	}
	m.location = navigated.Link
	return m.toasts.Info("Navigated to " + navigated.Link)
}

func (m *Model) handleSidebarClosedMsg(msg tea.Msg) tea.Cmd {
	closed, ok := msg.(sidebar.ClosedMsg)
	if !ok {
		return nil
	}
	m.lastClose = closed.Reason
	return nil
}

// onSidebarClose is the host side of the sidebar's close request; the panel
// has already hidden itself and removed its listeners.
func (m *Model) onSidebarClose(reason sidebar.CloseReason) tea.Cmd {
	m.lastClose = reason
	return nil
}

func (m *Model) focusedInput() *input.Model {
	if m.focus < 0 || m.focus >= len(m.inputs) {
		return nil
	}
	return m.inputs[m.focus]
}

// cycleFocus walks inputs and the unfocused state as one ring.
func (m *Model) cycleFocus(delta int) tea.Cmd {
	ring := len(m.inputs) + 1
	pos := m.focus + 1
	for range m.inputs {
		pos = ((pos+delta)%ring + ring) % ring
		next := pos - 1
		if next == noFocus || !m.inputs[next].Disabled() {
			return m.setFocus(next)
		}
	}
	return m.setFocus(noFocus)
}

func (m *Model) setFocus(idx int) tea.Cmd {
	if cur := m.focusedInput(); cur != nil {
		cur.Blur()
	}
	m.focus = idx
	if in := m.focusedInput(); in != nil {
		return in.Focus()
	}
	return nil
}

// Teardown releases the sidebar's listeners.
func (m *Model) Teardown() {
	m.sidebar.Teardown()
}

func (m *Model) Sidebar() *sidebar.Model { return m.sidebar }
func (m *Model) Toasts() *toast.Model    { return m.toasts }
func (m *Model) Location() string        { return m.location }

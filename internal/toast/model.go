// Package toast implements a queue of transient notifications with timed
// expiry and manual dismissal, rendered as a Bubble Tea overlay.
package toast

import (
	"strings"
	"time"

	"github.com/atomicstack/popup-widgets/internal/logging"
	"github.com/atomicstack/popup-widgets/internal/logging/events"
	"github.com/atomicstack/popup-widgets/internal/metric"
	"github.com/atomicstack/popup-widgets/internal/theme"
	"github.com/atomicstack/popup-widgets/internal/zones"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	maxToastWidth = 48
	closeGlyph    = "×"
)

// tickFn is swapped in tests to capture scheduled expiries.
var tickFn = tea.Tick

// ShowMsg asks the manager to display a toast.
type ShowMsg struct {
	Message  string
	Variant  Variant
	Duration time.Duration
}

// DismissMsg asks the manager to remove a toast by id.
type DismissMsg struct {
	ID string
}

// expireMsg is delivered by the timer armed for one record.
type expireMsg struct {
	id    string
	token uint64
}

// KeyMap lists the bindings the manager reacts to when the host forwards
// key presses.
type KeyMap struct {
	Dismiss key.Binding
}

// DefaultKeyMap binds x to dismissing the newest toast.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss toast"),
		),
	}
}

// Option configures a Model.
type Option func(*Model)

// WithNotifier mirrors every displayed toast through n.
func WithNotifier(n Notifier) Option {
	return func(m *Model) { m.notifier = n }
}

// WithCounter counts displayed, dismissed and expired toasts by variant.
func WithCounter(c metric.IncrementalCounter) Option {
	return func(m *Model) { m.counter = c }
}

// WithZones sets the tracker used to hit-test close glyphs.
func WithZones(z zones.Tracker) Option {
	return func(m *Model) { m.zones = z }
}

// WithDefaultDuration sets the duration used by Success, Error and Info.
func WithDefaultDuration(d time.Duration) Option {
	return func(m *Model) { m.defaultDuration = d }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) { m.keys = keys }
}

// Model is the Toast Queue Manager.
type Model struct {
	queue           *Queue
	notifier        Notifier
	counter         metric.IncrementalCounter
	zones           zones.Tracker
	keys            KeyMap
	defaultDuration time.Duration
	width           int
	height          int
}

// New creates an empty manager using DefaultDuration.
func New(opts ...Option) *Model {
	m := &Model{
		queue:           NewQueue(),
		counter:         metric.Nop{},
		zones:           zones.Fixed{},
		keys:            DefaultKeyMap(),
		defaultDuration: DefaultDuration,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init is part of the tea.Model contract.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Display appends a toast and returns the command that arms its expiry
// timer and mirrors it to the notifier. Durations of zero or less never
// expire.
func (m *Model) Display(message string, variant Variant, duration time.Duration) tea.Cmd {
	rec := m.queue.Display(message, variant, duration)
	events.Toast.Display(rec.ID, rec.Variant.String(), rec.Duration.Milliseconds())
	m.counter.Increment("displayed", rec.Variant.String())

	var cmds []tea.Cmd
	if rec.Duration > 0 {
		id, token := rec.ID, rec.token
		cmds = append(cmds, tickFn(rec.Duration, func(time.Time) tea.Msg {
			return expireMsg{id: id, token: token}
		}))
	}
	if m.notifier != nil {
		cmds = append(cmds, m.notify(rec))
	}
	return tea.Batch(cmds...)
}

// Success displays a success toast with the default duration.
func (m *Model) Success(message string) tea.Cmd {
	return m.Display(message, Success, m.defaultDuration)
}

// Error displays an error toast with the default duration.
func (m *Model) Error(message string) tea.Cmd {
	return m.Display(message, Error, m.defaultDuration)
}

// Info displays an info toast with the default duration.
func (m *Model) Info(message string) tea.Cmd {
	return m.Display(message, Info, m.defaultDuration)
}

// Show is Display for callers outside an Update turn: it returns a command
// that delivers a ShowMsg to the program.
func Show(message string, variant Variant, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ShowMsg{Message: message, Variant: variant, Duration: duration}
	}
}

// Remove dismisses a toast and cancels its pending expiry. Unknown ids are
// ignored.
func (m *Model) Remove(id string) bool {
	rec, found := m.find(id)
	removed := m.queue.Remove(id)
	events.Toast.Dismiss(id, removed)
	if found && removed {
		m.counter.Increment("dismissed", rec.Variant.String())
	}
	return removed
}

// DismissNewest removes the most recently displayed toast.
func (m *Model) DismissNewest() bool {
	rec, ok := m.queue.Newest()
	if !ok {
		return false
	}
	return m.Remove(rec.ID)
}

// List is a read-only snapshot of the active toasts, oldest first.
func (m *Model) List() []Record {
	return m.queue.List()
}

func (m *Model) Len() int {
	return m.queue.Len()
}

// Update handles show, dismiss and expiry messages plus the dismiss key
// and close-glyph presses.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		return m, m.Display(msg.Message, msg.Variant, msg.Duration)
	case DismissMsg:
		m.Remove(msg.ID)
	case expireMsg:
		m.expire(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Dismiss) {
			m.DismissNewest()
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for _, rec := range m.queue.List() {
			if m.zones.InBounds(closeZone(rec.ID), msg) {
				m.Remove(rec.ID)
				break
			}
		}
	}
	return m, nil
}

func (m *Model) expire(msg expireMsg) {
	rec, found := m.find(msg.id)
	if !m.queue.Expire(msg.id, msg.token) {
		events.Toast.Stale(msg.id, msg.token)
		return
	}
	events.Toast.Expire(msg.id)
	if found {
		m.counter.Increment("expired", rec.Variant.String())
	}
}

func (m *Model) notify(rec Record) tea.Cmd {
	n := m.notifier
	return func() tea.Msg {
		if err := n.Notify(rec); err != nil {
			events.Toast.NotifyError(rec.ID, err)
			logging.Error(err)
		}
		return nil
	}
}

func (m *Model) find(id string) (Record, bool) {
	for _, rec := range m.queue.List() {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// View renders the active toasts stacked oldest first.
func (m *Model) View() string {
	records := m.queue.List()
	if len(records) == 0 {
		return ""
	}
	width := m.toastWidth()
	blocks := make([]string, 0, len(records))
	for _, rec := range records {
		blocks = append(blocks, m.renderToast(rec, width))
	}
	return lipgloss.JoinVertical(lipgloss.Right, blocks...)
}

func (m *Model) renderToast(rec Record, width int) string {
	styles := theme.Default()
	frame := styles.ToastInfo
	switch rec.Variant {
	case Success:
		frame = styles.ToastSuccess
	case Error:
		frame = styles.ToastError
	}
	closeMark := m.zones.Mark(closeZone(rec.ID), styles.CloseGlyph.Render(closeGlyph))
	// border, padding, icon and close glyph
	textWidth := width - 8
	if textWidth < 1 {
		textWidth = 1
	}
	text := truncate.StringWithTail(rec.Message, uint(textWidth), "…")
	return frame.Render(rec.Variant.Icon() + " " + text + " " + closeMark)
}

func (m *Model) toastWidth() int {
	w := maxToastWidth
	if m.width > 0 && m.width/2 < w {
		w = m.width / 2
	}
	if w < 12 {
		w = 12
	}
	return w
}

// Overlay composites the toast stack onto the bottom-right corner of base.
func (m *Model) Overlay(base string, width, height int) string {
	stack := m.View()
	if stack == "" {
		return base
	}
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	toastLines := strings.Split(stack, "\n")
	top := len(lines) - len(toastLines)
	if top < 0 {
		toastLines = toastLines[-top:]
		top = 0
	}
	for i, line := range toastLines {
		row := top + i
		left := width - lipgloss.Width(line)
		if left < 0 {
			left = 0
		}
		bg := ansi.Truncate(lines[row], left, "")
		if pad := left - lipgloss.Width(bg); pad > 0 {
			bg += strings.Repeat(" ", pad)
		}
		lines[row] = bg + "\033[0m" + line + "\033[0m"
	}
	return strings.Join(lines, "\n")
}

func closeZone(id string) string {
	return "toast:close:" + id
}

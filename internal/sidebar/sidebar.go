// Package sidebar implements a collapsible nested menu panel for Bubble Tea.
//
// The Model owns per-node expansion state keyed by node id and renders only
// the open part of the forest. While the panel is open it listens for
// pointer presses and the Escape key; a press outside the panel boundary or
// Escape asks the host to close via the OnClose callback. The listeners are
// detached whenever the panel closes or the model is torn down.
package sidebar

import (
	"fmt"

	"github.com/atomicstack/popup-widgets/internal/logging/events"
	"github.com/atomicstack/popup-widgets/internal/menu"
	"github.com/atomicstack/popup-widgets/internal/nav"
	"github.com/atomicstack/popup-widgets/internal/zones"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultTitle = "Menu"
	defaultWidth = 32
)

// CloseReason says why the panel asked to be closed.
type CloseReason string

const (
	CloseEscape  CloseReason = "escape"
	CloseOutside CloseReason = "outside"
	CloseButton  CloseReason = "button"
)

// ClosedMsg is emitted when no OnClose callback is configured.
type ClosedMsg struct {
	Reason CloseReason
}

// Option configures a Model.
type Option func(*Model)

// WithOnClose sets the host callback invoked on outside press, Escape or
// the close glyph in the title bar.
func WithOnClose(fn func(CloseReason) tea.Cmd) Option {
	return func(m *Model) { m.onClose = fn }
}

// WithNavigator sets the navigation primitive used for leaf links.
func WithNavigator(n nav.Navigator) Option {
	return func(m *Model) { m.navigator = n }
}

// WithZones sets the hit-testing tracker. The host then owns scanning its
// root view. Without it the sidebar measures its own output, which suits a
// panel rendered at the origin.
func WithZones(z zones.Tracker) Option {
	return func(m *Model) { m.zones = z }
}

// WithZonePrefix namespaces the region ids, for hosts that mount more than
// one sidebar.
func WithZonePrefix(prefix string) Option {
	return func(m *Model) { m.zonePrefix = prefix }
}

// WithTitle sets the text shown in the panel's title bar.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithMaxDepth bounds how deep the forest may nest.
func WithMaxDepth(depth int) Option {
	return func(m *Model) { m.maxDepth = depth }
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) { m.keys = keys }
}

// Model is the Menu Tree Controller.
type Model struct {
	title      string
	forest     menu.Forest
	index      *menu.Index
	expansion  *menu.Expansion
	rows       []menu.Row
	cursor     int
	offset     int
	open       bool
	tornDown   bool
	listeners  listeners
	onClose    func(CloseReason) tea.Cmd
	navigator  nav.Navigator
	zones      zones.Tracker
	ownZones   *zones.Manager
	zonePrefix string
	keys       KeyMap
	width      int
	height     int
	maxDepth   int
	query      string
}

// New validates the forest and builds a closed sidebar with every node
// collapsed.
func New(forest menu.Forest, opts ...Option) (*Model, error) {
	m := &Model{
		title:      defaultTitle,
		forest:     forest,
		expansion:  menu.NewExpansion(),
		zonePrefix: "sidebar:",
		keys:       DefaultKeyMap(),
		width:      defaultWidth,
		maxDepth:   menu.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(m)
	}
	idx, err := menu.NewIndex(forest, m.maxDepth)
	if err != nil {
		return nil, fmt.Errorf("build sidebar: %w", err)
	}
	m.index = idx
	if m.navigator == nil {
		m.navigator = nav.New(nil)
	}
	if m.zones == nil {
		m.ownZones = zones.New()
		m.zones = m.ownZones
	}
	m.refreshRows()
	return m, nil
}

// SetForest swaps in a new forest. Expansion state is kept for ids that
// still exist and dropped for the rest; on error the current forest stays.
func (m *Model) SetForest(forest menu.Forest) error {
	idx, err := menu.NewIndex(forest, m.maxDepth)
	if err != nil {
		return fmt.Errorf("replace sidebar forest: %w", err)
	}
	for _, id := range m.expansion.IDs() {
		if _, ok := idx.Find(id); !ok {
			m.expansion.Set(id, false)
		}
	}
	m.forest = forest
	m.index = idx
	m.refreshRows()
	return nil
}

// Init is part of the tea.Model contract.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Open shows the panel and installs the outside-press and Escape listeners.
func (m *Model) Open() {
	if m.tornDown || m.open {
		return
	}
	m.open = true
	m.listeners.attach(m.handlePointer, func() tea.Cmd { return m.dismiss(CloseEscape) })
	events.Menu.Open(m.index.Len())
}

// Close hides the panel without invoking the OnClose callback. Hosts call
// this when they react to OnClose or close the panel themselves.
func (m *Model) Close() {
	if m.close() {
		events.Menu.Close(events.CloseReasonManual)
	}
}

// close reports whether the panel was open.
func (m *Model) close() bool {
	m.query = ""
	m.listeners.detach()
	if !m.open {
		return false
	}
	m.open = false
	return true
}

// Toggle opens a closed panel and closes an open one.
func (m *Model) Toggle() {
	if m.open {
		m.Close()
		return
	}
	m.Open()
}

// Teardown removes every listener and prevents further opening. It is safe
// to call more than once.
func (m *Model) Teardown() {
	m.close()
	if !m.tornDown && m.ownZones != nil {
		m.ownZones.Close()
	}
	m.tornDown = true
}

// IsOpen reports whether the panel is visible.
func (m *Model) IsOpen() bool {
	return m.open
}

// ListenersAttached reports whether the global listeners are installed.
func (m *Model) ListenersAttached() bool {
	return m.listeners.attached
}

// IsExpanded is a pure membership query against the expansion state.
func (m *Model) IsExpanded(id string) bool {
	return m.expansion.IsExpanded(id)
}

// Rows returns the currently visible part of the forest.
func (m *Model) Rows() []menu.Row {
	return append([]menu.Row(nil), m.rows...)
}

// Render flattens the forest against the current expansion state.
func (m *Model) Render() []menu.Row {
	return menu.Visible(m.forest, m.expansion.IsExpanded, m.maxDepth)
}

// Cursor returns the selected row index.
func (m *Model) Cursor() int {
	return m.cursor
}

// Selected returns the id of the row under the cursor.
func (m *Model) Selected() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	return m.rows[m.cursor].ID()
}

// SetSize sets the panel width and height in cells. Zero height shows every
// row.
func (m *Model) SetSize(width, height int) {
	if width > 0 {
		m.width = width
	}
	m.height = height
	m.ensureCursorVisible()
}

// Activate applies the activation rules to a node: branches toggle their
// own expansion, leaves with a link request navigation, anything else is a
// no-op.
func (m *Model) Activate(id string) tea.Cmd {
	node, ok := m.index.Find(id)
	if !ok {
		events.Menu.NoOp(id)
		return nil
	}
	if node.Expandable() {
		expanded := m.expansion.Toggle(id)
		events.Menu.Toggle(id, expanded)
		m.refreshRows()
		return nil
	}
	if node.Link != "" {
		events.Menu.Navigate(id, node.Link)
		return m.navigator.Navigate(nav.Request{ID: node.ID, Label: node.Label, Link: node.Link})
	}
	events.Menu.NoOp(id)
	return nil
}

// Update routes messages to the listeners and keyboard handling.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		cmd, _ := m.listeners.onPointer(msg)
		return m, cmd
	case tea.KeyMsg:
		if !m.open {
			return m, nil
		}
		if key.Matches(msg, m.keys.Close) {
			cmd, _ := m.listeners.onEscape()
			return m, cmd
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.query = ""
		m.moveCursorBy(-1, true)
	case key.Matches(msg, m.keys.Down):
		m.query = ""
		m.moveCursorBy(1, true)
	case key.Matches(msg, m.keys.PageUp):
		m.query = ""
		m.moveCursorBy(-m.pageSize(), false)
	case key.Matches(msg, m.keys.PageDown):
		m.query = ""
		m.moveCursorBy(m.pageSize(), false)
	case key.Matches(msg, m.keys.Home):
		m.query = ""
		m.moveCursorTo(0)
	case key.Matches(msg, m.keys.End):
		m.query = ""
		m.moveCursorTo(len(m.rows) - 1)
	case key.Matches(msg, m.keys.Activate):
		m.query = ""
		if id := m.Selected(); id != "" {
			return m.Activate(id)
		}
	case key.Matches(msg, m.keys.Expand):
		m.query = ""
		m.expandSelected()
	case key.Matches(msg, m.keys.Collapse):
		m.query = ""
		m.collapseSelected()
	case msg.Type == tea.KeyRunes && !msg.Alt:
		m.typeahead(string(msg.Runes))
	}
	return nil
}

func (m *Model) expandSelected() {
	id := m.Selected()
	node, ok := m.index.Find(id)
	if !ok || !node.Expandable() {
		return
	}
	if m.expansion.IsExpanded(id) {
		m.moveCursorBy(1, false)
		return
	}
	m.Activate(id)
}

func (m *Model) collapseSelected() {
	id := m.Selected()
	node, ok := m.index.Find(id)
	if !ok {
		return
	}
	if node.Expandable() && m.expansion.IsExpanded(id) {
		m.Activate(id)
		return
	}
	if parent, ok := m.index.Parent(id); ok {
		m.moveCursorTo(menu.IndexOfRow(m.rows, parent))
	}
}

func (m *Model) handlePointer(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		return nil
	}
	// Until the panel has been measured its boundary is unknown, and a
	// press cannot be called outside.
	if !m.zones.Known(m.panelZone()) {
		return nil
	}
	if !m.zones.InBounds(m.panelZone(), msg) {
		return m.dismiss(CloseOutside)
	}
	if m.zones.InBounds(m.closeZone(), msg) {
		return m.dismiss(CloseButton)
	}
	for i, row := range m.rows {
		if m.zones.InBounds(m.rowZone(row.ID()), msg) {
			m.moveCursorTo(i)
			return m.Activate(row.ID())
		}
	}
	return nil
}

// dismiss detaches the listeners before reporting so a burst of presses
// yields exactly one OnClose.
func (m *Model) dismiss(reason CloseReason) tea.Cmd {
	if !m.close() {
		return nil
	}
	switch reason {
	case CloseEscape:
		events.Menu.Close(events.CloseReasonEscape)
	case CloseButton:
		events.Menu.Close(events.CloseReasonButton)
	default:
		events.Menu.Close(events.CloseReasonOutside)
	}
	if m.onClose != nil {
		return m.onClose(reason)
	}
	return func() tea.Msg { return ClosedMsg{Reason: reason} }
}

// refreshRows recomputes the visible rows and keeps the cursor on the same
// node, or on its nearest visible ancestor when the node was hidden.
func (m *Model) refreshRows() {
	selected := m.Selected()
	m.rows = m.Render()
	if selected != "" {
		id := selected
		for {
			if idx := menu.IndexOfRow(m.rows, id); idx >= 0 {
				m.cursor = idx
				break
			}
			parent, ok := m.index.Parent(id)
			if !ok {
				break
			}
			id = parent
		}
	}
	m.ensureCursorVisible()
}

func (m *Model) panelZone() string {
	return m.zonePrefix + "panel"
}

func (m *Model) closeZone() string {
	return m.zonePrefix + "close"
}

func (m *Model) rowZone(id string) string {
	return m.zonePrefix + "row:" + id
}

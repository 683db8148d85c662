package sidebar

import (
	"github.com/atomicstack/popup-widgets/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// listeners holds the pointer and cancellation-key handlers that exist only
// while the panel is open. A detached set swallows nothing and fires
// nothing.
type listeners struct {
	pointer  func(tea.MouseMsg) tea.Cmd
	escape   func() tea.Cmd
	attached bool
}

func (l *listeners) attach(pointer func(tea.MouseMsg) tea.Cmd, escape func() tea.Cmd) {
	if l.attached {
		return
	}
	l.pointer = pointer
	l.escape = escape
	l.attached = true
	events.Menu.Listeners(true)
}

// detach is safe to call repeatedly.
func (l *listeners) detach() {
	if !l.attached {
		return
	}
	l.pointer = nil
	l.escape = nil
	l.attached = false
	events.Menu.Listeners(false)
}

func (l *listeners) onPointer(msg tea.MouseMsg) (tea.Cmd, bool) {
	if !l.attached || l.pointer == nil {
		return nil, false
	}
	return l.pointer(msg), true
}

func (l *listeners) onEscape() (tea.Cmd, bool) {
	if !l.attached || l.escape == nil {
		return nil, false
	}
	return l.escape(), true
}

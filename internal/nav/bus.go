package nav

import (
	"fmt"

	"github.com/atomicstack/popup-widgets/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request describes a leaf activation that wants to navigate.
type Request struct {
	ID    string
	Label string
	Link  string
}

// Handler performs navigation for a request and reports the outcome as a
// Bubble Tea message.
type Handler func(Request) tea.Msg

// NavigatedMsg is the default outcome of a navigation request.
type NavigatedMsg struct {
	ID    string
	Label string
	Link  string
}

// Navigator is what the sidebar calls when a leaf with a link is activated.
type Navigator interface {
	Navigate(Request) tea.Cmd
}

// Bus turns navigation requests into Bubble Tea commands while emitting
// trace logs.
type Bus struct {
	handler Handler
}

// New creates a bus. A nil handler reports NavigatedMsg for every request.
func New(handler Handler) *Bus {
	if handler == nil {
		handler = func(req Request) tea.Msg {
			return NavigatedMsg{ID: req.ID, Label: req.Label, Link: req.Link}
		}
	}
	return &Bus{handler: handler}
}

// Navigate wraps the handler into a command.
func (b *Bus) Navigate(req Request) tea.Cmd {
	events.Nav.Queue(req.ID, req.Link)
	return func() tea.Msg {
		if req.Link == "" {
			events.Nav.Skip(req.ID, req.Link)
			return nil
		}
		msg := b.handler(req)
		events.Nav.Result(req.ID, req.Link, fmt.Sprintf("%T", msg))
		return msg
	}
}

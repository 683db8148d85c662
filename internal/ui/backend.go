package ui

import (
	"fmt"

	"github.com/atomicstack/popup-widgets/internal/backend"
	"github.com/atomicstack/popup-widgets/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

// menuSource is the subset of backend.Watcher the gallery listens to.
type menuSource interface {
	Events() <-chan backend.Event
}

func waitForBackendEvent(w menuSource) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return tea.Batch(cmd, waitForBackendEvent(m.backend))
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent swaps the reloaded forest into the sidebar. A broken
// file keeps the previous menu on screen and reports through a toast.
func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	err := evt.Err
	if err == nil {
		err = m.sidebar.SetForest(evt.Forest)
	}
	if err != nil {
		m.backendLastErr = err.Error()
		logging.Error(fmt.Errorf("reload menu: %w", err))
		return m.toasts.Error("Menu reload failed")
	}
	m.backendLastErr = ""
	return m.toasts.Info("Menu reloaded")
}

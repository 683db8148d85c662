package ui

import (
	"strconv"
	"strings"

	"github.com/atomicstack/popup-widgets/internal/format/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const footerSeparator = " • "

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{m.headerView()}

	body := m.bodyView()
	if m.sidebar.IsOpen() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), " ", body)
	}
	lines = append(lines, body)

	if m.showFooter {
		lines = append(lines, "", m.footerView())
	}

	out := strings.Join(lines, "\n")
	if m.width > 0 && m.height > 0 {
		out = m.toasts.Overlay(out, m.width, m.height)
	} else if stack := m.toasts.View(); stack != "" {
		out += "\n" + stack
	}
	return m.zones.Scan(out)
}

func (m *Model) headerView() string {
	header := styles.Header.Render(galleryTitle) + "  " + styles.Info.Render(m.location)
	if m.width > 0 {
		header = truncate.String(header, uint(m.width))
	}
	return header
}

func (m *Model) bodyView() string {
	parts := make([]string, 0, len(m.inputs)+1)
	for _, in := range m.inputs {
		parts = append(parts, m.zones.Mark(inputZoneBase+in.Name(), in.View()))
	}
	if m.backendLastErr != "" {
		parts = append(parts, styles.Error.Render(m.backendLastErr))
	}
	parts = append(parts, "", m.statusView())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// statusView summarises the sidebar and toast state below the inputs.
func (m *Model) statusView() string {
	menuState := "closed"
	switch {
	case m.sidebar.IsOpen():
		menuState = "open"
	case m.lastClose != "":
		menuState = "closed (" + string(m.lastClose) + ")"
	}
	rows := [][]string{
		{styles.InputLabel.Render("menu"), menuState},
		{styles.InputLabel.Render("toasts"), strconv.Itoa(m.toasts.Len())},
	}
	if sel := m.sidebar.Selected(); sel != "" && m.sidebar.IsOpen() {
		rows = append(rows, []string{styles.InputLabel.Render("selected"), sel})
	}
	return styles.Info.Render(strings.Join(table.Format(rows, nil), "\n"))
}

func (m *Model) footerView() string {
	bindings := m.keys.footer()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		help := b.Help()
		hints = append(hints, help.Key+" "+help.Desc)
	}
	footer := strings.Join(hints, footerSeparator)
	if m.width > 0 {
		footer = truncate.StringWithTail(footer, uint(m.width), "…")
	}
	return styles.Footer.Render(footer)
}

// bodyHeight is what remains below the header and above the footer.
func (m *Model) bodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	used := 1
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

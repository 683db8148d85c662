package sidebar

import (
	"strings"

	"github.com/atomicstack/popup-widgets/internal/menu"
	"github.com/atomicstack/popup-widgets/internal/theme"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	markerCollapsed = "▸"
	markerExpanded  = "▾"
	placeholderText = "no items"
	closeGlyph      = "×"
)

// View renders the panel, or nothing while it is closed.
func (m *Model) View() string {
	if !m.open {
		return ""
	}
	styles := theme.Default()
	inner := m.innerWidth()

	lines := make([]string, 0, len(m.rows)+1)
	lines = append(lines, m.renderTitle(inner))
	if len(m.rows) == 0 {
		lines = append(lines, styles.Placeholder.Render(placeholderText))
	}

	start, end := m.window()
	for i := start; i < end; i++ {
		row := m.rows[i]
		line := m.renderRow(row, i == m.cursor, inner)
		lines = append(lines, m.zones.Mark(m.rowZone(row.ID()), line))
	}

	panel := styles.Panel.Width(m.width - 2).Render(strings.Join(lines, "\n"))
	panel = m.zones.Mark(m.panelZone(), panel)
	if m.ownZones != nil {
		return m.ownZones.Scan(panel)
	}
	return panel
}

func (m *Model) renderTitle(width int) string {
	styles := theme.Default()
	closeMark := m.zones.Mark(m.closeZone(), styles.CloseGlyph.Render(closeGlyph))
	titleWidth := width - 2
	if titleWidth < 1 {
		titleWidth = 1
	}
	title := truncate.StringWithTail(m.title, uint(titleWidth), "…")
	gap := width - lipgloss.Width(title) - lipgloss.Width(closeGlyph)
	if gap < 1 {
		gap = 1
	}
	return styles.PanelTitle.Render(title) + strings.Repeat(" ", gap) + closeMark
}

func (m *Model) renderRow(row menu.Row, selected bool, width int) string {
	styles := theme.Default()
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", row.Depth))
	switch {
	case row.Node.Expandable() && row.Expanded:
		b.WriteString(markerExpanded + " ")
	case row.Node.Expandable():
		b.WriteString(markerCollapsed + " ")
	default:
		b.WriteString("  ")
	}
	if row.Node.Icon != "" {
		b.WriteString(row.Node.Icon + " ")
	}
	b.WriteString(row.Node.Label)
	text := truncate.StringWithTail(b.String(), uint(width), "…")
	if pad := width - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	if selected {
		return styles.SelectedItem.Render(text)
	}
	return styles.Item.Render(text)
}

// window returns the half-open range of rows inside the viewport.
func (m *Model) window() (int, int) {
	size := m.visibleRows()
	if size <= 0 || size >= len(m.rows) {
		return 0, len(m.rows)
	}
	end := m.offset + size
	if end > len(m.rows) {
		end = len(m.rows)
	}
	return m.offset, end
}

// innerWidth is the width left for text inside the border and padding.
func (m *Model) innerWidth() int {
	w := m.width - 4
	if w < 1 {
		w = 1
	}
	return w
}

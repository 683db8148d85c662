package sidebar

import (
	"github.com/atomicstack/popup-widgets/internal/logging/events"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// panelChrome is the border plus the title line.
const panelChrome = 3

func (m *Model) moveCursorTo(idx int) bool {
	if len(m.rows) == 0 {
		m.cursor = 0
		return false
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.rows) {
		idx = len(m.rows) - 1
	}
	old := m.cursor
	m.cursor = idx
	m.ensureCursorVisible()
	if old != m.cursor {
		events.Menu.Cursor(m.Selected(), m.cursor)
	}
	return old != m.cursor
}

// moveCursorBy clamps at the ends unless wrap is set, in which case single
// steps past either end continue from the other.
func (m *Model) moveCursorBy(delta int, wrap bool) bool {
	n := len(m.rows)
	if n == 0 {
		m.cursor = 0
		return false
	}
	next := m.cursor + delta
	if wrap {
		next = ((next % n) + n) % n
	}
	return m.moveCursorTo(next)
}

func (m *Model) visibleRows() int {
	if m.height <= 0 {
		return 0
	}
	size := m.height - panelChrome
	if size < 1 {
		size = 1
	}
	return size
}

func (m *Model) pageSize() int {
	total := len(m.rows)
	if total == 0 {
		return 0
	}
	size := m.visibleRows()
	if size <= 0 || size > total {
		size = total
	}
	return size
}

// ensureCursorVisible adjusts the viewport offset so the cursor stays on
// screen.
func (m *Model) ensureCursorVisible() {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	maxVisible := m.visibleRows()
	if maxVisible <= 0 {
		m.offset = 0
		return
	}
	maxOffset := len(m.rows) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if upper := m.offset + maxVisible - 1; m.cursor > upper {
		m.offset = m.cursor - maxVisible + 1
	}
}

// typeahead extends the query and jumps to the best label match among the
// visible rows. A query with no match starts over from the new runes.
func (m *Model) typeahead(runes string) {
	if runes == "" || len(m.rows) == 0 {
		return
	}
	query := m.query + runes
	if idx := m.bestMatch(query); idx >= 0 {
		m.query = query
		m.moveCursorTo(idx)
		return
	}
	m.query = runes
	if idx := m.bestMatch(runes); idx >= 0 {
		m.moveCursorTo(idx)
		return
	}
	m.query = ""
}

func (m *Model) bestMatch(query string) int {
	labels := make([]string, len(m.rows))
	for i, row := range m.rows {
		labels[i] = row.Node.Label
	}
	ranks := fuzzy.RankFindFold(query, labels)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance || (r.Distance == best.Distance && r.OriginalIndex < best.OriginalIndex) {
			best = r
		}
	}
	return best.OriginalIndex
}

// Package zones hit-tests mouse events against rendered regions of the
// view. Production code uses bubblezone markers; Fixed serves headless
// layouts and tests where regions are known up front.
package zones

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Tracker marks rendered output with a region id and later answers whether
// a mouse event landed inside that region.
type Tracker interface {
	Mark(id, s string) string
	InBounds(id string, msg tea.MouseMsg) bool
	// Known reports whether the region has been measured at least once.
	Known(id string) bool
}

// Manager is a Tracker backed by a bubblezone manager. The root view must
// pass its final output through Scan so the markers are measured and
// stripped before reaching the terminal.
type Manager struct {
	m *zone.Manager
}

// New creates an independent bubblezone manager.
func New() *Manager {
	return &Manager{m: zone.New()}
}

func (z *Manager) Mark(id, s string) string {
	return z.m.Mark(id, s)
}

// Close stops the manager's background worker.
func (z *Manager) Close() {
	z.m.Close()
}

// Scan measures and strips markers from the root view.
func (z *Manager) Scan(s string) string {
	return z.m.Scan(s)
}

func (z *Manager) InBounds(id string, msg tea.MouseMsg) bool {
	info := z.m.Get(id)
	if info == nil {
		return false
	}
	return info.InBounds(msg)
}

func (z *Manager) Known(id string) bool {
	info := z.m.Get(id)
	return info != nil && !info.IsZero()
}

// Rect is an inclusive cell rectangle.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Contains reports whether the cell (x, y) lies within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Fixed is a Tracker with regions assigned explicitly. Mark leaves the
// output untouched.
type Fixed map[string]Rect

func (f Fixed) Mark(_ string, s string) string {
	return s
}

func (f Fixed) InBounds(id string, msg tea.MouseMsg) bool {
	r, ok := f[id]
	if !ok {
		return false
	}
	return r.Contains(msg.X, msg.Y)
}

func (f Fixed) Known(id string) bool {
	_, ok := f[id]
	return ok
}

// Scan returns s unchanged; Fixed regions are not measured from output.
func (f Fixed) Scan(s string) string {
	return s
}

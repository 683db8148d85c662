package sidebar

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/popup-widgets/internal/menu"
	"github.com/atomicstack/popup-widgets/internal/nav"
	"github.com/atomicstack/popup-widgets/internal/zones"
	tea "github.com/charmbracelet/bubbletea"
)

func sampleForest() menu.Forest {
	return menu.Forest{
		{ID: "home", Label: "Home", Icon: "⌂", Link: "/"},
		{
			ID: "products", Label: "Products",
			Children: []menu.Node{
				{ID: "electronics", Label: "Electronics", Children: []menu.Node{
					{ID: "phones", Label: "Phones", Link: "/products/phones"},
					{ID: "laptops", Label: "Laptops", Link: "/products/laptops"},
				}},
				{ID: "books", Label: "Books", Link: "/products/books"},
			},
		},
		{ID: "about", Label: "About"},
	}
}

type recordingNavigator struct {
	requests []nav.Request
}

func (r *recordingNavigator) Navigate(req nav.Request) tea.Cmd {
	r.requests = append(r.requests, req)
	return func() tea.Msg { return nav.NavigatedMsg{ID: req.ID, Link: req.Link} }
}

type closeRecorder struct {
	reasons []CloseReason
}

func (c *closeRecorder) onClose(reason CloseReason) tea.Cmd {
	c.reasons = append(c.reasons, reason)
	return nil
}

// panelZones places the panel at columns 0-19, rows 0-9, with one row zone
// per line starting below the title.
func panelZones(ids ...string) zones.Fixed {
	z := zones.Fixed{"sidebar:panel": {X0: 0, Y0: 0, X1: 19, Y1: 9}}
	for i, id := range ids {
		z["sidebar:row:"+id] = zones.Rect{X0: 1, Y0: i + 2, X1: 18, Y1: i + 2}
	}
	return z
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func newModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	m, err := New(sampleForest(), opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func rowIDs(rows []menu.Row) []string {
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID()
	}
	return ids
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	forest := menu.Forest{{ID: "a", Label: "A"}, {ID: "a", Label: "again"}}
	if _, err := New(forest); !errors.Is(err, menu.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestInitialStateIsCollapsedAndClosed(t *testing.T) {
	m := newModel(t)
	if m.IsOpen() {
		t.Fatalf("expected new sidebar to be closed")
	}
	if m.ListenersAttached() {
		t.Fatalf("expected no listeners before open")
	}
	got := strings.Join(rowIDs(m.Rows()), ",")
	if got != "home,products,about" {
		t.Fatalf("expected only roots visible, got %s", got)
	}
}

func TestActivateBranchTogglesOnlyItself(t *testing.T) {
	m := newModel(t)
	m.Activate("products")
	if !m.IsExpanded("products") {
		t.Fatalf("expected products expanded")
	}
	if m.IsExpanded("electronics") {
		t.Fatalf("expected electronics untouched")
	}
	got := strings.Join(rowIDs(m.Rows()), ",")
	if got != "home,products,electronics,books,about" {
		t.Fatalf("unexpected rows %s", got)
	}
	m.Activate("products")
	if m.IsExpanded("products") {
		t.Fatalf("expected second activation to collapse")
	}
}

func TestRowsNeverIncludeDescendantsOfCollapsedBranch(t *testing.T) {
	m := newModel(t)
	m.Activate("products")
	m.Activate("electronics")
	m.Activate("products")
	for _, row := range m.Rows() {
		switch row.ID() {
		case "electronics", "phones", "laptops", "books":
			t.Fatalf("expected %s hidden under collapsed parent", row.ID())
		}
	}
	if !m.IsExpanded("electronics") {
		t.Fatalf("expected collapsing parent to preserve child expansion")
	}
	m.Activate("products")
	got := strings.Join(rowIDs(m.Rows()), ",")
	if got != "home,products,electronics,phones,laptops,books,about" {
		t.Fatalf("expected child expansion restored on reopen, got %s", got)
	}
}

func TestActivateLeafNavigatesOnce(t *testing.T) {
	navigator := &recordingNavigator{}
	m := newModel(t, WithNavigator(navigator))
	m.Activate("products")
	before := strings.Join(rowIDs(m.Rows()), ",")

	cmd := m.Activate("books")
	if cmd == nil {
		t.Fatalf("expected navigation command")
	}
	msg, ok := cmd().(nav.NavigatedMsg)
	if !ok || msg.Link != "/products/books" {
		t.Fatalf("expected navigation to /products/books, got %#v", msg)
	}
	if len(navigator.requests) != 1 {
		t.Fatalf("expected exactly one navigation request, got %d", len(navigator.requests))
	}
	if after := strings.Join(rowIDs(m.Rows()), ","); after != before {
		t.Fatalf("expected leaf activation to leave expansion alone, got %s", after)
	}
}

func TestActivateLeafWithoutLinkIsNoOp(t *testing.T) {
	navigator := &recordingNavigator{}
	m := newModel(t, WithNavigator(navigator))
	if cmd := m.Activate("about"); cmd != nil {
		t.Fatalf("expected no command for leaf without link")
	}
	if cmd := m.Activate("missing"); cmd != nil {
		t.Fatalf("expected no command for unknown id")
	}
	if len(navigator.requests) != 0 {
		t.Fatalf("expected no navigation, got %d", len(navigator.requests))
	}
	if m.IsExpanded("about") {
		t.Fatalf("expected leaf never to enter expansion state")
	}
}

func TestOutsidePressInvokesOnCloseOnce(t *testing.T) {
	rec := &closeRecorder{}
	m := newModel(t, WithOnClose(rec.onClose), WithZones(panelZones()))
	m.Open()
	if !m.ListenersAttached() {
		t.Fatalf("expected listeners while open")
	}
	m.Update(press(40, 3))
	m.Update(press(41, 3))
	if len(rec.reasons) != 1 || rec.reasons[0] != CloseOutside {
		t.Fatalf("expected one outside close, got %v", rec.reasons)
	}
	if m.IsOpen() || m.ListenersAttached() {
		t.Fatalf("expected panel closed with listeners removed")
	}
}

func TestOutsidePressWhileClosedDoesNothing(t *testing.T) {
	rec := &closeRecorder{}
	m := newModel(t, WithOnClose(rec.onClose), WithZones(panelZones()))
	_, cmd := m.Update(press(40, 3))
	if cmd != nil || len(rec.reasons) != 0 {
		t.Fatalf("expected closed panel to ignore pointer, got %v", rec.reasons)
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil || len(rec.reasons) != 0 {
		t.Fatalf("expected closed panel to ignore escape, got %v", rec.reasons)
	}
}

func TestInsidePressKeepsPanelOpen(t *testing.T) {
	rec := &closeRecorder{}
	m := newModel(t, WithOnClose(rec.onClose), WithZones(panelZones()))
	m.Open()
	m.Update(press(5, 0))
	if !m.IsOpen() || len(rec.reasons) != 0 {
		t.Fatalf("expected press inside panel to keep it open")
	}
}

func TestRowPressActivatesRow(t *testing.T) {
	m := newModel(t, WithZones(panelZones("home", "products", "about")))
	m.Open()
	m.Update(press(3, 3))
	if !m.IsExpanded("products") {
		t.Fatalf("expected press on products row to expand it")
	}
	if m.Selected() != "products" {
		t.Fatalf("expected cursor on products, got %q", m.Selected())
	}
}

func TestWheelIsNotAPress(t *testing.T) {
	rec := &closeRecorder{}
	m := newModel(t, WithOnClose(rec.onClose), WithZones(panelZones()))
	m.Open()
	m.Update(tea.MouseMsg{X: 40, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	m.Update(tea.MouseMsg{X: 40, Y: 3, Action: tea.MouseActionMotion})
	if len(rec.reasons) != 0 {
		t.Fatalf("expected wheel and motion to be ignored, got %v", rec.reasons)
	}
}

func TestEscapeInvokesOnClose(t *testing.T) {
	rec := &closeRecorder{}
	m := newModel(t, WithOnClose(rec.onClose))
	m.Open()
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if len(rec.reasons) != 1 || rec.reasons[0] != CloseEscape {
		t.Fatalf("expected one escape close, got %v", rec.reasons)
	}
}

func TestDefaultCloseEmitsClosedMsg(t *testing.T) {
	m := newModel(t)
	m.Open()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected close command")
	}
	msg, ok := cmd().(ClosedMsg)
	if !ok || msg.Reason != CloseEscape {
		t.Fatalf("expected ClosedMsg with escape reason, got %#v", msg)
	}
}

func TestHostCloseDoesNotInvokeCallback(t *testing.T) {
	rec := &closeRecorder{}
	m := newModel(t, WithOnClose(rec.onClose))
	m.Open()
	m.Close()
	if len(rec.reasons) != 0 {
		t.Fatalf("expected host close to skip callback, got %v", rec.reasons)
	}
	if m.ListenersAttached() {
		t.Fatalf("expected listeners removed on close")
	}
}

func TestTeardownIsIdempotent(t *testing.T) {
	rec := &closeRecorder{}
	m := newModel(t, WithOnClose(rec.onClose), WithZones(panelZones()))
	m.Open()
	m.Teardown()
	m.Teardown()
	if m.ListenersAttached() || m.IsOpen() {
		t.Fatalf("expected teardown to remove listeners")
	}
	m.Open()
	if m.IsOpen() {
		t.Fatalf("expected torn down sidebar to stay closed")
	}
	m.Update(press(40, 3))
	if len(rec.reasons) != 0 {
		t.Fatalf("expected no callbacks after teardown, got %v", rec.reasons)
	}
}

func TestEmptyForestRendersPlaceholder(t *testing.T) {
	m, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.Open()
	if len(m.Rows()) != 0 {
		t.Fatalf("expected no rows, got %d", len(m.Rows()))
	}
	if !strings.Contains(m.View(), placeholderText) {
		t.Fatalf("expected placeholder in view")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Cursor() != 0 {
		t.Fatalf("expected cursor to stay at 0, got %d", m.Cursor())
	}
}

func TestKeyboardNavigation(t *testing.T) {
	m := newModel(t)
	m.Open()
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Selected() != "products" {
		t.Fatalf("expected products selected, got %q", m.Selected())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if !m.IsExpanded("products") {
		t.Fatalf("expected right to expand")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Selected() != "electronics" {
		t.Fatalf("expected right on expanded branch to step into it, got %q", m.Selected())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Selected() != "products" {
		t.Fatalf("expected left on collapsed child to jump to parent, got %q", m.Selected())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.IsExpanded("products") {
		t.Fatalf("expected left on expanded branch to collapse")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	if m.Selected() != "about" {
		t.Fatalf("expected end to select about, got %q", m.Selected())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.Selected() != "home" {
		t.Fatalf("expected down to wrap to home, got %q", m.Selected())
	}
}

func TestCollapseMovesCursorToVisibleAncestor(t *testing.T) {
	m := newModel(t)
	m.Activate("products")
	m.Activate("electronics")
	m.moveCursorTo(menu.IndexOfRow(m.rows, "laptops"))
	m.Activate("products")
	if m.Selected() != "products" {
		t.Fatalf("expected cursor on products after collapse, got %q", m.Selected())
	}
}

func TestTypeaheadJumpsToMatch(t *testing.T) {
	m := newModel(t)
	m.Open()
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ab")})
	if m.Selected() != "about" {
		t.Fatalf("expected typeahead to select about, got %q", m.Selected())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	if m.Selected() != "products" {
		t.Fatalf("expected unmatched query to restart at products, got %q", m.Selected())
	}
}

func TestViewportFollowsCursor(t *testing.T) {
	m := newModel(t)
	m.Activate("products")
	m.Activate("electronics")
	m.SetSize(30, panelChrome+2)
	m.Open()
	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	start, end := m.window()
	if end-start != 2 || m.cursor < start || m.cursor >= end {
		t.Fatalf("expected cursor %d inside window [%d,%d)", m.cursor, start, end)
	}
}

func TestViewHiddenWhileClosed(t *testing.T) {
	m := newModel(t)
	if m.View() != "" {
		t.Fatalf("expected closed sidebar to render nothing")
	}
	m.Open()
	view := m.View()
	for _, label := range []string{"Menu", "Home", "Products", markerCollapsed} {
		if !strings.Contains(view, label) {
			t.Fatalf("expected %q in view", label)
		}
	}
}

func TestCloseGlyphInvokesOnClose(t *testing.T) {
	rec := &closeRecorder{}
	z := panelZones()
	z["sidebar:close"] = zones.Rect{X0: 18, Y0: 1, X1: 18, Y1: 1}
	m := newModel(t, WithOnClose(rec.onClose), WithZones(z))
	m.Open()
	m.Update(press(18, 1))
	if len(rec.reasons) != 1 || rec.reasons[0] != CloseButton {
		t.Fatalf("expected one button close, got %v", rec.reasons)
	}
}

func TestSetForestKeepsExpansionForSurvivingIDs(t *testing.T) {
	m := newModel(t)
	m.Activate("products")
	m.Activate("electronics")
	next := menu.Forest{
		{ID: "products", Label: "Shop", Children: []menu.Node{
			{ID: "books", Label: "Books", Link: "/books"},
		}},
	}
	if err := m.SetForest(next); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.IsExpanded("products") {
		t.Fatalf("expected products to stay expanded")
	}
	if m.IsExpanded("electronics") {
		t.Fatalf("expected removed node to drop its expansion")
	}
	got := strings.Join(rowIDs(m.Rows()), ",")
	if got != "products,books" {
		t.Fatalf("unexpected rows %s", got)
	}
	if err := m.SetForest(menu.Forest{{ID: "x"}, {ID: "x"}}); !errors.Is(err, menu.ErrDuplicateID) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if got := strings.Join(rowIDs(m.Rows()), ","); got != "products,books" {
		t.Fatalf("expected failed replace to keep rows, got %s", got)
	}
}

func TestUnmeasuredPanelDoesNotCloseOnPress(t *testing.T) {
	rec := &closeRecorder{}
	m := newModel(t, WithOnClose(rec.onClose))
	m.Open()
	m.Update(press(3, 2))
	if !m.IsOpen() || len(rec.reasons) != 0 {
		t.Fatalf("expected press before first render to keep panel open, got %v", rec.reasons)
	}
}

func TestDefaultZonesMeasureOwnView(t *testing.T) {
	rec := &closeRecorder{}
	m := newModel(t, WithOnClose(rec.onClose))
	t.Cleanup(m.Teardown)
	m.Open()
	if view := m.View(); !strings.Contains(view, "Products") {
		t.Fatalf("expected rendered rows, got %q", view)
	}
	deadline := time.Now().Add(2 * time.Second)
	for !m.zones.Known(m.panelZone()) || !m.zones.Known(m.rowZone("products")) {
		if time.Now().After(deadline) {
			t.Fatalf("expected default tracker to measure the panel")
		}
		time.Sleep(5 * time.Millisecond)
	}

	m.Update(press(3, 3))
	if !m.IsOpen() || len(rec.reasons) != 0 {
		t.Fatalf("expected row press to keep panel open, got %v", rec.reasons)
	}
	if !m.IsExpanded("products") {
		t.Fatalf("expected row press to expand products")
	}

	m.Update(press(60, 30))
	if len(rec.reasons) != 1 || rec.reasons[0] != CloseOutside {
		t.Fatalf("expected one outside close, got %v", rec.reasons)
	}
}

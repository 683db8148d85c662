package ui

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/atomicstack/popup-widgets/internal/backend"
	"github.com/atomicstack/popup-widgets/internal/logging"
	"github.com/atomicstack/popup-widgets/internal/menu"
	"github.com/atomicstack/popup-widgets/internal/toast"
	"github.com/atomicstack/popup-widgets/internal/zones"
)

type chanSource chan backend.Event

func (c chanSource) Events() <-chan backend.Event { return c }

func newWatchedModel(t *testing.T, src chanSource) *Model {
	t.Helper()
	ctx := toast.WithManager(context.Background(), toast.New(toast.WithDefaultDuration(0)))
	m, err := NewModel(ctx, Options{
		Forest:       testForest(),
		Zones:        zones.Fixed{},
		StaticCursor: true,
		Watcher:      src,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestBackendEventReplacesForest(t *testing.T) {
	src := make(chanSource, 1)
	m := newWatchedModel(t, src)
	m.Sidebar().Activate("docs")
	src <- backend.Event{Forest: menu.Forest{
		{ID: "docs", Label: "Docs", Children: []menu.Node{{ID: "api", Label: "API", Link: "/docs/api"}}},
	}}
	msg := m.Init()()
	_, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatalf("expected follow-up wait command")
	}
	rows := m.Sidebar().Rows()
	if len(rows) != 2 || rows[1].ID() != "api" {
		t.Fatalf("expected reloaded rows docs,api, got %d rows", len(rows))
	}
	if m.Toasts().Len() != 1 || m.Toasts().List()[0].Variant != toast.Info {
		t.Fatalf("expected reload info toast")
	}
	close(src)
	done := cmd()
	if _, ok := done.(backendDoneMsg); !ok {
		t.Fatalf("expected backendDoneMsg after close, got %#v", done)
	}
	m.Update(done)
	if m.backend != nil {
		t.Fatalf("expected backend cleared when channel closes")
	}
}

func TestBackendErrorKeepsMenu(t *testing.T) {
	logging.Configure(filepath.Join(t.TempDir(), "ui.log"))
	t.Cleanup(func() { logging.Configure("") })
	src := make(chanSource, 2)
	m := newWatchedModel(t, src)
	m.handleBackendEventMsg(backendEventMsg{event: backend.Event{Err: errors.New("bad yaml")}})
	if m.backendLastErr != "bad yaml" {
		t.Fatalf("expected error recorded, got %q", m.backendLastErr)
	}
	if len(m.Sidebar().Rows()) != 2 {
		t.Fatalf("expected previous menu to stay")
	}
	m.handleBackendEventMsg(backendEventMsg{event: backend.Event{Forest: menu.Forest{{ID: "a"}, {ID: "a"}}}})
	if m.backendLastErr == "" {
		t.Fatalf("expected invalid forest to be reported")
	}
	list := m.Toasts().List()
	if len(list) != 2 || list[0].Variant != toast.Error || list[1].Variant != toast.Error {
		t.Fatalf("expected two error toasts, got %+v", list)
	}
}

package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const menuYAML = `
- id: home
  label: Home
  link: /
- id: docs
  label: Docs
  children:
    - id: guide
      label: Guide
      link: /docs/guide
`

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("expected event, channel closed")
		}
		return evt
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for reload event")
	}
	return Event{}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	if err := os.WriteFile(path, []byte("- id: home\n  label: Home\n"), 0o644); err != nil {
		t.Fatalf("write menu: %v", err)
	}
	w, err := NewWatcher(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte(menuYAML), 0o644); err != nil {
		t.Fatalf("rewrite menu: %v", err)
	}
	evt := waitEvent(t, w)
	for evt.Err != nil || len(evt.Forest) != 2 {
		// a write can be observed before the file is complete
		evt = waitEvent(t, w)
	}
	if evt.Forest[1].ID != "docs" || len(evt.Forest[1].Children) != 1 {
		t.Fatalf("unexpected forest %+v", evt.Forest)
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	if err := os.WriteFile(path, []byte(menuYAML), 0o644); err != nil {
		t.Fatalf("write menu: %v", err)
	}
	w, err := NewWatcher(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() {
		w.Stop()
		w.Wait()
	}()
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}
	select {
	case evt := <-w.Events():
		t.Fatalf("expected no event for sibling file, got %+v", evt)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yaml")
	w, err := NewWatcher(path, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.Stop()
	w.Wait()
	if _, ok := <-w.Events(); ok {
		t.Fatalf("expected events channel closed after stop")
	}
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "menu.yaml"), 0); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

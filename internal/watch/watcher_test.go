package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "entries.json")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(target, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(100*time.Millisecond, target)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	if err := os.WriteFile(other, []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		if err := os.WriteFile(target, []byte(`[{"label":"x"}]`), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case got := <-w.Changes:
		if got != target {
			t.Errorf("change for %q, want %q", got, target)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	// The burst of writes is debounced into one event.
	select {
	case got := <-w.Changes:
		t.Errorf("unexpected second change for %q", got)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestNewDefaultsDebounce(t *testing.T) {
	w, err := New(0, "x.json")
	if err != nil {
		t.Fatal(err)
	}
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce = %v, want %v", w.debounce, DefaultDebounce)
	}
	w.watcher.Close()
}

package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}

func newStarted(t *testing.T, path string, calls *atomic.Int32) *Watcher {
	t.Helper()
	w, err := New(path, func() { calls.Add(1) })
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestWatcherDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bard.yaml")
	if err := os.WriteFile(path, []byte("blocks: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	newStarted(t, path, &calls)

	if err := os.WriteFile(path, []byte("blocks:\n  a:\n    cmd: date\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, func() bool { return calls.Load() > 0 }) {
		t.Fatal("change to config was not reported")
	}
}

func TestWatcherDetectsAtomicRename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bard.yaml")
	if err := os.WriteFile(path, []byte("blocks: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	newStarted(t, path, &calls)

	tmp := filepath.Join(dir, ".bard.yaml.tmp")
	if err := os.WriteFile(tmp, []byte("blocks: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, func() bool { return calls.Load() > 0 }) {
		t.Fatal("atomic save was not reported")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bard.yaml")
	if err := os.WriteFile(path, []byte("blocks: {}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	newStarted(t, path, &calls)

	if err := os.WriteFile(filepath.Join(dir, "daemon.yaml"), []byte("pid: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(4 * DefaultDebounce)
	if n := calls.Load(); n != 0 {
		t.Errorf("onChange called %d times for an unrelated file", n)
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bard.yaml")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	newStarted(t, path, &calls)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("blocks: {}\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if !waitFor(t, func() bool { return calls.Load() > 0 }) {
		t.Fatal("burst was not reported")
	}
	time.Sleep(4 * DefaultDebounce)
	if n := calls.Load(); n != 1 {
		t.Errorf("onChange called %d times for one burst, want 1", n)
	}
}

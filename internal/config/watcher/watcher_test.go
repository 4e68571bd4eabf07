package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestNew(t *testing.T) {
	w := New()
	if w.debounce != 100*time.Millisecond {
		t.Errorf("default debounce = %v, want 100ms", w.debounce)
	}

	w = New(WithDebounce(50 * time.Millisecond))
	if w.debounce != 50*time.Millisecond {
		t.Errorf("debounce = %v, want 50ms", w.debounce)
	}

	w = New(WithDebounce(-1))
	if w.debounce != 100*time.Millisecond {
		t.Errorf("negative debounce should be ignored, got %v", w.debounce)
	}
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		in   fsnotify.Op
		want Operation
		ok   bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRename, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, tt := range tests {
		got, ok := convertOp(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("convertOp(%v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "config.toml")
	b := filepath.Join(tmpDir, "config.yaml")

	w := New()
	for _, p := range []string{a, a, b} {
		if err := w.Watch(p); err != nil {
			t.Fatalf("Watch(%s) error = %v", p, err)
		}
	}
	if got := len(w.WatchedFiles()); got != 2 {
		t.Errorf("WatchedFiles() = %d, want 2", got)
	}
	if w.dirs[tmpDir] != 2 {
		t.Errorf("dir refcount = %d, want 2", w.dirs[tmpDir])
	}

	if err := w.Unwatch(a); err != nil {
		t.Fatal(err)
	}
	if err := w.Unwatch(b); err != nil {
		t.Fatal(err)
	}
	if len(w.dirs) != 0 {
		t.Errorf("dirs = %v, want empty", w.dirs)
	}
}

func TestWatcher_Queue(t *testing.T) {
	w := New(WithDebounce(time.Hour))
	w.running = true
	defer func() {
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	}()

	now := time.Now()
	tests := []struct {
		first, second, want Operation
	}{
		{OpCreate, OpWrite, OpCreate},
		{OpWrite, OpWrite, OpWrite},
		{OpWrite, OpRemove, OpRemove},
		{OpRemove, OpWrite, OpRemove},
		{OpRemove, OpCreate, OpCreate},
		{OpWrite, OpRename, OpRename},
	}
	for i, tt := range tests {
		path := filepath.Join("/cfg", string(rune('a'+i)))
		w.queue(Event{Path: path, Op: tt.first, Time: now})
		w.queue(Event{Path: path, Op: tt.second, Time: now.Add(time.Second)})
		got := w.pending[path]
		if got.Op != tt.want {
			t.Errorf("%v then %v = %v, want %v", tt.first, tt.second, got.Op, tt.want)
		}
		if !got.Time.Equal(now.Add(time.Second)) {
			t.Errorf("%v then %v kept time %v", tt.first, tt.second, got.Time)
		}
	}
}

func TestWatcher_DetectsWrite(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := New(WithDebounce(20 * time.Millisecond))
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	var events []Event
	got := make(chan struct{}, 16)
	w.OnChange(func(e Event) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
		got <- struct{}{}
	})
	w.OnChange(func(Event) { panic("handler failure") })

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()
	if !w.IsRunning() {
		t.Fatal("watcher should be running")
	}

	// Unwatched neighbours are ignored.
	if err := os.WriteFile(filepath.Join(tmpDir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-got:
	case <-time.After(5 * time.Second):
		t.Fatal("no change event received")
	}

	mu.Lock()
	defer mu.Unlock()
	for _, e := range events {
		if e.Path != path {
			t.Errorf("event for %s, want only %s", e.Path, path)
		}
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := New()
	if err := w.Watch(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); err != nil {
		t.Errorf("second Start() error = %v", err)
	}
	w.Stop()
	w.Stop()
	if w.IsRunning() {
		t.Error("watcher should be stopped")
	}
}

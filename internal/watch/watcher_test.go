package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcherTriggersOnChange(t *testing.T) {
	dir := t.TempDir()
	changes := make(chan []string, 4)

	w := New(Config{Paths: []string{dir}, Debounce: 50 * time.Millisecond}, func(_ context.Context, changed []string) error {
		changes <- changed
		return nil
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("watcher exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher never became ready")
	}

	target := filepath.Join(dir, "page.md")
	if err := os.WriteFile(target, []byte("# Page"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case changed := <-changes:
		if !slices.Contains(changed, target) {
			t.Fatalf("expected %s in %v", target, changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("expected a trigger after writing a file")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil on cancellation, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherRejectsMissingPaths(t *testing.T) {
	noop := func(context.Context, []string) error { return nil }

	if err := New(Config{}, noop, nil).Run(context.Background()); !errors.Is(err, errNoPaths) {
		t.Fatalf("expected errNoPaths, got %v", err)
	}
	missing := filepath.Join(t.TempDir(), "missing")
	if err := New(Config{Paths: []string{missing}}, noop, nil).Run(context.Background()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestWatcherRelevance(t *testing.T) {
	root := t.TempDir()
	content := filepath.Join(root, "content")
	template := filepath.Join(root, "template.html")
	w := New(Config{}, nil, nil)
	w.dirs = []string{content}
	w.files[template] = struct{}{}

	cases := map[string]bool{
		filepath.Join(content, "a.md"):         true,
		filepath.Join(content, "blog", "b.md"): true,
		template:                               true,
		filepath.Join(root, "other.html"):      false,
		content + "-old":                       false,
	}
	for name, want := range cases {
		if got := w.relevant(name); got != want {
			t.Fatalf("relevant(%s) = %v, want %v", name, got, want)
		}
	}
}

func TestWatcherIgnoresChmod(t *testing.T) {
	dir := t.TempDir()
	w := New(Config{}, nil, nil)
	w.dirs = []string{dir}

	if w.handleEvent(nil, fsnotify.Event{Name: filepath.Join(dir, "a.md"), Op: fsnotify.Chmod}) {
		t.Fatal("expected chmod-only events to be ignored")
	}
	if !w.handleEvent(nil, fsnotify.Event{Name: filepath.Join(dir, "a.md"), Op: fsnotify.Write}) {
		t.Fatal("expected write events to schedule a rebuild")
	}
}

func TestNewAppliesDefaultDebounce(t *testing.T) {
	w := New(Config{}, nil, nil)
	if w.cfg.Debounce != DefaultDebounce {
		t.Fatalf("expected default debounce, got %s", w.cfg.Debounce)
	}
}

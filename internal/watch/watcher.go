// Package watch rebuilds a site when its sources change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/goliatone/go-mdsite/internal/logging"
	"github.com/goliatone/go-mdsite/pkg/interfaces"
)

// DefaultDebounce is used when Config.Debounce is not positive.
const DefaultDebounce = 200 * time.Millisecond

var errNoPaths = errors.New("watch: at least one path is required")

// Trigger is invoked with the sorted set of paths changed since the last run.
// A returned error is logged; watching continues.
type Trigger func(ctx context.Context, changed []string) error

// Config lists what to watch. Directories are watched recursively; files are
// watched through their parent directory.
type Config struct {
	Paths    []string
	Debounce time.Duration
}

// Watcher coalesces filesystem events into debounced Trigger calls.
type Watcher struct {
	cfg     Config
	trigger Trigger
	logger  interfaces.Logger
	dirs    []string
	files   map[string]struct{}
	ready   chan struct{}
}

// New constructs a Watcher. A nil logger disables logging.
func New(cfg Config, trigger Trigger, logger interfaces.Logger) *Watcher {
	if logger == nil {
		logger = logging.NoOp()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	return &Watcher{
		cfg:     cfg,
		trigger: trigger,
		logger:  logger,
		files:   map[string]struct{}{},
		ready:   make(chan struct{}),
	}
}

// Ready is closed once every path is registered and events are being read.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	if w.trigger == nil {
		return errors.New("watch: trigger is required")
	}
	if len(w.cfg.Paths) == 0 {
		return errNoPaths
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	defer fw.Close()

	for _, p := range w.cfg.Paths {
		if err := w.register(fw, p); err != nil {
			return err
		}
	}
	w.logger.Info("watch.started", "paths", w.cfg.Paths, "debounce", w.cfg.Debounce)
	close(w.ready)

	pending := map[string]struct{}{}
	timer := time.NewTimer(w.cfg.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch.stopped")
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.handleEvent(fw, event) {
				continue
			}
			pending[filepath.Clean(event.Name)] = struct{}{}
			timer.Reset(w.cfg.Debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch.error", "error", err)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = map[string]struct{}{}

			w.logger.Debug("watch.trigger", "changed", len(changed))
			if err := w.trigger(ctx, changed); err != nil {
				w.logger.Error("watch.trigger.failed", "error", err)
			}
		}
	}
}

// handleEvent registers new directories and reports whether the event
// should schedule a rebuild.
func (w *Watcher) handleEvent(fw *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if !w.relevant(event.Name) {
		return false
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(fw, event.Name); err != nil {
				w.logger.Warn("watch.add_failed", "path", event.Name, "error", err)
			}
		}
	}
	return true
}

func (w *Watcher) register(fw *fsnotify.Watcher, p string) error {
	clean := filepath.Clean(strings.TrimSpace(p))
	info, err := os.Stat(clean)
	if err != nil {
		return fmt.Errorf("watch: %s: %w", clean, err)
	}
	if info.IsDir() {
		w.dirs = append(w.dirs, clean)
		return w.addTree(fw, clean)
	}
	w.files[clean] = struct{}{}
	if err := fw.Add(filepath.Dir(clean)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(clean), err)
	}
	return nil
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(current string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fw.Add(current); err != nil {
			return fmt.Errorf("watch: add %s: %w", current, err)
		}
		return nil
	})
}

func (w *Watcher) relevant(name string) bool {
	clean := filepath.Clean(name)
	if _, ok := w.files[clean]; ok {
		return true
	}
	for _, dir := range w.dirs {
		if clean == dir || strings.HasPrefix(clean, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

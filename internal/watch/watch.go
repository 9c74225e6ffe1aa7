// Package watch recompiles a source tree whenever it changes.
//
// Filesystem events are debounced, and compiles never overlap: while one runs,
// further requests collapse into a single pending rerun.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/doccompile/internal/logfields"
	"git.home.luguber.info/inful/doccompile/internal/metrics"
)

// CompileFunc performs one compile run.
type CompileFunc func(ctx context.Context) error

// Watcher drives CompileFunc from filesystem events below a root.
type Watcher struct {
	root     string
	compile  CompileFunc
	debounce time.Duration
	recorder metrics.Recorder
	logger   *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet window after the last event before a compile.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithRecorder sets the recorder counting triggered compiles.
func WithRecorder(r metrics.Recorder) Option {
	return func(w *Watcher) {
		if r != nil {
			w.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher for root.
func New(root string, compile CompileFunc, options ...Option) *Watcher {
	w := &Watcher{
		root:     root,
		compile:  compile,
		debounce: 300 * time.Millisecond,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// Run compiles once, then recompiles on changes until ctx is done. Compile
// errors are logged and do not stop the loop. Run returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := addDirsRecursive(fsw, w.root, w.logger); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}

	sched := newScheduler()
	deb := newDebouncer(w.debounce, func() {
		w.recorder.IncWatchTrigger()
		sched.request()
	})
	defer deb.stop()

	workerCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sched.run(workerCtx, w.runOnce)
	}()
	defer wg.Wait()
	defer cancel()

	sched.request()
	w.logger.Info("Watching for changes", logfields.Path(w.root))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping watch")
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev, deb)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	if err := w.compile(ctx); err != nil && ctx.Err() == nil {
		w.logger.Warn("Compile failed; waiting for changes", logfields.Error(err))
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, deb *debouncer) {
	if ShouldIgnore(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(fsw, ev.Name, w.logger)
		}
	}
	w.logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	deb.trigger()
}

func addDirsRecursive(fsw *fsnotify.Watcher, root string, logger *slog.Logger) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := fsw.Add(path); err != nil {
				logger.Warn("Watch add failed", logfields.Path(path), logfields.Error(err))
			}
		}
		return nil
	})
}

// ShouldIgnore reports whether a change to path is noise: hidden files,
// editor swap and backup files, and OS metadata files.
func ShouldIgnore(path string) bool {
	base := filepath.Base(path)

	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db" || base == "4913" // vim checks directory writability with this name
}

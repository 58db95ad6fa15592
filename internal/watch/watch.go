// Package watch reloads the store when another process rewrites the
// snapshot file.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/marcus/nexaflow/internal/logging"
)

// Source is the on-disk snapshot being watched: the JSON file or the
// SQLite database. Stale reports whether it differs from what this process
// last read or wrote.
type Source interface {
	Path() string
	Stale() (bool, error)
}

// Reloader re-reads the snapshot into memory.
type Reloader interface {
	Reload() error
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the watcher's logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// Watcher follows the snapshot's directory and reloads on foreign writes.
type Watcher struct {
	src      Source
	target   Reloader
	fsw      *fsnotify.Watcher
	debounce time.Duration
	log      *slog.Logger

	trigger  chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a watcher. Call Start to begin watching.
func New(src Source, target Reloader, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	w := &Watcher{
		src:      src,
		target:   target,
		fsw:      fsw,
		debounce: 150 * time.Millisecond,
		log:      logging.Discard(),
		trigger:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start watches the directory holding the snapshot. Renames into the
// directory are how atomic saves land, so the file itself is not watched.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.src.Path())
	if err := w.fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.log.Debug("watching snapshot", logging.Path(w.src.Path()))

	w.wg.Add(2)
	go w.eventLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Stop ends both loops and closes the file watcher.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stop)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) eventLoop(ctx context.Context) {
	defer w.wg.Done()
	name := filepath.Base(w.src.Path())
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// SQLite in WAL mode writes to the -wal file first
			if base := filepath.Base(ev.Name); base != name && base != name+"-wal" {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.poke()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", logging.Err(err))
		}
	}
}

func (w *Watcher) poke() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	defer w.wg.Done()
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.stop:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-w.trigger:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			w.reloadIfStale()
		}
	}
}

func (w *Watcher) reloadIfStale() {
	stale, err := w.src.Stale()
	if err != nil {
		w.log.Warn("checking snapshot", logging.Path(w.src.Path()), logging.Err(err))
		return
	}
	if !stale {
		return
	}
	if err := w.target.Reload(); err != nil {
		w.log.Error("reload snapshot", logging.Err(err))
		return
	}
	w.log.Info("snapshot reloaded after external change", logging.Path(w.src.Path()))
}

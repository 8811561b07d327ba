// Package watch reports changes to a single file, such as the webpack options
// file, so the config can be re-rendered or reloaded.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 100 * time.Millisecond

// Watcher watches one file. The parent directory is watched rather than the
// file itself so that editors replacing the file by rename are still seen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *zap.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long to wait for a burst of events to settle.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger for watch errors.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// New starts watching path.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: defaultDebounce,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run calls onChange after each settled burst of writes to the watched file,
// until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	var (
		timer  *time.Timer
		settle <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			settle = timer.C

		case <-settle:
			settle = nil
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.String("path", w.path), zap.Error(err))
		}
	}
}

// Path is the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

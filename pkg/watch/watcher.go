// Package watch reloads a host document whenever its file changes on disk.
// Changes are applied as attribute mutations, so elements that survive a
// reload keep their identity and re-render once per burst of edits.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/goliatone/go-cardkit/pkg/host"
)

// DefaultDebounce collapses the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Option customises a Watcher.
type Option func(*Watcher)

// WithLogger injects a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce sets how long the file must stay quiet before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// OnChange is called after every successful reload with the flushed host
// state.
func OnChange(fn func(host.Snapshot)) Option {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// OnError is called when a reload fails. The previous page stays mounted.
func OnError(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// Watcher ties a document file to a host.
type Watcher struct {
	mu       sync.Mutex
	path     string
	host     *host.Host
	logger   *zap.Logger
	debounce time.Duration
	onChange func(host.Snapshot)
	onError  func(error)

	fsw     *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
	reloads int
}

// New prepares a watcher for path. Nothing is watched until Start.
func New(path string, h *host.Host, options ...Option) (*Watcher, error) {
	if h == nil {
		return nil, errors.New("watch: host is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve %s: %w", path, err)
	}
	w := &Watcher{
		path:     abs,
		host:     h,
		logger:   zap.NewNop(),
		debounce: DefaultDebounce,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Reloads counts successful reloads.
func (w *Watcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

// Reload reads the document, applies it to the host and flushes the render
// queue.
func (w *Watcher) Reload() error {
	doc, err := host.LoadFile(w.path)
	if err != nil {
		return w.fail(err)
	}
	if err := w.host.Apply(doc); err != nil {
		return w.fail(err)
	}
	rendered := w.host.Flush()

	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()

	w.logger.Info("document reloaded",
		zap.String("path", w.path),
		zap.Int("elements", len(doc.Elements)),
		zap.Int("renders", rendered),
	)
	if w.onChange != nil {
		w.onChange(w.host.Snapshot())
	}
	return nil
}

func (w *Watcher) fail(err error) error {
	w.logger.Warn("reload failed", zap.String("path", w.path), zap.Error(err))
	if w.onError != nil {
		w.onError(err)
	}
	return err
}

// Start begins watching the document's directory. It is non-blocking and
// returns once the watch is registered. Calling Start twice is a no-op.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: create watcher: %w", err)
	}
	// Watching the directory survives editors that replace the file on save.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(w.path), err)
	}

	w.fsw = fsw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	w.logger.Debug("watching document", zap.String("path", w.path), zap.Duration("debounce", w.debounce))
	go w.run(ctx, fsw, w.stopCh, w.doneCh)
	return nil
}

// Stop ends the watch and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stopCh, doneCh, fsw := w.stopCh, w.doneCh, w.fsw
	w.mu.Unlock()

	close(stopCh)
	<-doneCh
	if err := fsw.Close(); err != nil {
		w.logger.Warn("closing watcher", zap.Error(err))
	}
	w.logger.Debug("watcher stopped", zap.String("path", w.path))
}

// Done is closed when the event loop exits, including on context
// cancellation.
func (w *Watcher) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doneCh
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("document event", zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.Error(err))
		case <-timer.C:
			_ = w.Reload()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

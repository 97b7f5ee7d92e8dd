// Package watcher notices config edits made to the local document by
// other processes, such as a CLI invocation while the daemon runs.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/MrSnakeDoc/navsync/internal/logger"
	"github.com/MrSnakeDoc/navsync/internal/store"
	"github.com/fsnotify/fsnotify"
)

// Watcher calls onConfigChange when the document's config timestamp moves
// forward on disk. Stats-only writes are ignored.
type Watcher struct {
	store          store.Store
	path           string
	onConfigChange func()
	ignore         func(ts int64) bool

	lastConfigTS int64
	ready        chan struct{}
	readyOnce    sync.Once
}

type Option func(*Watcher)

// WithIgnore skips config timestamps for which fn returns true, such as
// the ones written by a sync pull rather than a local edit.
func WithIgnore(fn func(ts int64) bool) Option {
	return func(w *Watcher) { w.ignore = fn }
}

func New(st store.Store, onConfigChange func(), opts ...Option) *Watcher {
	w := &Watcher{
		store:          st,
		path:           filepath.Clean(st.DocumentPath()),
		onConfigChange: onConfigChange,
		ready:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ready is closed once the watch is in place.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	// The document is replaced by rename, so the directory is watched
	// rather than the file itself.
	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	if doc, err := w.store.LoadDocument(ctx); err == nil {
		w.lastConfigTS = doc.UpdateTimestamp
	}
	w.readyOnce.Do(func() { close(w.ready) })
	logger.Debug("watcher: watching %s", w.path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			w.check(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		}
	}
}

func (w *Watcher) check(ctx context.Context) {
	doc, err := w.store.LoadDocument(ctx)
	if err != nil {
		logger.Debug("watcher: document not readable yet: %v", err)
		return
	}
	if doc.UpdateTimestamp <= w.lastConfigTS {
		return
	}
	prev := w.lastConfigTS
	w.lastConfigTS = doc.UpdateTimestamp
	if w.ignore != nil && w.ignore(doc.UpdateTimestamp) {
		logger.Debug("watcher: config %d was written by sync, ignoring", doc.UpdateTimestamp)
		return
	}
	logger.Debug("watcher: config changed on disk (%d -> %d)", prev, doc.UpdateTimestamp)
	if w.onConfigChange != nil {
		w.onConfigChange()
	}
}

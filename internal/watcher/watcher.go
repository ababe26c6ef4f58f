// file: internal/watcher/watcher.go
// version: 1.2.0
// guid: 4c5d6e7f-8a9b-0c1d-2e3f-4a5b6c7d8e9f

// Package watcher rescans a source tree whenever new material lands in it.
package watcher

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long the tree must stay quiet before a rescan
// fires. Copies of multi-file audiobooks arrive over many seconds, so a
// short debounce would trigger on a half-copied book.
const DefaultSettle = 30 * time.Second

// Watcher triggers a callback after filesystem activity under a root has
// settled.
type Watcher struct {
	root   string
	settle time.Duration
	fn     func()
	fsw    *fsnotify.Watcher
}

// New builds a watcher over root. fn runs once per burst of activity,
// after settle of quiet. A non-positive settle uses DefaultSettle.
func New(root string, settle time.Duration, fn func()) (*Watcher, error) {
	if settle <= 0 {
		settle = DefaultSettle
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{root: root, settle: settle, fn: fn, fsw: fsw}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks, dispatching rescans until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.settle)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				// New directories need their own watches for the files
				// that will land inside them.
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						log.Printf("[WARN] cannot watch %s: %v", ev.Name, err)
					}
				}
			}
			if armed && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.settle)
			armed = true
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("[WARN] watch error: %v", err)
		case <-timer.C:
			armed = false
			w.fn()
		}
	}
}

// addTree registers root and every directory below it.
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

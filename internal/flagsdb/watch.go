package flagsdb

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/cxcomplete/internal/debug"
)

// Watcher reloads a DB whenever its backing compile_commands.json
// changes on disk, debouncing rapid edits the way the teacher's
// internal/indexing.FileWatcher debounces source-tree events.
type Watcher struct {
	db      *DB
	watcher *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	debounce time.Duration
}

// NewWatcher creates a Watcher for db, watching the directory
// containing its compilation database (fsnotify watches directories,
// not bare files, so edits that replace the file via rename are still
// observed).
func NewWatcher(db *DB, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{db: db, watcher: fw, ctx: ctx, cancel: cancel, debounce: debounce}, nil
}

// Start begins watching db's directory and reloading on change.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.db.dbPath)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.wg.Add(1)
	go w.run()
	return nil
}

// Stop stops the watcher and joins its goroutine.
func (w *Watcher) Stop() {
	w.cancel()
	w.watcher.Close()
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.db.dbPath) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			if err := w.db.Reload(); err != nil {
				debug.LogCache("flagsdb: reload failed: %v", err)
			} else {
				debug.LogCache("flagsdb: reloaded %s", w.db.dbPath)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			debug.LogCache("flagsdb: watch error: %v", err)
		}
	}
}

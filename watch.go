package argroute

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher re-checks route-set files whenever they change on disk. Reports
// are delivered through the onReport callback; the watcher itself only logs
// lifecycle events.
type Watcher struct {
	watcher    *fsnotify.Watcher
	logger     *zap.Logger
	onReport   func(path string, reports []PatternReport)
	isWatching bool
}

// NewWatcher returns a watcher delivering re-check results to onReport.
func NewWatcher(logger *zap.Logger, onReport func(path string, reports []PatternReport)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  fsw,
		logger:   logger,
		onReport: onReport,
	}, nil
}

// Add registers a file or directory tree with the watcher.
func (w *Watcher) Add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(path)
	}
	return filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return w.watcher.Add(p)
		}
		return nil
	})
}

// Start begins delivering events. It returns immediately; the watch loop
// runs on its own goroutine until Stop is called.
func (w *Watcher) Start() error {
	if w.isWatching {
		return fmt.Errorf("already watching")
	}
	w.isWatching = true
	go w.watchLoop()
	return nil
}

// Stop ends the watch loop and closes the underlying watcher.
func (w *Watcher) Stop() error {
	w.isWatching = false
	return w.watcher.Close()
}

func (w *Watcher) watchLoop() {
	for w.isWatching {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".routes.yaml") && !strings.HasSuffix(event.Name, ".routes.yml") {
		return
	}

	// Editors often fire several writes in quick succession; give the file
	// a moment to settle and treat them as one change.
	time.Sleep(100 * time.Millisecond)

	reports, err := CheckFile(event.Name)
	if err != nil {
		w.logger.Error("error re-checking route set", zap.String("path", event.Name), zap.Error(err))
		return
	}
	w.onReport(event.Name, reports)
}

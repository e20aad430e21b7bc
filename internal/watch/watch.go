// Package watch re-runs a scan whenever Markdown content under a root
// directory changes.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// ScanFunc runs one scan pass. It receives a run id for log correlation and
// is invoked once at startup, then again after every debounced change.
type ScanFunc func(runID string)

// Watcher monitors a directory tree and triggers scans on change.
type Watcher struct {
	root         string
	scan         ScanFunc
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
}

// New creates a watcher rooted at root.
func New(root string, scan ScanFunc) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve watch root: %w", err)
	}

	return &Watcher{
		root:         absRoot,
		scan:         scan,
		watcher:      fsw,
		debounceTime: 500 * time.Millisecond, // Debounce rapid file changes
	}, nil
}

// Run performs an initial scan, then blocks re-scanning on changes until ctx
// is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.addRecursive(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	slog.Info("Watching for changes", "root", w.root)

	w.runScan()

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return w.watcher.Close()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				// New subdirectories need their own watches.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						slog.Warn("Failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
			}
			if !relevant(event) {
				continue
			}
			slog.Debug("Change detected", "file", event.Name, "op", event.Op.String())
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.debounceTime, w.runScan)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) runScan() {
	runID := uuid.NewString()
	slog.Info("Starting scan", "run_id", runID, "root", w.root)
	w.scan(runID)
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// relevant reports whether an event should trigger a re-scan. Only Markdown
// content changes qualify.
func relevant(event fsnotify.Event) bool {
	const ops = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename
	if event.Op&ops == 0 {
		return false
	}
	return strings.EqualFold(filepath.Ext(event.Name), ".md")
}

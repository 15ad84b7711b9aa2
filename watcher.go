package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultWatchDebounce = 200 * time.Millisecond

// SourceWatcher reports changed source files under a directory tree, batching
// changes that arrive within the debounce window.
type SourceWatcher struct {
	fsWatcher  *fsnotify.Watcher
	debounce   time.Duration
	exclude    []PathMatcher
	onChange   func([]string)
	callbackMu sync.Mutex

	pending   map[string]struct{}
	pendingMu sync.Mutex
	timer     *time.Timer
}

func NewSourceWatcher(debounce time.Duration, exclude []PathMatcher, onChange func(changed []string)) (*SourceWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultWatchDebounce
	}
	return &SourceWatcher{
		fsWatcher: fsw,
		debounce:  debounce,
		exclude:   exclude,
		onChange:  onChange,
		pending:   make(map[string]struct{}),
	}, nil
}

func (w *SourceWatcher) shouldSkipDir(path string) bool {
	if _, skipped := alwaysSkippedDirs[filepath.Base(path)]; skipped {
		return true
	}
	return MatchesAnyPathMatcher(path, w.exclude)
}

func (w *SourceWatcher) shouldSkipFile(path string) bool {
	return !hasSourceExtension(path) || MatchesAnyPathMatcher(path, w.exclude)
}

func (w *SourceWatcher) watchRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && w.shouldSkipDir(path) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

// Run watches root until ctx is cancelled.
func (w *SourceWatcher) Run(ctx context.Context, root string) error {
	if err := w.watchRecursive(root); err != nil {
		return err
	}
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !w.shouldSkipDir(event.Name) {
						if err := w.watchRecursive(event.Name); err != nil {
							log.WithError(err).WithField("path", event.Name).Warn("failed to watch new directory")
						}
					}
					continue
				}
			}

			if w.shouldSkipFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.scheduleChange(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Error("watcher error")
		}
	}
}

func (w *SourceWatcher) scheduleChange(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[NormalizePathForInternal(path)] = struct{}{}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flushChanges)
}

func (w *SourceWatcher) flushChanges() {
	w.pendingMu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}
	slices.Sort(paths)

	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	w.onChange(paths)
}

func (w *SourceWatcher) close() {
	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()
	_ = w.fsWatcher.Close()
}

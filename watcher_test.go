package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func TestSourceWatcherDebouncesChanges(t *testing.T) {
	changes := make(chan []string, 4)
	watcher, err := NewSourceWatcher(50*time.Millisecond, nil, func(changed []string) {
		changes <- changed
	})
	assert.NilError(t, err)
	defer watcher.close()

	watcher.scheduleChange("/p/b.ts")
	watcher.scheduleChange("/p/a.ts")
	watcher.scheduleChange("/p/b.ts")

	select {
	case changed := <-changes:
		assert.DeepEqual(t, changed, []string{"/p/a.ts", "/p/b.ts"})
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for debounced change")
	}

	select {
	case changed := <-changes:
		t.Fatalf("unexpected second batch %v", changed)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestSourceWatcherFilters(t *testing.T) {
	exclude, err := CreatePathMatchers([]string{"**/*.test.ts", "generated"}, "/p")
	assert.NilError(t, err)
	watcher, err := NewSourceWatcher(0, exclude, func([]string) {})
	assert.NilError(t, err)
	defer watcher.close()

	assert.Assert(t, !watcher.shouldSkipFile("/p/src/a.ts"))
	assert.Assert(t, watcher.shouldSkipFile("/p/src/a.test.ts"))
	assert.Assert(t, watcher.shouldSkipFile("/p/src/styles.css"))
	assert.Assert(t, watcher.shouldSkipDir("/p/node_modules"))
	assert.Assert(t, watcher.shouldSkipDir("/p/src/generated"))
	assert.Assert(t, !watcher.shouldSkipDir("/p/src"))
}

func TestSourceWatcherReportsWrites(t *testing.T) {
	root := t.TempDir()
	writeFixtureFiles(t, root, map[string]string{"src/a.ts": "export const a = 1"})
	target := filepath.Join(root, "src", "a.ts")

	changes := make(chan []string, 16)
	watcher, err := NewSourceWatcher(20*time.Millisecond, nil, func(changed []string) {
		changes <- changed
	})
	assert.NilError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx, root) }()

	// keep writing until the watch is registered and an event comes through
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	var changed []string
	for changed == nil {
		select {
		case changed = <-changes:
		case <-ticker.C:
			assert.NilError(t, os.WriteFile(target, []byte("export const a = 2"), 0644))
		case <-deadline:
			t.Fatal("timed out waiting for write event")
		}
	}
	assert.DeepEqual(t, changed, []string{NormalizePathForInternal(target)})

	cancel()
	assert.NilError(t, <-done)
}

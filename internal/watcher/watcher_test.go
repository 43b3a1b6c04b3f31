package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/pagedeck/internal/watcher"
)

func startWatcher(t *testing.T, dir string) <-chan struct{} {
	t.Helper()
	cfg := watcher.DefaultConfig(dir)
	cfg.DebounceDur = 50 * time.Millisecond

	w, err := watcher.New(cfg)
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "tour.yaml")
	require.NoError(t, os.WriteFile(scriptPath, []byte("id: tour"), 0o644))

	onChange := startWatcher(t, dir)

	// Rapid writes should coalesce into a single notification
	for i := range 10 {
		require.NoError(t, os.WriteFile(scriptPath, []byte(fmt.Sprintf("id: tour%d", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(300 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	otherPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(otherPath, []byte("initial"), 0o644))

	onChange := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(otherPath, []byte("changed"), 0o644))

	select {
	case <-onChange:
		t.Fatal("should not notify for non-script files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_NotifiesOnCreateAndRemove(t *testing.T) {
	dir := t.TempDir()
	onChange := startWatcher(t, dir)

	path := filepath.Join(dir, "NEW.YML")
	require.NoError(t, os.WriteFile(path, []byte("id: new"), 0o644))

	select {
	case <-onChange:
	case <-time.After(300 * time.Millisecond):
		t.Fatal("expected notification for new script file")
	}

	require.NoError(t, os.Remove(path))

	select {
	case <-onChange:
	case <-time.After(300 * time.Millisecond):
		t.Fatal("expected notification for removed script file")
	}
}

func TestWatcher_StartOnMissingDir(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.Error(t, err)
}

func TestWatcher_Stop(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(t.TempDir()))
	require.NoError(t, err)

	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop())
		assert.NoError(t, w.Stop(), "second Stop is a no-op")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/scripts")

	assert.Equal(t, "/scripts", cfg.Dir)
	assert.Equal(t, []string{".yaml", ".yml"}, cfg.Extensions)
	assert.Equal(t, 250*time.Millisecond, cfg.DebounceDur)
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NoDirectories(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")}, func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no watchable directories")
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	var calls atomic.Int32

	w, err := New([]string{dir}, func() { calls.Add(1) }, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	path := filepath.Join(dir, "versions-index.json")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte(`{"versionFiles":[]}`), 0o644))
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_IgnoresOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "changelog.html")
	var calls atomic.Int32

	w, err := New([]string{dir}, func() { calls.Add(1) },
		WithDebounce(20*time.Millisecond), WithIgnore(out))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = w.Run(ctx) }()
	defer cancel()

	require.NoError(t, os.WriteFile(out, []byte("<html></html>"), 0o644))
	time.Sleep(200 * time.Millisecond)

	assert.Zero(t, calls.Load())
}

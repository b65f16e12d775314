package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcher_DebouncesPerDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "vacation"), 0o755))

	changes := make(chan string, 10)
	w, err := NewWatcher(root, 50*time.Millisecond, func(rel string) { changes <- rel }, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Wait for the initial watches to be registered
	require.Eventually(t, func() bool { return len(w.watcher.WatchList()) == 2 }, 5*time.Second, 10*time.Millisecond)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "vacation", "a.jpg"), []byte{byte(i)}, 0o644))
	}

	select {
	case rel := <-changes:
		assert.Equal(t, "vacation", rel)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	// The burst collapsed into one callback
	select {
	case rel := <-changes:
		t.Fatalf("unexpected second change for %q", rel)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

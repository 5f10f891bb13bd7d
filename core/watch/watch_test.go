package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcher_NotifiesOnWatchedFile(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 4)

	w := New(dir, []string{"ServerConfig.toml"}, func() { changed <- struct{}{} }, zap.NewNop())
	w.SetDebounce(20 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ServerConfig.toml"), []byte("[General]\n"), 0o644))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("expected change notification")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 4)

	w := New(dir, []string{"BeamMP-Server.exe"}, func() { changed <- struct{}{} }, zap.NewNop())
	w.SetDebounce(20 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Server.log"), []byte("hello"), 0o644))

	select {
	case <-changed:
		t.Fatal("unexpected notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), nil, func() {}, zap.NewNop())
	require.Error(t, w.Start(context.Background()))
	require.NoError(t, w.Close())
}

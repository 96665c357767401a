package viewer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func nextEvent(t *testing.T, w *Watcher, kind ModelEventKind) ModelEvent {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Kind == kind {
				return ev
			}
		case <-timeout:
			t.Fatalf("no event of kind %d", kind)
		}
	}
}

func TestWatcherReportsModelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, []string{".obj"})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	path := filepath.Join(dir, "model.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\n"), 0o644))

	ev := nextEvent(t, w, ModelChanged)
	require.Equal(t, path, ev.Path)

	require.NoError(t, os.Remove(path))
	ev = nextEvent(t, w, ModelRemoved)
	require.Equal(t, path, ev.Path)
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), []string{".obj"})
	require.Error(t, err)
}

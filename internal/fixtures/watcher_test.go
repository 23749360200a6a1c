package fixtures

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/gridlex/internal/model"
)

func TestWatcher(t *testing.T) {
	t.Run("reloads on write", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "data.yaml")
		require.NoError(t, os.WriteFile(path, []byte("contacts: []\n"), 0644))

		var got atomic.Int32
		w, err := NewWatcher(path, func(data model.Dataset) {
			got.Store(int32(data.Len()))
		}, nil)
		require.NoError(t, err)
		defer w.Close()
		require.NoError(t, w.Start())

		time.Sleep(50 * time.Millisecond)
		require.NoError(t, os.WriteFile(path, []byte("contacts:\n  - id: c1\n  - id: c2\n"), 0644))

		assert.Eventually(t, func() bool { return got.Load() == 2 }, 2*time.Second, 20*time.Millisecond)
	})

	t.Run("debounces bursts", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "data.yaml")
		require.NoError(t, os.WriteFile(path, []byte("contacts: []\n"), 0644))

		var calls atomic.Int32
		w, err := NewWatcher(path, func(model.Dataset) { calls.Add(1) }, nil)
		require.NoError(t, err)
		w.debounceInterval = 200 * time.Millisecond
		defer w.Close()
		require.NoError(t, w.Start())

		time.Sleep(50 * time.Millisecond)
		for i := 0; i < 5; i++ {
			require.NoError(t, os.WriteFile(path, []byte("contacts: []\n"), 0644))
			time.Sleep(10 * time.Millisecond)
		}

		time.Sleep(500 * time.Millisecond)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("ignores other files and bad data", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "data.yaml")
		require.NoError(t, os.WriteFile(path, []byte("contacts: []\n"), 0644))

		var calls atomic.Int32
		w, err := NewWatcher(path, func(model.Dataset) { calls.Add(1) }, nil)
		require.NoError(t, err)
		defer w.Close()
		require.NoError(t, w.Start())

		time.Sleep(50 * time.Millisecond)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0644))
		require.NoError(t, os.WriteFile(path, []byte("contacts: [\n"), 0644))

		time.Sleep(300 * time.Millisecond)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("no reload after close", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.yaml")
		require.NoError(t, os.WriteFile(path, []byte("contacts:\n  - id: c1\n"), 0644))

		var calls atomic.Int32
		w, err := NewWatcher(path, func(model.Dataset) { calls.Add(1) }, nil)
		require.NoError(t, err)
		require.NoError(t, w.Start())

		w.doReload()
		require.Equal(t, int32(1), calls.Load())

		w.Close()
		// A timer that fired just before Close runs doReload late.
		w.doReload()
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("close without start", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.yaml")
		w, err := NewWatcher(path, func(model.Dataset) {}, nil)
		require.NoError(t, err)

		done := make(chan struct{})
		go func() {
			w.Close()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Close blocked on a watcher that never started")
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.yaml")
		require.NoError(t, os.WriteFile(path, nil, 0644))
		w, err := NewWatcher(path, func(model.Dataset) {}, nil)
		require.NoError(t, err)
		require.NoError(t, w.Start())
		w.Close()
		w.Close()
	})
}

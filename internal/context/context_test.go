package context

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindDataDirFrom(t *testing.T) {
	t.Run("finds directory in start dir", func(t *testing.T) {
		root := t.TempDir()
		dataDir := filepath.Join(root, DataDirName)
		require.NoError(t, os.Mkdir(dataDir, 0755))

		assert.Equal(t, dataDir, findDataDirFrom(root))
	})

	t.Run("walks up to parent", func(t *testing.T) {
		root := t.TempDir()
		dataDir := filepath.Join(root, DataDirName)
		require.NoError(t, os.Mkdir(dataDir, 0755))
		nested := filepath.Join(root, "a", "b", "c")
		require.NoError(t, os.MkdirAll(nested, 0755))

		assert.Equal(t, dataDir, findDataDirFrom(nested))
	})

	t.Run("ignores plain file", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, DataDirName), nil, 0644))

		got := findDataDirFrom(root)
		assert.NotEqual(t, filepath.Join(root, DataDirName), got)
	})
}

func TestResolve(t *testing.T) {
	t.Run("flags win", func(t *testing.T) {
		t.Setenv("GRIDLEX_ACTOR", "env-actor")

		ctx, err := Resolve("flag-actor", "/tmp/prefs", "data.yaml")
		require.NoError(t, err)
		assert.Equal(t, "flag-actor", ctx.Actor)
		assert.Equal(t, "/tmp/prefs", ctx.DataDir)
		assert.Equal(t, "data.yaml", ctx.DataFile)
	})

	t.Run("falls back to home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("GRIDLEX_ACTOR", "env-actor")

		orig, err := os.Getwd()
		require.NoError(t, err)
		defer os.Chdir(orig)
		require.NoError(t, os.Chdir(t.TempDir()))

		ctx, err := Resolve("", "", "")
		require.NoError(t, err)
		assert.Equal(t, "env-actor", ctx.Actor)
		assert.Equal(t, filepath.Join(home, DataDirName), ctx.DataDir)
		assert.Empty(t, ctx.DataFile)
	})
}

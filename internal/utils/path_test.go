package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	_, err := ResolvePath("")
	assert.Error(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ResolvePath("~/copybara")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "copybara"), got)

	abs, err := ResolvePath("relative/dir")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
}

func TestEnsureDirAndExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	assert.True(t, DirExists(dir))
	assert.False(t, FileExists(dir))

	// idempotent
	require.NoError(t, EnsureDir(dir))

	file := filepath.Join(dir, "f.txt")
	require.NoError(t, EnsureParent(file))
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.True(t, FileExists(file))
	assert.False(t, DirExists(file))
}

package xfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "voices"), ExpandTilde("~/voices"))
	assert.Equal(t, home, ExpandTilde("~"))
	assert.Equal(t, "/opt/piper/piper", ExpandTilde("/opt/piper/piper"))
	assert.Equal(t, "~user/voices", ExpandTilde("~user/voices"))
}

func TestEnsureDirAndIsFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	assert.False(t, IsFile(dir))

	file := filepath.Join(dir, "x.wav")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.True(t, IsFile(file))
	assert.False(t, IsFile(filepath.Join(dir, "missing")))
}

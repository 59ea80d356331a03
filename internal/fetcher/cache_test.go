package fetcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	store, err := NewDirStore(dir)
	require.NoError(t, err)

	// Root directory is created eagerly.
	info, err := os.Stat(store.Root())
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.Equal(t, filepath.Join(store.Root(), "task1.zip"), store.Path("task1.zip"))
	assert.False(t, store.Has("task1.zip"))

	require.NoError(t, os.WriteFile(store.Path("task1.zip"), []byte("archive"), os.ModePerm))
	assert.True(t, store.Has("task1.zip"))

	// Directories count as cache entries too.
	require.NoError(t, os.MkdirAll(store.Path("org--model"), os.ModePerm))
	assert.True(t, store.Has("org--model"))
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dest := filepath.Join(dir, "dest.bin")
	require.NoError(t, os.WriteFile(src, []byte("payload"), os.ModePerm))

	require.NoError(t, moveFile(src, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
}

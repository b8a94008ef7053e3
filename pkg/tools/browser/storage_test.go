package browser

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageStateStore_Unconfigured(t *testing.T) {
	store := NewStorageStateStore("")

	assert.False(t, store.Configured())
	assert.False(t, store.Exists())

	_, err := store.Save(&fakeContext{})
	require.Error(t, err)

	var kinded *Error
	require.ErrorAs(t, err, &kinded)
	assert.Equal(t, KindStorage, kinded.Kind)
}

func TestStorageStateStore_SaveCreatesParentsAndRestrictsPerms(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "browser", "cookie.json")
	store := NewStorageStateStore(path)
	ctx := &fakeContext{}

	saved, err := store.Save(ctx)
	require.NoError(t, err)
	assert.Equal(t, path, saved)
	require.Len(t, ctx.savedPaths, 1)

	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
	assert.True(t, store.Exists())
}

func TestStorageStateStore_SaveEngineFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookie.json")
	store := NewStorageStateStore(path)

	_, err := store.Save(&fakeContext{saveErr: assert.AnError})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save storage state")
}

func TestStorageStateStore_ExistsIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	store := NewStorageStateStore(dir)
	assert.False(t, store.Exists())
}

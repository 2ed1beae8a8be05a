package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/trispin/resource"
)

func TestLocalStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)
	ctx := context.Background()

	// 1. Put a nested blob
	name := "bloch/nx3-ny3-kx0-ky0.snap"
	data := []byte("hello world, this is a test blob for trispin")
	require.NoError(t, store.Put(ctx, name, data))

	_, err := os.Stat(filepath.Join(tmpDir, "bloch", "nx3-ny3-kx0-ky0.snap"))
	require.NoError(t, err)

	// 2. Get
	got, err := store.Get(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// 3. Overwrite
	require.NoError(t, store.Put(ctx, name, []byte("v2")))
	got, err = store.Get(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))

	// 4. List
	require.NoError(t, store.Put(ctx, "other.bin", nil))
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{name, "other.bin"}, names)

	names, err = store.List(ctx, "bloch/")
	require.NoError(t, err)
	assert.Equal(t, []string{name}, names)

	// 5. Delete
	require.NoError(t, store.Delete(ctx, name))
	require.NoError(t, store.Delete(ctx, name), "deleting twice is fine")

	_, err = store.Get(ctx, name)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore_InvalidNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "../escape", "/abs/path", "a/../../b"} {
		assert.ErrorIs(t, store.Put(ctx, name, []byte("x")), ErrInvalidName, "name %q", name)
		_, err := store.Get(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestLocalStore_MissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStore_RateLimited(t *testing.T) {
	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	store := NewLocalStore(t.TempDir(), WithIOController(rc))
	ctx := context.Background()

	data := make([]byte, 4096)
	require.NoError(t, store.Put(ctx, "blob", data))
	got, err := store.Get(ctx, "blob")
	require.NoError(t, err)
	assert.Len(t, got, len(data))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("abc")
	require.NoError(t, store.Put(ctx, "b", data))
	data[0] = 'X'
	require.NoError(t, store.Put(ctx, "a", nil))

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, store.Delete(ctx, "b"))
	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.Put(ctx, "../x", nil), ErrInvalidName)
}

package blobstore_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evz/greenland/blobstore"
)

func stores(t *testing.T) map[string]blobstore.Store {
	t.Helper()
	local, err := blobstore.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return map[string]blobstore.Store{
		"local":  local,
		"memory": blobstore.NewMemoryStore(),
	}
}

func TestStore_CreateCommitOpen(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			w, err := store.Create(ctx, "blob-a")
			require.NoError(t, err)
			_, err = w.Write([]byte("hello "))
			require.NoError(t, err)
			_, err = w.Write([]byte("world"))
			require.NoError(t, err)
			require.NoError(t, w.Close())

			b, err := store.Open(ctx, "blob-a")
			require.NoError(t, err)
			defer b.Close()

			data, err := io.ReadAll(b)
			require.NoError(t, err)
			assert.Equal(t, "hello world", string(data))
			assert.Equal(t, int64(len(data)), b.Size())
		})
	}
}

func TestStore_UncommittedInvisible(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			w, err := store.Create(ctx, "pending")
			require.NoError(t, err)
			_, err = w.Write([]byte("partial"))
			require.NoError(t, err)

			_, err = store.Open(ctx, "pending")
			assert.ErrorIs(t, err, blobstore.ErrNotFound)

			require.NoError(t, w.Abort())
			_, err = store.Open(ctx, "pending")
			assert.ErrorIs(t, err, blobstore.ErrNotFound)
		})
	}
}

func TestStore_PutDelete(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Put(ctx, "doc", []byte("x")))

			b, err := store.Open(ctx, "doc")
			require.NoError(t, err)
			b.Close()

			require.NoError(t, store.Delete(ctx, "doc"))
			_, err = store.Open(ctx, "doc")
			assert.ErrorIs(t, err, blobstore.ErrNotFound)

			// Deleting a missing blob is not an error.
			assert.NoError(t, store.Delete(ctx, "doc"))
		})
	}
}

func TestLocalStore_AbortLeavesNoFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := blobstore.NewLocalStore(dir)
	require.NoError(t, err)

	w, err := store.Create(context.Background(), "gone")
	require.NoError(t, err)
	_, err = w.Write([]byte("scratch"))
	require.NoError(t, err)
	require.NoError(t, w.Abort())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalStore_CreatesRoot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "run")
	_, err := blobstore.NewLocalStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

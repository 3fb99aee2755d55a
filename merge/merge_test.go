package merge_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evz/greenland/blobstore"
	"github.com/evz/greenland/codec"
	"github.com/evz/greenland/merge"
	"github.com/evz/greenland/stream"
)

// writeWorkerSink commits a sink and manifest for one worker, covering
// the given roots with one record per root.
func writeWorkerSink(t *testing.T, store blobstore.Store, worker int, roots []int) []stream.Record {
	t.Helper()
	ctx := context.Background()

	blob, err := store.Create(ctx, merge.SinkName(worker))
	require.NoError(t, err)
	w, err := stream.NewWriter(blob, codec.Default, stream.CompressionZSTD)
	require.NoError(t, err)

	var recs []stream.Record
	for _, r := range roots {
		rec := stream.Record{
			Size:    1,
			Sum:     int64(100 + r),
			Percent: float64(100 + r),
			Members: []string{string(rune('A' + r))},
		}
		require.NoError(t, w.Write(rec))
		w.RootDone(r)
		recs = append(recs, rec)
	}
	require.NoError(t, w.Close())
	require.NoError(t, blob.Close())

	man, err := w.Manifest()
	require.NoError(t, err)
	data, err := (codec.JSON{}).Marshal(man)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, merge.ManifestName(worker), data))
	return recs
}

func TestMerge_ConcatenatesInWorkerOrder(t *testing.T) {
	store := blobstore.NewMemoryStore()
	first := writeWorkerSink(t, store, 0, []int{0, 2, 4})
	second := writeWorkerSink(t, store, 1, []int{1, 3, 5})

	var got []stream.Record
	total, err := merge.New(store, 2, 6).Merge(context.Background(), func(rec stream.Record) error {
		got = append(got, rec)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	assert.Equal(t, append(first, second...), got)
}

func TestMerge_MissingManifest(t *testing.T) {
	store := blobstore.NewMemoryStore()
	writeWorkerSink(t, store, 0, []int{0, 1})
	// Worker 1 never committed.

	_, err := merge.New(store, 2, 4).Merge(context.Background(), func(stream.Record) error { return nil })
	assert.ErrorIs(t, err, merge.ErrIncompleteRun)
}

func TestMerge_UncoveredRoots(t *testing.T) {
	store := blobstore.NewMemoryStore()
	writeWorkerSink(t, store, 0, []int{0, 2})
	writeWorkerSink(t, store, 1, []int{1})
	// Root 3 belongs to nobody.

	var visited int
	_, err := merge.New(store, 2, 4).Merge(context.Background(), func(stream.Record) error {
		visited++
		return nil
	})
	assert.ErrorIs(t, err, merge.ErrIncompleteRun)
	assert.Zero(t, visited, "no record may surface from an incomplete run")
}

func TestMerge_CorruptSink(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	writeWorkerSink(t, store, 0, []int{0, 1})

	// Truncate the committed sink behind the manifest's back.
	blob, err := store.Open(ctx, merge.SinkName(0))
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = buf.ReadFrom(blob)
	require.NoError(t, err)
	blob.Close()
	require.NoError(t, store.Put(ctx, merge.SinkName(0), buf.Bytes()[:buf.Len()/2]))

	_, err = merge.New(store, 1, 2).Merge(ctx, func(stream.Record) error { return nil })
	assert.ErrorIs(t, err, merge.ErrSinkCorrupt)
}

func TestMerge_VisitErrorPropagates(t *testing.T) {
	store := blobstore.NewMemoryStore()
	writeWorkerSink(t, store, 0, []int{0})

	sentinel := assert.AnError
	_, err := merge.New(store, 1, 1).Merge(context.Background(), func(stream.Record) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

// Package merge turns the per-worker sinks of one run into a single
// logical record stream.
//
// Merging is pure concatenation in worker order: every sink is already
// duplicate-free on its own, and sinks for different workers cannot
// overlap because each root's search only ever produces subsets whose
// minimum vertex is that root. What merge does add is a completeness
// proof: before surfacing any record it requires a valid manifest from
// every worker and requires the union of their completed-root sets to
// cover every root, so a crashed or missing worker fails the run
// instead of silently thinning the results.
package merge

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/evz/greenland/blobstore"
	"github.com/evz/greenland/codec"
	"github.com/evz/greenland/stream"
)

var (
	// ErrIncompleteRun indicates a missing worker sink or a root no
	// surviving sink claims to have finished.
	ErrIncompleteRun = errors.New("merge: run is incomplete")
	// ErrSinkCorrupt indicates a sink whose contents do not match its
	// manifest.
	ErrSinkCorrupt = errors.New("merge: sink corrupt")
)

// SinkName returns the record blob name for a worker.
func SinkName(worker int) string {
	return fmt.Sprintf("worker-%04d.records", worker)
}

// ManifestName returns the manifest blob name for a worker.
func ManifestName(worker int) string {
	return fmt.Sprintf("worker-%04d.manifest", worker)
}

// Merger reads the sinks of one finished run.
type Merger struct {
	store   blobstore.Store
	workers int
	roots   int
}

// New creates a Merger expecting one sink per worker covering the
// given number of roots.
func New(store blobstore.Store, workers, roots int) *Merger {
	return &Merger{store: store, workers: workers, roots: roots}
}

// Merge verifies completeness and streams every record, in worker
// order, to visit. It returns the total record count. Coverage and
// manifest failures are reported before visit sees a single record;
// checksum failures surface once the offending sink is drained, so on
// any error the caller must treat everything visited as untrusted.
func (m *Merger) Merge(ctx context.Context, visit func(stream.Record) error) (int64, error) {
	manifests, err := m.loadManifests(ctx)
	if err != nil {
		return 0, err
	}
	if err := m.checkCoverage(manifests); err != nil {
		return 0, err
	}

	var total int64
	for w := 0; w < m.workers; w++ {
		n, err := m.drainSink(ctx, w, manifests[w], visit)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (m *Merger) loadManifests(ctx context.Context) ([]stream.Manifest, error) {
	manifests := make([]stream.Manifest, m.workers)
	for w := 0; w < m.workers; w++ {
		blob, err := m.store.Open(ctx, ManifestName(w))
		if err != nil {
			if errors.Is(err, blobstore.ErrNotFound) {
				return nil, fmt.Errorf("%w: worker %d left no manifest", ErrIncompleteRun, w)
			}
			return nil, err
		}
		data, err := io.ReadAll(blob)
		blob.Close()
		if err != nil {
			return nil, err
		}
		// Manifests are always JSON so a reader can bootstrap the
		// record codec from them.
		if err := (codec.JSON{}).Unmarshal(data, &manifests[w]); err != nil {
			return nil, fmt.Errorf("%w: worker %d manifest: %v", ErrSinkCorrupt, w, err)
		}
	}
	return manifests, nil
}

func (m *Merger) checkCoverage(manifests []stream.Manifest) error {
	union := roaring.New()
	for w, man := range manifests {
		roots, err := man.RootSet()
		if err != nil {
			return fmt.Errorf("%w: worker %d root set: %v", ErrSinkCorrupt, w, err)
		}
		union.Or(roots)
	}
	expected := roaring.New()
	expected.AddRange(0, uint64(m.roots))
	if !union.Equals(expected) {
		missing := roaring.AndNot(expected, union)
		return fmt.Errorf("%w: %d roots unaccounted for", ErrIncompleteRun, missing.GetCardinality())
	}
	return nil
}

func (m *Merger) drainSink(ctx context.Context, w int, man stream.Manifest, visit func(stream.Record) error) (int64, error) {
	c, ok := codec.ByName(man.Codec)
	if !ok {
		return 0, fmt.Errorf("%w: worker %d uses unknown codec %q", ErrSinkCorrupt, w, man.Codec)
	}
	comp, err := stream.ParseCompression(man.Compression)
	if err != nil {
		return 0, fmt.Errorf("%w: worker %d: %v", ErrSinkCorrupt, w, err)
	}

	blob, err := m.store.Open(ctx, SinkName(w))
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return 0, fmt.Errorf("%w: worker %d left no sink", ErrIncompleteRun, w)
		}
		return 0, err
	}
	defer blob.Close()

	r, err := stream.NewReader(blob, c, comp)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	var n int64
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, fmt.Errorf("%w: worker %d: %v", ErrSinkCorrupt, w, err)
		}
		n++
		if err := visit(rec); err != nil {
			return n, err
		}
	}
	if err := r.Verify(man); err != nil {
		return n, fmt.Errorf("%w: worker %d: %v", ErrSinkCorrupt, w, err)
	}
	return n, nil
}

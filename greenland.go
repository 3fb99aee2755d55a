package greenland

import (
	"context"
	"errors"
	"math"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/evz/greenland/blobstore"
	"github.com/evz/greenland/codec"
	"github.com/evz/greenland/enum"
	"github.com/evz/greenland/graph"
	"github.com/evz/greenland/merge"
	"github.com/evz/greenland/partition"
	"github.com/evz/greenland/stream"
	"github.com/evz/greenland/topk"
)

// Progress is a throttled snapshot of one worker's advance through its
// root group.
type Progress struct {
	Worker    int
	RootsDone int
	Roots     int
	Records   int64
}

// Job is one fully configured enumeration-and-selection run: a graph,
// a weight band, a closeness target and a result bound. A Job is
// immutable after construction and may be run multiple times; each run
// is deterministic up to cross-worker emission order, which the
// selector does not depend on.
type Job struct {
	g      *graph.Graph
	band   enum.Band
	target float64
	k      int
	opts   options
}

// NewJob validates parameters and builds a Job. The band may be empty
// (Lo > Hi); that is a legal degenerate case producing no records.
func NewJob(g *graph.Graph, band enum.Band, target float64, k int, optFns ...Option) (*Job, error) {
	if target <= 0 {
		return nil, ErrInvalidTarget
	}
	if k < 1 {
		return nil, ErrInvalidK
	}
	opts := applyOptions(optFns)
	if opts.workers < 0 {
		return nil, ErrInvalidWorkers
	}
	return &Job{
		g:      g,
		band:   band,
		target: target,
		k:      k,
		opts:   opts,
	}, nil
}

// Run executes the whole pipeline: encode, enumerate in parallel into
// private per-worker sinks, verify and merge the sinks, select the K
// records closest to the target, and return the final document. On any
// failure the partial worker sinks are discarded and no artifact of
// the run should be trusted.
func (j *Job) Run(ctx context.Context) (*topk.Document, error) {
	enc, workers, err := j.enumerate(ctx)
	if err != nil {
		return nil, err
	}

	sel := topk.New(j.k)
	merger := merge.New(j.opts.store, workers, enc.Order())

	mergeStart := time.Now()
	total, err := merger.Merge(ctx, func(rec stream.Record) error {
		sel.Add(rec)
		return nil
	})
	j.opts.metrics.RecordMerge(total, time.Since(mergeStart), err)
	j.opts.logger.LogMerge(ctx, total, err)
	if err != nil {
		j.discardSinks(ctx, workers)
		return nil, err
	}

	selectStart := time.Now()
	doc := sel.Document(j.target)
	j.opts.metrics.RecordSelect(j.k, time.Since(selectStart), nil)
	j.opts.logger.LogSelect(ctx, j.k, len(doc.Combinations), nil)

	if j.opts.documentName != "" {
		data, err := j.opts.codec.Marshal(doc)
		if err != nil {
			j.discardSinks(ctx, workers)
			return nil, err
		}
		if err := j.opts.store.Put(ctx, j.opts.documentName, data); err != nil {
			j.discardSinks(ctx, workers)
			return nil, err
		}
	}

	return doc, nil
}

// Stream executes encoding and enumeration, then hands every merged
// record to visit instead of running the selector. Record order is the
// concatenation of per-worker deterministic DFS orders.
func (j *Job) Stream(ctx context.Context, visit func(stream.Record) error) error {
	enc, workers, err := j.enumerate(ctx)
	if err != nil {
		return err
	}

	merger := merge.New(j.opts.store, workers, enc.Order())
	mergeStart := time.Now()
	total, err := merger.Merge(ctx, visit)
	j.opts.metrics.RecordMerge(total, time.Since(mergeStart), err)
	j.opts.logger.LogMerge(ctx, total, err)
	if err != nil {
		j.discardSinks(ctx, workers)
	}
	return err
}

// enumerate runs the encode and parallel search phases, leaving one
// committed sink and manifest per worker in the store.
func (j *Job) enumerate(ctx context.Context) (*graph.Encoded, int, error) {
	encodeStart := time.Now()
	enc, err := j.g.Encode()
	j.opts.metrics.RecordEncode(j.g.Order(), time.Since(encodeStart), err)
	j.opts.logger.LogEncode(ctx, j.g.Order(), err)
	if err != nil {
		return nil, 0, translateError(err)
	}

	n := enc.Order()
	workers := j.opts.workers
	if workers == 0 {
		workers = min(runtime.GOMAXPROCS(0), n)
	}
	if workers < 1 {
		workers = 1
	}

	groups := partition.Roots(n, workers)
	limiter := rate.NewLimiter(rate.Limit(j.opts.progressRate), 1)

	eg, gctx := errgroup.WithContext(ctx)
	for w, roots := range groups {
		w, roots := w, roots
		eg.Go(func() error {
			return j.runWorker(gctx, enc, w, roots, limiter)
		})
	}
	if err := eg.Wait(); err != nil {
		// A single failed worker invalidates the whole result set, so
		// nothing partial survives.
		j.discardSinks(ctx, workers)
		return nil, 0, err
	}

	return enc, workers, nil
}

// runWorker enumerates one root group into a private sink, then
// commits the sink and its manifest. The manifest is written last:
// its presence is the worker's completion marker.
func (j *Job) runWorker(ctx context.Context, enc *graph.Encoded, worker int, roots []int, limiter *rate.Limiter) error {
	start := time.Now()
	en := enum.New(enc, j.band)
	logger := j.opts.logger.WithWorker(worker)

	fail := func(err error) error {
		j.opts.metrics.RecordEnumerate(worker, en.Stats(), time.Since(start), err)
		logger.LogWorker(ctx, worker, len(roots), en.Stats(), time.Since(start), err)
		return err
	}

	blob, err := j.opts.store.Create(ctx, merge.SinkName(worker))
	if err != nil {
		return fail(err)
	}
	w, err := stream.NewWriter(blob, j.opts.codec, j.opts.compression)
	if err != nil {
		blob.Abort()
		return fail(err)
	}

	var records int64
	for i, root := range roots {
		err := en.Root(ctx, root, func(s enum.Subset) error {
			records++
			return w.Write(stream.Record{
				Size:    int(s.Members.Count()),
				Sum:     s.Sum,
				Percent: percentOf(s.Sum, j.target),
				Members: enc.Members(s.Members),
			})
		})
		if err != nil {
			blob.Abort()
			return fail(err)
		}
		w.RootDone(root)

		if j.opts.progress != nil && (i == len(roots)-1 || limiter.Allow()) {
			j.opts.progress(Progress{
				Worker:    worker,
				RootsDone: i + 1,
				Roots:     len(roots),
				Records:   records,
			})
		}
	}

	if err := w.Close(); err != nil {
		blob.Abort()
		return fail(err)
	}
	if err := blob.Close(); err != nil {
		return fail(err)
	}

	man, err := w.Manifest()
	if err != nil {
		return fail(err)
	}
	data, err := (codec.JSON{}).Marshal(man)
	if err != nil {
		return fail(err)
	}
	if err := j.opts.store.Put(ctx, merge.ManifestName(worker), data); err != nil {
		return fail(err)
	}

	j.opts.metrics.RecordEnumerate(worker, en.Stats(), time.Since(start), nil)
	logger.LogWorker(ctx, worker, len(roots), en.Stats(), time.Since(start), nil)
	return nil
}

// discardSinks best-effort deletes every sink of a failed run. The
// surrounding context may already be canceled, so deletion runs on a
// detached context.
func (j *Job) discardSinks(ctx context.Context, workers int) {
	dctx := context.WithoutCancel(ctx)
	for w := 0; w < workers; w++ {
		if err := j.opts.store.Delete(dctx, merge.SinkName(w)); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
			j.opts.logger.WarnContext(dctx, "sink cleanup failed", "worker", w, "error", err)
		}
		if err := j.opts.store.Delete(dctx, merge.ManifestName(w)); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
			j.opts.logger.WarnContext(dctx, "manifest cleanup failed", "worker", w, "error", err)
		}
	}
}

// percentOf mirrors the emission-time rounding of the result stream:
// percent of target, rounded to three decimals.
func percentOf(sum int64, target float64) float64 {
	return math.Round(100*float64(sum)/target*1000) / 1000
}

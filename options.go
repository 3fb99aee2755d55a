package greenland

import (
	"log/slog"

	"github.com/evz/greenland/blobstore"
	"github.com/evz/greenland/codec"
	"github.com/evz/greenland/stream"
)

type options struct {
	workers      int
	store        blobstore.Store
	codec        codec.Codec
	compression  stream.Compression
	documentName string
	logger       *Logger
	metrics      MetricsCollector
	progress     func(Progress)
	progressRate float64
}

// Option configures job behavior.
type Option func(*options)

// WithWorkers fixes the worker count. Zero (the default) means
// min(GOMAXPROCS, vertex count). Each worker enumerates its own root
// group with no shared mutable state, so worker count trades CPU for
// wall time without affecting the result set.
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithStore configures where worker sinks and the final document live.
// Defaults to an in-memory store, which is fine whenever the full
// per-worker record volume fits in memory. Use blobstore.NewLocalStore
// or the minio store for runs whose intermediate output should survive
// the process or exceed it.
func WithStore(store blobstore.Store) Option {
	return func(o *options) {
		if store == nil {
			return
		}
		o.store = store
	}
}

// WithCodec configures the record codec. If nil is passed,
// codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression selects sink compression. Defaults to none; large
// runs benefit from stream.CompressionZSTD.
func WithCompression(c stream.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithDocumentName makes Run persist the final top-K document under
// the given blob name in the configured store. Empty (the default)
// skips persistence and only returns the document.
func WithDocumentName(name string) Option {
	return func(o *options) {
		o.documentName = name
	}
}

// WithLogger configures structured logging for the run.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for the run.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithProgress registers a progress callback. Events are rate-limited
// across all workers so a hot search loop cannot flood the callback;
// the final event per worker is always delivered.
func WithProgress(fn func(Progress)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithProgressRate overrides the maximum progress events per second.
func WithProgressRate(perSecond float64) Option {
	return func(o *options) {
		if perSecond > 0 {
			o.progressRate = perSecond
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:        codec.Default,
		compression:  stream.CompressionNone,
		logger:       NoopLogger(),
		metrics:      NoopMetricsCollector{},
		progressRate: 4,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.store == nil {
		o.store = blobstore.NewMemoryStore()
	}
	return o
}

package trispin

import (
	"log/slog"

	"github.com/hupe1980/trispin/blobstore"
	"github.com/hupe1980/trispin/codec"
	"github.com/hupe1980/trispin/resource"
	"github.com/hupe1980/trispin/snapshot"
)

// DefaultCacheSize is the number of bases kept in the in-process cache.
const DefaultCacheSize = 16

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	workers          int
	store            blobstore.Store
	codec            codec.Codec
	compression      snapshot.Compression
	cacheSize        int
	rc               *resource.Controller
}

// Option configures an Engine.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &trispin.BasicMetricsCollector{}
//	eng := trispin.New(trispin.WithMetricsCollector(metrics))
//	// ... use eng ...
//	stats := metrics.GetStats()
//	fmt.Printf("Bases: %d, Avg build: %dns\n", stats.BasisCount, stats.BasisAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := trispin.NewJSONLogger(slog.LevelInfo)
//	eng := trispin.New(trispin.WithLogger(logger))
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

// WithWorkers sets the number of goroutines used by the orbit scan.
// Values below 2 select the serial scan.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = max(n, 1)
	}
}

// WithStore persists built bases as snapshots in store and loads them on
// later lookups.
func WithStore(store blobstore.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithCodec configures the codec used for snapshot payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the snapshot payload compression.
func WithCompression(c snapshot.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCacheSize sets how many bases the in-process LRU keeps.
// Zero disables the cache.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = max(n, 0)
	}
}

// WithResourceController bounds scan memory, worker slots and snapshot IO.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		workers:          1,
		codec:            codec.Default,
		compression:      snapshot.CompressionZstd,
		cacheSize:        DefaultCacheSize,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

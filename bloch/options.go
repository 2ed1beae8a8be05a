package bloch

import (
	"log/slog"

	"github.com/hupe1980/trispin/resource"
)

// Option configures a scan.
type Option func(*options)

type options struct {
	workers   int
	blockSize uint64
	rc        *resource.Controller
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{
		workers:   1,
		blockSize: 1 << 14,
		logger:    slog.New(slog.DiscardHandler),
	}
}

// WithWorkers sets the number of goroutines scanning the universe.
// Values below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = max(n, 1)
	}
}

// WithBlockSize sets the number of scan indices processed between
// cancellation checks.
func WithBlockSize(n uint64) Option {
	return func(o *options) {
		if n > 0 {
			o.blockSize = n
		}
	}
}

// WithResourceController reserves sieve memory and worker slots from rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithLogger sets the logger used for scan diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

package trispin

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/trispin/bloch"
)

// Logger wraps slog.Logger with trispin-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithSector adds the sector identifier to the logger.
func (l *Logger) WithSector(sector bloch.Sector) *Logger {
	return &Logger{
		Logger: l.Logger.With("sector", sector.String()),
	}
}

// WithTerm adds a Hamiltonian term field to the logger.
func (l *Logger) WithTerm(term Term) *Logger {
	return &Logger{
		Logger: l.Logger.With("term", string(term)),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBasis logs a basis construction.
func (l *Logger) LogBasis(ctx context.Context, sector bloch.Sector, set *bloch.BlochFuncSet, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "basis construction failed",
			"sector", sector.String(),
			"error", err,
		)
		return
	}
	st := set.Stats()
	l.InfoContext(ctx, "basis constructed",
		"sector", sector.String(),
		"size", set.Len(),
		"scanned", st.Scanned,
		"vanished", st.Vanished,
		"duration", duration,
	)
}

// LogOperator logs the assembly of a Hamiltonian term.
func (l *Logger) LogOperator(ctx context.Context, term Term, sector bloch.Sector, nnz int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "operator assembly failed",
			"term", string(term),
			"sector", sector.String(),
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "operator assembled",
		"term", string(term),
		"sector", sector.String(),
		"nnz", nnz,
		"duration", duration,
	)
}

// LogSnapshot logs a snapshot load or save. Snapshot failures never fail
// the calling operation, so errors are logged as warnings.
func (l *Logger) LogSnapshot(ctx context.Context, op, name string, err error) {
	if err != nil {
		l.WarnContext(ctx, "snapshot "+op+" failed",
			"name", name,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "snapshot "+op,
		"name", name,
	)
}

// LogCache logs where a basis was served from.
func (l *Logger) LogCache(ctx context.Context, sector bloch.Sector, tier CacheTier) {
	l.DebugContext(ctx, "basis lookup",
		"sector", sector.String(),
		"tier", string(tier),
	)
}

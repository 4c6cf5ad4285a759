package sieve

import (
	"log/slog"
)

type options struct {
	maxLeafSize      int
	maxDepth         int
	beamWidth        int
	randomSeed       *int64
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures Build behavior.
type Option func(*options)

// WithMaxLeafSize sets the leaf bucket bound for tree construction.
// Smaller leaves mean deeper trees and finer space partitions; the default
// is forest.DefaultMaxLeafSize.
func WithMaxLeafSize(size int) Option {
	return func(o *options) {
		o.maxLeafSize = size
	}
}

// WithMaxDepth sets the recursion safety bound for tree construction.
// The default is derived from the dataset size.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// WithBeamWidth sets the default number of leaves explored per tree during
// search. Higher values improve recall at a linear cost in work performed.
// Individual queries may override it via SearchBuilder.Beam.
func WithBeamWidth(width int) Option {
	return func(o *options) {
		o.beamWidth = width
	}
}

// WithRandomSeed makes construction reproducible: two builds over identical
// input with the same seed produce trees with identical search behavior.
// Without it every build is seeded from the wall clock.
func WithRandomSeed(seed int64) Option {
	return func(o *options) {
		o.randomSeed = &seed
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
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

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	return o
}

package plearn

import (
	"github.com/plpkit/plearn/solver"
)

type options struct {
	niters  int
	mode    solver.Mode
	workers int
	logger  *Logger
	metrics MetricsCollector
}

func defaultOptions() options {
	return options{
		niters:  30,
		mode:    solver.Stable,
		workers: 1,
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
}

// Option configures Learner behavior.
type Option func(*options)

// WithIterations sets the number of fixpoint iterations. Every Fit call runs
// exactly this many full passes; there is no early-convergence exit.
//
// Default: 30.
func WithIterations(niters int) Option {
	return func(o *options) {
		o.niters = niters
	}
}

// WithMode sets the answer-set semantics the solver is asked to use. The
// value is passed through opaquely.
//
// Default: solver.Stable.
func WithMode(mode solver.Mode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithWorkers sets the number of workers observations are partitioned
// across. Each worker solves its own contiguous disjoint observation range
// concurrently against its own accumulator storage; soft counts are merged
// before normalization, so results are identical for any worker count.
//
// Default: 1 (fully sequential).
func WithWorkers(workers int) Option {
	return func(o *options) {
		o.workers = workers
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithMetrics sets the metrics collector. If nil is passed, metrics
// collection is disabled.
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *options) {
		if metrics == nil {
			metrics = NoopMetricsCollector{}
		}
		o.metrics = metrics
	}
}

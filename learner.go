package plearn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/plpkit/plearn/indexset"
	"github.com/plpkit/plearn/observations"
	"github.com/plpkit/plearn/program"
	"github.com/plpkit/plearn/softcount"
	"github.com/plpkit/plearn/solver"
)

// Learner drives fixpoint parameter estimation over a program.
//
// A Learner is stateless between Fit calls and safe for concurrent use, but
// no two Fit calls may run against the same Program instance at the same
// time: the learner is the program's single writer during a call.
type Learner struct {
	solver  solver.Solver
	niters  int
	mode    solver.Mode
	workers int
	logger  *Logger
	metrics MetricsCollector
}

// Result summarizes a completed learning call. Learned values are keyed by
// their position in the program's source collections.
type Result struct {
	// Facts maps a fact's collection index to its learned probability.
	Facts map[int]float64
	// Disjunctions maps a disjunction's collection index to its learned
	// outcome probabilities.
	Disjunctions map[int][]float64
	// Iterations is the number of fixpoint iterations that ran.
	Iterations int
	// Elapsed is the wall time of the whole call, publish included.
	Elapsed time.Duration
}

// New creates a Learner around the given solver.
func New(s solver.Solver, opts ...Option) (*Learner, error) {
	if s == nil {
		return nil, ErrNilSolver
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.niters <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIterations, o.niters)
	}
	if o.workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, o.workers)
	}

	return &Learner{
		solver:  s,
		niters:  o.niters,
		mode:    o.mode,
		workers: o.workers,
		logger:  o.logger,
		metrics: o.metrics,
	}, nil
}

// Fit estimates the program's learnable parameters from the observation set.
//
// The call runs exactly the configured number of iterations, then publishes
// the converged values through the program entries' sinks and returns them
// in the Result. On any failure nothing is published and the error names the
// failing stage; retrying means restarting the whole call.
//
// The program's learnable Prob values are used as the starting estimates and
// are overwritten in place every iteration so the solver sees the updated
// parameters on its next invocation.
func (l *Learner) Fit(ctx context.Context, prog *program.Program, obs *observations.Set) (*Result, error) {
	start := time.Now()

	result, err := l.fit(ctx, prog, obs)

	elapsed := time.Since(start)
	l.metrics.RecordFit(l.niters, elapsed, err)
	facts, disjunctions := 0, 0
	if result != nil {
		facts, disjunctions = len(result.Facts), len(result.Disjunctions)
	}
	l.logger.LogFit(ctx, l.niters, facts, disjunctions, elapsed, err)

	if err != nil {
		return nil, err
	}
	result.Elapsed = elapsed
	return result, nil
}

func (l *Learner) fit(ctx context.Context, prog *program.Program, obs *observations.Set) (*Result, error) {
	// Validating.
	if prog == nil {
		return nil, fmt.Errorf("validate: program must not be nil")
	}
	if obs == nil {
		return nil, fmt.Errorf("validate: observations must not be nil")
	}
	if err := prog.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	// Initializing.
	idx := indexset.Build(prog)
	if idx.Empty() {
		return nil, fmt.Errorf("initialize: %w", ErrNotLearnable)
	}
	n := obs.Total()
	if n == 0 {
		return nil, fmt.Errorf("initialize: %w", ErrNoObservations)
	}

	params := softcount.NewParams(idx, prog)
	workers := softcount.NewWorkers(idx, prog, obs.Len(), l.workers)
	logger := l.logger.WithWorkers(len(workers))

	// Iterating. Progress logs are throttled so long runs do not flood the
	// handler; the final iteration is always logged.
	progress := rate.NewLimiter(rate.Every(time.Second), 1)
	for iter := 1; iter <= l.niters; iter++ {
		iterStart := time.Now()

		if err := l.solve(ctx, prog, obs, workers); err != nil {
			var serr *ErrSolver
			if !errors.As(err, &serr) {
				serr = &ErrSolver{cause: err}
			}
			serr.Iteration = iter
			return nil, serr
		}

		params.Reset()
		for _, wk := range workers {
			if err := params.Accumulate(wk, obs); err != nil {
				return nil, &ErrZeroProbability{Iteration: iter, cause: err}
			}
		}
		params.Normalize(float64(n))
		params.ApplyTo(prog)

		iterElapsed := time.Since(iterStart)
		l.metrics.RecordIteration(iterElapsed)
		if iter == l.niters || progress.Allow() {
			logger.LogIteration(ctx, iter, l.niters, iterElapsed)
		}
	}

	// Publishing.
	publishStart := time.Now()
	err := program.PublishLearned(prog, idx.Facts, idx.Disjunctions)
	entries := len(idx.Facts) + len(idx.Disjunctions)
	l.metrics.RecordPublish(entries, time.Since(publishStart), err)
	l.logger.LogPublish(ctx, len(idx.Facts), len(idx.Disjunctions), err)
	if err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}

	return newResult(prog, idx, l.niters), nil
}

// solve fills every worker's accumulator at the program's current parameter
// values. With more than one worker the solver runs concurrently, one
// goroutine per worker; workers own disjoint observation ranges and their
// own storage, so the program is the only shared state and it is read-only
// during this phase.
func (l *Learner) solve(ctx context.Context, prog *program.Program, obs *observations.Set, workers []*softcount.Worker) error {
	if len(workers) == 1 {
		solveStart := time.Now()
		err := l.solver.Solve(ctx, prog, obs, workers[0], l.mode)
		l.metrics.RecordSolve(time.Since(solveStart), err)
		if err != nil {
			return &ErrSolver{Worker: 0, cause: err}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for w, wk := range workers {
		w, wk := w, wk
		g.Go(func() error {
			solveStart := time.Now()
			err := l.solver.Solve(gctx, prog, obs, wk, l.mode)
			l.metrics.RecordSolve(time.Since(solveStart), err)
			if err != nil {
				return &ErrSolver{Worker: w, cause: err}
			}
			return nil
		})
	}
	return g.Wait()
}

func newResult(prog *program.Program, idx indexset.Set, iterations int) *Result {
	result := &Result{
		Facts:        make(map[int]float64, len(idx.Facts)),
		Disjunctions: make(map[int][]float64, len(idx.Disjunctions)),
		Iterations:   iterations,
	}
	for _, i := range idx.Facts {
		result.Facts[i] = prog.Facts[i].Prob
	}
	for _, i := range idx.Disjunctions {
		probs := make([]float64, len(prog.Disjunctions[i].Probs))
		copy(probs, prog.Disjunctions[i].Probs)
		result.Disjunctions[i] = probs
	}
	return result
}

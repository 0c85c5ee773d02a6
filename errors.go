package plearn

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLearnable is returned when the program has no learnable
	// parameters at all.
	ErrNotLearnable = errors.New("program is not learnable")

	// ErrNoObservations is returned when the observation set's repeat counts
	// sum to zero, leaving nothing to normalize by.
	ErrNoObservations = errors.New("observation counts sum to zero")

	// ErrNilSolver is returned by New when no solver is given.
	ErrNilSolver = errors.New("solver must not be nil")

	// ErrInvalidIterations is returned by New when the iteration count is
	// not positive.
	ErrInvalidIterations = errors.New("iteration count must be positive")

	// ErrInvalidWorkers is returned by New when the worker count is not
	// positive.
	ErrInvalidWorkers = errors.New("worker count must be positive")
)

// ErrZeroProbability indicates that the solver reported a non-positive or
// non-finite total probability for an observation. This violates the
// solver's contract for a well-formed program/observation pair and is fatal
// to the learning call.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrZeroProbability struct {
	// Iteration is the 1-based learning iteration during which the
	// degenerate probability surfaced.
	Iteration int

	cause error
}

func (e *ErrZeroProbability) Error() string {
	return fmt.Sprintf("iteration %d: %v", e.Iteration, e.cause)
}

func (e *ErrZeroProbability) Unwrap() error { return e.cause }

// ErrSolver indicates that the external solver failed. The current
// iteration's partial accumulator state is discarded and nothing is
// published.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrSolver struct {
	// Iteration is the 1-based learning iteration that failed.
	Iteration int
	// Worker is the index of the failing worker.
	Worker int

	cause error
}

func (e *ErrSolver) Error() string {
	return fmt.Sprintf("solver failed on iteration %d, worker %d: %v", e.Iteration, e.Worker, e.cause)
}

func (e *ErrSolver) Unwrap() error { return e.cause }

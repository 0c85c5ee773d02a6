// Package solver defines the inference primitive the learner delegates
// probability computation to.
//
// A Solver computes, for a program at its current parameter values and a
// range of observations, the joint probability of each learnable parameter
// value with each observation and the observation's total probability. The
// learner never computes probabilities itself; it only orchestrates
// iteration, accumulation, and normalization around Solve calls.
package solver

import (
	"context"

	"github.com/plpkit/plearn/observations"
	"github.com/plpkit/plearn/program"
	"github.com/plpkit/plearn/softcount"
)

// Mode selects the answer-set semantics the solver should use. It is passed
// through opaquely; the learner attaches no meaning to it.
type Mode int

const (
	// Stable asks for stable-model semantics.
	Stable Mode = iota
	// LStable asks for L-stable-model semantics.
	LStable
)

// String returns the mode's name.
func (m Mode) String() string {
	switch m {
	case Stable:
		return "stable"
	case LStable:
		return "lstable"
	default:
		return "unknown"
	}
}

// Solver fills a worker's probability accumulator for the observations in
// the worker's range, at the program's current parameter values.
//
// Implementations must only read the program and the observation set, and
// must only write the given worker's storage, so that disjoint workers can
// be solved concurrently. A Solve error is fatal to the current learning
// iteration.
type Solver interface {
	Solve(ctx context.Context, p *program.Program, obs *observations.Set, w *softcount.Worker, mode Mode) error
}

// Func adapts a plain function to the Solver interface.
type Func func(ctx context.Context, p *program.Program, obs *observations.Set, w *softcount.Worker, mode Mode) error

// Solve calls f.
func (f Func) Solve(ctx context.Context, p *program.Program, obs *observations.Set, w *softcount.Worker, mode Mode) error {
	return f(ctx, p, obs, w, mode)
}

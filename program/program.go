// Package program defines the probabilistic logic program model consumed by
// the learner: probabilistic facts, annotated disjunctions, and the sink
// interfaces used to persist learned values back into an externally owned
// program representation.
//
// A Program is a transient working copy. Learning mutates the Prob values of
// its learnable entries in place between iterations; the externally owned
// representation is only touched through the sinks during publishing.
package program

import (
	"fmt"
	"math"
)

// SumTolerance is the tolerance used when validating that an annotated
// disjunction's outcome probabilities sum to 1.
const SumTolerance = 1e-9

// FactSink persists the learned probability of a single probabilistic fact.
//
// Sinks are opaque capabilities: the learner never inspects them, it only
// hands them converged values during publishing.
type FactSink interface {
	SetProb(p float64) error
}

// DisjunctionSink persists the learned outcome probabilities of an annotated
// disjunction, one outcome at a time.
type DisjunctionSink interface {
	SetOutcome(i int, p float64) error
}

// ProbFact is a probabilistic fact: an atom that holds with probability Prob.
type ProbFact struct {
	// Atom is the ground atom this fact asserts.
	Atom string
	// Prob is the current probability of the fact being true.
	Prob float64
	// Learnable marks the fact's probability as a target for estimation.
	Learnable bool
	// Sink receives the learned probability during publishing. May be nil,
	// in which case the fact is skipped when publishing.
	Sink FactSink
}

// AnnotDisj is an annotated disjunction: a set of mutually exclusive outcomes
// whose probabilities sum to 1.
type AnnotDisj struct {
	// Atoms are the head atoms of the disjunction, one per outcome.
	Atoms []string
	// Probs are the current outcome probabilities. len(Probs) == len(Atoms).
	Probs []float64
	// Learnable marks the disjunction's probabilities as targets for
	// estimation.
	Learnable bool
	// Sink receives the learned outcome probabilities during publishing.
	// May be nil, in which case the disjunction is skipped when publishing.
	Sink DisjunctionSink
}

// Program holds the two ordered collections of probabilistic primitives.
type Program struct {
	Facts        []ProbFact
	Disjunctions []AnnotDisj
}

// Validate checks that all probabilities are finite values in [0, 1] and
// that each disjunction's outcomes are consistently shaped and sum to 1.
func (p *Program) Validate() error {
	for i, pf := range p.Facts {
		if err := validProb(pf.Prob); err != nil {
			return fmt.Errorf("fact[%d] %q: %w", i, pf.Atom, err)
		}
	}

	for i, ad := range p.Disjunctions {
		if len(ad.Probs) == 0 {
			return fmt.Errorf("disjunction[%d]: no outcomes", i)
		}
		if len(ad.Atoms) > 0 && len(ad.Atoms) != len(ad.Probs) {
			return fmt.Errorf("disjunction[%d]: %d atoms != %d probabilities",
				i, len(ad.Atoms), len(ad.Probs))
		}

		var sum float64
		for j, q := range ad.Probs {
			if err := validProb(q); err != nil {
				return fmt.Errorf("disjunction[%d] outcome %d: %w", i, j, err)
			}
			sum += q
		}
		if math.Abs(sum-1) > SumTolerance {
			return fmt.Errorf("disjunction[%d]: outcome probabilities sum to %g, want 1", i, sum)
		}
	}

	return nil
}

func validProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Errorf("probability %g is not finite", p)
	}
	if p < 0 || p > 1 {
		return fmt.Errorf("probability %g outside [0, 1]", p)
	}
	return nil
}

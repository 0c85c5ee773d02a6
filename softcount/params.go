// Package softcount provides the accumulator storage for fixpoint learning:
// the dense and ragged soft-count arrays mirroring the learnable index set,
// and the per-worker probability storage filled by the solver.
//
// Both structures share the index set's layout, so dense position i addresses
// the same logical parameter in parameter storage and in every worker's
// accumulator.
package softcount

import (
	"fmt"
	"math"

	"github.com/plpkit/plearn/indexset"
	"github.com/plpkit/plearn/observations"
	"github.com/plpkit/plearn/program"
)

// FactParam is the parameter-storage slot for one learnable fact: its current
// probability estimate and the soft-count accumulator feeding the next
// estimate.
type FactParam struct {
	Prob  float64
	Count float64
}

// Params is the parameter storage for the learnable subset of a program.
//
// Facts holds one slot per entry of the fact index set. Disjunctions is
// ragged: entry i has one accumulator per outcome of the disjunction
// referenced by the i-th disjunction index.
type Params struct {
	idx indexset.Set

	Facts        []FactParam
	Disjunctions [][]float64
}

// NewParams allocates parameter storage mirroring the index set. The program
// is consulted only to size each disjunction's outcome array.
func NewParams(idx indexset.Set, p *program.Program) *Params {
	w := &Params{
		idx:          idx,
		Facts:        make([]FactParam, len(idx.Facts)),
		Disjunctions: make([][]float64, len(idx.Disjunctions)),
	}
	for i, di := range idx.Disjunctions {
		w.Disjunctions[i] = make([]float64, len(p.Disjunctions[di].Probs))
	}
	return w
}

// Reset zeroes every soft-count accumulator. Probability estimates are left
// untouched.
func (w *Params) Reset() {
	for i := range w.Facts {
		w.Facts[i].Count = 0
	}
	for _, outcomes := range w.Disjunctions {
		for j := range outcomes {
			outcomes[j] = 0
		}
	}
}

// Accumulate folds one worker's per-observation probabilities into the
// soft-count accumulators, weighting each observation by its repeat count.
//
// For an observation with total probability P(O), each learnable fact
// receives c * P(t=true, O) / P(O) and each disjunction outcome j receives
// c * P(outcome=j, O) / P(O). A non-positive or non-finite P(O) violates the
// solver's contract and is returned as an error; no silent skipping.
//
// Accumulation across workers is a pure associative reduction: calling
// Accumulate for every populated worker, in any order, between Reset and
// Normalize yields the merged soft counts.
func (w *Params) Accumulate(wk *Worker, obs *observations.Set) error {
	for o := wk.Lo; o < wk.Hi; o++ {
		op := &wk.Obs[o-wk.Lo]
		total := op.Total
		if total <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
			return fmt.Errorf("observation %d has probability %g", o, total)
		}

		c := float64(obs.Count(o))
		for i := range w.Facts {
			w.Facts[i].Count += c * (op.Facts[i][1] / total)
		}
		for i, outcomes := range w.Disjunctions {
			for j := range outcomes {
				outcomes[j] += c * (op.Disjunctions[i][j] / total)
			}
		}
	}
	return nil
}

// Normalize divides every accumulator by n and promotes the quotients to the
// new probability estimates.
func (w *Params) Normalize(n float64) {
	for i := range w.Facts {
		w.Facts[i].Prob = w.Facts[i].Count / n
	}
	for _, outcomes := range w.Disjunctions {
		for j := range outcomes {
			outcomes[j] /= n
		}
	}
}

// ApplyTo writes the current probability estimates back into the program's
// learnable entries, making them visible to the next solver invocation.
func (w *Params) ApplyTo(p *program.Program) {
	for i, fi := range w.idx.Facts {
		p.Facts[fi].Prob = w.Facts[i].Prob
	}
	for i, di := range w.idx.Disjunctions {
		copy(p.Disjunctions[di].Probs, w.Disjunctions[i])
	}
}

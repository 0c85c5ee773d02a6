package solver

import (
	"context"
	"fmt"

	"github.com/plpkit/plearn/indexset"
	"github.com/plpkit/plearn/observations"
	"github.com/plpkit/plearn/program"
	"github.com/plpkit/plearn/softcount"
)

// Independent is an exact solver for fully observed programs: every
// probabilistic fact's atom and every disjunction outcome's atom must appear
// in the observation vocabulary, and the program must have no rules relating
// them.
//
// Under full observation the joint probability of a parameter value with an
// observation is either the observation's total probability or zero,
// depending on whether the pattern agrees with the value. Learning then
// converges to the empirical frequencies in a single iteration, which makes
// Independent useful as a reference implementation and as a test oracle for
// richer solvers.
type Independent struct{}

// Compile-time interface check.
var _ Solver = Independent{}

// Solve implements Solver.
func (Independent) Solve(ctx context.Context, p *program.Program, obs *observations.Set, w *softcount.Worker, _ Mode) error {
	factCols, disjCols, err := resolveColumns(p, obs)
	if err != nil {
		return err
	}
	idx := indexset.Build(p)

	for o := w.Lo; o < w.Hi; o++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		pattern := obs.Pattern(o)
		total := jointProb(p, factCols, disjCols, pattern)

		op := &w.Obs[o-w.Lo]
		op.Total = total
		for i, fi := range idx.Facts {
			op.Facts[i] = [2]float64{}
			if pattern[factCols[fi]] {
				op.Facts[i][1] = total
			} else {
				op.Facts[i][0] = total
			}
		}
		for i, di := range idx.Disjunctions {
			for j := range op.Disjunctions[i] {
				op.Disjunctions[i][j] = 0
				if pattern[disjCols[di][j]] {
					op.Disjunctions[i][j] = total
				}
			}
		}
	}

	return nil
}

// jointProb multiplies the independent contributions of all facts and
// disjunctions under the given pattern.
func jointProb(p *program.Program, factCols []int, disjCols [][]int, pattern []bool) float64 {
	total := 1.0
	for i := range p.Facts {
		if pattern[factCols[i]] {
			total *= p.Facts[i].Prob
		} else {
			total *= 1 - p.Facts[i].Prob
		}
	}
	for i := range p.Disjunctions {
		// Mutual exclusion: exactly one outcome atom may hold.
		q := 0.0
		seen := 0
		for j, col := range disjCols[i] {
			if pattern[col] {
				q = p.Disjunctions[i].Probs[j]
				seen++
			}
		}
		if seen != 1 {
			return 0
		}
		total *= q
	}
	return total
}

// resolveColumns maps every program atom to its observation column.
func resolveColumns(p *program.Program, obs *observations.Set) ([]int, [][]int, error) {
	factCols := make([]int, len(p.Facts))
	for i, pf := range p.Facts {
		col := obs.AtomIndex(pf.Atom)
		if col < 0 {
			return nil, nil, fmt.Errorf("fact atom %q not observed", pf.Atom)
		}
		factCols[i] = col
	}

	disjCols := make([][]int, len(p.Disjunctions))
	for i, ad := range p.Disjunctions {
		if len(ad.Atoms) != len(ad.Probs) {
			return nil, nil, fmt.Errorf("disjunction[%d]: %d atoms for %d outcomes",
				i, len(ad.Atoms), len(ad.Probs))
		}
		disjCols[i] = make([]int, len(ad.Atoms))
		for j, atom := range ad.Atoms {
			col := obs.AtomIndex(atom)
			if col < 0 {
				return nil, nil, fmt.Errorf("disjunction outcome atom %q not observed", atom)
			}
			disjCols[i][j] = col
		}
	}

	return factCols, disjCols, nil
}

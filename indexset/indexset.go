// Package indexset builds the compact index space over a program's learnable
// parameters.
//
// Learnable entries are sparse within the program's fact and disjunction
// collections. The builder materializes two densely packed index sequences
// referencing only the learnable entries, so that accumulator storage can be
// allocated exactly and addressed by dense position instead of by sparse
// program index.
package indexset

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/plpkit/plearn/program"
)

// Set holds the learnable index sequences for the two parameter collections.
// Both sequences are ascending and duplicate-free; either may be empty.
type Set struct {
	// Facts are the positions of learnable entries in Program.Facts.
	Facts []int
	// Disjunctions are the positions of learnable entries in
	// Program.Disjunctions.
	Disjunctions []int
}

// Build scans the program and returns the learnable index set.
//
// An empty-empty result is valid output and signals that nothing is
// learnable; rejecting it is the caller's decision.
func Build(p *program.Program) Set {
	return Set{
		Facts:        collect(len(p.Facts), func(i int) bool { return p.Facts[i].Learnable }),
		Disjunctions: collect(len(p.Disjunctions), func(i int) bool { return p.Disjunctions[i].Learnable }),
	}
}

// Empty reports whether the set selects no parameters at all.
func (s Set) Empty() bool {
	return len(s.Facts) == 0 && len(s.Disjunctions) == 0
}

// collect marks matching positions in a bitmap, then materializes them.
// The bitmap's cardinality sizes the output exactly, and iteration order is
// ascending, so no growable reallocation happens during the fill.
func collect(n int, learnable func(int) bool) []int {
	bm := roaring.New()
	for i := 0; i < n; i++ {
		if learnable(i) {
			bm.Add(uint32(i))
		}
	}
	if bm.IsEmpty() {
		return nil
	}

	out := make([]int, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

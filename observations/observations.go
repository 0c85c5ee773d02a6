// Package observations converts raw truth-pattern matrices into the immutable
// observation set consumed by the learner.
//
// An observation set holds distinct truth-value patterns over a fixed atom
// vocabulary, each paired with a repeat count. The repeat counts sum to the
// total number of raw observations, which the learner uses as the soft-count
// normalization denominator.
package observations

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch indicates that the raw input arrays disagree on their
// dimensions.
type ErrShapeMismatch struct {
	// What names the mismatching input.
	What string
	// Expected and Actual are the disagreeing lengths.
	Expected int
	Actual   int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: %s has length %d, want %d", e.What, e.Actual, e.Expected)
}

// ErrNegativeCount indicates a negative repeat count.
var ErrNegativeCount = errors.New("negative observation count")

// Set is an immutable observation set.
type Set struct {
	patterns [][]bool
	counts   []int
	atoms    []string
	total    int
}

// FromMatrix validates and ingests a raw observation matrix.
//
// patterns is a rectangular matrix with one row per distinct observation and
// one column per atom; counts holds the repeat count of each row; atoms holds
// the atom labels, one per column. All shape validation happens here, before
// the learner allocates anything: every row must have len(atoms) columns and
// len(counts) must equal the row count. Counts must be non-negative.
func FromMatrix(patterns [][]bool, counts []int, atoms []string) (*Set, error) {
	if len(counts) != len(patterns) {
		return nil, &ErrShapeMismatch{What: "counts", Expected: len(patterns), Actual: len(counts)}
	}
	for i, row := range patterns {
		if len(row) != len(atoms) {
			return nil, &ErrShapeMismatch{
				What:     fmt.Sprintf("patterns[%d]", i),
				Expected: len(atoms),
				Actual:   len(row),
			}
		}
	}

	total := 0
	for i, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("%w: counts[%d] = %d", ErrNegativeCount, i, c)
		}
		total += c
	}

	// Deep-copy so the set stays immutable if the caller reuses its buffers.
	set := &Set{
		patterns: make([][]bool, len(patterns)),
		counts:   make([]int, len(counts)),
		atoms:    make([]string, len(atoms)),
		total:    total,
	}
	for i, row := range patterns {
		set.patterns[i] = make([]bool, len(row))
		copy(set.patterns[i], row)
	}
	copy(set.counts, counts)
	copy(set.atoms, atoms)

	return set, nil
}

// Len returns the number of distinct observation patterns.
func (s *Set) Len() int { return len(s.patterns) }

// Total returns the sum of all repeat counts.
func (s *Set) Total() int { return s.total }

// Count returns the repeat count of observation i.
func (s *Set) Count(i int) int { return s.counts[i] }

// Pattern returns the truth-value pattern of observation i.
// The returned slice must not be modified.
func (s *Set) Pattern(i int) []bool { return s.patterns[i] }

// Atoms returns the atom labels.
// The returned slice must not be modified.
func (s *Set) Atoms() []string { return s.atoms }

// AtomIndex returns the column index of the named atom, or -1 if the atom is
// not part of the vocabulary.
func (s *Set) AtomIndex(name string) int {
	for i, a := range s.atoms {
		if a == name {
			return i
		}
	}
	return -1
}

package observations

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMatrix(t *testing.T) {
	set, err := FromMatrix(
		[][]bool{
			{true, false},
			{false, false},
			{true, true},
		},
		[]int{3, 1, 2},
		[]string{"rain", "wet"},
	)
	require.NoError(t, err)

	assert.Equal(t, 3, set.Len())
	assert.Equal(t, 6, set.Total())
	assert.Equal(t, 3, set.Count(0))
	assert.Equal(t, []bool{false, false}, set.Pattern(1))
	assert.Equal(t, []string{"rain", "wet"}, set.Atoms())
	assert.Equal(t, 1, set.AtomIndex("wet"))
	assert.Equal(t, -1, set.AtomIndex("snow"))
}

func TestFromMatrixShapeErrors(t *testing.T) {
	tests := []struct {
		name     string
		patterns [][]bool
		counts   []int
		atoms    []string
	}{
		{
			name:     "counts length mismatch",
			patterns: [][]bool{{true}, {false}},
			counts:   []int{1},
			atoms:    []string{"a"},
		},
		{
			name:     "column count vs atom labels",
			patterns: [][]bool{{true, false}},
			counts:   []int{1},
			atoms:    []string{"a"},
		},
		{
			name:     "ragged rows",
			patterns: [][]bool{{true, false}, {true}},
			counts:   []int{1, 1},
			atoms:    []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromMatrix(tt.patterns, tt.counts, tt.atoms)
			require.Error(t, err)

			var shapeErr *ErrShapeMismatch
			assert.True(t, errors.As(err, &shapeErr), "want *ErrShapeMismatch, got %T", err)
		})
	}
}

func TestFromMatrixNegativeCount(t *testing.T) {
	_, err := FromMatrix([][]bool{{true}}, []int{-1}, []string{"a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeCount)
}

func TestFromMatrixCopiesInput(t *testing.T) {
	patterns := [][]bool{{true}}
	counts := []int{2}
	atoms := []string{"a"}

	set, err := FromMatrix(patterns, counts, atoms)
	require.NoError(t, err)

	// Mutating the caller's buffers must not affect the set.
	patterns[0][0] = false
	counts[0] = 99
	atoms[0] = "b"

	assert.Equal(t, []bool{true}, set.Pattern(0))
	assert.Equal(t, 2, set.Count(0))
	assert.Equal(t, 2, set.Total())
	assert.Equal(t, []string{"a"}, set.Atoms())
}

func TestFromMatrixEmpty(t *testing.T) {
	set, err := FromMatrix(nil, nil, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, 0, set.Total())
}

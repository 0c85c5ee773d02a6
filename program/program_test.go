package program

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		program Program
		wantErr bool
	}{
		{
			name: "valid",
			program: Program{
				Facts: []ProbFact{{Atom: "a", Prob: 0.3}},
				Disjunctions: []AnnotDisj{
					{Atoms: []string{"x", "y"}, Probs: []float64{0.4, 0.6}},
				},
			},
		},
		{
			name:    "fact probability above one",
			program: Program{Facts: []ProbFact{{Prob: 1.5}}},
			wantErr: true,
		},
		{
			name:    "fact probability NaN",
			program: Program{Facts: []ProbFact{{Prob: math.NaN()}}},
			wantErr: true,
		},
		{
			name:    "disjunction with no outcomes",
			program: Program{Disjunctions: []AnnotDisj{{}}},
			wantErr: true,
		},
		{
			name: "disjunction mass not one",
			program: Program{
				Disjunctions: []AnnotDisj{{Probs: []float64{0.4, 0.4}}},
			},
			wantErr: true,
		},
		{
			name: "atom count mismatch",
			program: Program{
				Disjunctions: []AnnotDisj{{Atoms: []string{"x"}, Probs: []float64{0.5, 0.5}}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.program.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type recordingFactSink struct {
	got  []float64
	fail error
}

func (s *recordingFactSink) SetProb(p float64) error {
	if s.fail != nil {
		return s.fail
	}
	s.got = append(s.got, p)
	return nil
}

type recordingDisjSink struct {
	got    map[int]float64
	failAt int // outcome index that fails, -1 for never
	fail   error
}

func (s *recordingDisjSink) SetOutcome(i int, p float64) error {
	if s.fail != nil && i == s.failAt {
		return s.fail
	}
	if s.got == nil {
		s.got = make(map[int]float64)
	}
	s.got[i] = p
	return nil
}

func TestPublishLearned(t *testing.T) {
	fs := &recordingFactSink{}
	ds := &recordingDisjSink{failAt: -1}

	p := &Program{
		Facts: []ProbFact{
			{Prob: 0.1}, // not selected
			{Prob: 0.7, Learnable: true, Sink: fs},
		},
		Disjunctions: []AnnotDisj{
			{Probs: []float64{0.2, 0.8}, Learnable: true, Sink: ds},
		},
	}

	require.NoError(t, PublishLearned(p, []int{1}, []int{0}))
	assert.Equal(t, []float64{0.7}, fs.got)
	assert.Equal(t, map[int]float64{0: 0.2, 1: 0.8}, ds.got)
}

func TestPublishLearnedNilSinkSkipped(t *testing.T) {
	p := &Program{
		Facts: []ProbFact{{Prob: 0.7, Learnable: true}},
	}
	assert.NoError(t, PublishLearned(p, []int{0}, nil))
}

func TestPublishLearnedStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	before := &recordingFactSink{}
	failing := &recordingDisjSink{failAt: 1, fail: boom}

	p := &Program{
		Facts: []ProbFact{
			{Prob: 0.3, Learnable: true, Sink: before},
		},
		Disjunctions: []AnnotDisj{
			{Probs: []float64{0.4, 0.6}, Learnable: true, Sink: failing},
		},
	}

	err := PublishLearned(p, []int{0}, []int{0})
	require.Error(t, err)

	var pubErr *ErrPublish
	require.True(t, errors.As(err, &pubErr))
	assert.False(t, pubErr.Fact)
	assert.Equal(t, 0, pubErr.Index)
	assert.Equal(t, 1, pubErr.Outcome)
	assert.ErrorIs(t, err, boom)

	// The prefix stays published: the fact and the first outcome landed.
	assert.Equal(t, []float64{0.3}, before.got)
	assert.Equal(t, map[int]float64{0: 0.4}, failing.got)
}

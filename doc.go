// Package plearn estimates the probabilities of a probabilistic logic
// program's learnable parameters from observed atom-truth patterns.
//
// A program carries two kinds of learnable primitives: probabilistic facts
// (a single probability each) and annotated disjunctions (mutually exclusive
// outcome sets whose probabilities sum to 1). The Learner runs a fixed
// number of fixpoint iterations of the soft-count update rule
//
//	P(t = i) = (1/|O|) * sum_{o in O} P(t = i, o) / P(o)
//
// delegating all probability computation to an external solver. Observations
// may be partitioned across independent workers, each solved concurrently
// against its own accumulator storage, with a single merge before
// normalization.
//
// # Basic usage
//
//	prog := &program.Program{
//	    Facts: []program.ProbFact{{Atom: "rain", Prob: 0.5, Learnable: true}},
//	}
//	obs, err := observations.FromMatrix(
//	    [][]bool{{true}, {false}},
//	    []int{3, 1},
//	    []string{"rain"},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	learner, err := plearn.New(solver.Independent{}, plearn.WithIterations(10))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := learner.Fit(context.Background(), prog, obs)
//
// Converged values are written back through the program entries' sinks and
// returned in the Result. See package snapshot for persisting learned
// parameters to disk.
package plearn

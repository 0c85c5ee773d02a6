package plearn_test

import (
	"context"
	"fmt"
	"log"

	"github.com/plpkit/plearn"
	"github.com/plpkit/plearn/observations"
	"github.com/plpkit/plearn/program"
	"github.com/plpkit/plearn/solver"
)

func Example() {
	// A program with a single learnable probabilistic fact.
	prog := &program.Program{
		Facts: []program.ProbFact{
			{Atom: "rain", Prob: 0.5, Learnable: true},
		},
	}

	// Four observations of the "rain" atom: true three times, false once.
	obs, err := observations.FromMatrix(
		[][]bool{{true}, {false}},
		[]int{3, 1},
		[]string{"rain"},
	)
	if err != nil {
		log.Fatal(err)
	}

	learner, err := plearn.New(solver.Independent{}, plearn.WithIterations(10))
	if err != nil {
		log.Fatal(err)
	}

	result, err := learner.Fit(context.Background(), prog, obs)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("P(rain) = %.2f\n", result.Facts[0])
	// Output:
	// P(rain) = 0.75
}

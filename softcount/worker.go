package softcount

import (
	"github.com/plpkit/plearn/indexset"
	"github.com/plpkit/plearn/program"
)

// ObsProbs holds the solver output for a single observation: the
// observation's total probability and the joint probability of each learnable
// parameter value with the observation.
//
// Facts carries both truth polarities per learnable fact, indexed by truth
// value (0 = false, 1 = true); the learning rule consumes the true-polarity
// entry. Disjunctions mirrors the ragged parameter-storage layout.
type ObsProbs struct {
	// Total is P(O), the total probability of the observation.
	Total float64
	// Facts[i][v] is P(t_i = v, O) for the i-th learnable fact.
	Facts [][2]float64
	// Disjunctions[i][j] is P(outcome_i = j, O) for the i-th learnable
	// disjunction.
	Disjunctions [][]float64
}

// Worker is one worker's probability accumulator: scratch space covering the
// contiguous observation range [Lo, Hi), allocated once per learning call and
// overwritten by the solver every iteration.
//
// Workers own disjoint ranges and share nothing mutable, so the solver may
// fill them concurrently.
type Worker struct {
	// Lo and Hi bound this worker's observation range, [Lo, Hi).
	Lo, Hi int
	// Obs holds one accumulator per observation in range; Obs[k] belongs to
	// observation Lo+k.
	Obs []ObsProbs
}

// NewWorkers partitions n observations into numWorkers contiguous disjoint
// ranges and allocates each worker's accumulator storage, shaped from the
// index set. Workers never exceed the observation count; with fewer
// observations than workers the surplus workers are simply not created.
func NewWorkers(idx indexset.Set, p *program.Program, n, numWorkers int) []*Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > n {
		numWorkers = n
	}
	if numWorkers < 1 {
		// No observations at all; a single empty worker keeps the loop shape.
		numWorkers = 1
	}

	base := n / numWorkers
	rem := n % numWorkers

	workers := make([]*Worker, numWorkers)
	lo := 0
	for w := range workers {
		size := base
		if w < rem {
			size++
		}

		wk := &Worker{Lo: lo, Hi: lo + size, Obs: make([]ObsProbs, size)}
		for k := range wk.Obs {
			wk.Obs[k].Facts = make([][2]float64, len(idx.Facts))
			wk.Obs[k].Disjunctions = make([][]float64, len(idx.Disjunctions))
			for i, di := range idx.Disjunctions {
				wk.Obs[k].Disjunctions[i] = make([]float64, len(p.Disjunctions[di].Probs))
			}
		}

		workers[w] = wk
		lo += size
	}

	return workers
}

package program

import "fmt"

// ErrPublish indicates that a sink rejected a learned value.
//
// Earlier writes remain published. Publishing is deterministic and idempotent,
// so retrying the whole publish after fixing the sink is safe.
type ErrPublish struct {
	// Fact is true when the failing entry is a probabilistic fact,
	// false when it is an annotated disjunction.
	Fact bool
	// Index is the entry's position in its source collection.
	Index int
	// Outcome is the failing outcome position for a disjunction, -1 for a fact.
	Outcome int

	cause error
}

func (e *ErrPublish) Error() string {
	if e.Fact {
		return fmt.Sprintf("publish fact[%d]: %v", e.Index, e.cause)
	}
	return fmt.Sprintf("publish disjunction[%d] outcome %d: %v", e.Index, e.Outcome, e.cause)
}

func (e *ErrPublish) Unwrap() error { return e.cause }

// PublishLearned writes the program's current parameter values through the
// sinks of the entries selected by factIdx and disjIdx.
//
// Writes happen in index order, one outcome at a time for disjunctions. On
// the first sink failure publishing stops and an *ErrPublish is returned;
// entries written before the failure stay published. Entries with a nil sink
// are skipped.
func PublishLearned(p *Program, factIdx, disjIdx []int) error {
	for _, i := range factIdx {
		pf := &p.Facts[i]
		if pf.Sink == nil {
			continue
		}
		if err := pf.Sink.SetProb(pf.Prob); err != nil {
			return &ErrPublish{Fact: true, Index: i, Outcome: -1, cause: err}
		}
	}

	for _, i := range disjIdx {
		ad := &p.Disjunctions[i]
		if ad.Sink == nil {
			continue
		}
		for j, q := range ad.Probs {
			if err := ad.Sink.SetOutcome(j, q); err != nil {
				return &ErrPublish{Index: i, Outcome: j, cause: err}
			}
		}
	}

	return nil
}

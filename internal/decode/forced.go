package decode

import (
	"context"
	"fmt"
)

// ForcedSearcher does no search at all: it walks a fixed reference id
// sequence through the ensemble and reports the cost the models assign to
// it. Used by forced decode mode, where every source sentence comes paired
// with its reference.
type ForcedSearcher struct {
	Ref []int
}

func (s ForcedSearcher) Search(ctx context.Context, src []int, models []StepModel, opts Options) ([]Hypothesis, error) {
	if len(s.Ref) == 0 {
		return nil, fmt.Errorf("forced decoding requires a reference sequence")
	}
	states, err := initStates(models, src)
	if err != nil {
		return nil, err
	}

	hyp := Hypothesis{IDs: make([]int, 0, len(s.Ref))}
	prev := opts.EOS
	for _, word := range s.Ref {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, fused, err := fuseStep(models, states, prev)
		if err != nil {
			return nil, err
		}
		if word < 0 || word >= len(fused) {
			return nil, fmt.Errorf("reference id %d outside target vocabulary", word)
		}
		states = next
		hyp.IDs = append(hyp.IDs, word)
		hyp.Cost -= fused[word]
		prev = word
	}
	return []Hypothesis{hyp}, nil
}

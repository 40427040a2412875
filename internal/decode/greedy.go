package decode

import "context"

// GreedySearcher implements argmax decoding: a single sequence extended
// with the best-scoring word at every step. Equivalent to beam search with
// width 1, without the candidate bookkeeping.
type GreedySearcher struct{}

func (GreedySearcher) Search(ctx context.Context, src []int, models []StepModel, opts Options) ([]Hypothesis, error) {
	states, err := initStates(models, src)
	if err != nil {
		return nil, err
	}

	var hyp Hypothesis
	prev := opts.EOS
	for step := 0; step < opts.MaxLength; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, fused, err := fuseStep(models, states, prev)
		if err != nil {
			return nil, err
		}
		states = next

		best := -1
		for w, lp := range fused {
			if opts.SuppressUnknown && w == opts.Unknown {
				continue
			}
			if best < 0 || lp > fused[best] {
				best = w
			}
		}

		hyp.IDs = append(hyp.IDs, best)
		hyp.Cost -= fused[best]
		if best == opts.EOS {
			break
		}
		prev = best
	}
	return []Hypothesis{hyp}, nil
}

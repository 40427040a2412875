package decode

import (
	"context"
	"math"
	"math/rand"
)

// SampleSearcher draws one sequence from the fused step distributions.
// Options.Seed makes a run reproducible; each Search call owns its rng so
// concurrent requests do not interleave draws.
type SampleSearcher struct{}

func (SampleSearcher) Search(ctx context.Context, src []int, models []StepModel, opts Options) ([]Hypothesis, error) {
	states, err := initStates(models, src)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	var hyp Hypothesis
	var probs []float64
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

		if probs == nil {
			probs = make([]float64, len(fused))
		}
		var z float64
		for w, lp := range fused {
			p := math.Exp(lp)
			if opts.SuppressUnknown && w == opts.Unknown {
				p = 0
			}
			probs[w] = p
			z += p
		}

		word := len(fused) - 1
		r := rng.Float64() * z
		for w, p := range probs {
			r -= p
			if r <= 0 {
				word = w
				break
			}
		}

		hyp.IDs = append(hyp.IDs, word)
		hyp.Cost -= fused[word]
		if word == opts.EOS {
			break
		}
		prev = word
	}
	return []Hypothesis{hyp}, nil
}

// Package rank orders decoded hypotheses by length-normalized cost.
package rank

import (
	"sort"

	"github.com/Halim-byte/nmtgo/internal/decode"
)

// Normalize returns a hypothesis's cumulative cost divided by its length,
// correcting beam search's structural bias toward shorter sequences.
// Zero-length hypotheses normalize to their raw cost.
func Normalize(h decode.Hypothesis) float64 {
	if h.Len() == 0 {
		return h.Cost
	}
	return h.Cost / float64(h.Len())
}

// Rank sorts hypotheses ascending by normalized cost (lower is better) and
// returns the first nbest. The sort is stable, so ties keep generation
// order: given a deterministic backend the ranking is deterministic too.
// The input slice is not modified.
func Rank(hyps []decode.Hypothesis, nbest int) []decode.Hypothesis {
	out := make([]decode.Hypothesis, len(hyps))
	copy(out, hyps)
	sort.SliceStable(out, func(i, j int) bool {
		return Normalize(out[i]) < Normalize(out[j])
	})
	if nbest > 0 && nbest < len(out) {
		out = out[:nbest]
	}
	return out
}

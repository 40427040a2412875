package decode

import (
	"context"
	"sort"
)

// BeamSearcher is the default backend: breadth-limited search that keeps
// the BeamWidth lowest-cost partial sequences at every step, advancing all
// of them against the fused ensemble distribution. Candidates leave the
// beam when they emit EOS; whatever is still alive at MaxLength is closed
// out unterminated.
type BeamSearcher struct{}

type beamState struct {
	ids    []int
	cost   float64
	prev   int
	states []State
}

type beamCand struct {
	beam int
	word int
	cost float64
}

func (BeamSearcher) Search(ctx context.Context, src []int, models []StepModel, opts Options) ([]Hypothesis, error) {
	states, err := initStates(models, src)
	if err != nil {
		return nil, err
	}

	live := []beamState{{prev: opts.EOS, states: states}}
	finished := make([]Hypothesis, 0, opts.BeamWidth)

	// Candidate and successor-state buffers are reused across steps to
	// keep per-step allocation flat.
	var cands []beamCand
	nexts := make([][]State, 0, opts.BeamWidth)

	for step := 0; step < opts.MaxLength && len(live) > 0; step++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		slots := opts.BeamWidth - len(finished)
		cands = cands[:0]
		nexts = nexts[:0]

		for i, b := range live {
			ns, fused, err := fuseStep(models, b.states, b.prev)
			if err != nil {
				return nil, err
			}
			nexts = append(nexts, ns)
			for w, lp := range fused {
				if opts.SuppressUnknown && w == opts.Unknown {
					continue
				}
				cands = append(cands, beamCand{beam: i, word: w, cost: b.cost - lp})
			}
		}

		sort.SliceStable(cands, func(a, b int) bool { return cands[a].cost < cands[b].cost })
		if len(cands) > slots {
			cands = cands[:slots]
		}

		next := make([]beamState, 0, len(cands))
		for _, c := range cands {
			parent := live[c.beam]
			ids := make([]int, len(parent.ids)+1)
			copy(ids, parent.ids)
			ids[len(parent.ids)] = c.word

			if c.word == opts.EOS {
				finished = append(finished, Hypothesis{IDs: ids, Cost: c.cost})
				continue
			}
			next = append(next, beamState{
				ids:    ids,
				cost:   c.cost,
				prev:   c.word,
				states: nexts[c.beam],
			})
		}
		live = next

		if len(finished) >= opts.BeamWidth {
			live = nil
		}
	}

	// Survivors hit MaxLength without emitting EOS.
	for _, b := range live {
		if len(finished) >= opts.BeamWidth {
			break
		}
		finished = append(finished, Hypothesis{IDs: b.ids, Cost: b.cost})
	}
	return finished, nil
}

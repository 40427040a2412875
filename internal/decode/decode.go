// Package decode defines the decoding-invocation contract between the
// serving pipeline and a search backend, plus the backends shipped with the
// server. The invoker itself never searches; it hands the encoded source
// and the ensemble's step handles to whichever Searcher it was built with.
package decode

import (
	"context"
	"errors"
	"fmt"
)

// ErrDecode marks a failure raised inside a decoding backend. Per-request,
// never fatal to the process.
var ErrDecode = errors.New("decoding failed")

// State is opaque per-model decoder state. See model.State.
type State = any

// StepModel is the per-model handle pair a backend advances during search.
// StepInit builds state for the encoded source; StepNext consumes the
// previous target id and returns the successor state plus log-probabilities
// over the target vocabulary. StepNext must treat the passed state as
// read-only: beam backends share one state between sibling candidates.
type StepModel interface {
	StepInit(src []int) (State, error)
	StepNext(state State, prev int) (State, []float32, error)
}

// Hypothesis is one candidate output sequence: target ids plus the
// cumulative cost accumulated while it was generated. Cost is on a
// negative-log-likelihood scale and grows monotonically with each step;
// lower is better.
type Hypothesis struct {
	IDs  []int
	Cost float64
}

// Len returns the hypothesis length used for score normalization.
func (h Hypothesis) Len() int { return len(h.IDs) }

// Options configures one decoding call.
type Options struct {
	BeamWidth       int
	NBest           int
	SuppressUnknown bool
	MaxLength       int

	// EOS and Unknown are the reserved target-vocabulary ids the backend
	// must honor; they come from the loaded ensemble.
	EOS     int
	Unknown int

	// Seed drives stochastic backends. Deterministic backends ignore it.
	Seed int64
}

// Searcher is the external decoding collaborator. Implementations must:
//
//   - produce up to Options.BeamWidth candidate sequences, each terminated
//     either by emitting Options.EOS or by reaching Options.MaxLength;
//   - fuse the per-step scores of ALL supplied models into a single step
//     distribution before advancing (joint per-step voting, never
//     independent per-model decoding merged afterwards);
//   - accumulate each candidate's cost monotonically, one step at a time;
//   - exclude Options.Unknown from candidate selection at every step when
//     Options.SuppressUnknown is set;
//   - return candidates in generation order, which ranking relies on for
//     deterministic tie-breaks.
type Searcher interface {
	Search(ctx context.Context, src []int, models []StepModel, opts Options) ([]Hypothesis, error)
}

// Invoker gives the pipeline a uniform call signature over any backend.
type Invoker struct {
	searcher Searcher
	models   []StepModel
}

// NewInvoker binds a backend to the ensemble's step handles.
func NewInvoker(s Searcher, models []StepModel) *Invoker {
	return &Invoker{searcher: s, models: models}
}

// Decode runs one search over the encoded source. Backend failures and
// empty results are wrapped as ErrDecode.
func (in *Invoker) Decode(ctx context.Context, src []int, opts Options) ([]Hypothesis, error) {
	if opts.BeamWidth <= 0 {
		opts.BeamWidth = 1
	}
	if opts.MaxLength <= 0 {
		opts.MaxLength = defaultMaxLength
	}
	hyps, err := in.searcher.Search(ctx, src, in.models, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(hyps) == 0 {
		return nil, fmt.Errorf("%w: backend produced no hypotheses", ErrDecode)
	}
	return hyps, nil
}

const defaultMaxLength = 100

// fuseStep advances every model by one position and averages their
// log-probability vectors into a single step distribution. All models must
// agree on vocabulary size; the ensemble validated that at load time.
func fuseStep(models []StepModel, states []State, prev int) ([]State, []float64, error) {
	next := make([]State, len(models))
	var fused []float64
	for i, m := range models {
		st, scores, err := m.StepNext(states[i], prev)
		if err != nil {
			return nil, nil, err
		}
		next[i] = st
		if fused == nil {
			fused = make([]float64, len(scores))
		}
		if len(scores) != len(fused) {
			return nil, nil, fmt.Errorf("model %d step returned %d scores, want %d", i, len(scores), len(fused))
		}
		for w, lp := range scores {
			fused[w] += float64(lp)
		}
	}
	inv := 1 / float64(len(models))
	for w := range fused {
		fused[w] *= inv
	}
	return next, fused, nil
}

func initStates(models []StepModel, src []int) ([]State, error) {
	states := make([]State, len(models))
	for i, m := range models {
		st, err := m.StepInit(src)
		if err != nil {
			return nil, err
		}
		states[i] = st
	}
	return states, nil
}

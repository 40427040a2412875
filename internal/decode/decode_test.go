package decode

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// stubModel scores every step from a fixed prev->logprob table. Vocabulary
// ids used throughout: 0 = EOS, 1 = UNK, 2..n-1 = words.
type stubModel struct {
	scores map[int][]float32
}

func (m stubModel) StepInit(src []int) (State, error) { return struct{}{}, nil }

func (m stubModel) StepNext(state State, prev int) (State, []float32, error) {
	v, ok := m.scores[prev]
	if !ok {
		return nil, nil, fmt.Errorf("no scores for prev=%d", prev)
	}
	return state, v, nil
}

type errModel struct{}

func (errModel) StepInit(src []int) (State, error) { return nil, nil }
func (errModel) StepNext(state State, prev int) (State, []float32, error) {
	return nil, nil, errors.New("kernel exploded")
}

// pathModel prefers the walk EOS -> 2 -> 3 -> EOS.
func pathModel() stubModel {
	return stubModel{scores: map[int][]float32{
		0: {-5, -5, -0.1, -3},
		2: {-5, -5, -3, -0.1},
		3: {-0.1, -5, -3, -3},
	}}
}

func testOpts() Options {
	return Options{BeamWidth: 2, NBest: 1, MaxLength: 10, EOS: 0, Unknown: 1}
}

func TestGreedyFollowsBestPath(t *testing.T) {
	t.Parallel()

	hyps, err := GreedySearcher{}.Search(context.Background(), []int{2}, []StepModel{pathModel()}, testOpts())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hyps) != 1 {
		t.Fatalf("hypotheses: got %d want 1", len(hyps))
	}
	want := []int{2, 3, 0}
	if !reflect.DeepEqual(hyps[0].IDs, want) {
		t.Fatalf("ids: got %v want %v", hyps[0].IDs, want)
	}
	if hyps[0].Cost <= 0 {
		t.Fatalf("cost must be positive, got %v", hyps[0].Cost)
	}
}

func TestBeamFindsBestPath(t *testing.T) {
	t.Parallel()

	hyps, err := BeamSearcher{}.Search(context.Background(), []int{2}, []StepModel{pathModel()}, testOpts())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hyps) == 0 || len(hyps) > 2 {
		t.Fatalf("hypotheses: got %d want 1..2", len(hyps))
	}

	best := hyps[0]
	for _, h := range hyps[1:] {
		if h.Cost/float64(h.Len()) < best.Cost/float64(best.Len()) {
			best = h
		}
	}
	want := []int{2, 3, 0}
	if !reflect.DeepEqual(best.IDs, want) {
		t.Fatalf("best ids: got %v want %v", best.IDs, want)
	}
	for _, h := range hyps {
		if h.IDs[len(h.IDs)-1] != 0 && h.Len() != testOpts().MaxLength {
			t.Fatalf("hypothesis %v neither EOS-terminated nor at max length", h.IDs)
		}
	}
}

func TestBeamSuppressUnknown(t *testing.T) {
	t.Parallel()

	// UNK is the best continuation everywhere; suppression must keep it
	// out of every candidate anyway.
	m := stubModel{scores: map[int][]float32{
		0: {-3, -0.1, -1, -2},
		2: {-0.5, -0.1, -3, -3},
		3: {-0.5, -0.1, -3, -3},
	}}
	opts := testOpts()
	opts.SuppressUnknown = true

	hyps, err := BeamSearcher{}.Search(context.Background(), []int{2}, []StepModel{m}, opts)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, h := range hyps {
		for _, id := range h.IDs {
			if id == opts.Unknown {
				t.Fatalf("unknown id leaked into %v", h.IDs)
			}
		}
	}
}

func TestBeamStopsAtMaxLength(t *testing.T) {
	t.Parallel()

	// 2 and 3 feed each other forever; EOS never wins.
	m := stubModel{scores: map[int][]float32{
		0: {-5, -5, -0.1, -3},
		2: {-5, -5, -3, -0.1},
		3: {-5, -5, -0.1, -3},
	}}
	opts := testOpts()
	opts.MaxLength = 4

	hyps, err := BeamSearcher{}.Search(context.Background(), []int{2}, []StepModel{m}, opts)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hyps) == 0 {
		t.Fatal("expected closed-out hypotheses at max length")
	}
	for _, h := range hyps {
		if h.Len() != opts.MaxLength {
			t.Fatalf("length: got %d want %d", h.Len(), opts.MaxLength)
		}
	}
}

func TestEnsembleFusionIsJoint(t *testing.T) {
	t.Parallel()

	// Model A strongly prefers 2, model B mildly prefers 3. The averaged
	// distribution must side with A at the first step.
	a := stubModel{scores: map[int][]float32{
		0: {-6, -6, -0.05, -5},
		2: {-0.05, -6, -5, -5},
	}}
	b := stubModel{scores: map[int][]float32{
		0: {-2, -6, -1.2, -0.9},
		2: {-0.9, -6, -1.2, -1.1},
	}}

	hyps, err := GreedySearcher{}.Search(context.Background(), []int{2}, []StepModel{a, b}, testOpts())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if hyps[0].IDs[0] != 2 {
		t.Fatalf("fused first step: got %d want 2", hyps[0].IDs[0])
	}
}

func TestSampleDeterministicPerSeed(t *testing.T) {
	t.Parallel()

	opts := testOpts()
	opts.Seed = 42
	opts.MaxLength = 6
	opts.SuppressUnknown = true

	run := func() []int {
		hyps, err := SampleSearcher{}.Search(context.Background(), []int{2}, []StepModel{pathModel()}, opts)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		return hyps[0].IDs
	}
	if first, second := run(), run(); !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed diverged: %v vs %v", first, second)
	}
}

func TestForcedScoresReference(t *testing.T) {
	t.Parallel()

	ref := []int{2, 3, 0}
	hyps, err := ForcedSearcher{Ref: ref}.Search(context.Background(), []int{2}, []StepModel{pathModel()}, testOpts())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !reflect.DeepEqual(hyps[0].IDs, ref) {
		t.Fatalf("ids: got %v want %v", hyps[0].IDs, ref)
	}
	if hyps[0].Cost <= 0 {
		t.Fatalf("cost must be positive, got %v", hyps[0].Cost)
	}

	if _, err := (ForcedSearcher{}).Search(context.Background(), []int{2}, []StepModel{pathModel()}, testOpts()); err == nil {
		t.Fatal("expected error for empty reference")
	}
}

func TestInvokerWrapsBackendFailure(t *testing.T) {
	t.Parallel()

	inv := NewInvoker(BeamSearcher{}, []StepModel{errModel{}})
	_, err := inv.Decode(context.Background(), []int{2}, testOpts())
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

type emptySearcher struct{}

func (emptySearcher) Search(ctx context.Context, src []int, models []StepModel, opts Options) ([]Hypothesis, error) {
	return nil, nil
}

func TestInvokerRejectsEmptyResult(t *testing.T) {
	t.Parallel()

	inv := NewInvoker(emptySearcher{}, []StepModel{pathModel()})
	_, err := inv.Decode(context.Background(), []int{2}, testOpts())
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
}

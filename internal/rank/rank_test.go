package rank

import (
	"reflect"
	"testing"

	"github.com/Halim-byte/nmtgo/internal/decode"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	a := decode.Hypothesis{IDs: []int{5, 7}, Cost: -4.0}
	b := decode.Hypothesis{IDs: []int{5, 7, 2}, Cost: -9.0}
	if got := Normalize(a); got != -2.0 {
		t.Fatalf("Normalize(a): got %v want -2.0", got)
	}
	if got := Normalize(b); got != -3.0 {
		t.Fatalf("Normalize(b): got %v want -3.0", got)
	}
}

func TestRankPrefersLowerNormalizedCost(t *testing.T) {
	t.Parallel()

	hyps := []decode.Hypothesis{
		{IDs: []int{5, 7}, Cost: -4.0},
		{IDs: []int{5, 7, 2}, Cost: -9.0},
	}
	got := Rank(hyps, 1)
	if len(got) != 1 {
		t.Fatalf("nbest: got %d want 1", len(got))
	}
	// The length-3 hypothesis normalizes to -3.0 and must win.
	if got[0].Len() != 3 {
		t.Fatalf("best length: got %d want 3", got[0].Len())
	}
}

func TestRankStableTies(t *testing.T) {
	t.Parallel()

	hyps := []decode.Hypothesis{
		{IDs: []int{4}, Cost: 2.0},
		{IDs: []int{5}, Cost: 2.0},
		{IDs: []int{6}, Cost: 1.0},
	}
	got := Rank(hyps, 3)
	want := [][]int{{6}, {4}, {5}}
	for i, w := range want {
		if !reflect.DeepEqual(got[i].IDs, w) {
			t.Fatalf("position %d: got %v want %v", i, got[i].IDs, w)
		}
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	hyps := []decode.Hypothesis{
		{IDs: []int{4}, Cost: 5.0},
		{IDs: []int{5}, Cost: 1.0},
	}
	_ = Rank(hyps, 2)
	if hyps[0].Cost != 5.0 {
		t.Fatal("input slice reordered")
	}
}

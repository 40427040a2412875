package vocab

import (
	"reflect"
	"testing"
)

func testTable() map[string]int {
	return map[string]int{
		TokenEOS:     0,
		TokenUnknown: 1,
		"the":        2,
		"cat":        3,
		"sat":        4,
	}
}

func TestEncodeUnknownWords(t *testing.T) {
	t.Parallel()

	v := New(testTable())
	got := v.Encode([]string{"the", "zebra", "sat", "quux"})
	want := []int{2, 1, 4, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Encode: got %v want %v", got, want)
	}
}

func TestDecodeStopsAtEOS(t *testing.T) {
	t.Parallel()

	v := New(testTable())
	got := v.Decode([]int{2, 3, 0, 4})
	want := []string{"the", "cat"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Decode: got %v want %v", got, want)
	}
}

func TestDecodeUnknownID(t *testing.T) {
	t.Parallel()

	v := New(testTable())
	got := v.Decode([]int{1, 99})
	want := []string{TokenUnknown, TokenUnknown}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Decode: got %v want %v", got, want)
	}
}

func TestRoundTripInVocabulary(t *testing.T) {
	t.Parallel()

	v := New(testTable())
	words := []string{"the", "cat", "sat"}
	if got := v.Decode(v.Encode(words)); !reflect.DeepEqual(got, words) {
		t.Fatalf("round trip: got %v want %v", got, words)
	}
}

func TestReservedIDsFromTable(t *testing.T) {
	t.Parallel()

	v := New(map[string]int{TokenEOS: 2, "hello": 5, "world": 7})
	if v.EOS() != 2 {
		t.Fatalf("EOS: got %d want 2", v.EOS())
	}
	if v.Unknown() != DefaultUnknownID {
		t.Fatalf("Unknown: got %d want %d", v.Unknown(), DefaultUnknownID)
	}
	got := v.Decode([]int{5, 7, 2})
	want := []string{"hello", "world"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Decode: got %v want %v", got, want)
	}
}

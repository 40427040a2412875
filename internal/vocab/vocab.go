// Package vocab implements the bidirectional word/id mapping used on both
// sides of a translation model. Every loaded model carries one Vocab per
// direction; both are immutable after construction.
package vocab

// Reserved vocabulary entries. Every well-formed vocabulary table maps
// TokenEOS and TokenUnknown; when a table omits them the conventional ids
// below are assumed.
const (
	TokenEOS     = "</s>"
	TokenUnknown = "<unk>"

	DefaultEOSID     = 0
	DefaultUnknownID = 1
)

// Vocab is a bidirectional word<->id mapping with reserved end-of-sequence
// and unknown entries.
type Vocab struct {
	word2id map[string]int
	id2word map[int]string
	eos     int
	unk     int
}

// New builds a Vocab from a word->id table. The table is copied; later
// mutation of the argument does not affect the Vocab. The end-of-sequence
// and unknown ids are taken from the table when present, otherwise the
// conventional defaults apply.
func New(table map[string]int) *Vocab {
	v := &Vocab{
		word2id: make(map[string]int, len(table)),
		id2word: make(map[int]string, len(table)),
		eos:     DefaultEOSID,
		unk:     DefaultUnknownID,
	}
	for word, id := range table {
		v.word2id[word] = id
		v.id2word[id] = word
	}
	if id, ok := v.word2id[TokenEOS]; ok {
		v.eos = id
	}
	if id, ok := v.word2id[TokenUnknown]; ok {
		v.unk = id
	}
	return v
}

// Size returns the number of distinct words in the table.
func (v *Vocab) Size() int { return len(v.word2id) }

// EOS returns the end-of-sequence id.
func (v *Vocab) EOS() int { return v.eos }

// Unknown returns the unknown-word id.
func (v *Vocab) Unknown() int { return v.unk }

// Encode maps each word to its id. Words absent from the table map to the
// unknown id; encoding never fails.
func (v *Vocab) Encode(words []string) []int {
	ids := make([]int, len(words))
	for i, word := range words {
		if id, ok := v.word2id[word]; ok {
			ids[i] = id
		} else {
			ids[i] = v.unk
		}
	}
	return ids
}

// Decode maps ids back to words, stopping before the end-of-sequence id if
// one is present. Ids absent from the table decode to the literal unknown
// token string.
func (v *Vocab) Decode(ids []int) []string {
	words := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == v.eos {
			break
		}
		if word, ok := v.id2word[id]; ok {
			words = append(words, word)
		} else {
			words = append(words, TokenUnknown)
		}
	}
	return words
}

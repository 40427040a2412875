// Package filter provides named post-processing filters applied to a
// translated sentence before it is returned to the client. A model artifact
// may name a chain of filters; each name must resolve at startup.
package filter

import (
	"fmt"
	"strings"
)

// Filter rewrites a translated sentence. Filters are pure string
// transformations and must be safe for concurrent use.
type Filter func(text string) string

var registry = map[string]Filter{
	"bpe":      JoinBPE,
	"compound": JoinCompounds,
}

// Resolve looks up a registered filter by name.
func Resolve(name string) (Filter, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown filter %q", name)
	}
	return f, nil
}

// ResolveChain resolves a list of filter names in order. The returned chain
// is applied left to right.
func ResolveChain(names []string) ([]Filter, error) {
	chain := make([]Filter, 0, len(names))
	for _, name := range names {
		f, err := Resolve(name)
		if err != nil {
			return nil, err
		}
		chain = append(chain, f)
	}
	return chain, nil
}

// Apply runs the chain over text left to right.
func Apply(chain []Filter, text string) string {
	for _, f := range chain {
		text = f(text)
	}
	return text
}

// JoinBPE merges byte-pair-encoded subword segments back into surface words
// by joining every "xx@@ yy" pair.
func JoinBPE(text string) string {
	return strings.ReplaceAll(text, "@@ ", "")
}

// JoinCompounds re-attaches compound segments marked with a trailing "+":
// "Tor+ wart" becomes "Torwart".
func JoinCompounds(text string) string {
	return strings.ReplaceAll(text, "+ ", "")
}

// Package server drives the translation pipeline end to end: encode,
// decode, rank, format, respond. The Translator is built once at startup
// and passed into every request handler; it holds no mutable state beyond
// its dispatch semaphore.
package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/Halim-byte/nmtgo/internal/decode"
	"github.com/Halim-byte/nmtgo/internal/filter"
	"github.com/Halim-byte/nmtgo/internal/model"
	"github.com/Halim-byte/nmtgo/internal/rank"
	"github.com/Halim-byte/nmtgo/internal/vocab"
)

// Config carries the decoding parameters a Translator is built with.
type Config struct {
	BeamWidth       int
	NBest           int
	SuppressUnknown bool
	MaxLength       int
	Seed            int64

	// Workers bounds concurrent decodes. The reference behavior is fully
	// sequential; that is Workers == 1, the default.
	Workers int
}

// Translator is the immutable per-process pipeline context. Safe for
// concurrent use; the semaphore serializes decoding when Workers is 1.
type Translator struct {
	src     *vocab.Vocab
	trg     *vocab.Vocab
	invoker *decode.Invoker
	filters []filter.Filter
	opts    decode.Options
	sem     chan struct{}
}

// NewTranslator wires a loaded ensemble and a decoding backend into a
// ready-to-serve pipeline.
func NewTranslator(ens *model.Ensemble, searcher decode.Searcher, cfg Config) *Translator {
	models := make([]decode.StepModel, 0, ens.Size())
	for _, m := range ens.Models() {
		models = append(models, m)
	}
	return newTranslator(ens.Source(), ens.Target(), ens.Filters(), decode.NewInvoker(searcher, models), cfg)
}

func newTranslator(src, trg *vocab.Vocab, filters []filter.Filter, inv *decode.Invoker, cfg Config) *Translator {
	if cfg.BeamWidth <= 0 {
		cfg.BeamWidth = 12
	}
	if cfg.NBest <= 0 {
		cfg.NBest = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Translator{
		src:     src,
		trg:     trg,
		invoker: inv,
		filters: filters,
		opts: decode.Options{
			BeamWidth:       cfg.BeamWidth,
			NBest:           cfg.NBest,
			SuppressUnknown: cfg.SuppressUnknown,
			MaxLength:       cfg.MaxLength,
			Seed:            cfg.Seed,
			EOS:             trg.EOS(),
			Unknown:         trg.Unknown(),
		},
		sem: make(chan struct{}, cfg.Workers),
	}
}

// Translate runs one source sentence through the full pipeline and returns
// the top-ranked translation. Even with NBest > 1 exactly one string is
// returned; NBest only bounds how many hypotheses ranking considers.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return "", fmt.Errorf("%w: empty request body", ErrTransport)
	}
	// One end-of-sequence marker, regardless of surrounding whitespace.
	words = append(words, vocab.TokenEOS)
	src := t.src.Encode(words)

	t.sem <- struct{}{}
	defer func() { <-t.sem }()

	hyps, err := t.invoker.Decode(ctx, src, t.opts)
	if err != nil {
		return "", err
	}
	ranked := rank.Rank(hyps, t.opts.NBest)
	return t.format(ranked[0]), nil
}

// format converts a hypothesis back to surface text: the trailing
// end-of-sequence id is dropped, ids decode through the target vocabulary,
// words join with single spaces and the filter chain runs over the result.
func (t *Translator) format(h decode.Hypothesis) string {
	out := strings.Join(t.trg.Decode(h.IDs), " ")
	return filter.Apply(t.filters, out)
}

package model

import (
	"fmt"

	"github.com/Halim-byte/nmtgo/internal/filter"
	"github.com/Halim-byte/nmtgo/internal/vocab"
)

// Ensemble is the ordered set of models a server decodes against. It is
// built once at startup by Load and never mutated afterwards.
type Ensemble struct {
	models      []*Model
	filters     []filter.Filter
	filterNames []string
}

// Load reads every artifact, resolves each architecture tag, builds the
// inference step handles and validates cross-model compatibility. With more
// than one member all target vocabularies must have equal cardinality; a
// mismatch is a fatal configuration error. The first artifact's filter
// chain, if any, is resolved here so that a bad filter name also fails at
// startup rather than mid-request.
func Load(paths []string) (*Ensemble, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no model artifacts given", ErrConfiguration)
	}

	e := &Ensemble{models: make([]*Model, 0, len(paths))}
	for _, path := range paths {
		art, err := OpenArtifact(path)
		if err != nil {
			return nil, err
		}
		arch, err := ResolveArch(art.Arch)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if err := arch.LoadParameters(art.Params); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrModelLoad, path, err)
		}
		if err := arch.BuildInferenceGraph(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrModelLoad, path, err)
		}
		e.models = append(e.models, &Model{
			Tag:  art.Arch,
			Src:  vocab.New(art.SrcVocab),
			Trg:  vocab.New(art.TrgVocab),
			arch: arch,
		})
		if len(e.models) == 1 {
			e.filterNames = art.Filters
		}
	}

	if len(e.models) > 1 {
		want := e.models[0].Trg.Size()
		for i, m := range e.models[1:] {
			if m.Trg.Size() != want {
				return nil, fmt.Errorf(
					"%w: target vocabulary size mismatch: model 0 has %d, model %d has %d",
					ErrConfiguration, want, i+1, m.Trg.Size())
			}
		}
	}

	chain, err := filter.ResolveChain(e.filterNames)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	e.filters = chain

	return e, nil
}

// Models returns the ordered ensemble members.
func (e *Ensemble) Models() []*Model { return e.models }

// Size returns the number of ensemble members.
func (e *Ensemble) Size() int { return len(e.models) }

// Source is the source-side vocabulary requests are encoded with. By
// convention this is the first member's table.
func (e *Ensemble) Source() *vocab.Vocab { return e.models[0].Src }

// Target is the target-side vocabulary responses are decoded with.
func (e *Ensemble) Target() *vocab.Vocab { return e.models[0].Trg }

// Filters returns the resolved post-processing chain, possibly empty.
func (e *Ensemble) Filters() []filter.Filter { return e.filters }

// FilterNames returns the configured filter names, for diagnostics.
func (e *Ensemble) FilterNames() []string { return e.filterNames }

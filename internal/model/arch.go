package model

import "fmt"

// State is opaque per-request decoder state threaded through StepNext calls.
// Its concrete shape belongs to the architecture that produced it.
type State = any

// Architecture is the capability set every model variant must provide.
// LoadParameters consumes the artifact's opaque parameter payload, and
// BuildInferenceGraph finalizes the loaded variant for serving (any
// training-only behavior such as dropout is disabled here, before step
// handles are handed out). StepInit and StepNext are the inference-mode
// step handles consumed by decoding backends: StepNext returns the
// successor state plus log-probabilities over the full target vocabulary
// for the position following prev.
type Architecture interface {
	LoadParameters(raw []byte) error
	BuildInferenceGraph() error
	StepInit(src []int) (State, error)
	StepNext(state State, prev int) (State, []float32, error)
}

// Factory constructs a fresh, unloaded Architecture instance.
type Factory func() Architecture

var archRegistry = map[string]Factory{
	"lexmap": func() Architecture { return &lexMap{} },
}

// RegisterArch adds a model variant to the registry. Intended for use from
// package init; not safe once serving has started.
func RegisterArch(tag string, f Factory) {
	archRegistry[tag] = f
}

// ResolveArch resolves an architecture tag to a fresh instance.
func ResolveArch(tag string) (Architecture, error) {
	f, ok := archRegistry[tag]
	if !ok {
		return nil, fmt.Errorf("%w: unknown architecture tag %q", ErrModelLoad, tag)
	}
	return f(), nil
}

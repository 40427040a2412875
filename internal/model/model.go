// Package model owns loaded translation models: artifact decoding, the
// architecture registry and the startup-validated ensemble that the serving
// pipeline decodes against. Models are immutable once loaded and shared
// read-only across requests.
package model

import "github.com/Halim-byte/nmtgo/internal/vocab"

// Model is one loaded ensemble member. Its vocabularies and parameters
// never change after Load; the step methods are the model's inference-mode
// handles and are safe for concurrent use.
type Model struct {
	Tag string
	Src *vocab.Vocab
	Trg *vocab.Vocab

	arch Architecture
}

// StepInit builds fresh decoder state for an encoded source sentence.
func (m *Model) StepInit(src []int) (State, error) {
	return m.arch.StepInit(src)
}

// StepNext advances decoder state by one target position, returning
// log-probabilities over the target vocabulary.
func (m *Model) StepNext(state State, prev int) (State, []float32, error) {
	return m.arch.StepNext(state, prev)
}

package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// lexMap is the built-in "lexmap" architecture: a lexical translation table
// mixed with a target-side bigram model. Each step scores the full target
// vocabulary as a mixture of per-source-word translation probabilities and
// the bigram continuation of the previous target word. It is deliberately
// small but fully functional, and serves as the reference implementation of
// the Architecture contract.
type lexMap struct {
	vocabSize int
	mix       float64
	dropout   float64
	lex       map[int]map[int]float64
	bigram    map[int]map[int]float64

	training bool
}

type lexMapParams struct {
	VocabSize int                           `json:"vocab_size"`
	Mix       float64                       `json:"mix"`
	Dropout   float64                       `json:"dropout"`
	Lex       map[string]map[string]float64 `json:"lex"`
	Bigram    map[string]map[string]float64 `json:"bigram"`
}

const lexMapFloor = 1e-6

func (m *lexMap) LoadParameters(raw []byte) error {
	var p lexMapParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("lexmap: decode parameters: %w", err)
	}
	if p.VocabSize <= 0 {
		return errors.New("lexmap: vocab_size must be positive")
	}
	lex, err := intKeyedTable(p.Lex)
	if err != nil {
		return fmt.Errorf("lexmap: lex table: %w", err)
	}
	big, err := intKeyedTable(p.Bigram)
	if err != nil {
		return fmt.Errorf("lexmap: bigram table: %w", err)
	}
	m.vocabSize = p.VocabSize
	m.mix = p.Mix
	if m.mix <= 0 || m.mix > 1 {
		m.mix = 0.5
	}
	m.dropout = p.Dropout
	m.lex = lex
	m.bigram = big
	m.training = true
	return nil
}

func (m *lexMap) BuildInferenceGraph() error {
	if m.lex == nil && m.bigram == nil {
		return errors.New("lexmap: parameters not loaded")
	}
	// Inference mode: the stored dropout rate is never applied to step
	// scores from here on.
	m.training = false
	return nil
}

func (m *lexMap) StepInit(src []int) (State, error) {
	if m.training {
		return nil, errors.New("lexmap: inference graph not built")
	}
	ctx := make([]int, len(src))
	copy(ctx, src)
	return ctx, nil
}

func (m *lexMap) StepNext(state State, prev int) (State, []float32, error) {
	src, ok := state.([]int)
	if !ok {
		return nil, nil, errors.New("lexmap: foreign state")
	}

	probs := make([]float64, m.vocabSize)
	if len(src) > 0 {
		norm := m.mix / float64(len(src))
		for _, s := range src {
			for w, lp := range m.lex[s] {
				if w >= 0 && w < m.vocabSize {
					probs[w] += norm * math.Exp(lp)
				}
			}
		}
	}
	for w, lp := range m.bigram[prev] {
		if w >= 0 && w < m.vocabSize {
			probs[w] += (1 - m.mix) * math.Exp(lp)
		}
	}

	var z float64
	for i := range probs {
		probs[i] += lexMapFloor
		z += probs[i]
	}
	scores := make([]float32, m.vocabSize)
	for i := range probs {
		scores[i] = float32(math.Log(probs[i] / z))
	}
	return src, scores, nil
}

func intKeyedTable(in map[string]map[string]float64) (map[int]map[int]float64, error) {
	if in == nil {
		return nil, nil
	}
	out := make(map[int]map[int]float64, len(in))
	for k, row := range in {
		ki, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("bad id key %q", k)
		}
		r := make(map[int]float64, len(row))
		for w, v := range row {
			wi, err := strconv.Atoi(w)
			if err != nil {
				return nil, fmt.Errorf("bad id key %q", w)
			}
			r[wi] = v
		}
		out[ki] = r
	}
	return out, nil
}

// Package embeddertest provides a table-driven Embedder for tests.
package embeddertest

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/embedder"
)

// Stub returns fixed vectors per text. Texts missing from Vectors get
// Fallback, or an EmbeddingError when Fallback is nil.
type Stub struct {
	Vectors  map[string][]float32
	Fallback []float32
	Dim      int
	Err      error // returned by every call when set

	calls atomic.Int32
}

var _ embedder.Embedder = (*Stub)(nil)

func (s *Stub) Embed(ctx context.Context, text string) ([]float32, error) {
	s.calls.Add(1)
	return s.lookup(text)
}

func (s *Stub) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	s.calls.Add(1)
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := s.lookup(t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *Stub) lookup(text string) ([]float32, error) {
	if s.Err != nil {
		return nil, &embedder.EmbeddingError{Model: s.ModelInfo(), Err: s.Err}
	}
	if v, ok := s.Vectors[text]; ok {
		return v, nil
	}
	if s.Fallback != nil {
		return s.Fallback, nil
	}
	return nil, &embedder.EmbeddingError{Model: s.ModelInfo(), Err: fmt.Errorf("no vector for %q", text)}
}

func (s *Stub) Dimension() int {
	return s.Dim
}

func (s *Stub) ModelInfo() string {
	return "stub"
}

// Calls reports how many Embed/EmbedBatch calls were made.
func (s *Stub) Calls() int {
	return int(s.calls.Load())
}

package embedder

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// Embedder interface for generating embeddings.
// EmbedBatch must return one vector per input, in input order.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
	ModelInfo() string
}

// ErrEmbedding matches every EmbeddingError.
var ErrEmbedding = errors.New("embedding failed")

// EmbeddingError wraps a failure of the embedding backend. Callers propagate
// it; nothing in this module retries.
type EmbeddingError struct {
	Model string
	Err   error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding with %s: %v", e.Model, e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

func (e *EmbeddingError) Is(target error) bool {
	return target == ErrEmbedding
}

// HashEmbedder is a deterministic offline embedder. Each lowercased word is
// hashed into one of dim buckets, so texts sharing words land close together.
// Vectors are not normalized.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder creates a hash embedder with the given dimension.
func NewHashEmbedder(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = 384
	}
	return &HashEmbedder{dim: dimension}
}

// Embed generates an embedding vector from text
func (e *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, &EmbeddingError{Model: e.ModelInfo(), Err: err}
	}

	vec := make([]float32, e.dim)
	for _, word := range words(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(word))
		vec[h.Sum32()%uint32(e.dim)]++
	}
	return vec, nil
}

// EmbedBatch generates embeddings for multiple texts
func (e *HashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding text %d: %w", i, err)
		}
		embeddings[i] = emb
	}
	return embeddings, nil
}

// Dimension returns the embedding dimension
func (e *HashEmbedder) Dimension() int {
	return e.dim
}

// ModelInfo returns model information
func (e *HashEmbedder) ModelInfo() string {
	return fmt.Sprintf("hash-bow-%d", e.dim)
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

package retrieval

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDimensionMismatch is returned when vectors of different dimensions meet.
var ErrDimensionMismatch = errors.New("vector dimensions don't match")

// NewIndex creates an Index from precomputed vectors. All vectors must
// share one dimension. An empty slice yields an empty index.
func NewIndex(vectors [][]float32) (*Index, error) {
	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d: %w", i, len(v), dim, ErrDimensionMismatch)
		}
	}
	return &Index{Embeddings: vectors, Dimension: dim}, nil
}

// Len returns the number of indexed vectors.
func (ix *Index) Len() int {
	return len(ix.Embeddings)
}

// SquaredL2 returns the squared Euclidean distance between a and b.
func SquaredL2(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum, nil
}

// SearchVector scans every vector and returns the min(k, N) closest by
// squared Euclidean distance, ascending, ties going to the lower record
// index. An empty index or k < 1 gives an empty result.
func (ix *Index) SearchVector(query []float32, k int) ([]SearchResult, error) {
	if ix.Len() == 0 || k < 1 {
		return []SearchResult{}, nil
	}
	if len(query) != ix.Dimension {
		return nil, fmt.Errorf("query has dimension %d, index has %d: %w", len(query), ix.Dimension, ErrDimensionMismatch)
	}

	results := make([]SearchResult, len(ix.Embeddings))
	for i, v := range ix.Embeddings {
		d, err := SquaredL2(query, v)
		if err != nil {
			return nil, err
		}
		results[i] = SearchResult{RecordIndex: i, Distance: d}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].RecordIndex < results[j].RecordIndex
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

package retrieval

import (
	"context"
	"fmt"

	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/embedder"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/knowledge"
)

// Searcher answers text queries against an Index, embedding them with the
// same embedder that built it. Safe for concurrent use.
type Searcher struct {
	index *Index
	emb   embedder.Embedder
}

// Build embeds every question of corpus in one ordered batch and returns a
// Searcher over the result. An empty corpus builds an empty index without
// calling the embedder.
func Build(ctx context.Context, corpus *knowledge.Corpus, emb embedder.Embedder) (*Searcher, error) {
	questions := corpus.Questions()
	if len(questions) == 0 {
		return &Searcher{
			index: &Index{Dimension: emb.Dimension(), ModelInfo: emb.ModelInfo()},
			emb:   emb,
		}, nil
	}

	vectors, err := emb.EmbedBatch(ctx, questions)
	if err != nil {
		return nil, fmt.Errorf("embedding %d questions: %w", len(questions), err)
	}
	if len(vectors) != len(questions) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d questions", len(vectors), len(questions))
	}

	index, err := NewIndex(vectors)
	if err != nil {
		return nil, err
	}
	index.ModelInfo = emb.ModelInfo()

	return &Searcher{index: index, emb: emb}, nil
}

// NewSearcher pairs an existing index with the embedder that produced it.
func NewSearcher(index *Index, emb embedder.Embedder) *Searcher {
	return &Searcher{index: index, emb: emb}
}

// Index returns the underlying index.
func (s *Searcher) Index() *Index {
	return s.index
}

// Len returns the number of indexed records.
func (s *Searcher) Len() int {
	return s.index.Len()
}

// Search embeds query and returns up to min(k, N) results ordered by
// ascending distance. An empty index returns no results and makes no
// embedding call.
func (s *Searcher) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	if s.index.Len() == 0 || k < 1 {
		return []SearchResult{}, nil
	}

	q, err := s.emb.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	return s.index.SearchVector(q, k)
}

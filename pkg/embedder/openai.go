package embedder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "text-embedding-3-small"

	defaultBatchSize   = 64
	maxConcurrentCalls = 10
)

// OpenAIConfig configures an OpenAIEmbedder.
type OpenAIConfig struct {
	APIKey    string
	BaseURL   string // optional, for OpenAI-compatible endpoints
	Model     string
	BatchSize int // texts per API request
}

// OpenAIEmbedder uses OpenAI API for embeddings.
// Vectors are returned exactly as the API produces them.
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	dim       int
	batchSize int
}

// NewOpenAIEmbedder creates an OpenAI embedder
func NewOpenAIEmbedder(cfg OpenAIConfig) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key not set")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	// Set dimension based on model
	dim := 1536 // default for text-embedding-3-small and ada-002
	if model == "text-embedding-3-large" {
		dim = 3072
	}

	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}

	return &OpenAIEmbedder{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     model,
		dim:       dim,
		batchSize: batch,
	}, nil
}

// Embed generates an embedding for a single text
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.request(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch splits texts into requests of at most batchSize inputs and
// runs up to maxConcurrentCalls of them in parallel. Order is preserved.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	if len(texts) == 0 {
		return embeddings, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	sem := make(chan struct{}, maxConcurrentCalls) // Limit concurrent API calls

	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))

		wg.Add(1)
		sem <- struct{}{}
		go func(start, end int) {
			defer wg.Done()
			defer func() { <-sem }()

			vecs, err := e.request(ctx, texts[start:end])
			if err != nil {
				errOnce.Do(func() {
					firstErr = fmt.Errorf("batch %d-%d: %w", start, end-1, err)
					cancel()
				})
				return
			}
			copy(embeddings[start:end], vecs)
		}(start, end)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return embeddings, nil
}

func (e *OpenAIEmbedder) request(ctx context.Context, texts []string) ([][]float32, error) {
	for i, t := range texts {
		if t == "" {
			return nil, &EmbeddingError{Model: e.ModelInfo(), Err: fmt.Errorf("input %d: cannot embed empty text", i)}
		}
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		return nil, &EmbeddingError{Model: e.ModelInfo(), Err: err}
	}

	if len(resp.Data) != len(texts) {
		return nil, &EmbeddingError{
			Model: e.ModelInfo(),
			Err:   fmt.Errorf("API returned %d embeddings for %d inputs", len(resp.Data), len(texts)),
		}
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(texts) || out[d.Index] != nil {
			return nil, &EmbeddingError{Model: e.ModelInfo(), Err: fmt.Errorf("unexpected embedding index %d", d.Index)}
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}

// Dimension returns the embedding dimension
func (e *OpenAIEmbedder) Dimension() int {
	return e.dim
}

// ModelInfo returns model information
func (e *OpenAIEmbedder) ModelInfo() string {
	return "openai-" + e.model
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/embedder"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SERVER_PORT", "OPENAI_API_KEY", "EMBEDDER", "KNOWLEDGE_BASE_PATH",
		"DISTANCE_SCALE", "CONTEXT_TOP_K", "LIVEKIT_API_KEY", "LIVEKIT_API_SECRET",
		"LIVEKIT_URL", "TOKEN_TTL", "LOG_LEVEL", "EMBEDDING_DIMENSION", "EMBEDDING_MODEL",
		"ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "knowledge_base/faqs.txt", cfg.Knowledge.Path)
	assert.Equal(t, 10.0, cfg.Knowledge.DistanceScale)
	assert.Equal(t, 2, cfg.Knowledge.ContextTopK)
	assert.Equal(t, EmbedderHash, cfg.Embedding.Backend)
	assert.Equal(t, embedder.DefaultModel, cfg.Embedding.Model)
	assert.Equal(t, 6*time.Hour, cfg.LiveKit.TokenTTL)
	assert.False(t, cfg.TokensEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestNew_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DISTANCE_SCALE", "2.5")
	t.Setenv("CONTEXT_TOP_K", "3")
	t.Setenv("LIVEKIT_API_KEY", "key")
	t.Setenv("LIVEKIT_API_SECRET", "secret")
	t.Setenv("LIVEKIT_URL", "wss://example")
	t.Setenv("TOKEN_TTL", "30m")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, EmbedderOpenAI, cfg.Embedding.Backend)
	assert.Equal(t, 2.5, cfg.Knowledge.DistanceScale)
	assert.Equal(t, 3, cfg.Knowledge.ContextTopK)
	assert.Equal(t, 30*time.Minute, cfg.LiveKit.TokenTTL)
	assert.True(t, cfg.TokensEnabled())
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Knowledge:     KnowledgeConfig{Path: "faqs.txt", DistanceScale: 10, ContextTopK: 2},
			Embedding:     EmbeddingConfig{Backend: EmbedderHash, HashDimension: 8},
			Observability: ObservabilityConfig{LogLevel: "info"},
		}
	}

	require.NoError(t, base().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero scale", func(c *Config) { c.Knowledge.DistanceScale = 0 }},
		{"zero k", func(c *Config) { c.Knowledge.ContextTopK = 0 }},
		{"no path", func(c *Config) { c.Knowledge.Path = "" }},
		{"unknown embedder", func(c *Config) { c.Embedding.Backend = "word2vec" }},
		{"openai without key", func(c *Config) { c.Embedding.Backend = EmbedderOpenAI }},
		{"hash without dimension", func(c *Config) { c.Embedding.HashDimension = 0 }},
		{"no log level", func(c *Config) { c.Observability.LogLevel = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestNewEmbedder(t *testing.T) {
	c := EmbeddingConfig{Backend: EmbedderHash, HashDimension: 16}
	e, err := c.NewEmbedder()
	require.NoError(t, err)
	assert.Equal(t, 16, e.Dimension())

	c = EmbeddingConfig{Backend: EmbedderOpenAI, OpenAIAPIKey: "sk-test", Model: "text-embedding-3-large"}
	e, err = c.NewEmbedder()
	require.NoError(t, err)
	assert.Equal(t, "openai-text-embedding-3-large", e.ModelInfo())
}

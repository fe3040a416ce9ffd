package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/embedder"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/faq"
	"github.com/MaiMohamed12/AI-Voice-Agent/pkg/token"
)

// Embedder backends.
const (
	EmbedderOpenAI = "openai"
	EmbedderHash   = "hash"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Knowledge     KnowledgeConfig
	Embedding     EmbeddingConfig
	LiveKit       LiveKitConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// KnowledgeConfig holds the knowledge base location and retrieval tuning
type KnowledgeConfig struct {
	Path          string
	DistanceScale float64 // Distance at which confidence reaches 0
	ContextTopK   int     // Records returned to the language model per lookup
}

// EmbeddingConfig selects and configures the embedder
type EmbeddingConfig struct {
	Backend       string // openai or hash
	OpenAIAPIKey  string
	OpenAIBaseURL string
	Model         string
	BatchSize     int
	HashDimension int
}

// LiveKitConfig holds the token issuance credentials
type LiveKitConfig struct {
	APIKey    string
	APISecret string
	URL       string
	TokenTTL  time.Duration
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string // json or text
}

// New creates a new Config instance by loading environment variables.
// A .env file in the working directory is loaded first if present.
func New() (*Config, error) {
	_ = godotenv.Load(".env")

	openAIKey := getEnv("OPENAI_API_KEY", "")
	defaultBackend := EmbedderHash
	if openAIKey != "" {
		defaultBackend = EmbedderOpenAI
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			RequestTimeout:  getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 20*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Knowledge: KnowledgeConfig{
			Path:          getEnv("KNOWLEDGE_BASE_PATH", "knowledge_base/faqs.txt"),
			DistanceScale: getEnvAsFloat("DISTANCE_SCALE", faq.DefaultDistanceScale),
			ContextTopK:   getEnvAsInt("CONTEXT_TOP_K", faq.DefaultContextK),
		},
		Embedding: EmbeddingConfig{
			Backend:       getEnv("EMBEDDER", defaultBackend),
			OpenAIAPIKey:  openAIKey,
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			Model:         getEnv("EMBEDDING_MODEL", embedder.DefaultModel),
			BatchSize:     getEnvAsInt("EMBEDDING_BATCH_SIZE", 64),
			HashDimension: getEnvAsInt("EMBEDDING_DIMENSION", 384),
		},
		LiveKit: LiveKitConfig{
			APIKey:    getEnv("LIVEKIT_API_KEY", ""),
			APISecret: getEnv("LIVEKIT_API_SECRET", ""),
			URL:       getEnv("LIVEKIT_URL", ""),
			TokenTTL:  getEnvAsDuration("TOKEN_TTL", token.DefaultTTL),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if c.Knowledge.Path == "" {
		return fmt.Errorf("knowledge base path is required")
	}
	if c.Knowledge.DistanceScale <= 0 {
		return fmt.Errorf("distance scale must be positive, got %v", c.Knowledge.DistanceScale)
	}
	if c.Knowledge.ContextTopK < 1 {
		return fmt.Errorf("context top k must be at least 1, got %d", c.Knowledge.ContextTopK)
	}

	switch c.Embedding.Backend {
	case EmbedderOpenAI:
		if c.Embedding.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai embedder")
		}
	case EmbedderHash:
		if c.Embedding.HashDimension < 1 {
			return fmt.Errorf("embedding dimension must be at least 1, got %d", c.Embedding.HashDimension)
		}
	default:
		return fmt.Errorf("unknown embedder %q (want %s or %s)", c.Embedding.Backend, EmbedderOpenAI, EmbedderHash)
	}

	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}

	return nil
}

// TokensEnabled reports whether LiveKit credentials are configured.
func (c *Config) TokensEnabled() bool {
	return c.LiveKit.APIKey != "" && c.LiveKit.APISecret != "" && c.LiveKit.URL != ""
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewEmbedder builds the configured embedder.
func (c *EmbeddingConfig) NewEmbedder() (embedder.Embedder, error) {
	if c.Backend == EmbedderHash {
		return embedder.NewHashEmbedder(c.HashDimension), nil
	}
	return embedder.NewOpenAIEmbedder(embedder.OpenAIConfig{
		APIKey:    c.OpenAIAPIKey,
		BaseURL:   c.OpenAIBaseURL,
		Model:     c.Model,
		BatchSize: c.BatchSize,
	})
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8080)
func getPort() int {
	for _, key := range []string{"PORT", "SERVER_PORT"} {
		if value := os.Getenv(key); value != "" {
			if p, err := strconv.Atoi(value); err == nil {
				return p
			}
		}
	}
	return 8080
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// ABOUTME: Centralized configuration for the assessment recommender
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the recommendation system
type Config struct {
	// OpenAI settings (embedding provider)
	OpenAIKey      string
	EmbeddingModel string
	EmbedTimeout   time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Gemini settings (optional enhancer)
	GeminiKey   string
	GeminiModel string

	// Index artifact paths (companion files, only valid as a pair)
	IndexPath   string
	CatalogPath string

	// Fallback embedding dimension used when no live provider is configured.
	// The real dimension is recovered from the index blob on load.
	VectorDimension int

	// HTTP server settings
	ListenAddr string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbedTimeout:    getEnvDuration("EMBED_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("EMBED_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("EMBED_RETRY_DELAY", 2*time.Second),
		GeminiKey:       os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		IndexPath:       getEnv("INDEX_PATH", "assessments_index.bin"),
		CatalogPath:     getEnv("CATALOG_PATH", "assessments.csv"),
		VectorDimension: getEnvInt("VECTOR_DIMENSION", 768),
		ListenAddr:      getEnv("LISTEN_ADDR", ":8000"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.VectorDimension <= 0 {
		return fmt.Errorf("VECTOR_DIMENSION must be positive, got %d", c.VectorDimension)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("EMBED_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.EmbedTimeout <= 0 {
		return fmt.Errorf("EMBED_TIMEOUT must be positive, got %v", c.EmbedTimeout)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

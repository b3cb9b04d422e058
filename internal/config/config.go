package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Local inference server. The API key is a placeholder: local
	// OpenAI-compatible servers accept any value.
	ModelBaseURL string        `env:"MODEL_BASE_URL" envDefault:"http://localhost:8000/v1"`
	ModelAPIKey  string        `env:"MODEL_API_KEY"  envDefault:"local"`
	Model        string        `env:"MODEL"          envDefault:"llama-3.1-8b-instruct"`
	ModelTimeout time.Duration `env:"MODEL_TIMEOUT"  envDefault:"120s"`

	MaxCompletionTokens int64 `env:"MAX_COMPLETION_TOKENS" envDefault:"1024"`

	// Upload limits
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"52428800"` // 50MB

	// Per-page summarization fan-out
	MaxConcurrentSummarize int `env:"MAX_CONCURRENT_SUMMARIZE" envDefault:"4"`

	// PDF
	PDFFallbackPdftotext bool `env:"PDF_FALLBACK_PDFTOTEXT" envDefault:"true"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !strings.HasPrefix(c.ModelBaseURL, "http://") && !strings.HasPrefix(c.ModelBaseURL, "https://") {
		return fmt.Errorf("MODEL_BASE_URL must be an http(s) URL, got %q", c.ModelBaseURL)
	}
	if c.Model == "" {
		return fmt.Errorf("MODEL is required")
	}
	if c.ModelTimeout <= 0 {
		return fmt.Errorf("MODEL_TIMEOUT must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.MaxConcurrentSummarize <= 0 {
		return fmt.Errorf("MAX_CONCURRENT_SUMMARIZE must be positive")
	}
	return nil
}

package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration for the assistant service.
type Config struct {
	// Server
	Port     int    `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Platform database (tenders, bids, alerts + the assistant-owned FAQ table)
	DBURL string `env:"DB_URL"`

	// Cache; empty REDIS_ADDR disables context caching and unanswered tracking
	RedisAddr       string `env:"REDIS_ADDR"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	ContextCacheTTL int    `env:"CONTEXT_CACHE_TTL" envDefault:"30"` // seconds

	// Audit bus; empty NATS_URL disables event publishing
	NatsURL string `env:"NATS_URL"`

	// LLM tier. An absent OPENAI_API_KEY permanently disables the tier for
	// this process; the assistant then answers from the FAQ store only.
	OpenAIKey string `env:"OPENAI_API_KEY"`
	LLMModel  string `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

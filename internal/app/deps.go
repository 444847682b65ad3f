package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go/v3"

	"actms-assistant/internal/assistant"
	"actms-assistant/internal/cache"
	"actms-assistant/internal/config"
	"actms-assistant/internal/events"
	"actms-assistant/internal/llm"
	"actms-assistant/internal/logger"
	"actms-assistant/internal/store"
)

const buildTimeout = 15 * time.Second

// Deps bundles the runtime dependencies of the assistant service.
type Deps struct {
	Config    config.Config
	Log       *slog.Logger
	Store     store.Store
	FAQRepo   store.FAQRepository
	Cache     cache.Cache
	Events    events.Publisher
	LLM       llm.Client
	Assistant *assistant.Service
}

// Build loads env, config, and shared components. Postgres is required;
// Redis and NATS degrade to no-ops when unset; a missing OpenAI key leaves
// the LLM tier disabled for the lifetime of the process.
func Build() (Deps, error) {
	_ = godotenv.Load() // optional .env for local runs

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, "assistant")

	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	if cfg.DBURL == "" {
		return Deps{}, fmt.Errorf("DB_URL is required")
	}
	pg, err := store.NewPostgresStore(ctx, cfg.DBURL)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize Postgres: %w", err)
	}
	log.Info("using Postgres store")

	c, err := buildCache(ctx, cfg, log)
	if err != nil {
		return Deps{}, err
	}
	pub, err := buildPublisher(cfg, log)
	if err != nil {
		return Deps{}, err
	}
	llmClient := buildLLM(cfg, log)

	contextTTL := time.Duration(cfg.ContextCacheTTL) * time.Second
	svc := assistant.New(ctx, llmClient, pg, pg, c, contextTTL, log)

	return Deps{
		Config:    cfg,
		Log:       log,
		Store:     pg,
		FAQRepo:   pg,
		Cache:     c,
		Events:    pub,
		LLM:       llmClient,
		Assistant: svc,
	}, nil
}

func buildCache(ctx context.Context, cfg config.Config, log *slog.Logger) (cache.Cache, error) {
	if cfg.RedisAddr == "" {
		log.Info("redis not configured, context caching and unanswered tracking disabled")
		return cache.NoopCache{}, nil
	}
	rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("using Redis cache", "addr", cfg.RedisAddr)
	return rc, nil
}

func buildPublisher(cfg config.Config, log *slog.Logger) (events.Publisher, error) {
	if cfg.NatsURL == "" {
		log.Info("nats not configured, audit events disabled")
		return events.NoopPublisher{}, nil
	}
	nc, err := nats.Connect(cfg.NatsURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Info("publishing audit events to NATS", "url", cfg.NatsURL)
	return events.NewNATS(nc), nil
}

// buildLLM never fails: the LLM tier is optional and its absence is a valid
// permanent state.
func buildLLM(cfg config.Config, log *slog.Logger) llm.Client {
	if cfg.OpenAIKey == "" {
		log.Warn("OPENAI_API_KEY not set, llm tier disabled")
		return nil
	}
	client, err := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.LLMModel))
	if err != nil {
		log.Warn("failed to initialize OpenAI client, llm tier disabled", "err", err)
		return nil
	}
	log.Info("using OpenAI LLM client", "model", cfg.LLMModel)
	return client
}

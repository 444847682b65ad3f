package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"actms-assistant/internal/cache"
	"actms-assistant/internal/llm"
	"actms-assistant/internal/store"
)

// Source identifies which tier produced a result.
type Source string

const (
	SourceLLM     Source = "llm"
	SourceFAQ     Source = "faq"
	SourceDefault Source = "default"
	SourceNoMatch Source = "no_match"
	SourceError   Source = "error"
)

// Result is the outcome of resolving one user message. Confidence is always
// within [0,1].
type Result struct {
	Message    string  `json:"message"`
	Source     Source  `json:"source"`
	Confidence float64 `json:"confidence"`
}

// Context carries caller-supplied or platform-assembled data that is
// forwarded into the LLM prompt as serialized JSON. The resolver never
// interprets its contents.
type Context map[string]any

const (
	defaultMessage         = "I apologize, but I don't have a specific answer to your question. Please contact system administrators or check the documentation for more detailed assistance."
	resolveErrorMessage    = "I'm experiencing technical difficulties. Please try again later or contact support."
	llmErrorMessage        = "I apologize, but I'm currently unable to provide a response. Please try asking a different question or contact support."
	emptyCompletionMessage = "I apologize, but I couldn't generate a response. Please try again."
)

const (
	llmConfidence     = 0.9
	defaultConfidence = 0.3
	recentAlertLimit  = 5
)

// Service answers user questions with a two-tier strategy: the LLM tier
// when a client is configured, the keyword-matched FAQ store otherwise or
// on failure, and a fixed default when neither produces an answer.
type Service struct {
	llm        llm.Client
	store      store.Store
	faqRepo    store.FAQRepository
	cache      cache.Cache
	contextTTL time.Duration
	log        *slog.Logger
	faq        *FAQStore
}

// New builds the service. A nil llmClient permanently disables the LLM tier
// for this instance. Persisted FAQ entries are replayed over the seed set;
// a load failure leaves the seed set in place.
func New(ctx context.Context, llmClient llm.Client, platform store.Store, faqRepo store.FAQRepository, c cache.Cache, contextTTL time.Duration, log *slog.Logger) *Service {
	s := &Service{
		llm:        llmClient,
		store:      platform,
		faqRepo:    faqRepo,
		cache:      c,
		contextTTL: contextTTL,
		log:        log,
		faq:        NewFAQStore(),
	}
	if faqRepo != nil {
		recs, err := faqRepo.ListFAQEntries(ctx)
		if err != nil {
			log.Warn("failed to load persisted faq entries", "err", err)
		}
		for _, rec := range recs {
			s.faq.Add(rec.Question, rec.Answer, rec.Confidence)
		}
		if len(recs) > 0 {
			log.Info("loaded persisted faq entries", "count", len(recs))
		}
	}
	return s
}

// Resolve answers a single user message. It never panics and never returns
// an error; every failure is converted into an in-band Result. The LLM tier
// sees the original message, the FAQ tier the normalized form.
func (s *Service) Resolve(ctx context.Context, message string, extra Context) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("message resolution panicked", "panic", r)
			res = Result{Message: resolveErrorMessage, Source: SourceError, Confidence: 0}
		}
	}()

	normalized := normalize(message)

	if s.llm != nil {
		llmRes, err := s.askLLM(ctx, message, extra)
		if err == nil {
			return llmRes
		}
		s.log.Warn("llm tier failed, falling back to faq", "err", err)
	}

	faqRes := s.faq.Match(normalized)
	switch faqRes.Source {
	case SourceFAQ, SourceError:
		return faqRes
	}

	return Result{Message: defaultMessage, Source: SourceDefault, Confidence: defaultConfidence}
}

// askLLM adapts the LLM client into resolution terms. On failure it returns
// both its own error rendering and a non-nil error so the caller can fall
// back. An empty completion still counts as an LLM answer, with a fixed
// fallback text.
func (s *Service) askLLM(ctx context.Context, message string, extra Context) (Result, error) {
	errResult := Result{Message: llmErrorMessage, Source: SourceError, Confidence: 0}

	if s.llm == nil {
		return errResult, errors.New("llm client not configured")
	}
	block, err := contextBlock(extra)
	if err != nil {
		return errResult, fmt.Errorf("encode context: %w", err)
	}
	content, err := s.llm.Respond(ctx, message, block)
	if err != nil {
		return errResult, fmt.Errorf("llm request: %w", err)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return Result{Message: emptyCompletionMessage, Source: SourceLLM, Confidence: llmConfidence}, nil
	}
	return Result{Message: content, Source: SourceLLM, Confidence: llmConfidence}, nil
}

// contextBlock serializes caller context into the text block inserted as
// the final system instruction. Empty context yields an empty block.
func contextBlock(extra Context) (string, error) {
	if len(extra) == 0 {
		return "", nil
	}
	raw, err := json.MarshalIndent(extra, "", "  ")
	if err != nil {
		return "", err
	}
	return "Additional context: " + string(raw), nil
}

// AddFAQEntry inserts or overwrites a knowledge-base entry and persists it
// best-effort. It never fails outward; persistence errors are logged and
// swallowed.
func (s *Service) AddFAQEntry(ctx context.Context, question, answer string, confidence float64) FAQEntry {
	entry := s.faq.Add(question, answer, confidence)
	s.log.Info("faq entry added", "question", entry.Key, "confidence", entry.Confidence)

	if s.faqRepo != nil {
		rec := store.FAQRecord{
			Question:   entry.Key,
			Answer:     entry.Answer,
			Confidence: entry.Confidence,
			Keywords:   strings.Fields(entry.Key),
		}
		if err := s.faqRepo.UpsertFAQEntry(ctx, rec); err != nil {
			s.log.Error("failed to persist faq entry", "question", entry.Key, "err", err)
		}
	}
	return entry
}

// ConversationContext assembles platform statistics for the LLM prompt:
// total tenders, active and suspicious bid counts, and how many recent
// alerts exist. Failures yield an empty Context, never an error. userID is
// accepted for future personalization and currently unused.
func (s *Service) ConversationContext(ctx context.Context, userID string) Context {
	if cached, err := s.cache.GetContext(ctx); err != nil {
		s.log.Warn("context cache read failed", "err", err)
	} else if cached != nil {
		return Context(cached)
	}

	var (
		tenders    int
		activeBids int
		suspicious int
		alerts     []store.Alert
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tenders, err = s.store.CountTenders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		activeBids, err = s.store.CountActiveBids(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		suspicious, err = s.store.CountSuspiciousBids(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		alerts, err = s.store.RecentAlerts(gctx, recentAlertLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error("failed to assemble conversation context", "err", err)
		return Context{}
	}

	stats := Context{
		"total_tenders":   tenders,
		"active_bids":     activeBids,
		"suspicious_bids": suspicious,
		"recent_alerts":   len(alerts),
	}
	if err := s.cache.SetContext(ctx, stats, s.contextTTL); err != nil {
		s.log.Warn("context cache write failed", "err", err)
	}
	return stats
}

// LLMAvailable reports whether the LLM tier was configured at construction.
func (s *Service) LLMAvailable() bool {
	return s.llm != nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"actms-assistant/internal/app"
	"actms-assistant/internal/assistant"
	"actms-assistant/internal/cache"
	"actms-assistant/internal/events"
	"actms-assistant/internal/httputil"
)

type messageRequest struct {
	Message        string            `json:"message" validate:"required,min=1,max=2000"`
	UserID         string            `json:"user_id" validate:"omitempty,max=100"`
	Context        assistant.Context `json:"context"`
	IncludeContext bool              `json:"include_context"`
}

type faqRequest struct {
	Question string `json:"question" validate:"required,min=3,max=500"`
	Answer   string `json:"answer" validate:"required,min=1,max=4000"`
	// Confidence defaults to 1.0 when omitted; out-of-range values are
	// clamped by the assistant.
	Confidence *float64 `json:"confidence"`
}

const (
	publishAttempts = 3
	publishBackoff  = 100 * time.Millisecond
	publishTimeout  = 5 * time.Second
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Post("/api/assistant/message", messageHandler(deps))
	r.Post("/api/assistant/faq", addFAQHandler(deps))
	r.Get("/api/assistant/context", contextHandler(deps))
	r.Get("/api/assistant/status", statusHandler(deps))
	r.Get("/api/assistant/unanswered", unansweredHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("assistant service listening", "addr", addr, "llm_available", deps.Assistant.LLMAvailable())
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server error", "err", err)
	}
}

func messageHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		ctx := r.Context()

		// Explicit caller context wins; otherwise assemble platform stats
		// on request.
		extra := req.Context
		if len(extra) == 0 && req.IncludeContext {
			extra = deps.Assistant.ConversationContext(ctx, req.UserID)
		}

		res := deps.Assistant.Resolve(ctx, req.Message, extra)

		if res.Source == assistant.SourceDefault {
			question := strings.ToLower(strings.TrimSpace(req.Message))
			if err := deps.Cache.RecordUnanswered(ctx, question); err != nil {
				deps.Log.Warn("failed to record unanswered question", "err", err)
			}
		}

		publishEvent(deps, events.Event{
			Type:       events.TypeResolved,
			Question:   req.Message,
			Source:     string(res.Source),
			Confidence: res.Confidence,
		})

		httputil.WriteJSON(w, http.StatusOK, res)
	}
}

func addFAQHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req faqRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		confidence := 1.0
		if req.Confidence != nil {
			confidence = *req.Confidence
		}
		entry := deps.Assistant.AddFAQEntry(r.Context(), req.Question, req.Answer, confidence)

		publishEvent(deps, events.Event{
			Type:       events.TypeFAQAdded,
			Question:   entry.Key,
			Confidence: entry.Confidence,
		})

		httputil.WriteJSON(w, http.StatusCreated, map[string]any{
			"question":   entry.Key,
			"confidence": entry.Confidence,
		})
	}
}

func contextHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")
		stats := deps.Assistant.ConversationContext(r.Context(), userID)
		httputil.WriteJSON(w, http.StatusOK, stats)
	}
}

func statusHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"llm_available": deps.Assistant.LLMAvailable(),
		})
	}
}

func unansweredHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 100 {
				httputil.Fail(deps.Log, w, "limit must be an integer between 1 and 100", err, http.StatusBadRequest)
				return
			}
			limit = n
		}

		top, err := deps.Cache.TopUnanswered(r.Context(), limit)
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to load unanswered questions", err, http.StatusInternalServerError)
			return
		}
		if top == nil {
			top = []cache.UnansweredQuestion{}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]any{"questions": top})
	}
}

// publishEvent reports an assistant action to the audit bus. Failures are
// logged and swallowed; they never fail the user response.
func publishEvent(deps app.Deps, ev events.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := events.PublishWithRetry(ctx, deps.Events, ev, publishAttempts, publishBackoff); err != nil {
		deps.Log.Warn("failed to publish audit event", "type", ev.Type, "err", err)
	}
}

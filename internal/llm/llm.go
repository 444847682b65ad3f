package llm

import "context"

// Client is a minimal LLM interface to allow pluggable providers.
// Respond sends one user message, optionally preceded by a serialized
// context block, and returns the raw completion text. The returned text may
// be empty on a successful call; callers decide how to render that.
type Client interface {
	Respond(ctx context.Context, message, contextBlock string) (string, error)
}

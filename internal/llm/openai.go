package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient calls the OpenAI Chat Completions API.
type OpenAIClient struct {
	model  openai.ChatModel
	client *openai.Client
}

const (
	defaultChatTimeout  = 30 * time.Second
	defaultTemperature  = 0.7
	maxCompletionTokens = 300
)

// systemPrompt frames every completion with the platform's purpose and
// steers the model away from fabricating system behavior.
const systemPrompt = `You are an AI assistant for ACTMS (Anti-Corruption Tender Management System), a government tender management platform with AI-powered fraud detection.

Key capabilities:
- Tender management and bid submission
- AI-powered anomaly detection using Isolation Forest
- Comprehensive audit logging
- Secure file handling
- Real-time alerts for suspicious activities

Provide helpful, accurate information about the system. Be professional and concise. If you don't know something specific about the system, acknowledge it and suggest contacting administrators.`

// NewOpenAIClient builds a client with defaults against api.openai.com.
func NewOpenAIClient(apiKey string, model openai.ChatModel) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		model:  model,
		client: &cli,
	}, nil
}

// Respond sends the instruction sequence (system prompt, optional context
// block as a second system turn, then the user message) and returns the raw
// completion content.
func (c *OpenAIClient) Respond(ctx context.Context, message, contextBlock string) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultChatTimeout)
	defer cancel()
	resp, err := c.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    buildMessages(message, contextBlock),
		Temperature: openai.Float(defaultTemperature),
		MaxTokens:   openai.Int(maxCompletionTokens),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// buildMessages keeps the context block last among system turns, immediately
// before the user message.
func buildMessages(user, contextBlock string) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, 3)
	msgs = append(msgs, systemMessage(systemPrompt))
	if contextBlock != "" {
		msgs = append(msgs, systemMessage(contextBlock))
	}
	msgs = append(msgs, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: openai.String(user),
			},
		},
	})
	return msgs
}

func systemMessage(content string) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfSystem: &openai.ChatCompletionSystemMessageParam{
			Content: openai.ChatCompletionSystemMessageParamContentUnion{
				OfString: openai.String(content),
			},
		},
	}
}

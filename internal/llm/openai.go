package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient talks to a locally hosted OpenAI-compatible inference server
// (llama.cpp, vLLM, Ollama). The API key is a placeholder the server does
// not validate. Temperature is pinned to 0 so identical inputs produce
// identical summaries.
type OpenAIClient struct {
	client    openai.Client
	model     string
	timeout   time.Duration
	maxTokens int64

	// Stats tracks per-call latency for the stats endpoint.
	Stats *Stats
}

// Config for the OpenAI-compatible client.
type Config struct {
	BaseURL   string
	APIKey    string
	Model     string
	Timeout   time.Duration
	MaxTokens int64
}

func NewOpenAIClient(cfg Config) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(
			option.WithBaseURL(cfg.BaseURL),
			option.WithAPIKey(cfg.APIKey),
		),
		model:     cfg.Model,
		timeout:   cfg.Timeout,
		maxTokens: cfg.MaxTokens,
		Stats:     NewStats(time.Hour),
	}
}

// Model returns the configured model identifier.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Complete sends one prompt and returns the completion text.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0),
	}
	if c.maxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(c.maxTokens)
	}

	start := time.Now()
	completion, err := c.client.Chat.Completions.New(ctx, params)
	c.Stats.Record(time.Since(start).Milliseconds())

	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &ModelError{StatusCode: apiErr.StatusCode, Message: apiErr.Error()}
		}
		// Connection refused, DNS failure, or the per-call timeout elapsed.
		return "", &UnavailableError{Err: err}
	}

	if len(completion.Choices) == 0 {
		return "", &ModelError{Message: "no choices in completion"}
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", &ModelError{Message: "empty completion"}
	}
	return text, nil
}

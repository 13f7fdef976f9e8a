// Package llm holds the language-model clients behind ports.LanguageModelClient:
// OpenAI-compatible chat endpoints (Groq, OpenRouter), a fallback chain with
// per-provider circuit breakers, and a short-lived response cache.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"nickguard/internal/ports"
)

const (
	GroqBaseURL       = "https://api.groq.com/openai/v1/"
	OpenRouterBaseURL = "https://openrouter.ai/api/v1/"
)

// Config describes one OpenAI-compatible provider.
type Config struct {
	Name       string
	BaseURL    string
	APIKey     string
	Model      string
	MaxTokens  int64
	HTTPClient *http.Client
}

// Client talks to a single chat-completions endpoint. Retries belong to the
// caller, so the SDK's own retry loop is disabled.
type Client struct {
	name      string
	model     string
	maxTokens int64
	hasKey    bool
	api       openai.Client
}

func New(cfg Config) *Client {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 512
	}
	opts := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	return &Client{
		name:      cfg.Name,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		hasKey:    strings.TrimSpace(cfg.APIKey) != "",
		api:       openai.NewClient(opts...),
	}
}

func (c *Client) Name() string { return c.name }

func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if !c.hasKey {
		return "", &ports.PermanentError{Provider: c.name, Err: errors.New("api key not configured")}
	}
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens:   openai.Int(c.maxTokens),
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", c.classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &ports.PermanentError{Provider: c.name, Status: http.StatusOK, Err: errors.New("response has no choices")}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// classify splits failures into retryable and not. Timeouts, 408, 429 and
// 5xx are transient; other statuses are permanent.
func (c *Client) classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		if status == http.StatusRequestTimeout || status == http.StatusTooManyRequests || status >= 500 {
			return &ports.TransientError{Provider: c.name, Status: status, Err: err}
		}
		return &ports.PermanentError{Provider: c.name, Status: status, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ports.TransientError{Provider: c.name, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &ports.TransientError{Provider: c.name, Err: err}
	}
	return &ports.TransientError{Provider: c.name, Err: fmt.Errorf("request failed: %w", err)}
}

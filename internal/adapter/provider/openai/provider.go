package openai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/heartmarshall/bakabot/internal/provider"
)

const (
	defaultModel   = "gpt-3.5-turbo-instruct"
	defaultTimeout = 30 * time.Second
)

// Provider calls the OpenAI text completions endpoint.
type Provider struct {
	client openai.Client
	model  string
	log    *slog.Logger
}

// NewProvider creates a Provider. Empty Model and BaseURL fall back to the
// public API defaults. SDK retries are disabled.
func NewProvider(cfg provider.Config, logger *slog.Logger) *Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.TimeoutOr(defaultTimeout)}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Provider{
		client: openai.NewClient(opts...),
		model:  model,
		log:    logger.With("adapter", "openai"),
	}
}

// Name returns the provider name used in logs and history.
func (p *Provider) Name() string { return provider.NameOpenAI }

// Complete returns the text of the first choice.
func (p *Provider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	p.log.DebugContext(ctx, "openai request", slog.String("model", p.model), slog.Int("max_tokens", maxTokens))

	resp, err := p.client.Completions.New(ctx, openai.CompletionNewParams{
		Model:       openai.CompletionNewParamsModel(p.model),
		Prompt:      openai.CompletionNewParamsPromptUnion{OfString: openai.String(prompt)},
		MaxTokens:   openai.Int(int64(maxTokens)),
		Temperature: openai.Float(1),
	})
	if err != nil {
		return "", fmt.Errorf("openai: completions api: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices in response")
	}

	choice := resp.Choices[0]
	p.log.DebugContext(ctx, "openai response",
		slog.Int("length", len(choice.Text)),
		slog.String("finish_reason", string(choice.FinishReason)),
		slog.Int64("tokens_in", resp.Usage.PromptTokens),
		slog.Int64("tokens_out", resp.Usage.CompletionTokens),
	)

	return choice.Text, nil
}

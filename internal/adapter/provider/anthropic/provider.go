package anthropic

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/bakabot/internal/provider"
)

const (
	defaultModel   = "claude-3-5-haiku-latest"
	defaultTimeout = 30 * time.Second
)

// systemPrompt turns the few-shot prompt into a continuation task for a chat model.
const systemPrompt = "Continue the list you are given with a few more lines in exactly the same format. " +
	"Reply with the new lines only."

// Provider calls the Anthropic Messages API.
type Provider struct {
	client anthropic.Client
	model  string
	log    *slog.Logger
}

// NewProvider creates a Provider. SDK retries are disabled: a failed call is
// reported to the caller as is.
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
		client: anthropic.NewClient(opts...),
		model:  model,
		log:    logger.With("adapter", "anthropic"),
	}
}

// Name returns the provider name used in logs and history.
func (p *Provider) Name() string { return provider.NameAnthropic }

// Complete sends prompt as a single user message and returns the first text block.
func (p *Provider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	p.log.DebugContext(ctx, "anthropic request", slog.String("model", p.model), slog.Int("max_tokens", maxTokens))

	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: messages api: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			p.log.DebugContext(ctx, "anthropic response",
				slog.Int("length", len(block.Text)),
				slog.Int64("tokens_in", msg.Usage.InputTokens),
				slog.Int64("tokens_out", msg.Usage.OutputTokens),
			)
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic: no text content in response")
}

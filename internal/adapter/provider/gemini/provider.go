package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/heartmarshall/bakabot/internal/provider"
)

const (
	defaultModel   = "gemini-2.0-flash"
	defaultTimeout = 30 * time.Second
)

const systemPrompt = "Continue the list you are given with a few more lines in exactly the same format. " +
	"Reply with the new lines only."

// Provider calls the Gemini generateContent API through the genai SDK.
type Provider struct {
	client *genai.Client
	model  string
	log    *slog.Logger
}

// NewProvider creates a Provider for the Gemini API backend.
func NewProvider(ctx context.Context, cfg provider.Config, logger *slog.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.TimeoutOr(defaultTimeout)},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Provider{
		client: client,
		model:  model,
		log:    logger.With("adapter", "gemini"),
	}, nil
}

// Name returns the provider name used in logs and history.
func (p *Provider) Name() string { return provider.NameGemini }

// Complete returns the text of the first candidate.
func (p *Provider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	p.log.DebugContext(ctx, "gemini request", slog.String("model", p.model), slog.Int("max_tokens", maxTokens))

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		MaxOutputTokens:   int32(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: no text in response")
	}

	p.log.DebugContext(ctx, "gemini response", slog.Int("length", len(text)))
	return text, nil
}

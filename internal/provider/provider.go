// Package provider holds the settings shared by the text completion adapters.
package provider

import (
	"context"
	"time"
)

// Provider names accepted in configuration.
const (
	NameOpenAI    = "openai"
	NameAnthropic = "anthropic"
	NameGemini    = "gemini"
	NameStub      = "stub"
)

// Config is passed to every adapter constructor. Empty Model and BaseURL
// select the adapter's defaults.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// TimeoutOr returns c.Timeout, or def when it is not set.
func (c Config) TimeoutOr(def time.Duration) time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return def
}

// IsKnown reports whether name selects an adapter.
func IsKnown(name string) bool {
	switch name {
	case NameOpenAI, NameAnthropic, NameGemini, NameStub:
		return true
	}
	return false
}

// TextProvider completes a prompt. Implementations make one request per call
// and never retry.
type TextProvider interface {
	Name() string
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Package baka provides the phrase-producing business logic: offline
// generation, the validated retry loop against a text provider, and the
// phrase history.
package baka

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/bakabot/internal/domain"
)

type textProvider interface {
	Name() string
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

type phraseGenerator interface {
	Generate(target int) ([]string, error)
}

type candidateExtractor interface {
	Extract(text string, target int) []domain.Candidate
	Label() string
}

type phraseRepo interface {
	Create(ctx context.Context, phrase *domain.Phrase) error
	CreateBatch(ctx context.Context, phrases []domain.Phrase) error
	List(ctx context.Context, filter domain.PhraseFilter) ([]domain.Phrase, error)
	Stats(ctx context.Context) (domain.PhraseStats, error)
}

// Config holds the retry loop and prompt settings.
type Config struct {
	Prompt      string
	MaxTokens   int
	MaxAttempts int
	// Timeout bounds one Produce call across all attempts. Zero disables it.
	Timeout time.Duration
}

const (
	defaultMaxTokens   = 64
	defaultMaxAttempts = 10
)

// Service produces phrases. It holds no mutable state and is safe for
// concurrent use.
type Service struct {
	log      *slog.Logger
	gen      phraseGenerator
	ext      candidateExtractor
	provider textProvider
	phrases  phraseRepo
	cfg      Config
	now      func() time.Time
}

// NewService creates a phrase service. provider and phrases may be nil:
// without a provider only offline mode works, without a repo nothing is recorded.
func NewService(log *slog.Logger, gen phraseGenerator, ext candidateExtractor, provider textProvider, phrases phraseRepo, cfg Config) *Service {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt(ext.Label())
	}
	return &Service{
		log:      log.With("service", "baka"),
		gen:      gen,
		ext:      ext,
		provider: provider,
		phrases:  phrases,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Label returns the literal that prefixes every formatted phrase.
func (s *Service) Label() string { return s.ext.Label() }

// HasProvider reports whether validated mode is available.
func (s *Service) HasProvider() bool { return s.provider != nil }

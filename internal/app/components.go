package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/bakabot/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/bakabot/internal/adapter/provider/gemini"
	"github.com/heartmarshall/bakabot/internal/adapter/provider/openai"
	"github.com/heartmarshall/bakabot/internal/adapter/provider/stub"
	"github.com/heartmarshall/bakabot/internal/config"
	"github.com/heartmarshall/bakabot/internal/domain"
	"github.com/heartmarshall/bakabot/internal/extractor"
	"github.com/heartmarshall/bakabot/internal/generator"
	"github.com/heartmarshall/bakabot/internal/lexicon"
	"github.com/heartmarshall/bakabot/internal/provider"
	"github.com/heartmarshall/bakabot/internal/service/baka"
)

// NewLexicon loads the configured lexicon, or the embedded one when no path
// is set. With RequireCoverage, a gap in [1, MaxSyllables] is fatal;
// otherwise it is logged.
func NewLexicon(cfg config.LexiconConfig, logger *slog.Logger) (*lexicon.Lexicon, error) {
	opts := lexicon.Options{
		MaxSyllables: cfg.MaxSyllables,
		Duplicates:   lexicon.DuplicatePolicy(cfg.DuplicatePolicy),
	}

	var (
		lex *lexicon.Lexicon
		err error
	)
	source := "embedded"
	if cfg.Path == "" {
		lex, err = lexicon.Default(opts)
	} else {
		source = cfg.Path
		lex, err = lexicon.LoadFile(cfg.Path, cfg.Format, opts)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RequireCoverage {
		if err := lex.RequireCoverage(); err != nil {
			return nil, err
		}
	} else if missing := lex.Missing(lex.MaxSyllables()); len(missing) > 0 {
		logger.Warn("lexicon coverage incomplete", slog.Any("missing", missing))
	}

	stats := lex.Stats()
	logger.Info("lexicon loaded",
		slog.String("source", source),
		slog.Int("words", lex.Len()),
		slog.Int("over_cap", stats.OverCap),
		slog.Int("duplicates", stats.Duplicates),
		slog.String("fingerprint", lex.Fingerprint()),
	)
	return lex, nil
}

// NewTextProvider builds the configured adapter. It returns a nil provider
// and no error when no provider is configured.
func NewTextProvider(ctx context.Context, cfg config.ProviderConfig, logger *slog.Logger) (provider.TextProvider, error) {
	pcfg := provider.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}

	switch cfg.Name {
	case "":
		return nil, nil
	case provider.NameOpenAI:
		return openai.NewProvider(pcfg, logger), nil
	case provider.NameAnthropic:
		return anthropic.NewProvider(pcfg, logger), nil
	case provider.NameGemini:
		p, err := gemini.NewProvider(ctx, pcfg, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	case provider.NameStub:
		return stub.NewStub(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Name)
	}
}

// PhraseStore is the phrase history store. A nil PhraseStore disables history.
type PhraseStore interface {
	Create(ctx context.Context, phrase *domain.Phrase) error
	CreateBatch(ctx context.Context, phrases []domain.Phrase) error
	List(ctx context.Context, filter domain.PhraseFilter) ([]domain.Phrase, error)
	Stats(ctx context.Context) (domain.PhraseStats, error)
}

// NewBakaService wires generator, extractor, provider and store into the
// phrase service. prov and store may be nil.
func NewBakaService(cfg *config.Config, lex *lexicon.Lexicon, prov provider.TextProvider, store PhraseStore, logger *slog.Logger) (*baka.Service, error) {
	prompt, err := baka.LoadPrompt(cfg.Provider.PromptPath)
	if err != nil {
		return nil, err
	}

	gen := generator.New(lex, generator.WithStrategy(generator.Strategy(cfg.Baka.Strategy)))
	ext := extractor.New(lex, cfg.Baka.Label)

	return baka.NewService(logger, gen, ext, prov, store, baka.Config{
		Prompt:      prompt,
		MaxTokens:   cfg.Provider.MaxTokens,
		MaxAttempts: cfg.Baka.MaxAttempts,
		Timeout:     cfg.Baka.Timeout,
	}), nil
}

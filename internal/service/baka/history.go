package baka

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/bakabot/internal/domain"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// History returns recorded phrases, newest first. Returns domain.ErrNotFound
// when no history store is configured.
func (s *Service) History(ctx context.Context, filter domain.PhraseFilter) ([]domain.Phrase, error) {
	if s.phrases == nil {
		return nil, domain.ErrNotFound
	}
	if filter.Mode != nil && !filter.Mode.IsValid() {
		return nil, domain.NewValidationError("mode", "must be offline or validated")
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultHistoryLimit
	}
	if filter.Limit > maxHistoryLimit {
		filter.Limit = maxHistoryLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.phrases.List(ctx, filter)
}

// Stats returns phrase counts per mode.
func (s *Service) Stats(ctx context.Context) (domain.PhraseStats, error) {
	if s.phrases == nil {
		return domain.PhraseStats{}, domain.ErrNotFound
	}
	return s.phrases.Stats(ctx)
}

// record stores a phrase. History is best effort: failures are logged and
// never fail the request that produced the phrase.
func (s *Service) record(ctx context.Context, p domain.Phrase) {
	if s.phrases == nil {
		return
	}
	if err := s.phrases.Create(ctx, &p); err != nil {
		s.log.WarnContext(ctx, "record phrase failed",
			slog.String("mode", p.Mode.String()),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Service) recordAll(ctx context.Context, phrases []domain.Phrase) {
	if s.phrases == nil {
		return
	}
	if err := s.phrases.CreateBatch(ctx, phrases); err != nil {
		s.log.WarnContext(ctx, "record phrases failed",
			slog.Int("count", len(phrases)),
			slog.String("error", err.Error()),
		)
	}
}

func newOfflinePhrase(text string, syllables int, now time.Time) domain.Phrase {
	return domain.Phrase{
		ID:        uuid.New(),
		Mode:      domain.PhraseModeOffline,
		Text:      text,
		Syllables: syllables,
		Source:    "lexicon",
		CreatedAt: now,
	}
}

func newValidatedPhrase(text string, syllables, attempts int, source string, now time.Time) domain.Phrase {
	return domain.Phrase{
		ID:        uuid.New(),
		Mode:      domain.PhraseModeValidated,
		Text:      text,
		Syllables: syllables,
		Attempts:  attempts,
		Source:    source,
		CreatedAt: now,
	}
}

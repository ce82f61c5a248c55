package baka

import (
	"context"
	"fmt"
	"log/slog"
)

// Generate builds a phrase offline from the lexicon and records it.
func (s *Service) Generate(ctx context.Context, target int) ([]string, error) {
	words, err := s.gen.Generate(target)
	if err != nil {
		return nil, fmt.Errorf("generate phrase: %w", err)
	}

	s.log.DebugContext(ctx, "phrase generated", slog.Int("target", target), slog.Int("words", len(words)))
	s.record(ctx, newOfflinePhrase(s.Format(words), target, s.now()))
	return words, nil
}

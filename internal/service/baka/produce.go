package baka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/bakabot/internal/domain"
)

// ProduceResult is the outcome of a successful retry loop.
type ProduceResult struct {
	Candidates []domain.Candidate
	// Attempts is the number of provider calls made, including the matching one.
	Attempts int
}

// Produce asks the text provider for completions until one contains at least
// one phrase whose syllables sum to target.
//
// A provider error ends the loop at once with a *domain.ProviderError; only a
// successful response without a match is retried. The loop stops with a
// *domain.RetriesExhaustedError after MaxAttempts calls or when the configured
// timeout passes. Cancelling ctx aborts the loop with ctx's error, also when
// the cancellation interrupts an in-flight provider call.
func (s *Service) Produce(ctx context.Context, target int) (*ProduceResult, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("produce: %w", domain.NewValidationError("mode", "no text provider configured"))
	}
	if target < 0 {
		return nil, domain.NewValidationError("target", "must be non-negative")
	}

	parent := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	attempts := 0
	for attempts < s.cfg.MaxAttempts {
		if err := ctx.Err(); err != nil {
			return nil, s.stopped(parent, attempts, err)
		}

		attempts++
		text, err := s.provider.Complete(ctx, s.cfg.Prompt, s.cfg.MaxTokens)
		if err != nil {
			if ctx.Err() != nil && parent.Err() == nil {
				return nil, s.stopped(parent, attempts, ctx.Err())
			}
			if parent.Err() != nil {
				return nil, fmt.Errorf("produce: %w", parent.Err())
			}
			s.log.ErrorContext(ctx, "provider request failed",
				slog.String("provider", s.provider.Name()),
				slog.Int("attempt", attempts),
				slog.String("error", err.Error()),
			)
			return nil, &domain.ProviderError{Provider: s.provider.Name(), Err: err}
		}

		candidates := s.ext.Extract(text, target)
		s.log.DebugContext(ctx, "provider response checked",
			slog.Int("attempt", attempts),
			slog.Int("candidates", len(candidates)),
			slog.Int("length", len(text)),
		)
		if len(candidates) == 0 {
			continue
		}

		now := s.now()
		phrases := make([]domain.Phrase, len(candidates))
		for i, c := range candidates {
			phrases[i] = newValidatedPhrase(s.Format(c.Words), c.Syllables, attempts, s.provider.Name(), now)
		}
		s.recordAll(ctx, phrases)
		s.log.InfoContext(ctx, "validated phrase produced",
			slog.Int("attempts", attempts),
			slog.Int("candidates", len(candidates)),
		)
		return &ProduceResult{Candidates: candidates, Attempts: attempts}, nil
	}

	s.log.WarnContext(ctx, "retries exhausted", slog.Int("attempts", attempts), slog.Int("target", target))
	return nil, &domain.RetriesExhaustedError{Attempts: attempts}
}

// stopped classifies a context error: the loop's own deadline is exhaustion,
// anything coming from the caller's context is returned as is.
func (s *Service) stopped(parent context.Context, attempts int, err error) error {
	if parent.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		s.log.WarnContext(parent, "retry loop timed out", slog.Int("attempts", attempts), slog.Duration("timeout", s.cfg.Timeout))
		return &domain.RetriesExhaustedError{Attempts: attempts, Timeout: s.cfg.Timeout}
	}
	return fmt.Errorf("produce: %w", err)
}

package baka

import (
	"context"
	"fmt"

	"github.com/heartmarshall/bakabot/internal/domain"
)

// ReplyInput selects how a chat reply is produced.
type ReplyInput struct {
	Mode   domain.PhraseMode
	Target int
}

// Validate checks the input against the supported modes and target range.
func (i ReplyInput) Validate(maxTarget int) error {
	var errs []domain.FieldError
	if !i.Mode.IsValid() {
		errs = append(errs, domain.FieldError{Field: "mode", Message: "must be offline or validated"})
	}
	if i.Target < 0 || i.Target > maxTarget {
		errs = append(errs, domain.FieldError{Field: "target", Message: fmt.Sprintf("must be between 0 and %d", maxTarget)})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Reply produces the display string for a chat command: one
// "<label>: ... ." line per phrase.
func (s *Service) Reply(ctx context.Context, in ReplyInput) (string, error) {
	switch in.Mode {
	case domain.PhraseModeOffline:
		words, err := s.Generate(ctx, in.Target)
		if err != nil {
			return "", err
		}
		return s.Format(words), nil
	case domain.PhraseModeValidated:
		res, err := s.Produce(ctx, in.Target)
		if err != nil {
			return "", err
		}
		return s.FormatAll(res.Candidates), nil
	default:
		return "", domain.NewValidationError("mode", "must be offline or validated")
	}
}

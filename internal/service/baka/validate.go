package baka

import (
	"github.com/heartmarshall/bakabot/internal/domain"
)

// Validate runs the extractor over caller-supplied text.
func (s *Service) Validate(text string, target int) ([]domain.Candidate, error) {
	if target < 0 {
		return nil, domain.NewValidationError("target", "must be non-negative")
	}
	return s.ext.Extract(text, target), nil
}

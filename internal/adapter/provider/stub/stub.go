package stub

import (
	"context"
	"sync/atomic"

	"github.com/heartmarshall/bakabot/internal/provider"
)

// DefaultResponse matches a five-syllable target against the embedded lexicon.
const DefaultResponse = "Baka: you are not the moon."

// Stub is an offline text provider for development and tests.
// It returns its responses in order and wraps around.
type Stub struct {
	responses []string
	next      atomic.Uint64
}

// NewStub creates a Stub. With no responses it always returns DefaultResponse.
func NewStub(responses ...string) *Stub {
	if len(responses) == 0 {
		responses = []string{DefaultResponse}
	}
	return &Stub{responses: responses}
}

// Name returns the provider name used in logs and history.
func (s *Stub) Name() string { return provider.NameStub }

// Complete returns the next scripted response.
func (s *Stub) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	i := s.next.Add(1) - 1
	return s.responses[i%uint64(len(s.responses))], nil
}

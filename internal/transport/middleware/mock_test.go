package middleware

import (
	"context"
	"sync"

	"github.com/heartmarshall/bakabot/internal/auth"
)

// tokenValidatorMock is a function-field mock of tokenValidator.
type tokenValidatorMock struct {
	ValidateTokenFunc func(ctx context.Context, token string) (auth.Client, error)

	mu    sync.Mutex
	calls []string
}

func (m *tokenValidatorMock) ValidateToken(ctx context.Context, token string) (auth.Client, error) {
	m.mu.Lock()
	m.calls = append(m.calls, token)
	m.mu.Unlock()
	return m.ValidateTokenFunc(ctx, token)
}

func (m *tokenValidatorMock) ValidateTokenCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/bakabot/internal/auth"
	"github.com/heartmarshall/bakabot/pkg/ctxutil"
)

func TestAuth_ValidToken(t *testing.T) {
	t.Parallel()

	clientID := uuid.New()
	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(ctx context.Context, token string) (auth.Client, error) {
			if token == "valid-token" {
				return auth.Client{ID: clientID, Name: "ci"}, nil
			}
			return auth.Client{}, errors.New("invalid token")
		},
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := ctxutil.ClientIDFromCtx(r.Context())
		if !ok || got != clientID {
			t.Errorf("client id = %v (%v), want %v", got, ok, clientID)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	Auth(validator)(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestAuth_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     string
		wantCalled bool
	}{
		{"no header", "", false},
		{"basic scheme", "Basic dXNlcjpwYXNz", false},
		{"empty bearer", "Bearer   ", false},
		{"invalid token", "Bearer bad-token", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			validator := &tokenValidatorMock{
				ValidateTokenFunc: func(ctx context.Context, token string) (auth.Client, error) {
					return auth.Client{}, errors.New("invalid token")
				},
			}
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be called")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(validator)(handler).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("expected WWW-Authenticate header")
			}
			if called := len(validator.ValidateTokenCalls()) > 0; called != tt.wantCalled {
				t.Errorf("validator called = %v, want %v", called, tt.wantCalled)
			}
		})
	}
}

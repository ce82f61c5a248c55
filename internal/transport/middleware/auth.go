package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/heartmarshall/bakabot/internal/auth"
	"github.com/heartmarshall/bakabot/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Client, error)
}

// Auth rejects requests without a valid bearer token with 401 and stores the
// client ID in the context otherwise.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="bakabot"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			client, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="bakabot", error="invalid_token"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			noteClient(r.Context(), client.ID)
			ctx := ctxutil.WithClientID(r.Context(), client.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

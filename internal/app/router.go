package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/bakabot/internal/auth"
	"github.com/heartmarshall/bakabot/internal/config"
	"github.com/heartmarshall/bakabot/internal/transport/middleware"
	"github.com/heartmarshall/bakabot/internal/transport/rest"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Client, error)
}

// routes holds the handlers mounted by newRouter. Nil api or discord leaves
// those routes unmounted.
type routes struct {
	health  *rest.HealthHandler
	api     *rest.BakaHandler
	tokens  tokenValidator
	discord http.Handler
	limiter *middleware.RateLimiter
	limits  config.RateLimitConfig
}

func newRouter(rt routes, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", rt.health.Live)
	mux.HandleFunc("GET /ready", rt.health.Ready)
	mux.HandleFunc("GET /health", rt.health.Health)

	if rt.api != nil {
		api := middleware.Chain(
			middleware.Auth(rt.tokens),
			rt.limiter.Limit("api", rt.limits.APIPerMinute, middleware.KeyByClient),
		)
		mux.Handle("GET /api/v1/baka", api(http.HandlerFunc(rt.api.Baka)))
		mux.Handle("POST /api/v1/validate", api(http.HandlerFunc(rt.api.Validate)))
		mux.Handle("GET /api/v1/history", api(http.HandlerFunc(rt.api.History)))
	}

	if rt.discord != nil {
		limit := rt.limiter.Limit("discord", rt.limits.DiscordPerMinute, middleware.KeyByIP)
		mux.Handle("POST /discord/interactions", limit(rt.discord))
	}

	return middleware.Chain(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	)(mux)
}

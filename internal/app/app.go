// Package app wires configuration, adapters, services and transports into
// the running server.
package app

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/bakabot/internal/adapter/postgres"
	"github.com/heartmarshall/bakabot/internal/adapter/postgres/phrase"
	"github.com/heartmarshall/bakabot/internal/auth"
	"github.com/heartmarshall/bakabot/internal/config"
	"github.com/heartmarshall/bakabot/internal/transport/discord"
	"github.com/heartmarshall/bakabot/internal/transport/middleware"
	"github.com/heartmarshall/bakabot/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, builds every
// component and serves HTTP until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	lex, err := NewLexicon(cfg.Lexicon, logger)
	if err != nil {
		return fmt.Errorf("load lexicon: %w", err)
	}

	prov, err := NewTextProvider(ctx, cfg.Provider, logger)
	if err != nil {
		return fmt.Errorf("text provider: %w", err)
	}
	if prov == nil {
		logger.Warn("no text provider configured, only offline mode is available")
	} else {
		logger.Info("text provider ready", slog.String("provider", prov.Name()))
	}

	var (
		pool   *pgxpool.Pool
		store  PhraseStore
		pinger interface{ Ping(context.Context) error }
	)
	if cfg.Database.Enabled() {
		pool, err = postgres.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer pool.Close()

		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, pool, logger); err != nil {
				return err
			}
		}
		store = phrase.New(pool)
		pinger = pool
	} else {
		logger.Info("no database configured, phrase history disabled")
	}

	svc, err := NewBakaService(cfg, lex, prov, store, logger)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	rt := routes{
		health:  rest.NewHealthHandler(pinger, lex, BuildVersion()),
		limiter: limiter,
		limits:  cfg.RateLimit,
	}
	if cfg.Server.APIEnabled {
		rt.api = rest.NewBakaHandler(svc, cfg.Baka.Target, cfg.Baka.MaxTarget, logger)
		rt.tokens = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	}

	var interactions *discord.Handler
	if cfg.Discord.Enabled {
		key, err := cfg.Discord.PublicKeyBytes()
		if err != nil {
			return err
		}
		session, err := discordgo.New("Bot " + cfg.Discord.BotToken)
		if err != nil {
			return fmt.Errorf("discord session: %w", err)
		}
		interactions = discord.NewHandler(svc, session, ed25519.PublicKey(key), discord.Config{
			CommandName:   cfg.Discord.CommandName,
			DefaultTarget: cfg.Baka.Target,
			MaxTarget:     cfg.Baka.MaxTarget,
		}, logger)
		rt.discord = interactions
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      newRouter(rt, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		if interactions != nil {
			if err := interactions.Wait(shutdownCtx); err != nil {
				logger.Warn("pending discord follow-ups abandoned", slog.String("error", err.Error()))
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("stopped")
	return nil
}

package app

import (
	"context"
	"crypto/rand"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/standup-server/internal/auth"
	"github.com/vovakirdan/standup-server/internal/config"
	"github.com/vovakirdan/standup-server/internal/core"
	transporthttp "github.com/vovakirdan/standup-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	secret := []byte(cfg.TokenSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		logger.Warn().Msg("token_secret not set; sessions will not survive a restart")
	}

	sessions := auth.NewService(&auth.JWTConfig{
		Secret:   secret,
		Issuer:   "standup-server",
		Audience: "standup-rooms",
		TTL:      cfg.TokenTTL,
	})

	hub := core.NewHub(core.Options{
		Capacity:      cfg.RoomCapacity,
		BreakDuration: cfg.BreakDuration,
		EventBuffer:   cfg.EventBuffer,
		Logger:        logger,
	})

	server := transporthttp.NewServer(hub, sessions, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal
// error. Room state is ephemeral; shutdown simply stops accepting traffic.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}

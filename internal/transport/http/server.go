package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/standup-server/internal/auth"
	"github.com/vovakirdan/standup-server/internal/config"
	"github.com/vovakirdan/standup-server/internal/core"
)

// NewServer builds the HTTP server: health and session endpoints plus the
// websocket entry point for room traffic.
func NewServer(hub *core.Hub, sessions *auth.Service, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(hub, sessions, cfg, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter assembles the gin handler; split out so tests can mount it on a
// test server.
func NewRouter(hub *core.Hub, sessions *auth.Service, cfg config.Config, logger *zerolog.Logger) stdhttp.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	handlers := NewAPIHandlers(sessions, hub, logger)
	router.GET("/healthz", handlers.Health)

	api := router.Group("/api")
	{
		api.POST("/session", handlers.CreateSession)
		api.GET("/rooms", handlers.Rooms)
	}

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, sessions, cfg.WSControlLimit, logger)))

	return router
}

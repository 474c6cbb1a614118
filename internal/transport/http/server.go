package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/worldsync/worldsync-server/internal/auth"
	"github.com/worldsync/worldsync-server/internal/config"
	"github.com/worldsync/worldsync-server/internal/core"
	"github.com/worldsync/worldsync-server/internal/store"
)

// NewServer builds the HTTP server: the websocket endpoint plus a small
// read-only REST surface.
func NewServer(hub *core.Hub, authCfg *auth.JWTConfig, chats store.ChatStore, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))

	handlers := NewAPIHandlers(hub, authCfg, chats, cfg.HistoryLimit, logger)

	router.GET("/health", healthHandler)

	api := router.Group("/api")
	api.POST("/guest", handlers.GuestToken)
	api.GET("/world", handlers.WorldSnapshot)
	api.GET("/players", handlers.Players)
	api.GET("/chat/history", handlers.ChatHistory)

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, authCfg, cfg.ClientBuffer, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

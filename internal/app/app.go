package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/worldsync/worldsync-server/internal/auth"
	"github.com/worldsync/worldsync-server/internal/config"
	"github.com/worldsync/worldsync-server/internal/core"
	"github.com/worldsync/worldsync-server/internal/store"
	"github.com/worldsync/worldsync-server/internal/store/sqlite"
	transporthttp "github.com/worldsync/worldsync-server/internal/transport/http"
	"github.com/worldsync/worldsync-server/internal/utils"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	chats           store.ChatStore
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	var chats store.ChatStore
	if cfg.DatabasePath != "" {
		st, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("init store: %w", err)
		}
		chats = st
		logger.Info().Str("db_path", cfg.DatabasePath).Msg("chat store initialized")
	} else {
		logger.Info().Msg("chat persistence disabled")
	}

	secret := cfg.JWTSecret
	if secret == "" {
		// Guest tokens stay valid for this process only.
		secret = utils.NewID()
		logger.Warn().Msg("jwt_secret not set, generated a per-process secret")
	}
	authCfg := &auth.JWTConfig{
		Secret: []byte(secret),
		Issuer: "worldsync",
		TTL:    24 * time.Hour,
	}

	world := core.NewWorld(worldSeed(cfg.World))
	hub := core.NewHub(world, chats, logger, cfg.HistoryLimit)
	server := transporthttp.NewServer(hub, authCfg, chats, *cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		chats:           chats,
		log:             logger,
	}, nil
}

// Run starts the hub and HTTP server and blocks until context cancellation
// or fatal listener error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the chat store if one was configured.
func (a *App) cleanup() {
	if a.chats != nil {
		if err := a.chats.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close chat store")
		} else {
			a.log.Info().Msg("chat store closed")
		}
	}
}

func worldSeed(wc config.WorldConfig) core.WorldSeed {
	seed := core.WorldSeed{SpawnPoint: coreVec3(wc.SpawnPoint)}
	for _, obj := range wc.Objects {
		seed.Objects = append(seed.Objects, core.GameObject{
			ID:       obj.ID,
			Kind:     core.ObjectKind(obj.Type),
			Position: coreVec3(obj.Position),
			Size:     coreVec3(obj.Size),
			Color:    obj.Color,
		})
	}
	return seed
}

func coreVec3(v config.Vec3) core.Vec3 {
	return core.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

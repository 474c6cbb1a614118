package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/worldsync/worldsync-server/internal/auth"
	"github.com/worldsync/worldsync-server/internal/core"
	"github.com/worldsync/worldsync-server/internal/proto"
	"github.com/worldsync/worldsync-server/internal/store"
)

// APIHandlers provides HTTP handlers for the REST endpoints.
type APIHandlers struct {
	hub          *core.Hub
	authCfg      *auth.JWTConfig
	chats        store.ChatStore
	historyLimit int
	log          *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(hub *core.Hub, authCfg *auth.JWTConfig, chats store.ChatStore, historyLimit int, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		hub:          hub,
		authCfg:      authCfg,
		chats:        chats,
		historyLimit: historyLimit,
		log:          logger,
	}
}

// GuestRequest represents the guest token request body.
type GuestRequest struct {
	Username string `json:"username" binding:"omitempty,max=32"`
}

// GuestResponse represents the guest token response body.
type GuestResponse struct {
	Token string `json:"token"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WorldResponse is the REST rendering of a world snapshot.
type WorldResponse struct {
	SpawnPoint proto.Vec3         `json:"spawnPoint"`
	Objects    []proto.GameObject `json:"objects"`
	Players    []proto.Player     `json:"players"`
}

// GuestToken issues a display-name token for a guest session. The body is
// optional; without a username the session keeps its generated name.
// POST /api/guest
func (h *APIHandlers) GuestToken(c *gin.Context) {
	var req GuestRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log.Debug().Err(err).Msg("invalid guest request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := auth.GenerateGuestToken(h.authCfg, req.Username)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to generate guest token")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, GuestResponse{Token: token})
}

// WorldSnapshot returns the full current world state.
// GET /api/world
func (h *APIHandlers) WorldSnapshot(c *gin.Context) {
	world := h.hub.World()
	players, objects := world.Snapshot()

	c.JSON(http.StatusOK, WorldResponse{
		SpawnPoint: protoVec3(world.SpawnPoint()),
		Objects:    protoObjects(objects),
		Players:    protoPlayers(players),
	})
}

// Players returns the currently connected players.
// GET /api/players
func (h *APIHandlers) Players(c *gin.Context) {
	players, _ := h.hub.World().Snapshot()
	c.JSON(http.StatusOK, protoPlayers(players))
}

// ChatHistory returns recent chat messages, newest last.
// GET /api/chat/history?limit=50
func (h *APIHandlers) ChatHistory(c *gin.Context) {
	limit := h.historyLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	history := make([]proto.ChatMessageData, 0)
	if h.chats != nil {
		msgs, err := h.chats.RecentMessages(c.Request.Context(), limit)
		if err != nil {
			h.log.Error().Err(err).Msg("failed to load chat history")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			return
		}
		for _, msg := range msgs {
			history = append(history, proto.ChatMessageData{
				PlayerID:  msg.PlayerID,
				Username:  msg.Username,
				Message:   msg.Body,
				Timestamp: msg.CreatedAt.UnixMilli(),
			})
		}
	}

	c.JSON(http.StatusOK, history)
}

package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/worldsync/worldsync-server/internal/store"
)

const defaultHistoryLimit = 50

type clientCommand struct {
	client *Client
	cmd    *Command
}

// Hub serializes every world mutation through a single run loop: connects,
// disconnects, and intents are applied one at a time, and the resulting
// deltas are fanned out to the affected sessions. Fan-out never blocks the
// loop; a session that cannot keep up loses frames instead of stalling
// everyone else.
type Hub struct {
	world        *World
	chats        store.ChatStore
	log          *zerolog.Logger
	historyLimit int

	register   chan *Client
	unregister chan *Client
	inbox      chan clientCommand
	done       chan struct{}

	clients map[string]*Client
}

// NewHub creates a hub over the given world. chats may be nil to disable
// chat persistence and history replay; historyLimit <= 0 uses the default.
func NewHub(world *World, chats store.ChatStore, logger *zerolog.Logger, historyLimit int) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if historyLimit <= 0 {
		historyLimit = defaultHistoryLimit
	}
	return &Hub{
		world:        world,
		chats:        chats,
		log:          logger,
		historyLimit: historyLimit,
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		inbox:        make(chan clientCommand, 64),
		done:         make(chan struct{}),
		clients:      make(map[string]*Client),
	}
}

// World exposes the canonical state for read-only callers (REST snapshot).
func (h *Hub) World() *World {
	return h.world
}

// RegisterClient hands a freshly accepted session to the run loop.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient tears a session down. Safe to call more than once; only
// the first call has any effect.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Run processes registrations and intents until the context is canceled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.handleRegister(ctx, c)
		case c := <-h.unregister:
			h.handleUnregister(c)
		case cc := <-h.inbox:
			h.handleCommand(ctx, cc.client, cc.cmd)
		}
	}
}

// pump forwards one client's commands into the shared inbox so the run loop
// stays the only goroutine touching the world.
func (h *Hub) pump(c *Client) {
	for cmd := range c.Commands {
		select {
		case h.inbox <- clientCommand{client: c, cmd: cmd}:
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleRegister(ctx context.Context, c *Client) {
	player := h.world.CreatePlayer(c.ID, c.Name)
	c.Name = player.Username
	h.clients[c.ID] = c
	go h.pump(c)

	// The joiner gets its init (which already includes itself) before anyone
	// else can observe the join broadcast.
	players, objects := h.world.Snapshot()
	h.send(c, &Event{
		Kind:       EventInit,
		PlayerID:   c.ID,
		SpawnPoint: h.world.SpawnPoint(),
		Players:    players,
		Objects:    objects,
	})
	h.notifyOthers(c.ID, &Event{Kind: EventPlayerJoined, Player: &player})

	if h.chats != nil {
		if msgs, err := h.chats.RecentMessages(ctx, h.historyLimit); err != nil {
			h.log.Warn().Err(err).Msg("load chat history")
		} else if len(msgs) > 0 {
			history := make([]ChatMessage, 0, len(msgs))
			for _, m := range msgs {
				history = append(history, ChatMessage{
					PlayerID:  m.PlayerID,
					Username:  m.Username,
					Text:      m.Body,
					Timestamp: m.CreatedAt.UnixMilli(),
				})
			}
			h.send(c, &Event{Kind: EventChatHistory, History: history})
		}
	}

	h.log.Info().Str("session_id", c.ID).Str("username", c.Name).Msg("player joined")
}

func (h *Hub) handleUnregister(c *Client) {
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)
	h.world.RemovePlayer(c.ID)
	close(c.Commands)
	close(c.Events)

	h.notifyAll(&Event{Kind: EventPlayerLeft, PlayerID: c.ID})
	h.log.Info().Str("session_id", c.ID).Msg("player left")
}

func (h *Hub) handleCommand(ctx context.Context, c *Client, cmd *Command) {
	// A command racing its own disconnect is ignored, never an error.
	if _, ok := h.clients[c.ID]; !ok {
		return
	}

	switch cmd.Kind {
	case CommandMove:
		if err := h.world.ApplyMove(c.ID, cmd.Position, cmd.Rotation); err != nil {
			h.log.Debug().Str("session_id", c.ID).Msg("move for unknown session dropped")
			return
		}
		h.notifyOthers(c.ID, &Event{
			Kind:     EventPlayerMoved,
			PlayerID: c.ID,
			Position: cmd.Position,
			Rotation: cmd.Rotation,
		})

	case CommandCreateObject:
		// Owner is the sending session, never a payload field.
		obj := h.world.CreateObject(cmd.ObjectKind, cmd.Position, cmd.Size, cmd.Color, c.ID)
		h.notifyAll(&Event{Kind: EventObjectCreated, Object: &obj})

	case CommandRemoveObject:
		// No ownership check: any session may remove any object, including
		// the seeded ground. The reference client avoids that by convention.
		if h.world.RemoveObject(cmd.ObjectID) {
			h.notifyAll(&Event{Kind: EventObjectRemoved, ObjectID: cmd.ObjectID})
		}

	case CommandChat:
		msg := ChatMessage{
			PlayerID:  c.ID,
			Username:  c.Name,
			Text:      cmd.Text,
			Timestamp: time.Now().UnixMilli(),
		}
		if h.chats != nil {
			if err := h.chats.SaveChatMessage(ctx, &store.ChatMessage{
				PlayerID:  msg.PlayerID,
				Username:  msg.Username,
				Body:      msg.Text,
				CreatedAt: time.UnixMilli(msg.Timestamp),
			}); err != nil {
				h.log.Warn().Err(err).Msg("save chat message")
			}
		}
		h.notifyAll(&Event{Kind: EventChatMessage, Chat: &msg})
	}
}

// notifyAll delivers an event to every registered session.
func (h *Hub) notifyAll(event *Event) {
	for _, c := range h.clients {
		h.send(c, event)
	}
}

// notifyOthers delivers an event to every session except the excluded one.
func (h *Hub) notifyOthers(excludedID string, event *Event) {
	for id, c := range h.clients {
		if id == excludedID {
			continue
		}
		h.send(c, event)
	}
}

func (h *Hub) send(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer.
		h.log.Debug().Str("session_id", c.ID).Msg("dropping event for slow consumer")
	}
}

package store

import (
	"context"
	"time"
)

// ChatMessage is a persisted chat line. World state itself is never
// persisted; chat is the only thing that survives a restart.
type ChatMessage struct {
	ID        int64
	PlayerID  string
	Username  string
	Body      string
	CreatedAt time.Time
}

// ChatStore handles chat message persistence.
type ChatStore interface {
	// SaveChatMessage persists a message and fills in its assigned ID.
	SaveChatMessage(ctx context.Context, msg *ChatMessage) error

	// RecentMessages returns up to limit of the newest messages in
	// chronological order.
	RecentMessages(ctx context.Context, limit int) ([]*ChatMessage, error)

	// Close closes the underlying database connection.
	Close() error
}

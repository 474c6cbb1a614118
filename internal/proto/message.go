package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeMove         = "move"
	InboundTypeCreateObject = "createObject"
	InboundTypeRemoveObject = "removeObject"
	InboundTypeChatMessage  = "chatMessage"

	OutboundTypeInit          = "init"
	OutboundTypePlayerJoined  = "playerJoined"
	OutboundTypePlayerMoved   = "playerMoved"
	OutboundTypeObjectCreated = "objectCreated"
	OutboundTypeObjectRemoved = "objectRemoved"
	OutboundTypeChatMessage   = "chatMessage"
	OutboundTypePlayerLeft    = "playerLeft"
	OutboundTypeChatHistory   = "chatHistory"
)

// Vec3 is a 3-component vector on the wire.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Player is a full player record on the wire.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Position Vec3   `json:"position"`
	Rotation Vec3   `json:"rotation"`
	Health   int    `json:"health"`
	Color    uint32 `json:"color"`
}

// GameObject is a full object record on the wire.
type GameObject struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Position Vec3   `json:"position"`
	Size     Vec3   `json:"size"`
	Color    uint32 `json:"color"`
	Owner    string `json:"owner,omitempty"`
}

// MoveData updates the sender's position and rotation.
type MoveData struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
}

// CreateObjectData requests a new object. Size and color are optional and
// defaulted server-side; the owner and id are never client-supplied.
type CreateObjectData struct {
	Type     string  `json:"type"`
	Position Vec3    `json:"position"`
	Size     *Vec3   `json:"size,omitempty"`
	Color    *uint32 `json:"color,omitempty"`
}

// Outbound is the envelope for messages sent to the client. For
// objectRemoved and playerLeft, Data is the bare id string.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// WorldData is the object portion of the init payload.
type WorldData struct {
	SpawnPoint Vec3         `json:"spawnPoint"`
	Objects    []GameObject `json:"objects"`
}

// InitData is sent once, immediately after a connection is accepted.
type InitData struct {
	PlayerID string    `json:"playerId"`
	World    WorldData `json:"world"`
	Players  []Player  `json:"players"`
}

// PlayerMovedData carries another session's authoritative transform.
type PlayerMovedData struct {
	ID       string `json:"id"`
	Position Vec3   `json:"position"`
	Rotation Vec3   `json:"rotation"`
}

// ChatMessageData is a chat line tagged with the sender and a
// server-assigned Unix-millisecond timestamp.
type ChatMessageData struct {
	PlayerID  string `json:"playerId"`
	Username  string `json:"username"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

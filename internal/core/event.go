package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventInit delivers the assigned id and full world snapshot to a newly
	// connected session, exactly once.
	EventInit EventKind = iota
	// EventPlayerJoined announces a new player to the other sessions.
	EventPlayerJoined
	// EventPlayerMoved carries another session's position update.
	EventPlayerMoved
	// EventObjectCreated announces a new object to every session.
	EventObjectCreated
	// EventObjectRemoved announces a removal to every session.
	EventObjectRemoved
	// EventChatMessage carries a chat line to every session.
	EventChatMessage
	// EventPlayerLeft announces a departed session to the survivors.
	EventPlayerLeft
	// EventChatHistory replays recent chat to a joining session.
	EventChatHistory
)

// Event is sent to clients to describe what happened in the world.
type Event struct {
	Kind EventKind

	// PlayerID names the subject session for init, playerMoved, playerLeft.
	PlayerID string

	// Init payload.
	SpawnPoint Vec3
	Players    []Player
	Objects    []GameObject

	// PlayerJoined payload.
	Player *Player

	// PlayerMoved payload.
	Position Vec3
	Rotation Vec3

	// ObjectCreated / ObjectRemoved payloads.
	Object   *GameObject
	ObjectID string

	// Chat payloads.
	Chat    *ChatMessage
	History []ChatMessage
}

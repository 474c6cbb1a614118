package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandMove updates the sending session's position and rotation.
	CommandMove CommandKind = iota
	// CommandCreateObject places a new object in the world.
	CommandCreateObject
	// CommandRemoveObject deletes an object by id.
	CommandRemoveObject
	// CommandChat broadcasts a chat line to everyone.
	CommandChat
)

// Command represents an intent submitted by a client. The hub only ever
// trusts the session it arrived on, never identity fields in the payload.
type Command struct {
	Kind CommandKind

	// Move
	Position Vec3
	Rotation Vec3

	// CreateObject; zero Size and Color mean "absent" and are defaulted.
	ObjectKind ObjectKind
	Size       Vec3
	Color      uint32

	// RemoveObject
	ObjectID string

	// Chat
	Text string
}

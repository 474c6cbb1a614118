package core

// Vec3 is a position, rotation, or extent in world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ObjectKind enumerates the shapes a client may place in the world.
type ObjectKind string

const (
	ObjectKindCube     ObjectKind = "cube"
	ObjectKindSphere   ObjectKind = "sphere"
	ObjectKindCylinder ObjectKind = "cylinder"
	ObjectKindPlane    ObjectKind = "plane"
)

// Normalize maps empty or unrecognized kinds to the cube fallback.
func (k ObjectKind) Normalize() ObjectKind {
	switch k {
	case ObjectKindCube, ObjectKindSphere, ObjectKindCylinder, ObjectKindPlane:
		return k
	default:
		return ObjectKindCube
	}
}

// Player is one connected participant's avatar. Exactly one exists per live
// session; the id is the session id.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Position Vec3   `json:"position"`
	Rotation Vec3   `json:"rotation"`
	Health   int    `json:"health"`
	Color    uint32 `json:"color"`
}

// GameObject is a dynamic object in the shared world. Ids are always
// server-generated; Owner is the session that created it (empty for seeded
// objects).
type GameObject struct {
	ID       string     `json:"id"`
	Kind     ObjectKind `json:"type"`
	Position Vec3       `json:"position"`
	Size     Vec3       `json:"size"`
	Color    uint32     `json:"color"`
	Owner    string     `json:"owner,omitempty"`
}

// ChatMessage is a chat line as fanned out to sessions. Timestamp is
// server-assigned Unix milliseconds.
type ChatMessage struct {
	PlayerID  string
	Username  string
	Text      string
	Timestamp int64
}

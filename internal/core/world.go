package core

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

const (
	defaultPlayerHealth = 100
	defaultObjectColor  = 0xffffff
)

// WorldSeed is the static bootstrap: where players spawn and which objects
// exist before any client connects (at minimum a ground plane).
type WorldSeed struct {
	SpawnPoint Vec3
	Objects    []GameObject
}

// World owns the canonical shared state: all dynamic objects and all
// connected players. Every mutation holds the write lock for its full
// duration, so a concurrent Snapshot never observes a half-applied change.
// Network sends never happen under this lock.
type World struct {
	mu         sync.RWMutex
	spawnPoint Vec3
	objects    map[string]*GameObject
	players    map[string]*Player
}

// NewWorld builds a world from a seed. Seed objects keep their configured ids
// (the reference client expects a literal "ground"); kinds are normalized and
// missing sizes/colors defaulted the same way created objects are.
func NewWorld(seed WorldSeed) *World {
	w := &World{
		spawnPoint: seed.SpawnPoint,
		objects:    make(map[string]*GameObject, len(seed.Objects)),
		players:    make(map[string]*Player),
	}
	for _, obj := range seed.Objects {
		obj.Kind = obj.Kind.Normalize()
		if obj.Size == (Vec3{}) {
			obj.Size = Vec3{X: 1, Y: 1, Z: 1}
		}
		if obj.Color == 0 {
			obj.Color = defaultObjectColor
		}
		o := obj
		w.objects[o.ID] = &o
	}
	return w
}

// SpawnPoint returns where new players appear.
func (w *World) SpawnPoint() Vec3 {
	return w.spawnPoint
}

// CreatePlayer allocates a player at the spawn point for the given session.
// An empty username yields the generated Player_<id prefix> display name.
func (w *World) CreatePlayer(sessionID, username string) Player {
	if username == "" {
		username = generatedUsername(sessionID)
	}

	player := &Player{
		ID:       sessionID,
		Username: username,
		Position: w.spawnPoint,
		Health:   defaultPlayerHealth,
		Color:    uint32(rand.Intn(0x1000000)),
	}

	w.mu.Lock()
	w.players[sessionID] = player
	w.mu.Unlock()

	return *player
}

// RemovePlayer deletes the session's player. Returns false if the session was
// already gone.
func (w *World) RemovePlayer(sessionID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.players[sessionID]; !ok {
		return false
	}
	delete(w.players, sessionID)
	return true
}

// ApplyMove updates the position and rotation of the session's own player.
// The session identity decides which player moves; there is no way to move
// anyone else's.
func (w *World) ApplyMove(sessionID string, position, rotation Vec3) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	player, ok := w.players[sessionID]
	if !ok {
		return ErrUnknownSession
	}
	player.Position = position
	player.Rotation = rotation
	return nil
}

// CreateObject adds a new object with a server-generated id. A zero size
// defaults to a unit cube and a zero color to white, matching what the wire
// protocol treats as absent.
func (w *World) CreateObject(kind ObjectKind, position, size Vec3, color uint32, owner string) GameObject {
	if size == (Vec3{}) {
		size = Vec3{X: 1, Y: 1, Z: 1}
	}
	if color == 0 {
		color = defaultObjectColor
	}

	obj := &GameObject{
		ID:       uuid.NewString(),
		Kind:     kind.Normalize(),
		Position: position,
		Size:     size,
		Color:    color,
		Owner:    owner,
	}

	w.mu.Lock()
	w.objects[obj.ID] = obj
	w.mu.Unlock()

	return *obj
}

// RemoveObject deletes the object if present. A missing id is not an error:
// concurrent removals race by design, the loser just gets false.
func (w *World) RemoveObject(objectID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.objects[objectID]; !ok {
		return false
	}
	delete(w.objects, objectID)
	return true
}

// Player returns a copy of the session's player.
func (w *World) Player(sessionID string) (Player, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	player, ok := w.players[sessionID]
	if !ok {
		return Player{}, false
	}
	return *player, true
}

// Snapshot copies the full world state at a single consistent instant.
func (w *World) Snapshot() ([]Player, []GameObject) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	players := make([]Player, 0, len(w.players))
	for _, player := range w.players {
		players = append(players, *player)
	}
	objects := make([]GameObject, 0, len(w.objects))
	for _, obj := range w.objects {
		objects = append(objects, *obj)
	}
	return players, objects
}

func generatedUsername(sessionID string) string {
	prefix := sessionID
	if len(prefix) > 5 {
		prefix = prefix[:5]
	}
	return fmt.Sprintf("Player_%s", prefix)
}

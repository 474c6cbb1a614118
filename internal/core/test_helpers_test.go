package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/worldsync/worldsync-server/internal/store"
)

func testSeed() WorldSeed {
	return WorldSeed{
		SpawnPoint: Vec3{X: 0, Y: 2, Z: 0},
		Objects: []GameObject{
			{
				ID:    "ground",
				Kind:  ObjectKindCube,
				Size:  Vec3{X: 10, Y: 1, Z: 10},
				Color: 0x00ff00,
			},
		},
	}
}

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func mustNoEvent(t *testing.T, ch <-chan *Event, kind EventKind) {
	t.Helper()

	deadline := time.After(150 * time.Millisecond)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v: %+v", kind, ev)
			}
		case <-deadline:
			return
		}
	}
}

// fakeChatStore is an in-memory store.ChatStore for hub tests.
type fakeChatStore struct {
	mu   sync.Mutex
	msgs []*store.ChatMessage
}

func (f *fakeChatStore) SaveChatMessage(_ context.Context, msg *store.ChatMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	saved := *msg
	saved.ID = int64(len(f.msgs) + 1)
	msg.ID = saved.ID
	f.msgs = append(f.msgs, &saved)
	return nil
}

func (f *fakeChatStore) RecentMessages(_ context.Context, limit int) ([]*store.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	start := 0
	if len(f.msgs) > limit {
		start = len(f.msgs) - limit
	}
	out := make([]*store.ChatMessage, len(f.msgs)-start)
	copy(out, f.msgs[start:])
	return out, nil
}

func (f *fakeChatStore) Close() error { return nil }

func (f *fakeChatStore) saved() []*store.ChatMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*store.ChatMessage, len(f.msgs))
	copy(out, f.msgs)
	return out
}

package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/worldsync/worldsync-server/internal/auth"
	"github.com/worldsync/worldsync-server/internal/config"
	"github.com/worldsync/worldsync-server/internal/core"
	"github.com/worldsync/worldsync-server/internal/store"
)

// testEnvelope mirrors the outbound wire envelope with the payload left raw.
type testEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type memChatStore struct {
	mu   sync.Mutex
	msgs []*store.ChatMessage
}

func (s *memChatStore) SaveChatMessage(_ context.Context, msg *store.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ID = int64(len(s.msgs) + 1)
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *memChatStore) RecentMessages(_ context.Context, limit int) ([]*store.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit > len(s.msgs) {
		limit = len(s.msgs)
	}
	out := make([]*store.ChatMessage, limit)
	copy(out, s.msgs[len(s.msgs)-limit:])
	return out, nil
}

func (s *memChatStore) Close() error { return nil }

func startTestServer(t *testing.T, chats store.ChatStore) (*httptest.Server, *auth.JWTConfig) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	seed := core.WorldSeed{
		SpawnPoint: core.Vec3{Y: 2},
		Objects: []core.GameObject{{
			ID:   "ground",
			Kind: core.ObjectKindCube,
			Size: core.Vec3{X: 10, Y: 1, Z: 10},
		}},
	}

	logger := zerolog.Nop()
	hub := core.NewHub(core.NewWorld(seed), chats, &logger, 0)
	go hub.Run(ctx)

	authCfg := &auth.JWTConfig{
		Secret: []byte("test-secret"),
		Issuer: "worldsync",
		TTL:    time.Hour,
	}

	srv := NewServer(hub, authCfg, chats, config.Default(), &logger)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts, authCfg
}

func dialWS(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("ws dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "test done") })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) testEnvelope {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var env testEnvelope
	if err := wsjson.Read(ctx, conn, &env); err != nil {
		t.Fatalf("read ws frame: %v", err)
	}
	return env
}

// readUntil skips frames until one of the wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, wantType string) testEnvelope {
	t.Helper()

	for i := 0; i < 16; i++ {
		env := readEnvelope(t, conn)
		if env.Type == wantType {
			return env
		}
	}
	t.Fatalf("no %q frame within 16 reads", wantType)
	return testEnvelope{}
}

func sendIntent(t *testing.T, conn *websocket.Conn, msgType string, data any) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := wsjson.Write(ctx, conn, map[string]any{"type": msgType, "data": data}); err != nil {
		t.Fatalf("write ws frame: %v", err)
	}
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"strings"
	"testing"
	"time"

	"github.com/worldsync/worldsync-server/internal/auth"
	"github.com/worldsync/worldsync-server/internal/proto"
	"github.com/worldsync/worldsync-server/internal/store"
)

func TestHealthEndpoint(t *testing.T) {
	ts, _ := startTestServer(t, nil)

	resp, err := stdhttp.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("health status: %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok" {
		t.Fatalf("unexpected health body: %q", body)
	}
}

func TestGuestTokenEndpoint(t *testing.T) {
	ts, authCfg := startTestServer(t, nil)

	// An empty body is fine: the guest just keeps the generated name.
	resp, err := stdhttp.Post(ts.URL+"/api/guest", "application/json", nil)
	if err != nil {
		t.Fatalf("guest request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("empty-body guest status: %d", resp.StatusCode)
	}

	body, _ := json.Marshal(GuestRequest{Username: "alice"})
	resp, err = stdhttp.Post(ts.URL+"/api/guest", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("guest request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("guest status: %d", resp.StatusCode)
	}

	var guest GuestResponse
	if err := json.NewDecoder(resp.Body).Decode(&guest); err != nil {
		t.Fatalf("decode guest response: %v", err)
	}
	claims, err := auth.ValidateToken(authCfg, guest.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("unexpected token username: %q", claims.Username)
	}
}

func TestGuestTokenRejectsLongUsername(t *testing.T) {
	ts, _ := startTestServer(t, nil)

	body, _ := json.Marshal(GuestRequest{Username: strings.Repeat("a", 33)})
	resp, err := stdhttp.Post(ts.URL+"/api/guest", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("guest request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != stdhttp.StatusBadRequest {
		t.Fatalf("expected 400 for oversized username, got %d", resp.StatusCode)
	}
}

func TestWorldSnapshotEndpoint(t *testing.T) {
	ts, _ := startTestServer(t, nil)

	resp, err := stdhttp.Get(ts.URL + "/api/world")
	if err != nil {
		t.Fatalf("world request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("world status: %d", resp.StatusCode)
	}

	var world WorldResponse
	if err := json.NewDecoder(resp.Body).Decode(&world); err != nil {
		t.Fatalf("decode world: %v", err)
	}
	if world.SpawnPoint.Y != 2 {
		t.Fatalf("unexpected spawn point: %+v", world.SpawnPoint)
	}
	if len(world.Objects) != 1 || world.Objects[0].ID != "ground" {
		t.Fatalf("seeded world missing: %+v", world.Objects)
	}
	if len(world.Players) != 0 {
		t.Fatalf("no players connected, got %+v", world.Players)
	}
}

func TestPlayersEndpointListsConnected(t *testing.T) {
	ts, _ := startTestServer(t, nil)

	conn := dialWS(t, ts, "")
	env := readEnvelope(t, conn)
	var init proto.InitData
	if err := json.Unmarshal(env.Data, &init); err != nil {
		t.Fatalf("decode init: %v", err)
	}

	resp, err := stdhttp.Get(ts.URL + "/api/players")
	if err != nil {
		t.Fatalf("players request: %v", err)
	}
	defer resp.Body.Close()

	var players []proto.Player
	if err := json.NewDecoder(resp.Body).Decode(&players); err != nil {
		t.Fatalf("decode players: %v", err)
	}
	if len(players) != 1 || players[0].ID != init.PlayerID {
		t.Fatalf("connected session missing: %+v", players)
	}
}

func TestChatHistoryEndpoint(t *testing.T) {
	chats := &memChatStore{}
	now := time.Now()
	for _, body := range []string{"one", "two", "three"} {
		err := chats.SaveChatMessage(context.Background(), &store.ChatMessage{
			PlayerID:  "p1",
			Username:  "Player_p1",
			Body:      body,
			CreatedAt: now,
		})
		if err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}
	ts, _ := startTestServer(t, chats)

	resp, err := stdhttp.Get(ts.URL + "/api/chat/history?limit=2")
	if err != nil {
		t.Fatalf("history request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("history status: %d", resp.StatusCode)
	}

	var history []proto.ChatMessageData
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("limit ignored: %+v", history)
	}
	if history[0].Message != "two" || history[1].Message != "three" {
		t.Fatalf("history out of order: %+v", history)
	}
}

func TestChatHistoryInvalidLimit(t *testing.T) {
	ts, _ := startTestServer(t, &memChatStore{})

	for _, limit := range []string{"0", "-1", "abc"} {
		resp, err := stdhttp.Get(ts.URL + "/api/chat/history?limit=" + limit)
		if err != nil {
			t.Fatalf("history request: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != stdhttp.StatusBadRequest {
			t.Fatalf("limit=%q: expected 400, got %d", limit, resp.StatusCode)
		}
	}
}

func TestChatHistoryWithoutStore(t *testing.T) {
	ts, _ := startTestServer(t, nil)

	resp, err := stdhttp.Get(ts.URL + "/api/chat/history")
	if err != nil {
		t.Fatalf("history request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != stdhttp.StatusOK {
		t.Fatalf("history status: %d", resp.StatusCode)
	}

	var history []proto.ChatMessageData
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %+v", history)
	}
}

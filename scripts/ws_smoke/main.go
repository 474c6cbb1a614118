// Command ws_smoke connects to a running server, joins the world, sends a
// couple of intents and prints everything it receives. Handy for eyeballing
// the wire protocol against a live instance:
//
//	go run ./scripts/ws_smoke -addr localhost:3000 -name smoketest
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/worldsync/worldsync-server/internal/proto"
)

func main() {
	addr := flag.String("addr", "localhost:3000", "server host:port")
	name := flag.String("name", "", "optional guest display name (requires a token from /api/guest)")
	token := flag.String("token", "", "guest token; overrides -name")
	duration := flag.Duration("listen", 5*time.Second, "how long to listen for events after sending")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *duration+10*time.Second)
	defer cancel()

	wsURL := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	if *token != "" {
		wsURL.RawQuery = "token=" + url.QueryEscape(*token)
	} else if *name != "" {
		t, err := fetchGuestToken(ctx, *addr, *name)
		if err != nil {
			log.Fatalf("guest token: %v", err)
		}
		wsURL.RawQuery = "token=" + url.QueryEscape(t)
	}

	conn, _, err := websocket.Dial(ctx, wsURL.String(), nil)
	if err != nil {
		log.Fatalf("dial %s: %v", wsURL.String(), err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "smoke test done")

	var init struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := wsjson.Read(ctx, conn, &init); err != nil {
		log.Fatalf("read init: %v", err)
	}
	fmt.Printf("<- %s %s\n", init.Type, init.Data)

	send(ctx, conn, proto.InboundTypeMove, proto.MoveData{
		Position: proto.Vec3{X: 1, Y: 2, Z: 1},
	})
	send(ctx, conn, proto.InboundTypeCreateObject, proto.CreateObjectData{
		Type:     "cube",
		Position: proto.Vec3{X: 0, Y: 1, Z: -2},
	})
	send(ctx, conn, proto.InboundTypeChatMessage, "smoke test says hi")

	deadline := time.After(*duration)
	for {
		readCtx, readCancel := context.WithTimeout(ctx, *duration)
		var env struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		err := wsjson.Read(readCtx, conn, &env)
		readCancel()
		if err != nil {
			log.Printf("read: %v", err)
			return
		}
		fmt.Printf("<- %s %s\n", env.Type, env.Data)

		select {
		case <-deadline:
			return
		default:
		}
	}
}

func send(ctx context.Context, conn *websocket.Conn, msgType string, data any) {
	if err := wsjson.Write(ctx, conn, map[string]any{"type": msgType, "data": data}); err != nil {
		log.Fatalf("write %s: %v", msgType, err)
	}
	fmt.Printf("-> %s\n", msgType)
}

func fetchGuestToken(ctx context.Context, addr, name string) (string, error) {
	body, err := json.Marshal(map[string]string{"username": name})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+addr+"/api/guest", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Token, nil
}

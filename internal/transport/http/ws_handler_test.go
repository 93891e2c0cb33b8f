package http

import (
	"context"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vkosarev/roomchat-server/internal/config"
	"github.com/vkosarev/roomchat-server/internal/core"
)

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	hub := core.NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)

	disabled := zerolog.Nop()
	server := NewServer(hub, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		ClientBuffer:      16,
	}, &disabled)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, frame map[string]any) {
	t.Helper()

	if err := wsjson.Write(ctx, conn, frame); err != nil {
		t.Fatalf("write frame: %v", err)
	}
}

// recvType reads frames until one of the wanted type arrives.
func recvType(t *testing.T, ctx context.Context, conn *websocket.Conn, wantType string) map[string]any {
	t.Helper()

	for i := 0; i < 10; i++ {
		var msg map[string]any
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			t.Fatalf("read frame while waiting for %q: %v", wantType, err)
		}
		if msg["type"] == wantType {
			return msg
		}
	}
	t.Fatalf("no %q frame received", wantType)
	return nil
}

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestCreateJoinChatDisconnectScenario(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	connA := dial(t, ctx, ts)
	send(t, ctx, connA, map[string]any{"type": "create", "username": "alice"})
	created := recvType(t, ctx, connA, "room-created")
	code, _ := created["roomCode"].(string)
	if !regexp.MustCompile(`^[A-Z0-9]{4}$`).MatchString(code) {
		t.Fatalf("bad room code %q", code)
	}

	connB := dial(t, ctx, ts)
	send(t, ctx, connB, map[string]any{"type": "join", "roomCode": code, "username": "bob"})
	joined := recvType(t, ctx, connB, "joined")
	if joined["roomCode"] != code {
		t.Fatalf("joined wrong room: %v", joined)
	}
	system := recvType(t, ctx, connA, "system")
	if system["message"] != "bob joined the room" {
		t.Fatalf("unexpected system message: %v", system)
	}

	send(t, ctx, connB, map[string]any{"type": "chat", "message": "hi"})
	for _, conn := range []*websocket.Conn{connA, connB} {
		chat := recvType(t, ctx, conn, "chat")
		if chat["user"] != "bob" || chat["message"] != "hi" {
			t.Fatalf("unexpected chat frame: %v", chat)
		}
	}

	send(t, ctx, connB, map[string]any{"type": "typing", "user": "bob", "active": true})
	typing := recvType(t, ctx, connA, "typing")
	if typing["user"] != "bob" || typing["active"] != true {
		t.Fatalf("unexpected typing frame: %v", typing)
	}

	send(t, ctx, connA, map[string]any{"type": "get-users"})
	users := recvType(t, ctx, connA, "users")
	list, _ := users["users"].([]any)
	if len(list) != 2 || list[0] != "alice" || list[1] != "bob" {
		t.Fatalf("unexpected users frame: %v", users)
	}

	connB.Close(websocket.StatusNormalClosure, "bye")
	left := recvType(t, ctx, connA, "system")
	if left["message"] != "bob left the room" {
		t.Fatalf("unexpected system message: %v", left)
	}

	// Alice remains, so the room still accepts joins.
	connC := dial(t, ctx, ts)
	send(t, ctx, connC, map[string]any{"type": "join", "roomCode": code, "username": "carol"})
	recvType(t, ctx, connC, "joined")
}

func TestJoinUnknownRoomReturnsError(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dial(t, ctx, ts)
	send(t, ctx, conn, map[string]any{"type": "join", "roomCode": "ZZZZ", "username": "x"})
	errFrame := recvType(t, ctx, conn, "error")
	if errFrame["message"] != "Room doesn't exist" {
		t.Fatalf("unexpected error frame: %v", errFrame)
	}
}

func TestMalformedFramesDoNotCloseConnection(t *testing.T) {
	ts := startTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dial(t, ctx, ts)

	if err := conn.Write(ctx, websocket.MessageText, []byte("{not json at all")); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	send(t, ctx, conn, map[string]any{"type": "mystery"})
	send(t, ctx, conn, map[string]any{"type": "chat", "message": "ignored, no room"})

	// The connection is still usable for a valid command.
	send(t, ctx, conn, map[string]any{"type": "create", "username": "alice"})
	recvType(t, ctx, conn, "room-created")
}

package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/rasta-crosser/internal/games/crosser"
)

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub(nil)

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, sendBuffer),
	}
	hub.registerClient(client)

	if !hub.sessions["test-session"][client] {
		t.Error("Client was not registered in session")
	}
	if len(hub.sessions["test-session"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.sessions["test-session"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub(nil)

	client := &Client{
		hub:       hub,
		sessionID: "test-session",
		send:      make(chan []byte, sendBuffer),
	}
	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Empty session was not cleaned up")
	}
	if _, ok := <-client.send; ok {
		t.Error("Client send channel was not closed")
	}

	// Second unregister is a no-op
	hub.unregisterClient(client)
}

func TestHubBroadcastMessage(t *testing.T) {
	hub := NewHub(nil)

	a := &Client{hub: hub, sessionID: "s1", send: make(chan []byte, sendBuffer)}
	b := &Client{hub: hub, sessionID: "s2", send: make(chan []byte, sendBuffer)}
	hub.registerClient(a)
	hub.registerClient(b)

	state := crosser.GameState{Status: crosser.StatusPlaying, Score: 5}
	hub.broadcastMessage(&Message{SessionID: "s1", Event: EventStateUpdate, GameState: &state})

	select {
	case data := <-a.send:
		var msg struct {
			SessionID string `json:"session_id"`
			Event     string `json:"event"`
			GameState struct {
				Status string `json:"status"`
				Score  int    `json:"score"`
			} `json:"game_state"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Unmarshal() failed: %v", err)
		}
		if msg.SessionID != "s1" || msg.Event != EventStateUpdate {
			t.Errorf("Unexpected envelope: %+v", msg)
		}
		if msg.GameState.Status != "playing" || msg.GameState.Score != 5 {
			t.Errorf("Unexpected state: %+v", msg.GameState)
		}
	default:
		t.Fatal("Client in session did not receive message")
	}

	select {
	case <-b.send:
		t.Error("Client in other session received message")
	default:
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(nil)
	slow := &Client{hub: hub, sessionID: "s", send: make(chan []byte)}
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{SessionID: "s", Event: "ping"})
	if _, exists := hub.sessions["s"]; exists {
		t.Error("Slow client was not dropped")
	}
}

func waitForSession(t *testing.T, hub *Hub, id string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, s := range hub.Sessions() {
			if s == id {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("session %q never registered", id)
}

func TestHubEndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	server := httptest.NewServer(hub.Handler())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/game-1"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	defer conn.Close()
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Errorf("Expected 101, got %d", resp.StatusCode)
	}

	waitForSession(t, hub, "game-1")

	observe := hub.Observer("game-1")
	observe(crosser.GameState{Status: crosser.StatusGameOver, Score: 17})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() failed: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if msg.Event != EventStateUpdate || msg.GameState == nil || msg.GameState.Score != 17 {
		t.Errorf("Unexpected message: %s", data)
	}

	r, err := http.Get(server.URL + "/sessions")
	if err != nil {
		t.Fatalf("GET /sessions failed: %v", err)
	}
	defer r.Body.Close()
	var ids []string
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "game-1" {
		t.Errorf("Sessions = %v, want [game-1]", ids)
	}
}

func TestHubStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if got := hub.Sessions(); got != nil {
		t.Errorf("Sessions() after stop = %v, want nil", got)
	}
	// Broadcasting after stop must not block
	hub.BroadcastEvent("x", EventSessionEnd, nil)
}

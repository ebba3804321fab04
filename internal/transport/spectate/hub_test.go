package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/neon-runner/internal/games/neon"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	logger := log.New(io.Discard)
	hub := NewHub(logger, false)
	srv := httptest.NewServer(NewServer("", hub, logger).Routes())
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, b, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() failed: %v", err)
	}
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("bad message %s: %v", b, err)
	}
	return m
}

func TestSpectatorReceivesFeed(t *testing.T) {
	hub, srv := newTestServer(t)

	feed := hub.Session("alice")
	feed.Stats(neon.Stats{Score: 120, Wave: 2, Phase: neon.PhasePlaying})

	conn := dial(t, srv)

	hello := readMessage(t, conn)
	if hello.Type != TypeHello || len(hello.Sessions) != 1 || hello.Sessions[0] != "alice" {
		t.Fatalf("unexpected hello: %+v", hello)
	}
	catchUp := readMessage(t, conn)
	if catchUp.Type != TypeStats || catchUp.Session != "alice" || catchUp.Stats.Score != 120 {
		t.Fatalf("expected latest stats after hello, got %+v", catchUp)
	}

	// Shots are not forwarded; the kill after it is the next frame.
	feed.Event(neon.Event{Kind: neon.EventShot, Tick: 9})
	feed.Event(neon.Event{Kind: neon.EventKill, Tick: 10, Value: 30})
	ev := readMessage(t, conn)
	if ev.Type != TypeEvent || ev.Event == nil || ev.Event.Kind != neon.EventKill || ev.Event.Tick != 10 {
		t.Fatalf("expected kill event, got %+v", ev)
	}

	feed.Stats(neon.Stats{Score: 130})
	if m := readMessage(t, conn); m.Type != TypeStats || m.Stats.Score != 130 {
		t.Fatalf("expected stats, got %+v", m)
	}

	hub.End("alice")
	if m := readMessage(t, conn); m.Type != TypeEnd || m.Session != "alice" {
		t.Fatalf("expected end, got %+v", m)
	}
	if len(hub.Sessions()) != 0 {
		t.Errorf("ended session should be removed, have %v", hub.Sessions())
	}
}

func TestSessionIsReused(t *testing.T) {
	hub := NewHub(log.New(io.Discard), false)
	if hub.Session("a") != hub.Session("a") {
		t.Error("Session() should return the same feed for a name")
	}
	hub.End("missing") // no-op
}

func TestSessionsEndpoint(t *testing.T) {
	hub, srv := newTestServer(t)
	hub.Session("zed")
	hub.Session("amy")

	resp, err := http.Get(srv.URL + "/sessions")
	if err != nil {
		t.Fatalf("GET /sessions failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Sessions   []string `json:"sessions"`
		Spectators int      `json:"spectators"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Sessions) != 2 || body.Sessions[0] != "amy" || body.Sessions[1] != "zed" {
		t.Errorf("sessions = %v, expected sorted [amy zed]", body.Sessions)
	}

	post, err := http.Post(srv.URL+"/sessions", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST /sessions failed: %v", err)
	}
	post.Body.Close()
	if post.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, expected 405", post.StatusCode)
	}
}

func TestRemoteSpectatorsRejected(t *testing.T) {
	tests := []struct {
		name        string
		remote      string
		allowRemote bool
		forbidden   bool
	}{
		{"remote", "203.0.113.7:4000", false, true},
		{"remote allowed", "203.0.113.7:4000", true, false},
		{"loopback v4", "127.0.0.1:4000", false, false},
		{"loopback v6", "[::1]:4000", false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hub := NewHub(log.New(io.Discard), tc.allowRemote)
			req := httptest.NewRequest(http.MethodGet, "/ws", nil)
			req.RemoteAddr = tc.remote
			rec := httptest.NewRecorder()
			hub.Handler()(rec, req)

			// A plain GET that passes the address check fails the upgrade instead.
			if got := rec.Code == http.StatusForbidden; got != tc.forbidden {
				t.Errorf("status = %d, forbidden expected %v", rec.Code, tc.forbidden)
			}
		})
	}
}

func TestCloseDisconnectsSpectators(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv)
	readMessage(t, conn) // hello

	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	hub.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the connection to close")
	}
	if hub.Clients() != 0 {
		t.Errorf("Clients() = %d after close", hub.Clients())
	}

	// New spectators are turned away once closed.
	late := dial(t, srv)
	_ = late.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := late.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("late spectator should get going-away close, got %v", err)
	}
}

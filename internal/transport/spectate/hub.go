// Package spectate serves a read-only websocket feed of running games.
// Each session's stats and events are broadcast as JSON text frames.
package spectate

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/neon-runner/internal/games/neon"
)

// Message types.
const (
	TypeHello = "hello"
	TypeStats = "stats"
	TypeEvent = "event"
	TypeEnd   = "end"
)

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
)

// Message is one frame of the feed.
type Message struct {
	Type     string      `json:"type"`
	Session  string      `json:"session,omitempty"`
	Sessions []string    `json:"sessions,omitempty"`
	Stats    *neon.Stats `json:"stats,omitempty"`
	Event    *neon.Event `json:"event,omitempty"`
}

type client struct {
	id   uint64
	send chan []byte
}

// Hub fans session output out to connected spectators.
type Hub struct {
	log *log.Logger

	upgrader    websocket.Upgrader
	allowRemote bool
	nextID      atomic.Uint64

	mu       sync.Mutex
	clients  map[uint64]*client
	sessions map[string]*Feed
	closed   bool
}

// NewHub creates a hub. Unless allowRemote is set only loopback
// clients may connect.
func NewHub(logger *log.Logger, allowRemote bool) *Hub {
	return &Hub{
		log:         logger,
		allowRemote: allowRemote,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients:  make(map[uint64]*client),
		sessions: make(map[string]*Feed),
	}
}

// Feed is the engine sink of one session.
type Feed struct {
	hub  *Hub
	name string

	mu   sync.Mutex
	last *neon.Stats
}

// Session returns the feed for name, creating it if needed.
func (h *Hub) Session(name string) *Feed {
	h.mu.Lock()
	defer h.mu.Unlock()
	if f, ok := h.sessions[name]; ok {
		return f
	}
	f := &Feed{hub: h, name: name}
	h.sessions[name] = f
	return f
}

// End removes a session and tells spectators it is gone.
func (h *Hub) End(name string) {
	h.mu.Lock()
	_, ok := h.sessions[name]
	delete(h.sessions, name)
	h.mu.Unlock()
	if ok {
		h.broadcast(Message{Type: TypeEnd, Session: name})
	}
}

// Sessions lists active session names.
func (h *Hub) Sessions() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, 0, len(h.sessions))
	for name := range h.sessions {
		names = append(names, name)
	}
	return names
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Stats broadcasts a snapshot.
func (f *Feed) Stats(s neon.Stats) {
	f.mu.Lock()
	f.last = &s
	f.mu.Unlock()
	f.hub.broadcast(Message{Type: TypeStats, Session: f.name, Stats: &s})
}

// Event broadcasts an event. Shot events are not forwarded.
func (f *Feed) Event(ev neon.Event) {
	if ev.Kind == neon.EventShot {
		return
	}
	f.hub.broadcast(Message{Type: TypeEvent, Session: f.name, Event: &ev})
}

func (f *Feed) lastStats() *neon.Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// broadcast queues a message for every client; slow clients miss frames.
func (h *Hub) broadcast(m Message) {
	b, err := json.Marshal(m)
	if err != nil {
		h.log.Error("Cannot encode message", "type", m.Type, "error", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- b:
		default:
		}
	}
}

func (h *Hub) register() *client {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	c := &client{id: h.nextID.Add(1), send: make(chan []byte, sendBuffer)}
	h.clients[c.id] = c
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
}

// Close disconnects every spectator and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

// hello lists the sessions with their latest stats.
func (h *Hub) hello() [][]byte {
	h.mu.Lock()
	feeds := make([]*Feed, 0, len(h.sessions))
	names := make([]string, 0, len(h.sessions))
	for name, f := range h.sessions {
		feeds = append(feeds, f)
		names = append(names, name)
	}
	h.mu.Unlock()

	var out [][]byte
	if b, err := json.Marshal(Message{Type: TypeHello, Sessions: names}); err == nil {
		out = append(out, b)
	}
	for _, f := range feeds {
		if s := f.lastStats(); s != nil {
			if b, err := json.Marshal(Message{Type: TypeStats, Session: f.name, Stats: s}); err == nil {
				out = append(out, b)
			}
		}
	}
	return out
}

// Handler upgrades spectators and streams the feed to them.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !h.allowRemote && !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			h.log.Warn("Upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		defer conn.Close()

		c := h.register()
		if c == nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(time.Second))
			return
		}
		h.log.Info("Spectator connected", "id", c.id, "remote", r.RemoteAddr)

		done := make(chan struct{})
		go func() {
			defer close(done)
			for _, b := range h.hello() {
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
			for b := range c.send {
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
				time.Now().Add(time.Second))
		}()

		// The feed is read-only; reads only detect disconnects.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		h.unregister(c)
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
		}
		h.log.Info("Spectator disconnected", "id", c.id)
	}
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// Server exposes a hub over HTTP: GET /ws streams the feed and
// GET /sessions lists the running sessions.
type Server struct {
	hub  *Hub
	http *http.Server
	log  *log.Logger
}

// NewServer creates a spectator server on addr.
func NewServer(addr string, hub *Hub, logger *log.Logger) *Server {
	s := &Server{hub: hub, log: logger}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Routes returns the server's handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.hub.Handler())
	mux.HandleFunc("/sessions", s.sessionsHandler)
	return mux
}

func (s *Server) sessionsHandler(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	names := s.hub.Sessions()
	sort.Strings(names)
	rw.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(rw).Encode(map[string]any{
		"sessions":   names,
		"spectators": s.hub.Clients(),
	})
}

// ListenAndServe blocks until the server stops. A clean shutdown returns nil.
func (s *Server) ListenAndServe() error {
	s.log.Info("Starting spectator feed", "address", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("spectate: %w", err)
	}
	return nil
}

// Shutdown disconnects spectators and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("spectate: shutdown: %w", err)
	}
	return nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

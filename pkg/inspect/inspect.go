// Package inspect serves a live view of a renderer for development:
// the committed fiber tree as JSON, Prometheus metrics, and a WebSocket
// stream of commit notifications.
package inspect

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/weft-ui/weft/pkg/fiber"
)

// Server exposes one renderer over HTTP.
type Server struct {
	renderer *fiber.Renderer
	gatherer prometheus.Gatherer

	mu       sync.RWMutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithGatherer sets the Prometheus gatherer backing GET /metrics.
// Default: prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) ServerOption {
	return func(s *Server) { s.gatherer = g }
}

// New creates an inspector for the renderer and subscribes to its
// commits.
func New(r *fiber.Renderer, opts ...ServerOption) *Server {
	s := &Server{
		renderer: r,
		gatherer: prometheus.DefaultGatherer,
		clients:  make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(req *http.Request) bool {
				return true // Dev tool; allow all origins
			},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	r.OnCommit(s.broadcastCommit)
	return s
}

// Handler returns the HTTP handler:
//
//	GET /tree    — committed tree snapshot as JSON
//	GET /metrics — Prometheus metrics
//	GET /ws      — WebSocket commit notifications
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/tree", s.handleTree)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	r.Get("/ws", s.handleWS)
	return r
}

func (s *Server) handleTree(w http.ResponseWriter, req *http.Request) {
	snap := s.renderer.Snapshot()
	if snap == nil {
		http.Error(w, `{"error":"no committed tree"}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleWS(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Keep the connection open until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// commitMessage is sent to WebSocket clients after every commit.
type commitMessage struct {
	Type    string `json:"type"`
	Pass    uint64 `json:"pass"`
	Fibers  int    `json:"fibers"`
	Inserts int    `json:"inserts"`
	Updates int    `json:"updates"`
	Deletes int    `json:"deletes"`
}

func (s *Server) broadcastCommit(info fiber.CommitInfo) {
	data, err := json.Marshal(commitMessage{
		Type:    "commit",
		Pass:    info.Pass,
		Fibers:  info.Fibers,
		Inserts: info.Inserts,
		Updates: info.Updates,
		Deletes: info.Deletes,
	})
	if err != nil {
		return
	}

	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for conn := range s.clients {
		clients = append(clients, conn)
	}
	s.mu.RUnlock()

	for _, conn := range clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}
	}
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close disconnects all WebSocket clients.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
}

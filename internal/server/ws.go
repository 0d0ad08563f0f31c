package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nguyentantai21042004/learn-flow/internal/logger"
)

// Event is one lifecycle notification pushed to websocket subscribers.
type Event struct {
	Type   string `json:"type"`
	Detail string `json:"detail,omitempty"`
	TS     int64  `json:"ts"`
}

// Hub fans task lifecycle events out to the websocket connections
// subscribed to a session. Slow or dead connections are dropped rather
// than allowed to block a publish.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	logger   logger.Logger
}

// NewHub creates a Hub instance
func NewHub(log logger.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: log,
	}
}

// Handle upgrades the request and subscribes it to the session named by
// the X-Session-ID header or ?session query parameter.
func (h *Hub) Handle(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		id = r.URL.Query().Get("session")
	}
	if id == "" {
		http.Error(w, "missing session id", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn(r.Context(), "Websocket upgrade failed: %v", err)
		return
	}

	h.subscribe(id, conn)
	defer h.unsubscribe(id, conn)

	// Reads only service control frames; the feed is one-way.
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	})
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	}
}

// Publish sends an event to every subscriber of the session
func (h *Hub) Publish(sessionID string, ev Event) {
	ev.TS = time.Now().UnixMilli()

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.sessions[sessionID] {
		_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(ev); err != nil {
			_ = conn.Close()
		}
	}
}

func (h *Hub) subscribe(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	m := h.sessions[id]
	if m == nil {
		m = make(map[*websocket.Conn]struct{})
		h.sessions[id] = m
	}
	m[conn] = struct{}{}
}

func (h *Hub) unsubscribe(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m := h.sessions[id]; m != nil {
		delete(m, conn)
		if len(m) == 0 {
			delete(h.sessions, id)
		}
	}
	_ = conn.Close()
}

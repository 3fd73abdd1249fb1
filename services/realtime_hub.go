package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	SessionID string
	Conn      *websocket.Conn
}

// RealtimeHub pushes entry-saved events to connected report views so they
// can reload without polling.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// BroadcastEntrySaved tells every open view that a row landed. The log is
// shared, so all sessions get the event.
func (h *RealtimeHub) BroadcastEntrySaved(date string) {
	msg, _ := json.Marshal(map[string]any{
		"kind": "entry.saved",
		"date": date,
	})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}

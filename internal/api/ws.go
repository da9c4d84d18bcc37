package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"doxa/pkg/model"
	"doxa/pkg/presenter"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 50 * time.Second

	// Per-client send buffer. A display that cannot keep up gets
	// disconnected rather than blocking the broadcast.
	wsSendBuffer = 16
)

// WSHub pushes every presentation state change to connected display and
// controller clients over GET /api/state/ws.
type WSHub struct {
	presenter *presenter.Presenter
	upgrader  websocket.Upgrader

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewWSHub creates the hub and subscribes it to state changes.
func NewWSHub(p *presenter.Presenter) *WSHub {
	h := &WSHub{
		presenter: p,
		upgrader: websocket.Upgrader{
			// Local-network tool, controllers connect from other hosts.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: map[*wsClient]struct{}{},
	}
	p.OnChange(h.Broadcast)
	return h
}

// Broadcast fans a state snapshot out to every connected client.
func (h *WSHub) Broadcast(st *model.PresentationState) {
	payload, err := json.Marshal(st)
	if err != nil {
		slog.Error("Failed to marshal state for broadcast", "error", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Slow consumer; closing send makes its write pump exit.
			delete(h.clients, c)
			close(c.send)
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *WSHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleWS handles GET /api/state/ws.
func (h *WSHub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Websocket upgrade failed", "error", err)
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, wsSendBuffer)}

	// New clients get the current state immediately, then deltas.
	if payload, err := json.Marshal(h.presenter.State()); err == nil {
		c.send <- payload
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writePump()
	c.readPump(h)
}

func (h *WSHub) remove(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// readPump discards inbound messages; it exists to detect disconnects
// and answer pings.
func (c *wsClient) readPump(h *WSHub) {
	defer func() {
		h.remove(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(1024)
	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/AbdulWasayUl/go-country-browser/internal/logger"
)

const (
	readLimit    = 64 * 1024
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 5 * time.Second
	sendBuffer   = 64
)

// Hub upgrades WebSocket requests into live sessions and tracks them.
type Hub struct {
	upgrader websocket.Upgrader
	opts     Options

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn    *websocket.Conn
	send    chan []byte
	session *Session
}

// NewHub builds a hub whose sessions share opts. opts.Send is set per connection.
func NewHub(opts Options) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				// The page and the socket are served from the same origin.
				return true
			},
		},
		opts:    opts,
		clients: map[*client]struct{}{},
	}
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	opts := h.opts
	opts.Send = c.enqueue
	c.session = New(opts)

	h.addClient(c)
	logger.Info("Session %s connected from %s", c.session.ID, r.RemoteAddr)

	go c.session.Run(context.Background())
	go h.writePump(c)
	h.readPump(c)
}

// Count returns the number of connected sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Shutdown stops every session and closes its connection.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.session.Close()
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

func (c *client) enqueue(m Message) {
	b, err := json.Marshal(m)
	if err != nil {
		logger.Error("Session %s: encode %s message: %v", c.session.ID, m.Region, err)
		return
	}
	select {
	case c.send <- b:
	default:
		// Slow client; drop it.
		logger.Warn("Session %s: send buffer full, closing", c.session.ID)
		c.session.Close()
		_ = c.conn.Close()
	}
}

func (h *Hub) addClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) removeClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.session.Close()
		_ = c.conn.Close()
		logger.Info("Session %s disconnected", c.session.ID)
	}
}

func (h *Hub) readPump(c *client) {
	defer h.removeClient(c)
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Session %s read error: %v", c.session.ID, err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		if err := c.session.Handle(msg); err != nil {
			if errors.Is(err, ErrClosed) {
				return
			}
			logger.Debug("Session %s rejected event: %v", c.session.ID, err)
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.session.Done():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

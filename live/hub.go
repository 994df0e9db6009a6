// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Per-client outbound queue.
	sendBuffer = 64

	// Pending broadcasts before new ones are dropped.
	broadcastBuffer = 256
)

// Event names sent to subscribers
const (
	EventScoreSubmitted = "score_submitted"
	EventScoreDeleted   = "score_deleted"
	EventScoreFlagged   = "score_flagged"
)

// Message is the JSON frame pushed to subscribers
type Message struct {
	Event     string      `json:"event"`
	PuzzleID  string      `json:"puzzle_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Client is one websocket subscriber.
// An empty puzzleID receives events for every puzzle.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	puzzleID string
}

// Hub fans leaderboard events out to websocket subscribers
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	upgrader   websocket.Upgrader
	count      atomic.Int64
}

// NewHub creates a hub. allowedOrigin "*" accepts any websocket origin.
func NewHub(allowedOrigin string) *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Message, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return allowedOrigin == "" || allowedOrigin == "*" || origin == "" || origin == allowedOrigin
		},
	}
	return h
}

// Run processes registrations and broadcasts until ctx is cancelled,
// then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.unregisterClient(client)
			}
			slog.Info("live hub stopped")
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// Clients returns the number of connected subscribers
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// ServeWS upgrades the request and subscribes the connection.
// The optional puzzle_id query parameter narrows the feed to one puzzle.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		puzzleID: r.URL.Query().Get("puzzle_id"),
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Broadcast queues an event without blocking the caller.
// Events are dropped when the queue is full or the hub has stopped.
func (h *Hub) Broadcast(event, puzzleID string, data interface{}) {
	message := &Message{
		Event:     event,
		PuzzleID:  puzzleID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	select {
	case <-h.done:
		return
	default:
	}

	select {
	case h.broadcast <- message:
	default:
		slog.Warn("live broadcast dropped", "event", event, "puzzle_id", puzzleID)
	}
}

func (h *Hub) registerClient(client *Client) {
	h.clients[client] = true
	h.count.Add(1)
	slog.Debug("live client registered", "puzzle_id", client.puzzleID, "clients", len(h.clients))
}

func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
		h.count.Add(-1)
		slog.Debug("live client unregistered", "clients", len(h.clients))
	}
}

func (h *Hub) broadcastMessage(message *Message) {
	data, err := sonic.Marshal(message)
	if err != nil {
		slog.Error("failed to marshal live message", "event", message.Event, "error", err)
		return
	}

	for client := range h.clients {
		if client.puzzleID != "" && client.puzzleID != message.PuzzleID {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Slow consumer
			h.unregisterClient(client)
		}
	}
}

// readPump drains the connection so pongs and close frames are handled
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket read error", "error", err)
			}
			return
		}
	}
}

// writePump sends queued frames and keepalive pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

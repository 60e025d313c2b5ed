package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/arvindmenon/literature-be/internal/controller"
	"github.com/arvindmenon/literature-be/internal/game"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now, customize this in production
	},
}

// Message is a client request over the socket.
type Message struct {
	Type     string          `json:"type"`
	GameCode string          `json:"gameCode,omitempty"`
	PlayerID string          `json:"playerId,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// Event is a server push to one or more clients.
type Event struct {
	Type    string      `json:"type"`
	Code    int         `json:"code,omitempty"`
	Name    string      `json:"name,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Client represents a connected WebSocket client.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	playerID string
	gameCode string
	hub      *Hub
}

// Hub maintains the set of active clients, the per-game rooms and the
// identity session bindings, and dispatches game actions to the controller.
type Hub struct {
	ctrl       *controller.Controller
	sessions   *SessionRegistry
	logger     *slog.Logger
	clients    map[*Client]bool
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new WebSocket hub.
func NewHub(ctrl *controller.Controller, sessions *SessionRegistry, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		ctrl:       ctrl,
		sessions:   sessions,
		logger:     logger,
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.removeFromRoom(client)
			}
			h.mu.Unlock()

			// Transport teardown frees the identity for reconnection.
			if client.playerID != "" {
				h.sessions.Unbind(client.playerID, client)
			}
		}
	}
}

// joinRoom moves the client into a game's room.
func (h *Hub) joinRoom(client *Client, gameCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoom(client)
	client.gameCode = gameCode
	if _, exists := h.rooms[gameCode]; !exists {
		h.rooms[gameCode] = make(map[*Client]bool)
	}
	h.rooms[gameCode][client] = true
}

// removeFromRoom detaches the client from its room. Callers hold h.mu.
func (h *Hub) removeFromRoom(client *Client) {
	if client.gameCode == "" {
		return
	}
	if room, exists := h.rooms[client.gameCode]; exists {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, client.gameCode)
		}
	}
	client.gameCode = ""
}

// sendEvent queues an event on one client.
func (h *Hub) sendEvent(client *Client, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event", "error", err)
		return
	}
	select {
	case client.send <- data:
	default:
		// If client buffer is full, we'll handle on next write
	}
}

// broadcastToRoom sends an event to every client in a game's room.
func (h *Hub) broadcastToRoom(gameCode string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[gameCode] {
		select {
		case client.send <- data:
		default:
		}
	}
}

// broadcastGameUpdate pushes the shared snapshot to the whole room and each
// player's private snapshot only to its own client. Hands never leave their
// owner's connection.
func (h *Hub) broadcastGameUpdate(g *game.Game) {
	snapshot := g.Snapshot()
	snapshot.Logs = CollapseLogs(snapshot.Logs)
	h.broadcastToRoom(g.Code, Event{Type: "game-data", Code: 200, Data: snapshot})

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[g.Code] {
		if client.playerID == "" {
			continue
		}
		private, err := g.PlayerSnapshotFor(client.playerID)
		if err != nil {
			continue
		}
		data, err := json.Marshal(Event{Type: "player-data", Code: 200, Data: private})
		if err != nil {
			continue
		}
		select {
		case client.send <- data:
		default:
		}
	}
}

// errorEvent converts an engine failure into a client event.
func errorEvent(eventType string, err error) Event {
	code := 400
	kind := game.KindOf(err)
	switch kind {
	case game.KindNotFound:
		code = 404
	case game.KindSessionConflict:
		code = 403
	}
	return Event{Type: eventType, Code: code, Name: string(kind), Message: err.Error()}
}

// WebSocketHandler upgrades the connection and, when the client presents a
// durable identity, runs the reconnect protocol before the pumps start.
func (h *Hub) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		conn: conn,
		send: make(chan []byte, 256),
		hub:  h,
	}
	h.register <- client

	go client.writePump()

	if pid := r.URL.Query().Get("pid"); pid != "" {
		h.handleReconnect(client, pid)
	}

	go client.readPump()
}

// handleReconnect rebinds a durable identity to this connection. A failed
// reconnect leaves the session map untouched.
func (h *Hub) handleReconnect(client *Client, pid string) {
	if _, bound := h.sessions.Get(pid); bound {
		h.sendEvent(client, errorEvent("CONNECT", game.ErrSessionConflict))
		return
	}

	result, err := h.ctrl.Reconnect(pid)
	if err != nil {
		h.sendEvent(client, errorEvent("CONNECT", err))
		return
	}
	if err := h.sessions.Bind(pid, client); err != nil {
		h.sendEvent(client, errorEvent("CONNECT", err))
		return
	}

	client.playerID = pid
	h.joinRoom(client, result.Game.Code)

	snapshot := result.Game.Snapshot()
	snapshot.Logs = CollapseLogs(snapshot.Logs)
	private, _ := result.Game.PlayerSnapshotFor(pid)

	h.sendEvent(client, Event{Type: "CONNECT", Code: 200, Data: map[string]interface{}{
		"game":   snapshot,
		"player": private,
		"chat":   result.Chat,
	}})
}

// readPump pumps messages from the WebSocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(64 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", "error", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.hub.logger.Warn("malformed client message", "error", err)
			continue
		}
		c.hub.handleMessage(c, msg)
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

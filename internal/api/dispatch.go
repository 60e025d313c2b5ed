package api

import (
	"encoding/json"

	"github.com/arvindmenon/literature-be/internal/controller"
	"github.com/arvindmenon/literature-be/internal/game"
)

// handleMessage routes one client request to the matching action handler.
func (h *Hub) handleMessage(c *Client, msg Message) {
	switch msg.Type {
	case "create":
		h.handleCreate(c, msg)
	case "probe":
		h.handleProbe(c, msg)
	case "join":
		h.handleJoin(c, msg)
	case "leave":
		h.handleLeave(c, msg)
	case "destroy":
		h.handleDestroy(c, msg)
	case "start":
		h.handleStart(c, msg)
	case "play-ask":
		h.handleAsk(c, msg)
	case "play-declare":
		h.handleDeclare(c, msg)
	case "play-transfer":
		h.handleTransfer(c, msg)
	case "chat":
		h.handleChat(c, msg)
	default:
		h.sendEvent(c, Event{Type: "ERROR", Code: 400, Message: "unknown message type " + msg.Type})
	}
}

// playerID prefers the identity already bound to the connection over one the
// client names in the message.
func (c *Client) resolvePlayerID(msg Message) string {
	if c.playerID != "" {
		return c.playerID
	}
	return msg.PlayerID
}

// checkBinding rejects a request naming an identity already bound to a
// different socket.
func (h *Hub) checkBinding(c *Client, playerID string) error {
	if playerID == "" {
		return nil
	}
	if bound, ok := h.sessions.Get(playerID); ok && bound != c {
		return game.ErrSessionConflict
	}
	return nil
}

// handleCreate registers the host at seat 1 and opens a new game.
func (h *Hub) handleCreate(c *Client, msg Message) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.sendEvent(c, Event{Type: "CREATE", Code: 400, Message: "invalid create payload"})
		return
	}

	// A claimed identity bound to another socket is rejected before anything
	// mutates; nothing to roll back then.
	if err := h.checkBinding(c, msg.PlayerID); err != nil {
		h.sendEvent(c, errorEvent("CREATE", err))
		return
	}

	owner, err := h.ctrl.RegisterPlayer(msg.PlayerID, req.Name, 1)
	if err != nil {
		h.sendEvent(c, errorEvent("CREATE", err))
		return
	}
	g, err := h.ctrl.HostGame(owner)
	if err != nil {
		h.sendEvent(c, errorEvent("CREATE", err))
		return
	}

	if err := h.sessions.Bind(owner.ID, c); err != nil {
		// Lost a bind race after hosting; take the orphan game down again.
		if derr := h.ctrl.DestroyGame(g.Code, owner.ID); derr != nil {
			h.logger.Warn("failed to undo hosted game after bind conflict", "code", g.Code, "error", derr)
		}
		h.sendEvent(c, errorEvent("CREATE", err))
		return
	}
	c.playerID = owner.ID
	h.joinRoom(c, g.Code)

	h.sendEvent(c, Event{Type: "CREATE", Code: 200, Data: map[string]interface{}{
		"gameCode":   g.Code,
		"playerId":   owner.ID,
		"playerName": owner.Name,
	}})
}

// handleProbe lists seat occupancy before joining.
func (h *Hub) handleProbe(c *Client, msg Message) {
	g, err := h.ctrl.Game(msg.GameCode)
	if err != nil {
		h.sendEvent(c, errorEvent("PROBE", err))
		return
	}
	h.sendEvent(c, Event{Type: "PROBE", Code: 200, Data: g.Spots()})
}

func (h *Hub) handleJoin(c *Client, msg Message) {
	var req struct {
		Name     string `json:"name"`
		Position int    `json:"position"`
	}
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.sendEvent(c, Event{Type: "JOIN", Code: 400, Message: "invalid join payload"})
		return
	}

	if err := h.checkBinding(c, msg.PlayerID); err != nil {
		h.sendEvent(c, errorEvent("JOIN", err))
		return
	}

	p, err := h.ctrl.RegisterPlayer(msg.PlayerID, req.Name, req.Position)
	if err != nil {
		h.sendEvent(c, errorEvent("JOIN", err))
		return
	}
	g, err := h.ctrl.JoinGame(msg.GameCode, p)
	if err != nil {
		h.sendEvent(c, errorEvent("JOIN", err))
		return
	}

	if err := h.sessions.Bind(p.ID, c); err != nil {
		// Lost a bind race after seating; unseat the player again.
		if _, lerr := h.ctrl.LeaveGame(g.Code, p.ID); lerr != nil {
			h.logger.Warn("failed to unseat player after bind conflict", "code", g.Code, "error", lerr)
		}
		h.sendEvent(c, errorEvent("JOIN", err))
		return
	}
	c.playerID = p.ID
	h.joinRoom(c, g.Code)

	h.broadcastToRoom(g.Code, Event{Type: "JOIN", Code: 200, Data: map[string]interface{}{
		"playerName": p.Name,
		"position":   p.Position,
	}})
	h.sendEvent(c, Event{Type: "LIST", Code: 200, Data: map[string]interface{}{
		"playerId": p.ID,
		"spots":    g.Spots(),
	}})
}

func (h *Hub) handleLeave(c *Client, msg Message) {
	playerID := c.resolvePlayerID(msg)
	viable, err := h.ctrl.LeaveGame(msg.GameCode, playerID)
	if err != nil {
		h.sendEvent(c, errorEvent("LEAVE", err))
		return
	}

	gameCode := msg.GameCode
	h.mu.Lock()
	h.removeFromRoom(c)
	h.mu.Unlock()
	if c.playerID != "" {
		h.sessions.Unbind(c.playerID, c)
		c.playerID = ""
	}

	if viable {
		h.broadcastToRoom(gameCode, Event{Type: "LEAVE", Code: 200})
	}
	h.sendEvent(c, Event{Type: "LEAVE", Code: 200})
}

func (h *Hub) handleDestroy(c *Client, msg Message) {
	if err := h.ctrl.DestroyGame(msg.GameCode, c.resolvePlayerID(msg)); err != nil {
		h.sendEvent(c, errorEvent("DESTROY", err))
		return
	}
	h.broadcastToRoom(msg.GameCode, Event{Type: "DESTROY", Code: 200})
}

func (h *Hub) handleStart(c *Client, msg Message) {
	g, err := h.ctrl.StartGame(msg.GameCode, c.resolvePlayerID(msg))
	if err != nil {
		h.sendEvent(c, errorEvent("START", err))
		return
	}
	h.broadcastToRoom(g.Code, Event{Type: "START", Code: 200})
	h.broadcastGameUpdate(g)
}

func (h *Hub) handleAsk(c *Client, msg Message) {
	var req struct {
		ToPosition int       `json:"toPosition"`
		Card       game.Card `json:"card"`
	}
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.sendEvent(c, Event{Type: "ASK", Code: 400, Message: "invalid ask payload"})
		return
	}

	g, err := h.ctrl.Ask(msg.GameCode, c.resolvePlayerID(msg), req.ToPosition, req.Card)
	if err != nil {
		h.sendEvent(c, errorEvent("ASK", err))
		return
	}
	h.sendEvent(c, Event{Type: "ASK", Code: 200})
	h.broadcastGameUpdate(g)
}

func (h *Hub) handleDeclare(c *Client, msg Message) {
	var req struct {
		Declaration controller.Declaration `json:"declaration"`
	}
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.sendEvent(c, Event{Type: "DECLARE", Code: 400, Message: "invalid declare payload"})
		return
	}

	g, err := h.ctrl.Declare(msg.GameCode, c.resolvePlayerID(msg), req.Declaration)
	if err != nil {
		h.sendEvent(c, errorEvent("DECLARE", err))
		return
	}
	h.sendEvent(c, Event{Type: "DECLARE", Code: 200})
	h.broadcastGameUpdate(g)
}

func (h *Hub) handleTransfer(c *Client, msg Message) {
	var req struct {
		ToPosition int `json:"toPosition"`
	}
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.sendEvent(c, Event{Type: "TRANSFER", Code: 400, Message: "invalid transfer payload"})
		return
	}

	g, err := h.ctrl.Transfer(msg.GameCode, c.resolvePlayerID(msg), req.ToPosition)
	if err != nil {
		h.sendEvent(c, errorEvent("TRANSFER", err))
		return
	}
	h.sendEvent(c, Event{Type: "TRANSFER", Code: 200})
	h.broadcastGameUpdate(g)
}

func (h *Hub) handleChat(c *Client, msg Message) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(msg.Data, &req); err != nil || req.Message == "" {
		h.sendEvent(c, Event{Type: "CHAT", Code: 400, Message: "invalid chat payload"})
		return
	}

	stored, err := h.ctrl.Chat(msg.GameCode, c.resolvePlayerID(msg), req.Message)
	if err != nil {
		h.sendEvent(c, errorEvent("CHAT", err))
		return
	}
	h.broadcastToRoom(msg.GameCode, Event{Type: "CHAT", Code: 200, Data: stored})
}

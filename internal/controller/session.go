package controller

import (
	"time"

	"github.com/arvindmenon/literature-be/internal/db"
	"github.com/arvindmenon/literature-be/internal/game"
)

// ReconnectResult is everything a returning client needs to rebuild its view:
// the live game, the player's own state and the chat side-channel.
type ReconnectResult struct {
	Game   *game.Game
	Player *game.Player
	Chat   []db.ChatMessage
}

// Reconnect resolves a durable identity back to its {player, game} pair by
// following the player's game reference. It does not touch session bindings;
// the transport layer binds only after this succeeds.
func (c *Controller) Reconnect(id string) (*ReconnectResult, error) {
	p, gameCode, err := c.resolvePlayer(id)
	if err != nil {
		return nil, err
	}
	if gameCode == "" {
		return nil, game.ErrGameNotFound
	}

	g, err := c.store.GetGame(gameCode)
	if err != nil {
		return nil, err
	}

	result := &ReconnectResult{Game: g, Player: p}
	if c.database != nil {
		chat, err := c.database.GetChatHistory(gameCode)
		if err != nil {
			c.logger.Warn("failed to load chat history", "code", gameCode, "error", err)
		} else {
			result.Chat = chat
		}
	}

	c.logger.Info("player reconnected", "code", gameCode, "player", p.Name)
	return result, nil
}

func (c *Controller) resolvePlayer(id string) (*game.Player, string, error) {
	if p, err := c.store.GetPlayer(id); err == nil {
		code, err := c.store.PlayerGameCode(id)
		if err != nil {
			return p, "", nil
		}
		return p, code, nil
	}
	if c.database != nil {
		if p, code, err := c.database.GetPlayerByID(id); err == nil {
			return p, code, nil
		}
	}
	return nil, "", game.ErrPlayerNotFound
}

// ChatHistory returns a game's chat lines in chronological order.
func (c *Controller) ChatHistory(code string) ([]db.ChatMessage, error) {
	if _, err := c.store.GetGame(code); err != nil {
		return nil, err
	}
	if c.database == nil {
		return []db.ChatMessage{}, nil
	}
	return c.database.GetChatHistory(code)
}

// Chat records a chat line for a game and returns the stored message for
// broadcast.
func (c *Controller) Chat(code, playerID, message string) (*db.ChatMessage, error) {
	g, err := c.store.GetGame(code)
	if err != nil {
		return nil, err
	}
	p, err := g.PlayerByID(playerID)
	if err != nil {
		return nil, err
	}

	msg := &db.ChatMessage{
		GameCode:   g.Code,
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Message:    message,
		CreatedAt:  time.Now(),
	}
	if c.database != nil {
		if err := c.database.SaveChatMessage(g.Code, p.ID, p.Name, message); err != nil {
			c.logger.Warn("failed to persist chat message", "code", g.Code, "error", err)
		}
	}
	return msg, nil
}

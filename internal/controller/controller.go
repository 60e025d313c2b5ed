package controller

import (
	"log/slog"
	"sync"

	"github.com/arvindmenon/literature-be/internal/db"
	"github.com/arvindmenon/literature-be/internal/game"
	"github.com/arvindmenon/literature-be/internal/store"
)

// Controller runs the action protocol against live games. Every mutating
// action on one game runs under that game's lock, so engine code below never
// synchronizes; distinct games proceed in parallel.
type Controller struct {
	store    store.Store
	database *db.Database // optional, nil disables persistence
	logger   *slog.Logger
	locks    sync.Map // game code -> *sync.Mutex
}

// New creates a controller around the given registry and database.
func New(s store.Store, database *db.Database, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{store: s, database: database, logger: logger}
}

func (c *Controller) lockGame(code string) *sync.Mutex {
	m, _ := c.locks.LoadOrStore(code, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu
}

// Game resolves a live game by code.
func (c *Controller) Game(code string) (*game.Game, error) {
	return c.store.GetGame(code)
}

// RegisterPlayer resolves an identity to a player: a known id is rebound to
// the requested name and seat, an unknown one gets a fresh identity. An
// identity still seated in a live game cannot be re-registered; rosters key
// players by seat, so moving the seat out from under a game would corrupt
// it. Reconnect is the way back to a seated identity.
func (c *Controller) RegisterPlayer(id, name string, position int) (*game.Player, error) {
	if id != "" {
		if err := c.refuseSeated(id); err != nil {
			return nil, err
		}
		if p, err := c.store.GetPlayer(id); err == nil {
			p.UpdateDetails(name, position)
			return p, nil
		}
		if c.database != nil {
			if p, gameCode, err := c.database.GetPlayerByID(id); err == nil {
				if gameCode != "" {
					if _, err := c.store.GetGame(gameCode); err == nil {
						return nil, game.NewError(game.KindSessionConflict, "identity is seated in game "+gameCode)
					}
				}
				p.UpdateDetails(name, position)
				if err := c.store.SavePlayer(p, ""); err != nil {
					return nil, err
				}
				return p, nil
			}
		}
	}

	p := game.NewPlayer(name, position)
	if err := c.store.SavePlayer(p, ""); err != nil {
		return nil, err
	}
	c.persistPlayer(p, "")
	return p, nil
}

// refuseSeated rejects an identity whose game reference still resolves to a
// live game.
func (c *Controller) refuseSeated(id string) error {
	code, err := c.store.PlayerGameCode(id)
	if err != nil || code == "" {
		return nil
	}
	if _, err := c.store.GetGame(code); err != nil {
		return nil
	}
	return game.NewError(game.KindSessionConflict, "identity is seated in game "+code)
}

// HostGame creates a WAITING Literature game owned by the given player.
func (c *Controller) HostGame(owner *game.Player) (*game.Game, error) {
	g, err := game.NewGame(game.VariantLiterature, owner)
	if err != nil {
		return nil, err
	}
	if err := c.store.SaveGame(g); err != nil {
		return nil, err
	}
	if err := c.store.SavePlayer(owner, g.Code); err != nil {
		return nil, err
	}
	c.persistGame(g)
	c.persistPlayer(owner, g.Code)

	c.logger.Info("game hosted", "code", g.Code, "owner", owner.Name)
	return g, nil
}

// JoinGame seats a registered player in a game.
func (c *Controller) JoinGame(code string, p *game.Player) (*game.Game, error) {
	mu := c.lockGame(code)
	defer mu.Unlock()

	g, err := c.store.GetGame(code)
	if err != nil {
		return nil, err
	}
	if err := g.AddPlayer(p); err != nil {
		return nil, err
	}
	if err := c.store.SavePlayer(p, g.Code); err != nil {
		return nil, err
	}
	c.persistPlayer(p, g.Code)

	c.logger.Info("player joined", "code", g.Code, "player", p.Name, "position", p.Position)
	return g, nil
}

// LeaveGame unseats a player from a WAITING game. When the game is no longer
// viable (empty, or abandoned by its owner) it is destroyed and false is
// returned.
func (c *Controller) LeaveGame(code, playerID string) (bool, error) {
	mu := c.lockGame(code)
	defer mu.Unlock()

	g, err := c.store.GetGame(code)
	if err != nil {
		return true, err
	}
	p, err := g.PlayerByID(playerID)
	if err != nil {
		return true, err
	}
	viable, err := g.RemovePlayer(p)
	if err != nil {
		return true, err
	}
	if err := c.store.RemovePlayer(p.ID); err != nil {
		return viable, err
	}

	c.logger.Info("player left", "code", g.Code, "player", p.Name)
	if !viable {
		c.teardown(g)
	}
	return viable, nil
}

// StartGame deals the deck and begins play. Owner only.
func (c *Controller) StartGame(code, playerID string) (*game.Game, error) {
	mu := c.lockGame(code)
	defer mu.Unlock()

	g, err := c.store.GetGame(code)
	if err != nil {
		return nil, err
	}
	p, err := g.PlayerByID(playerID)
	if err != nil {
		return nil, err
	}
	if !g.IsOwner(p) {
		return nil, game.ErrNotOwner
	}
	if err := g.PrepareGame(); err != nil {
		return nil, err
	}

	c.persistGame(g)
	for _, player := range g.Players() {
		c.persistPlayer(player, g.Code)
	}

	c.logger.Info("game started", "code", g.Code, "players", g.PlayerCount(), "starter", g.CurrentTurn)
	return g, nil
}

// DestroyGame tears a game down. Owner only.
func (c *Controller) DestroyGame(code, playerID string) error {
	mu := c.lockGame(code)
	defer mu.Unlock()

	g, err := c.store.GetGame(code)
	if err != nil {
		return err
	}
	p, err := g.PlayerByID(playerID)
	if err != nil {
		return err
	}
	if !g.IsOwner(p) {
		return game.ErrNotOwner
	}

	c.teardown(g)
	return nil
}

// teardown releases a game from the registry and durable storage. Callers
// hold the game lock.
func (c *Controller) teardown(g *game.Game) {
	for _, p := range g.Players() {
		_ = c.store.RemovePlayer(p.ID)
	}
	if err := c.store.DeleteGame(g.Code); err != nil {
		c.logger.Warn("game already gone from registry", "code", g.Code, "error", err)
	}
	if c.database != nil {
		if err := c.database.DeleteGame(g.Code); err != nil {
			c.logger.Warn("failed to delete game record", "code", g.Code, "error", err)
		}
	}
	c.locks.Delete(g.Code)
	c.logger.Info("game destroyed", "code", g.Code)
}

// persistPlayer and persistGame write durable records best-effort: a storage
// hiccup never fails the in-memory action that already happened.
func (c *Controller) persistPlayer(p *game.Player, gameCode string) {
	if c.database == nil {
		return
	}
	if err := c.database.SavePlayer(p, gameCode); err != nil {
		c.logger.Warn("failed to persist player", "player", p.ID, "error", err)
	}
}

func (c *Controller) persistGame(g *game.Game) {
	if c.database == nil {
		return
	}
	if err := c.database.SaveGame(g); err != nil {
		c.logger.Warn("failed to persist game", "code", g.Code, "error", err)
	}
}

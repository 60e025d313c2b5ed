package store

import "github.com/arvindmenon/literature-be/internal/game"

// Store is the registry of live games and registered players. It replaces the
// ambient process-wide maps of older designs: it is created in main and
// injected into whoever needs it, with inserts on create/join and removes on
// destroy.
type Store interface {
	// SaveGame inserts or refreshes a game keyed by its code.
	SaveGame(g *game.Game) error

	// GetGame retrieves a live game by code.
	GetGame(code string) (*game.Game, error)

	// DeleteGame removes a game and every player membership pointing at it.
	DeleteGame(code string) error

	// GetAllGames returns all live games.
	GetAllGames() ([]*game.Game, error)

	// SavePlayer registers a player identity and binds it to a game code.
	SavePlayer(p *game.Player, gameCode string) error

	// GetPlayer retrieves a registered player by identity.
	GetPlayer(id string) (*game.Player, error)

	// PlayerGameCode follows the player's game reference.
	PlayerGameCode(id string) (string, error)

	// RemovePlayer forgets a player identity.
	RemovePlayer(id string) error
}

package store

import (
	"sync"

	"github.com/arvindmenon/literature-be/internal/game"
)

// MemoryStore is the in-memory registry implementation.
type MemoryStore struct {
	games       map[string]*game.Game
	players     map[string]*game.Player
	playerGames map[string]string
	mu          sync.RWMutex
}

// NewMemoryStore creates an empty registry.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		games:       make(map[string]*game.Game),
		players:     make(map[string]*game.Player),
		playerGames: make(map[string]string),
	}
}

// SaveGame inserts or refreshes a game keyed by its code.
func (s *MemoryStore) SaveGame(g *game.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games[g.Code] = g
	return nil
}

// GetGame retrieves a live game by code.
func (s *MemoryStore) GetGame(code string) (*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, exists := s.games[code]
	if !exists {
		return nil, game.ErrGameNotFound
	}
	return g, nil
}

// DeleteGame removes a game and the memberships of its players.
func (s *MemoryStore) DeleteGame(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[code]; !exists {
		return game.ErrGameNotFound
	}
	delete(s.games, code)

	for id, gameCode := range s.playerGames {
		if gameCode == code {
			delete(s.playerGames, id)
			delete(s.players, id)
		}
	}
	return nil
}

// GetAllGames returns all live games.
func (s *MemoryStore) GetAllGames() ([]*game.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]*game.Game, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g)
	}
	return games, nil
}

// SavePlayer registers a player identity and binds it to a game code.
func (s *MemoryStore) SavePlayer(p *game.Player, gameCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[p.ID] = p
	if gameCode != "" {
		s.playerGames[p.ID] = gameCode
	}
	return nil
}

// GetPlayer retrieves a registered player by identity.
func (s *MemoryStore) GetPlayer(id string) (*game.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.players[id]
	if !exists {
		return nil, game.ErrPlayerNotFound
	}
	return p, nil
}

// PlayerGameCode follows the player's game reference.
func (s *MemoryStore) PlayerGameCode(id string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code, exists := s.playerGames[id]
	if !exists {
		return "", game.ErrGameNotFound
	}
	return code, nil
}

// RemovePlayer forgets a player identity.
func (s *MemoryStore) RemovePlayer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.players[id]; !exists {
		return game.ErrPlayerNotFound
	}
	delete(s.players, id)
	delete(s.playerGames, id)
	return nil
}

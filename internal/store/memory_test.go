package store

import (
	"testing"

	"github.com/arvindmenon/literature-be/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.NewGame(game.VariantLiterature, game.NewPlayer("host", 1))
	require.NoError(t, err)
	return g
}

func TestGameLifecycle(t *testing.T) {
	s := NewMemoryStore()
	g := newGame(t)

	_, err := s.GetGame(g.Code)
	assert.True(t, game.IsKind(err, game.KindNotFound))

	require.NoError(t, s.SaveGame(g))

	got, err := s.GetGame(g.Code)
	require.NoError(t, err)
	assert.Same(t, g, got)

	all, err := s.GetAllGames()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.DeleteGame(g.Code))
	_, err = s.GetGame(g.Code)
	assert.True(t, game.IsKind(err, game.KindNotFound))

	err = s.DeleteGame(g.Code)
	assert.True(t, game.IsKind(err, game.KindNotFound))
}

func TestPlayerMembership(t *testing.T) {
	s := NewMemoryStore()
	g := newGame(t)
	require.NoError(t, s.SaveGame(g))

	p := game.NewPlayer("Alice", 2)
	require.NoError(t, s.SavePlayer(p, g.Code))

	got, err := s.GetPlayer(p.ID)
	require.NoError(t, err)
	assert.Same(t, p, got)

	code, err := s.PlayerGameCode(p.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Code, code)

	require.NoError(t, s.RemovePlayer(p.ID))
	_, err = s.GetPlayer(p.ID)
	assert.True(t, game.IsKind(err, game.KindNotFound))
}

func TestPlayerWithoutGame(t *testing.T) {
	s := NewMemoryStore()
	p := game.NewPlayer("drifter", 1)
	require.NoError(t, s.SavePlayer(p, ""))

	_, err := s.PlayerGameCode(p.ID)
	assert.True(t, game.IsKind(err, game.KindNotFound))
}

func TestDeleteGameForgetsMembers(t *testing.T) {
	s := NewMemoryStore()
	g := newGame(t)
	require.NoError(t, s.SaveGame(g))

	p := game.NewPlayer("Alice", 2)
	require.NoError(t, s.SavePlayer(p, g.Code))

	require.NoError(t, s.DeleteGame(g.Code))

	_, err := s.GetPlayer(p.ID)
	assert.True(t, game.IsKind(err, game.KindNotFound))
	_, err = s.PlayerGameCode(p.ID)
	assert.True(t, game.IsKind(err, game.KindNotFound))
}

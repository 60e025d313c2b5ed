package game

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seatGame builds a WAITING game with n players on seats 1..n. Seat 1 hosts.
func seatGame(t *testing.T, n int) *Game {
	t.Helper()

	owner := NewPlayer("player1", 1)
	g, err := NewGame(VariantLiterature, owner)
	require.NoError(t, err)

	for pos := 2; pos <= n; pos++ {
		p := NewPlayer(fmt.Sprintf("player%d", pos), pos)
		require.NoError(t, g.AddPlayer(p))
	}
	return g
}

func TestNewGame(t *testing.T) {
	owner := NewPlayer("host", 1)
	g, err := NewGame(VariantLiterature, owner)
	require.NoError(t, err)

	assert.Len(t, g.Code, 6)
	assert.Equal(t, Waiting, g.State)
	assert.Equal(t, owner.ID, g.OwnerID)
	assert.Equal(t, 1, g.PlayerCount())

	last, ok := g.LastLog()
	require.True(t, ok)
	assert.Equal(t, EntryCreate, last.Type)
	assert.Equal(t, "CREATE:host", last.String())
}

func TestNewGameUnknownVariant(t *testing.T) {
	_, err := NewGame("canasta", NewPlayer("host", 1))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalidState))
}

func TestAddPlayer(t *testing.T) {
	g := seatGame(t, 2)

	t.Run("position taken", func(t *testing.T) {
		err := g.AddPlayer(NewPlayer("late", 2))
		require.Error(t, err)
		assert.True(t, IsKind(err, KindPositionConflict))
	})

	t.Run("position out of range", func(t *testing.T) {
		err := g.AddPlayer(NewPlayer("nine", 9))
		require.Error(t, err)
		assert.True(t, IsKind(err, KindPositionConflict))
	})

	t.Run("full game", func(t *testing.T) {
		full := seatGame(t, 8)
		err := full.AddPlayer(NewPlayer("nine", 9))
		assert.True(t, IsKind(err, KindInvalidState))
	})

	t.Run("started game", func(t *testing.T) {
		started := seatGame(t, 6)
		require.NoError(t, started.PrepareGame())
		err := started.AddPlayer(NewPlayer("late", 7))
		assert.True(t, IsKind(err, KindInvalidState))
	})
}

func TestRemovePlayer(t *testing.T) {
	t.Run("regular leave keeps the game viable", func(t *testing.T) {
		g := seatGame(t, 3)
		p, err := g.PlayerByPosition(2)
		require.NoError(t, err)

		viable, err := g.RemovePlayer(p)
		require.NoError(t, err)
		assert.True(t, viable)
		assert.Equal(t, 2, g.PlayerCount())

		last, _ := g.LastLog()
		assert.Equal(t, EntryLeave, last.Type)
	})

	t.Run("owner leaving kills the game", func(t *testing.T) {
		g := seatGame(t, 3)
		owner, err := g.PlayerByPosition(1)
		require.NoError(t, err)

		viable, err := g.RemovePlayer(owner)
		require.NoError(t, err)
		assert.False(t, viable)
	})

	t.Run("no leaving a started game", func(t *testing.T) {
		g := seatGame(t, 6)
		require.NoError(t, g.PrepareGame())
		p, _ := g.PlayerByPosition(2)
		_, err := g.RemovePlayer(p)
		assert.True(t, IsKind(err, KindInvalidState))
	})
}

func TestPrepareGame(t *testing.T) {
	t.Run("needs six players", func(t *testing.T) {
		g := seatGame(t, 5)
		err := g.PrepareGame()
		require.Error(t, err)
		assert.True(t, IsKind(err, KindInvalidState))
		assert.Equal(t, Waiting, g.State)
	})

	t.Run("deals the whole deck evenly", func(t *testing.T) {
		g := seatGame(t, 6)
		require.NoError(t, g.PrepareGame())

		assert.Equal(t, InProgress, g.State)
		assert.Equal(t, 48, g.CardsInPlay())
		for _, p := range g.Players() {
			assert.Equal(t, 8, p.HandSize())
		}

		// Starter policy is fixed and recorded.
		assert.Equal(t, 1, g.CurrentTurn)
		last, _ := g.LastLog()
		assert.Equal(t, EntryStart, last.Type)
		assert.Equal(t, strconv.Itoa(g.CurrentTurn), last.Target)
	})

	t.Run("remainder goes to the lowest seats", func(t *testing.T) {
		g := seatGame(t, 7)
		require.NoError(t, g.PrepareGame())

		sizes := make([]int, 0, 7)
		for _, p := range g.Players() {
			sizes = append(sizes, p.HandSize())
		}
		assert.Equal(t, []int{7, 7, 7, 7, 7, 7, 6}, sizes)
	})

	t.Run("not twice", func(t *testing.T) {
		g := seatGame(t, 6)
		require.NoError(t, g.PrepareGame())
		assert.Error(t, g.PrepareGame())
	})
}

func TestFindCardWithPlayer(t *testing.T) {
	g := seatGame(t, 6)
	require.NoError(t, g.PrepareGame())

	holder, _ := g.PlayerByPosition(4)
	card := holder.Hand[0]

	pos, err := g.FindCardWithPlayer(card)
	require.NoError(t, err)
	assert.Equal(t, 4, pos)

	t.Run("declared cards are out of play", func(t *testing.T) {
		require.NoError(t, holder.Discard(card))
		_, err := g.FindCardWithPlayer(card)
		assert.True(t, IsKind(err, KindCardNotInPlay))
	})

	t.Run("illegal card is a validation error", func(t *testing.T) {
		_, err := g.FindCardWithPlayer(Card{Suit: Hearts, Rank: "8"})
		assert.True(t, IsKind(err, KindInvalidState))
	})
}

func TestProcessRound(t *testing.T) {
	t.Run("finishes when every hand is empty", func(t *testing.T) {
		g := seatGame(t, 6)
		require.NoError(t, g.PrepareGame())

		for _, p := range g.Players() {
			p.Hand = nil
		}
		require.True(t, g.IsGameOver())
		g.ProcessRound()
		assert.Equal(t, Finished, g.State)
	})

	t.Run("forces the turn onto the team still holding cards", func(t *testing.T) {
		g := seatGame(t, 6)
		require.NoError(t, g.PrepareGame())

		// Empty out every even seat; the turn may no longer visit that team.
		for _, p := range g.Players() {
			if p.Position%2 == 0 {
				p.Hand = nil
			}
		}
		g.CurrentTurn = 4
		g.ProcessRound()

		assert.Equal(t, InProgress, g.State)
		assert.Equal(t, 1, g.CurrentTurn%2, "turn must land on an odd seat")
		holder, err := g.PlayerByPosition(g.CurrentTurn)
		require.NoError(t, err)
		assert.Positive(t, holder.HandSize())
	})

	t.Run("symmetric for the odd team", func(t *testing.T) {
		g := seatGame(t, 6)
		require.NoError(t, g.PrepareGame())

		for _, p := range g.Players() {
			if p.Position%2 == 1 {
				p.Hand = nil
			}
		}
		g.ProcessRound()
		assert.Equal(t, 0, g.CurrentTurn%2, "turn must land on an even seat")
	})

	t.Run("no handoff while both teams hold cards", func(t *testing.T) {
		g := seatGame(t, 6)
		require.NoError(t, g.PrepareGame())
		g.CurrentTurn = 5
		g.ProcessRound()
		assert.Equal(t, 5, g.CurrentTurn)
	})
}

func TestSpots(t *testing.T) {
	g := seatGame(t, 2)
	spots := g.Spots()
	require.Len(t, spots, 8)

	assert.True(t, spots[0].Taken)
	assert.Equal(t, "player1", spots[0].Name)
	assert.True(t, spots[1].Taken)
	assert.False(t, spots[2].Taken)
	assert.Empty(t, spots[2].Name)
}

func TestNextSeat(t *testing.T) {
	g := seatGame(t, 6)
	assert.Equal(t, 4, g.NextSeat(3))
	assert.Equal(t, 1, g.NextSeat(6), "wraps over the seat ring")
}

func TestSnapshotHidesHands(t *testing.T) {
	g := seatGame(t, 6)
	require.NoError(t, g.PrepareGame())

	snapshot := g.Snapshot()
	require.Len(t, snapshot.Players, 6)
	for _, seat := range snapshot.Players {
		assert.Equal(t, 8, seat.HandCount)
	}
	assert.Equal(t, g.CurrentTurn, snapshot.CurrentTurn)
	assert.NotEmpty(t, snapshot.Logs)

	owner, _ := g.PlayerByPosition(1)
	private, err := g.PlayerSnapshotFor(owner.ID)
	require.NoError(t, err)
	assert.Len(t, private.Hand, 8)

	_, err = g.PlayerSnapshotFor("nobody")
	assert.True(t, IsKind(err, KindNotFound))
}

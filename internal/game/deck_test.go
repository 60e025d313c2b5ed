package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeal(t *testing.T) {
	tests := []struct {
		players   int
		wantSizes []int
	}{
		{players: 6, wantSizes: []int{8, 8, 8, 8, 8, 8}},
		// Remainder cards land on the lowest hands first.
		{players: 7, wantSizes: []int{7, 7, 7, 7, 7, 7, 6}},
		{players: 8, wantSizes: []int{6, 6, 6, 6, 6, 6, 6, 6}},
	}

	for _, tt := range tests {
		deck := NewDeck()
		deck.Shuffle()
		hands := deck.Deal(tt.players)
		require.Len(t, hands, tt.players)

		total := 0
		for i, hand := range hands {
			assert.Len(t, hand, tt.wantSizes[i], "hand %d of %d players", i, tt.players)
			total += len(hand)
		}
		assert.Equal(t, 48, total)
	}
}

func TestDealCoversDeck(t *testing.T) {
	deck := NewDeck()
	deck.Shuffle()

	seen := make(map[Card]bool)
	for _, hand := range deck.Deal(6) {
		for _, card := range hand {
			require.False(t, seen[card], "card %s dealt twice", card)
			seen[card] = true
		}
	}
	assert.Len(t, seen, 48)
}

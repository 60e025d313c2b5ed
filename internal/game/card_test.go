package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckPartition(t *testing.T) {
	// 48 cards, 8 half-suits of 6, every card mapping to exactly one set.
	deck := NewDeck()
	require.Equal(t, 48, deck.Size())

	seen := make(map[Card]bool)
	setSizes := make(map[SetID]int)
	for _, card := range deck.Cards {
		require.False(t, seen[card], "duplicate card %s", card)
		seen[card] = true

		set, err := SetOf(card)
		require.NoError(t, err)
		setSizes[set]++
	}

	assert.Len(t, setSizes, 8)
	for set, size := range setSizes {
		assert.Equal(t, 6, size, "set %s", set)
	}
}

func TestSetOf(t *testing.T) {
	tests := []struct {
		name    string
		card    Card
		want    SetID
		wantErr bool
	}{
		{name: "lower bound of lower set", card: Card{Suit: Hearts, Rank: Two}, want: "Lower Hearts"},
		{name: "upper bound of lower set", card: Card{Suit: Spades, Rank: Seven}, want: "Lower Spades"},
		{name: "lower bound of upper set", card: Card{Suit: Clubs, Rank: Nine}, want: "Upper Clubs"},
		{name: "ace tops the upper set", card: Card{Suit: Diamonds, Rank: Ace}, want: "Upper Diamonds"},
		{name: "eights are not in the deck", card: Card{Suit: Hearts, Rank: "8"}, wantErr: true},
		{name: "unknown suit", card: Card{Suit: "Stars", Rank: Two}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := SetOf(tt.card)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsKind(err, KindInvalidState))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, set)
		})
	}
}

func TestSetCards(t *testing.T) {
	cards := SetCards("Upper Spades")
	require.Len(t, cards, 6)
	for _, card := range cards {
		set, err := SetOf(card)
		require.NoError(t, err)
		assert.Equal(t, SetID("Upper Spades"), set)
	}
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "10♠", Card{Suit: Spades, Rank: Ten}.String())
	assert.Equal(t, "A♥", Card{Suit: Hearts, Rank: Ace}.String())
}

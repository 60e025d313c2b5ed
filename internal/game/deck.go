package game

import (
	"math/rand"
	"time"
)

// Deck is the full 48-card Literature deck, partitioned into 8 half-suits.
type Deck struct {
	Cards []Card
}

// NewDeck creates the 48-card deck in half-suit order.
func NewDeck() *Deck {
	deck := &Deck{Cards: make([]Card, 0, 48)}
	for _, suit := range suits {
		for _, rank := range lowerRanks {
			deck.Cards = append(deck.Cards, Card{Suit: suit, Rank: rank})
		}
		for _, rank := range upperRanks {
			deck.Cards = append(deck.Cards, Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// Shuffle randomizes the order of cards in the deck.
func (d *Deck) Shuffle() {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Fisher-Yates shuffle algorithm
	for i := len(d.Cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// Deal splits the whole deck into n hands, dealing one card per hand in
// ascending order. When 48 does not divide evenly, the remainder cards land
// on the lowest hand indices.
func (d *Deck) Deal(n int) [][]Card {
	hands := make([][]Card, n)
	for i := range hands {
		hands[i] = make([]Card, 0, len(d.Cards)/n+1)
	}
	for i, card := range d.Cards {
		hands[i%n] = append(hands[i%n], card)
	}
	return hands
}

// Size returns the number of cards in the deck.
func (d *Deck) Size() int {
	return len(d.Cards)
}

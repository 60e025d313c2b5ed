package game

import "fmt"

type Suit string
type Rank string

const (
	Hearts   Suit = "Hearts"
	Diamonds Suit = "Diamonds"
	Clubs    Suit = "Clubs"
	Spades   Suit = "Spades"
)

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

// Literature is played without 8s or jokers: each suit splits into a lower
// half-suit (2-7) and an upper half-suit (9-A), 6 cards each.
var (
	lowerRanks = []Rank{Two, Three, Four, Five, Six, Seven}
	upperRanks = []Rank{Nine, Ten, Jack, Queen, King, Ace}
	suits      = []Suit{Hearts, Diamonds, Clubs, Spades}
)

var suitSymbols = map[Suit]string{
	Hearts:   "♥",
	Diamonds: "♦",
	Clubs:    "♣",
	Spades:   "♠",
}

type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// String returns the wire token for the card, e.g. "10♠".
func (c Card) String() string {
	return string(c.Rank) + suitSymbols[c.Suit]
}

// SetID identifies the half-suit a card belongs to, e.g. "Lower Hearts".
type SetID string

var setByCard = buildSetIndex()

func buildSetIndex() map[Card]SetID {
	index := make(map[Card]SetID, 48)
	for _, suit := range suits {
		for _, rank := range lowerRanks {
			index[Card{Suit: suit, Rank: rank}] = SetID("Lower " + suit)
		}
		for _, rank := range upperRanks {
			index[Card{Suit: suit, Rank: rank}] = SetID("Upper " + suit)
		}
	}
	return index
}

// SetOf maps a card to its half-suit. Any card outside the 48-card Literature
// deck is a caller bug, surfaced as a validation error.
func SetOf(c Card) (SetID, error) {
	set, ok := setByCard[c]
	if !ok {
		return "", ErrInvalidCard.Wrap(fmt.Errorf("no such card %q of %q", c.Rank, c.Suit))
	}
	return set, nil
}

// SetCards returns the 6 cards belonging to a half-suit.
func SetCards(set SetID) []Card {
	cards := make([]Card, 0, 6)
	for card, s := range setByCard {
		if s == set {
			cards = append(cards, card)
		}
	}
	return cards
}

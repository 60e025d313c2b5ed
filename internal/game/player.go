package game

import "github.com/google/uuid"

// Player owns a hand of cards, a durable identity and a seat. Seat parity
// decides team membership: odd seats play even seats.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Hand     []Card `json:"hand"`
	Score    int    `json:"score"`
}

// NewPlayer constructs a fresh player with an empty hand, score 0 and a newly
// generated durable identity.
func NewPlayer(name string, position int) *Player {
	return &Player{
		ID:       uuid.New().String(),
		Name:     name,
		Position: position,
		Hand:     []Card{},
		Score:    0,
	}
}

// Team returns the seat parity, 1 for odd seats and 0 for even seats.
func (p *Player) Team() int {
	return p.Position % 2
}

// Holds reports whether the card is currently in the player's hand.
func (p *Player) Holds(card Card) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// Discard removes the card from the hand. A missing card is a CardNotHeld
// failure; the hand is left untouched.
func (p *Player) Discard(card Card) error {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return nil
		}
	}
	return ErrCardNotHeld
}

// TryDiscard is the value form of Discard used by the ask flow, where a
// missing card is an ordinary outcome rather than a fault.
func (p *Player) TryDiscard(card Card) (Card, bool) {
	if err := p.Discard(card); err != nil {
		return Card{}, false
	}
	return card, true
}

// Add inserts the card into the hand. Cards are single-owned, so a duplicate
// insertion never occurs in a well-behaved call sequence.
func (p *Player) Add(card Card) {
	p.Hand = append(p.Hand, card)
}

// UpdateDetails rebinds the display name and seat when a previously
// registered identity rejoins.
func (p *Player) UpdateDetails(name string, position int) {
	p.Name = name
	p.Position = position
}

// HandSize returns the number of cards currently held.
func (p *Player) HandSize() int {
	return len(p.Hand)
}

package controller

import (
	"github.com/arvindmenon/literature-be/internal/game"
)

// Ask has the asker request a card from an opponent. A hit moves the card and
// keeps the turn with the asker; a miss moves nothing and hands the turn to
// the asked player. The miss branch is an ordinary value, not a fault.
func (c *Controller) Ask(code, fromID string, toPosition int, card game.Card) (*game.Game, error) {
	mu := c.lockGame(code)
	defer mu.Unlock()

	g, err := c.store.GetGame(code)
	if err != nil {
		return nil, err
	}
	if g.State != game.InProgress {
		return nil, game.ErrGameNotStarted
	}
	from, err := g.PlayerByID(fromID)
	if err != nil {
		return nil, err
	}
	to, err := g.PlayerByPosition(toPosition)
	if err != nil {
		return nil, err
	}

	if !g.IsMyTurn(from) {
		return nil, game.ErrNotYourTurn
	}
	if from.ID == to.ID {
		return nil, game.ErrInvalidAsk
	}
	if to.HandSize() == 0 {
		return nil, game.ErrInvalidAsk
	}
	if _, err := game.SetOf(card); err != nil {
		return nil, err
	}
	if from.Holds(card) {
		return nil, game.ErrInvalidAsk
	}

	if taken, ok := to.TryDiscard(card); ok {
		from.Add(taken)
		g.Log(game.LogEntry{Type: game.EntryTake, Actor: from.Name, Target: to.Name, Card: card.String()})
		c.logger.Info("card taken", "code", g.Code, "from", to.Name, "to", from.Name, "card", card.String())
	} else {
		g.CurrentTurn = to.Position
		g.Log(game.LogEntry{Type: game.EntryAsk, Actor: from.Name, Target: to.Name, Card: card.String()})
		c.logger.Info("ask missed", "code", g.Code, "asker", from.Name, "asked", to.Name, "card", card.String())
	}

	c.persistGame(g)
	c.persistPlayer(from, g.Code)
	c.persistPlayer(to, g.Code)
	return g, nil
}

// Declaration assigns card lists to the declarer's team seats in ascending
// seat order: slot i claims that teamSeats[i] holds exactly those cards.
type Declaration [][]game.Card

// Declare resolves a full half-suit claim. All six cards leave play whether
// the claim is right or wrong; the point goes to the declarer on a perfect
// match and to the next opposing seat otherwise, which also takes the turn.
func (c *Controller) Declare(code, playerID string, declaration Declaration) (*game.Game, error) {
	mu := c.lockGame(code)
	defer mu.Unlock()

	g, err := c.store.GetGame(code)
	if err != nil {
		return nil, err
	}
	if g.State != game.InProgress {
		return nil, game.ErrGameNotStarted
	}
	player, err := g.PlayerByID(playerID)
	if err != nil {
		return nil, err
	}
	if !g.IsMyTurn(player) {
		return nil, game.ErrNotYourTurn
	}

	set, claims, err := c.validateDeclaration(g, player, declaration)
	if err != nil {
		return nil, err
	}

	// The attempt itself goes on the record before resolution, so the audit
	// trail survives even a crash mid-action.
	g.Log(game.LogEntry{Type: game.EntryAttempt, Actor: player.Name, Set: string(set)})

	correct := true
	for _, claim := range claims {
		// Holders were resolved under this same lock; a miss here means the
		// roster or hand model is corrupt.
		holder, err := g.PlayerByPosition(claim.holder)
		if err != nil {
			return nil, err
		}
		if err := holder.Discard(claim.card); err != nil {
			return nil, err
		}
		if claim.holder != claim.claimed {
			correct = false
		}
	}

	if correct {
		player.Score++
		g.Log(game.LogEntry{Type: game.EntryDeclare, Actor: player.Name, Set: string(set), Result: game.ResultCorrect})
		c.logger.Info("declare correct", "code", g.Code, "player", player.Name, "set", set)
	} else {
		opponent, err := g.PlayerByPosition(g.NextSeat(player.Position))
		if err != nil {
			return nil, err
		}
		opponent.Score++
		g.CurrentTurn = opponent.Position
		g.Log(game.LogEntry{
			Type:   game.EntryDeclare,
			Actor:  player.Name,
			Target: opponent.Name,
			Set:    string(set),
			Result: game.ResultIncorrect,
		})
		c.logger.Info("declare incorrect", "code", g.Code, "player", player.Name, "set", set, "scorer", opponent.Name)
	}

	g.ProcessRound()

	c.persistGame(g)
	for _, p := range g.Players() {
		c.persistPlayer(p, g.Code)
	}
	return g, nil
}

type cardClaim struct {
	card    game.Card
	claimed int // seat the declarer named
	holder  int // seat that actually holds the card
}

// validateDeclaration checks shape and card state before anything mutates:
// one full half-suit, no duplicates, slots matching the declarer's team
// seats, every card still in play.
func (c *Controller) validateDeclaration(g *game.Game, player *game.Player, declaration Declaration) (game.SetID, []cardClaim, error) {
	teamSeats := make([]int, 0, 4)
	for _, pos := range g.Positions() {
		if pos%2 == player.Team() {
			teamSeats = append(teamSeats, pos)
		}
	}
	if len(declaration) != len(teamSeats) {
		return "", nil, game.ErrInvalidClaim
	}

	var set game.SetID
	seen := make(map[game.Card]bool, 6)
	claims := make([]cardClaim, 0, 6)

	for i, slot := range declaration {
		for _, card := range slot {
			cardSet, err := game.SetOf(card)
			if err != nil {
				return "", nil, err
			}
			if set == "" {
				set = cardSet
			} else if cardSet != set {
				return "", nil, game.ErrInvalidClaim
			}
			if seen[card] {
				return "", nil, game.ErrInvalidClaim
			}
			seen[card] = true

			holder, err := g.FindCardWithPlayer(card)
			if err != nil {
				return "", nil, err
			}
			claims = append(claims, cardClaim{card: card, claimed: teamSeats[i], holder: holder})
		}
	}

	if len(claims) != 6 {
		return "", nil, game.ErrInvalidClaim
	}
	return set, claims, nil
}

// Transfer hands the turn to a teammate. Only legal directly after a correct
// declare by the current turn holder.
func (c *Controller) Transfer(code, fromID string, toPosition int) (*game.Game, error) {
	mu := c.lockGame(code)
	defer mu.Unlock()

	g, err := c.store.GetGame(code)
	if err != nil {
		return nil, err
	}
	if g.State != game.InProgress {
		return nil, game.ErrGameNotStarted
	}
	from, err := g.PlayerByID(fromID)
	if err != nil {
		return nil, err
	}
	if !g.IsMyTurn(from) {
		return nil, game.ErrNotYourTurn
	}
	to, err := g.PlayerByPosition(toPosition)
	if err != nil {
		return nil, err
	}
	if from.Team() != to.Team() {
		return nil, game.ErrNotSameTeam
	}
	// Only the player who just resolved a correct claim may hand the turn
	// off; a turn inherited through a forced handoff carries no such right.
	last, ok := g.LastLog()
	if !ok || last.Type != game.EntryDeclare || last.Result != game.ResultCorrect || last.Actor != from.Name {
		return nil, game.ErrNoRecentClaim
	}

	g.CurrentTurn = to.Position
	g.Log(game.LogEntry{Type: game.EntryTransfer, Actor: from.Name, Target: to.Name})
	c.logger.Info("turn transferred", "code", g.Code, "from", from.Name, "to", to.Name)

	c.persistGame(g)
	return g, nil
}

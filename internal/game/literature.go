package game

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type State string

const (
	Waiting    State = "waiting"    // Waiting for players to join
	InProgress State = "inProgress" // Game is in progress
	Finished   State = "finished"   // Every hand is empty
)

// Variant tags a closed set of game configurations. Each variant carries a
// fixed rule table selected at construction time; no behavior is ever
// attached to a game at runtime.
type Variant string

const VariantLiterature Variant = "literature"

type ruleTable struct {
	minPlayers   int
	maxPlayers   int
	startingSeat int
	gameOver     func(*Game) bool
	advanceRound func(*Game)
}

var variantRules = map[Variant]ruleTable{
	VariantLiterature: {
		minPlayers:   6,
		maxPlayers:   8,
		startingSeat: 1,
		gameOver:     literatureGameOver,
		advanceRound: literatureAdvanceRound,
	},
}

// Game is the per-table state machine. All mutating calls on one game must be
// serialized by the caller; distinct games share nothing.
type Game struct {
	Code        string     `json:"code"`
	Variant     Variant    `json:"variant"`
	OwnerID     string     `json:"ownerId"`
	Deck        *Deck      `json:"-"`
	CurrentTurn int        `json:"currentTurn"`
	Logs        []LogEntry `json:"logs"`
	State       State      `json:"state"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	players map[int]*Player
	rules   ruleTable
}

// NewGame creates a WAITING game hosted by owner, who occupies their chosen
// seat immediately.
func NewGame(variant Variant, owner *Player) (*Game, error) {
	rules, ok := variantRules[variant]
	if !ok {
		return nil, NewError(KindInvalidState, "unknown game variant "+string(variant))
	}
	if owner.Position < 1 || owner.Position > rules.maxPlayers {
		return nil, NewError(KindPositionConflict, "no seat "+strconv.Itoa(owner.Position)+" at this table")
	}

	now := time.Now()
	g := &Game{
		Code:      newGameCode(),
		Variant:   variant,
		OwnerID:   owner.ID,
		Deck:      NewDeck(),
		State:     Waiting,
		CreatedAt: now,
		UpdatedAt: now,
		players:   map[int]*Player{owner.Position: owner},
		rules:     rules,
	}
	g.Log(LogEntry{Type: EntryCreate, Actor: owner.Name})
	return g, nil
}

// Game codes are short join tokens, not identities; uuid supplies the entropy.
func newGameCode() string {
	return strings.ToUpper(uuid.New().String()[:6])
}

// Positions returns the occupied seats in ascending order.
func (g *Game) Positions() []int {
	positions := make([]int, 0, len(g.players))
	for pos := range g.players {
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	return positions
}

// Players returns the roster in seat order.
func (g *Game) Players() []*Player {
	players := make([]*Player, 0, len(g.players))
	for _, pos := range g.Positions() {
		players = append(players, g.players[pos])
	}
	return players
}

func (g *Game) PlayerCount() int {
	return len(g.players)
}

func (g *Game) PlayerByID(id string) (*Player, error) {
	for _, p := range g.players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrPlayerNotFound
}

func (g *Game) PlayerByPosition(pos int) (*Player, error) {
	p, ok := g.players[pos]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// Spot describes one seat for the pre-join probe.
type Spot struct {
	Position int    `json:"position"`
	Taken    bool   `json:"taken"`
	Name     string `json:"name,omitempty"`
}

// Spots lists every seat of the table and who occupies it.
func (g *Game) Spots() []Spot {
	spots := make([]Spot, 0, g.rules.maxPlayers)
	for pos := 1; pos <= g.rules.maxPlayers; pos++ {
		spot := Spot{Position: pos}
		if p, ok := g.players[pos]; ok {
			spot.Taken = true
			spot.Name = p.Name
		}
		spots = append(spots, spot)
	}
	return spots
}

// AddPlayer seats a player and appends a JOIN entry. Fails if the game has
// started, is full, or the seat is occupied.
func (g *Game) AddPlayer(p *Player) error {
	if g.State != Waiting {
		return ErrGameStarted
	}
	if len(g.players) >= g.rules.maxPlayers {
		return ErrGameFull
	}
	if p.Position < 1 || p.Position > g.rules.maxPlayers {
		return NewError(KindPositionConflict, "no seat "+strconv.Itoa(p.Position)+" at this table")
	}
	if _, taken := g.players[p.Position]; taken {
		return ErrPositionTaken
	}

	g.players[p.Position] = p
	g.Log(LogEntry{Type: EntryJoin, Actor: p.Name})
	g.UpdatedAt = time.Now()
	return nil
}

// RemovePlayer unseats a player before the game starts and appends a LEAVE
// entry. The returned flag reports whether the game remains viable; a game
// abandoned by its owner or left empty should be destroyed by the caller.
func (g *Game) RemovePlayer(p *Player) (bool, error) {
	if g.State != Waiting {
		return true, ErrGameStarted
	}
	if _, ok := g.players[p.Position]; !ok {
		return true, ErrPlayerNotFound
	}

	delete(g.players, p.Position)
	g.Log(LogEntry{Type: EntryLeave, Actor: p.Name})
	g.UpdatedAt = time.Now()

	viable := len(g.players) > 0 && p.ID != g.OwnerID
	return viable, nil
}

// PrepareGame deals the full shuffled deck across all seats and starts play.
// Remainder cards of an uneven deal go to the lowest seats first. The starter
// comes from the variant rule table and is recorded in the START entry.
func (g *Game) PrepareGame() error {
	if g.State != Waiting {
		return ErrGameStarted
	}
	if len(g.players) < g.rules.minPlayers {
		return ErrNotEnough
	}

	g.Deck.Shuffle()
	positions := g.Positions()
	hands := g.Deck.Deal(len(positions))
	for i, pos := range positions {
		g.players[pos].Hand = hands[i]
	}

	g.State = InProgress
	g.CurrentTurn = g.startingSeat()
	g.Log(LogEntry{Type: EntryStart, Target: strconv.Itoa(g.CurrentTurn)})
	g.UpdatedAt = time.Now()
	return nil
}

// startingSeat applies the variant starter policy, falling back to the lowest
// occupied seat when the designated seat is empty.
func (g *Game) startingSeat() int {
	if _, ok := g.players[g.rules.startingSeat]; ok {
		return g.rules.startingSeat
	}
	return g.Positions()[0]
}

// IsGameOver reports whether every hand is empty.
func (g *Game) IsGameOver() bool {
	return g.rules.gameOver(g)
}

// ProcessRound runs after every declare: it either finishes the game or, when
// one whole team has emptied its hands, forces the turn onto the team still
// holding cards.
func (g *Game) ProcessRound() {
	if g.IsGameOver() {
		g.State = Finished
		g.UpdatedAt = time.Now()
		return
	}
	g.rules.advanceRound(g)
	g.UpdatedAt = time.Now()
}

func literatureGameOver(g *Game) bool {
	for _, p := range g.players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

func literatureAdvanceRound(g *Game) {
	evenDone, oddDone := true, true
	for _, p := range g.players {
		if len(p.Hand) == 0 {
			continue
		}
		if p.Position%2 == 0 {
			evenDone = false
		} else {
			oddDone = false
		}
	}

	// Once a team runs out of cards the turn must stay with the other team.
	// The lowest seat still holding cards keeps the choice deterministic.
	if evenDone {
		g.CurrentTurn = g.lowestSeatWithCards(1)
	} else if oddDone {
		g.CurrentTurn = g.lowestSeatWithCards(0)
	}
}

func (g *Game) lowestSeatWithCards(parity int) int {
	for _, pos := range g.Positions() {
		if pos%2 == parity && len(g.players[pos].Hand) > 0 {
			return pos
		}
	}
	return g.CurrentTurn
}

// FindCardWithPlayer scans all hands for the card and returns the holder's
// seat. A legal card held by nobody has already been declared out of play.
func (g *Game) FindCardWithPlayer(card Card) (int, error) {
	if _, err := SetOf(card); err != nil {
		return 0, err
	}
	for _, p := range g.players {
		if p.Holds(card) {
			return p.Position, nil
		}
	}
	return 0, ErrCardNotInPlay
}

// CardsInPlay is the total number of cards still held across all hands.
func (g *Game) CardsInPlay() int {
	total := 0
	for _, p := range g.players {
		total += len(p.Hand)
	}
	return total
}

// Log appends an entry to the immutable history. It never fails.
func (g *Game) Log(entry LogEntry) {
	entry.Timestamp = time.Now()
	g.Logs = append(g.Logs, entry)
}

// LastLog returns the most recent history entry.
func (g *Game) LastLog() (LogEntry, bool) {
	if len(g.Logs) == 0 {
		return LogEntry{}, false
	}
	return g.Logs[len(g.Logs)-1], true
}

// IsMyTurn reports whether the player holds the turn.
func (g *Game) IsMyTurn(p *Player) bool {
	return g.State == InProgress && g.CurrentTurn == p.Position
}

// IsOwner reports whether the player hosts this game.
func (g *Game) IsOwner(p *Player) bool {
	return g.OwnerID == p.ID
}

// NextSeat returns the seat after pos, wrapping over the occupied seat ring.
// For even rosters this lands on the opposing team.
func (g *Game) NextSeat(pos int) int {
	positions := g.Positions()
	for _, p := range positions {
		if p > pos {
			return p
		}
	}
	return positions[0]
}

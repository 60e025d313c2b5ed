package game

// SeatView is the public view of one player: no hand contents, only size.
type SeatView struct {
	Name      string `json:"name"`
	Position  int    `json:"position"`
	Score     int    `json:"score"`
	HandCount int    `json:"handCount"`
}

// GameSnapshot is the shared view pushed to every client after a mutating
// action. It never contains hand contents.
type GameSnapshot struct {
	Code        string     `json:"code"`
	Variant     Variant    `json:"variant"`
	State       State      `json:"state"`
	CurrentTurn int        `json:"currentTurn"`
	Players     []SeatView `json:"players"`
	Logs        []LogEntry `json:"logs"`
}

// PlayerSnapshot is the private view delivered only to the owning player.
type PlayerSnapshot struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Score    int    `json:"score"`
	Hand     []Card `json:"hand"`
}

// Snapshot builds the shared game view.
func (g *Game) Snapshot() GameSnapshot {
	players := make([]SeatView, 0, len(g.players))
	for _, p := range g.Players() {
		players = append(players, SeatView{
			Name:      p.Name,
			Position:  p.Position,
			Score:     p.Score,
			HandCount: len(p.Hand),
		})
	}

	logs := make([]LogEntry, len(g.Logs))
	copy(logs, g.Logs)

	return GameSnapshot{
		Code:        g.Code,
		Variant:     g.Variant,
		State:       g.State,
		CurrentTurn: g.CurrentTurn,
		Players:     players,
		Logs:        logs,
	}
}

// PlayerSnapshotFor builds the private view for one identity.
func (g *Game) PlayerSnapshotFor(id string) (PlayerSnapshot, error) {
	p, err := g.PlayerByID(id)
	if err != nil {
		return PlayerSnapshot{}, err
	}

	hand := make([]Card, len(p.Hand))
	copy(hand, p.Hand)

	return PlayerSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		Position: p.Position,
		Score:    p.Score,
		Hand:     hand,
	}, nil
}

package game

import (
	"strings"
	"time"
)

type EntryType string

const (
	EntryCreate   EntryType = "CREATE"
	EntryJoin     EntryType = "JOIN"
	EntryLeave    EntryType = "LEAVE"
	EntryStart    EntryType = "START"
	EntryAsk      EntryType = "ASK"
	EntryTake     EntryType = "TAKE"
	EntryAttempt  EntryType = "ATTEMPT"
	EntryDeclare  EntryType = "DECLARE"
	EntryTransfer EntryType = "TRANSFER"
)

const (
	ResultCorrect   = "CORRECT"
	ResultIncorrect = "INCORRECT"
)

// LogEntry is one record of the append-only game history. The history is the
// authoritative trail used to rebuild client views after a reconnect.
type LogEntry struct {
	Type      EntryType `json:"type"`
	Actor     string    `json:"actor,omitempty"`
	Target    string    `json:"target,omitempty"`
	Card      string    `json:"card,omitempty"`
	Set       string    `json:"set,omitempty"`
	Result    string    `json:"result,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// String renders the colon-separated wire line, e.g. "TAKE:Alice:Bob:10♠".
func (e LogEntry) String() string {
	parts := []string{string(e.Type)}
	for _, part := range []string{e.Actor, e.Target, e.Card, e.Set, e.Result} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ":")
}

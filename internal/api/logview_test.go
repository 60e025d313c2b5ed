package api

import (
	"testing"

	"github.com/arvindmenon/literature-be/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(typ game.EntryType, actor string) game.LogEntry {
	return game.LogEntry{Type: typ, Actor: actor}
}

func TestCollapseLogs(t *testing.T) {
	logs := []game.LogEntry{
		entry(game.EntryCreate, "host"),
		entry(game.EntryJoin, "p2"),
		entry(game.EntryStart, ""),
		entry(game.EntryAsk, "a1"),
		entry(game.EntryTake, "t1"),
		entry(game.EntryAsk, "a2"),
		entry(game.EntryDeclare, "d1"),
		entry(game.EntryAsk, "a3"),
		entry(game.EntryTake, "t2"),
	}

	kept := CollapseLogs(logs)

	// Everything that is not ASK/TAKE stays; only the 3 most recent
	// ASK/TAKE entries survive, in chronological order.
	want := []game.EntryType{
		game.EntryCreate,
		game.EntryJoin,
		game.EntryStart,
		game.EntryAsk,     // a2
		game.EntryDeclare, // d1
		game.EntryAsk,     // a3
		game.EntryTake,    // t2
	}
	require.Len(t, kept, len(want))
	for i, typ := range want {
		assert.Equal(t, typ, kept[i].Type, "entry %d", i)
	}
	assert.Equal(t, "a2", kept[3].Actor)
	assert.Equal(t, "t2", kept[6].Actor)
}

func TestCollapseLogsFewAsks(t *testing.T) {
	logs := []game.LogEntry{
		entry(game.EntryCreate, "host"),
		entry(game.EntryAsk, "a1"),
	}
	assert.Len(t, CollapseLogs(logs), 2)
}

func TestCollapseLogsEmpty(t *testing.T) {
	assert.Empty(t, CollapseLogs(nil))
}

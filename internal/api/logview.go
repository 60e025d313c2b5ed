package api

import "github.com/arvindmenon/literature-be/internal/game"

// askTakeWindow is how many recent ASK/TAKE entries survive the display
// collapse; everything else is always kept.
const askTakeWindow = 3

// CollapseLogs trims a snapshot's history for display: only the most recent
// ASK/TAKE entries are kept, other entry types are kept in full, all in
// original chronological order. This is a view transform; the engine's own
// log is never touched.
func CollapseLogs(logs []game.LogEntry) []game.LogEntry {
	kept := make([]game.LogEntry, 0, len(logs))
	budget := askTakeWindow
	for i := len(logs); i > 0; i-- {
		entry := logs[i-1]
		if entry.Type == game.EntryAsk || entry.Type == game.EntryTake {
			if budget > 0 {
				kept = append(kept, entry)
				budget--
			}
		} else {
			kept = append(kept, entry)
		}
	}

	// kept was gathered newest-first; restore chronological order.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}

package core

import (
	"slices"

	"github.com/dkeye/Meet/internal/domain"
)

// Transcripts holds the in-memory chat log of every room that ever had a
// message. A transcript survives its room emptying, so people rejoining the
// same key see the earlier conversation.
type Transcripts struct {
	limit int
	logs  map[domain.RoomKey][]domain.ChatEntry
}

// NewTranscripts creates the store. limit caps entries per room, oldest
// first out; zero means unbounded.
func NewTranscripts(limit int) *Transcripts {
	if limit < 0 {
		limit = 0
	}
	return &Transcripts{
		limit: limit,
		logs:  make(map[domain.RoomKey][]domain.ChatEntry),
	}
}

func (t *Transcripts) Append(key domain.RoomKey, e domain.ChatEntry) {
	entries := append(t.logs[key], e)
	if t.limit > 0 && len(entries) > t.limit {
		entries = slices.Clone(entries[len(entries)-t.limit:])
	}
	t.logs[key] = entries
}

// Replay returns the transcript of key in insertion order.
func (t *Transcripts) Replay(key domain.RoomKey) []domain.ChatEntry {
	return slices.Clone(t.logs[key])
}

func (t *Transcripts) Len(key domain.RoomKey) int { return len(t.logs[key]) }

package core

import (
	"time"

	"github.com/dkeye/Meet/internal/domain"
)

// Presence remembers when each joined connection entered its room.
type Presence struct {
	joinedAt map[domain.ConnID]time.Time
}

func NewPresence() *Presence {
	return &Presence{joinedAt: make(map[domain.ConnID]time.Time)}
}

func (p *Presence) RecordJoin(id domain.ConnID, at time.Time) {
	p.joinedAt[id] = at
}

// TakeAndClear returns the join time of id and forgets it.
func (p *Presence) TakeAndClear(id domain.ConnID) (time.Time, bool) {
	at, ok := p.joinedAt[id]
	if ok {
		delete(p.joinedAt, id)
	}
	return at, ok
}

func (p *Presence) Len() int { return len(p.joinedAt) }

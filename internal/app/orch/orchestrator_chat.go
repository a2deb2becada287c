package orch

import (
	"encoding/json"
	"fmt"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

// Chat records a message in the sender's room transcript and delivers it to
// every member, the sender included.
func (o *Orchestrator) Chat(from domain.ConnID, payload json.RawMessage, sender string) error {
	key, ok := o.Rooms.RoomContaining(from)
	if !ok {
		return ErrNotInRoom
	}
	label, err := domain.NewSenderLabel(sender, o.maxSenderLen)
	if err != nil {
		return fmt.Errorf("chat from %s: %w", from, err)
	}
	if !o.Limiter.Allow(from) {
		return ErrRateLimited
	}

	e := domain.ChatEntry{Sender: label, Payload: payload, From: from, At: o.now()}
	o.Transcripts.Append(key, e)
	log.Debug().Str("module", "orch").Str("room", string(key)).Str("conn", string(from)).Str("sender", string(label)).Msg("chat message")

	o.broadcast(key, core.NewChatMessage(e))
	return nil
}

package orch

import (
	"slices"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

// Join admits id to key. Every member, the newcomer included, receives
// user-joined with the full roster, then the newcomer alone receives the
// room transcript in order. Joining the current room again is a no-op;
// joining another room leaves the current one first.
func (o *Orchestrator) Join(id domain.ConnID, key domain.RoomKey) error {
	if !o.Registry.Has(id) {
		return ErrNotConnected
	}
	if cur, ok := o.Rooms.RoomContaining(id); ok {
		if cur == key {
			log.Debug().Str("module", "orch").Str("conn", string(id)).Str("room", string(key)).Msg("already in room")
			return nil
		}
		o.leaveRoom(id, cur)
		log.Info().Str("module", "orch").Str("conn", string(id)).Str("from_room", string(cur)).Msg("moved out of room")
	}

	if _, err := o.Rooms.Join(key, id); err != nil {
		return err
	}
	o.Presence.RecordJoin(id, o.now())
	log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(key)).Msg("added to room")

	members := o.Rooms.MembersOf(key)
	o.broadcast(key, core.NewUserJoined(id, members))

	o.replay(id, key)
	return nil
}

// replay sends the transcript of key to id as one batch of chat-message
// frames, oldest first.
func (o *Orchestrator) replay(id domain.ConnID, key domain.RoomKey) {
	history := o.Transcripts.Replay(key)
	if len(history) == 0 {
		return
	}
	frames := make([]core.Frame, 0, len(history))
	for _, e := range history {
		f, err := core.Encode(core.NewChatMessage(e))
		if err != nil {
			log.Error().Err(err).Str("module", "orch").Str("room", string(key)).Msg("replay encode")
			continue
		}
		frames = append(frames, f)
	}
	if err := o.Registry.SendBatch(id, frames); err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("conn", string(id)).Msg("replay failed")
		return
	}
	log.Debug().Str("module", "orch").Str("conn", string(id)).Str("room", string(key)).Int("entries", len(frames)).Msg("transcript replayed")
}

// Leave takes id out of its room without closing the connection.
func (o *Orchestrator) Leave(id domain.ConnID) error {
	key, ok := o.Rooms.RoomContaining(id)
	if !ok {
		return ErrNotInRoom
	}
	o.leaveRoom(id, key)
	return nil
}

// leaveRoom notifies the other members, removes id and closes the room when
// it empties.
func (o *Orchestrator) leaveRoom(id domain.ConnID, key domain.RoomKey) {
	remaining := slices.DeleteFunc(o.Rooms.MembersOf(key), func(m domain.ConnID) bool { return m == id })
	if f, err := core.Encode(core.NewUserLeft(id)); err == nil {
		o.fanOut(key, remaining, f)
	}
	closed, _ := o.Rooms.Leave(key, id)

	ev := log.Info().Str("module", "orch").Str("conn", string(id)).Str("room", string(key)).Bool("room_closed", closed)
	if joinedAt, ok := o.Presence.TakeAndClear(id); ok {
		ev = ev.Dur("session", o.now().Sub(joinedAt))
	}
	ev.Msg("left room")
}

type RoomDetail struct {
	Name       domain.RoomKey  `json:"name"`
	Members    []domain.ConnID `json:"members"`
	Transcript int             `json:"transcript"`
}

func (o *Orchestrator) RoomsList() []core.RoomInfo {
	return o.Rooms.List()
}

func (o *Orchestrator) Room(key domain.RoomKey) (RoomDetail, bool) {
	if !o.Rooms.Has(key) {
		return RoomDetail{}, false
	}
	return RoomDetail{
		Name:       key,
		Members:    o.Rooms.MembersOf(key),
		Transcript: o.Transcripts.Len(key),
	}, true
}

// RoomOf reports the room id is in, if any.
func (o *Orchestrator) RoomOf(id domain.ConnID) (domain.RoomKey, bool) {
	return o.Rooms.RoomContaining(id)
}

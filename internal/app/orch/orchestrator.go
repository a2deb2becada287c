package orch

import (
	"errors"
	"time"

	"github.com/dkeye/Meet/internal/app"
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotConnected = errors.New("connection not registered")
	ErrNotInRoom    = errors.New("connection is not in a room")
	ErrRateLimited  = errors.New("chat rate limited")
)

type Options struct {
	Policy       app.Policy
	HistoryLimit int
	MaxSenderLen int
	ChatLimit    int
	ChatInterval time.Duration
	Now          func() time.Time
}

// Orchestrator owns all room, presence and transcript state and reacts to
// connection lifecycle events. Its methods must only be called from the Loop.
type Orchestrator struct {
	Registry    *app.Registry
	Rooms       *core.Directory
	Presence    *core.Presence
	Transcripts *core.Transcripts
	Relay       *app.Relay
	Limiter     *app.RateLimiter

	maxSenderLen int
	now          func() time.Time
}

func New(opts Options) *Orchestrator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	reg := app.NewRegistry(opts.Policy)
	return &Orchestrator{
		Registry:     reg,
		Rooms:        core.NewDirectory(),
		Presence:     core.NewPresence(),
		Transcripts:  core.NewTranscripts(opts.HistoryLimit),
		Relay:        &app.Relay{Registry: reg},
		Limiter:      app.NewRateLimiter(opts.ChatLimit, opts.ChatInterval),
		maxSenderLen: opts.MaxSenderLen,
		now:          opts.Now,
	}
}

// Connect registers the transport endpoint of a new connection. The
// connection starts outside of any room.
func (o *Orchestrator) Connect(id domain.ConnID, conn core.SignalConnection, clientToken string) {
	o.Registry.Bind(id, conn, clientToken, o.now())
}

// Disconnect purges every trace of id. Safe to call for unknown ids.
func (o *Orchestrator) Disconnect(id domain.ConnID) {
	if key, ok := o.Rooms.RoomContaining(id); ok {
		o.leaveRoom(id, key)
	}
	// Join and leave always pair, this only catches a stray record.
	o.Presence.TakeAndClear(id)
	o.Limiter.Forget(id)
	online, ok := o.Registry.Unbind(id, o.now())
	if ok {
		log.Info().Str("module", "orch").Str("conn", string(id)).Dur("online", online).Msg("disconnected")
	}
}

// broadcast sends v to every member of key in member-list order.
func (o *Orchestrator) broadcast(key domain.RoomKey, v any) {
	f, err := core.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Str("room", string(key)).Msg("broadcast encode")
		return
	}
	o.fanOut(key, o.Rooms.MembersOf(key), f)
}

func (o *Orchestrator) fanOut(key domain.RoomKey, members []domain.ConnID, f core.Frame) {
	sent := 0
	for _, m := range members {
		if err := o.Registry.Send(m, f); err != nil {
			log.Debug().Err(err).Str("module", "orch").Str("room", string(key)).Str("conn", string(m)).Msg("delivery failed")
			continue
		}
		sent++
	}
	log.Debug().Str("module", "orch").Str("room", string(key)).Int("sent_to", sent).Int("members", len(members)).Msg("broadcast result")
}

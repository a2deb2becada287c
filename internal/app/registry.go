package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrUnknownConn = errors.New("unknown connection")

type connEntry struct {
	Conn        core.SignalConnection
	ClientToken string
	ConnectedAt time.Time
}

// Registry maps live connection ids to their transport endpoint.
// It is owned by the orchestrator loop and not safe for concurrent use.
type Registry struct {
	policy Policy
	conns  map[domain.ConnID]*connEntry
}

func NewRegistry(policy Policy) *Registry {
	if policy == nil {
		policy = SimplePolicy{}
	}
	return &Registry{
		policy: policy,
		conns:  make(map[domain.ConnID]*connEntry),
	}
}

func (r *Registry) Bind(id domain.ConnID, conn core.SignalConnection, clientToken string, now time.Time) {
	r.conns[id] = &connEntry{Conn: conn, ClientToken: clientToken, ConnectedAt: now}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("client", clientToken).Msg("bound connection")
}

// Unbind forgets id and reports how long it was connected.
func (r *Registry) Unbind(id domain.ConnID, now time.Time) (time.Duration, bool) {
	e, ok := r.conns[id]
	if !ok {
		return 0, false
	}
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("unbind connection")
	return now.Sub(e.ConnectedAt), true
}

func (r *Registry) Has(id domain.ConnID) bool {
	_, ok := r.conns[id]
	return ok
}

func (r *Registry) Len() int { return len(r.conns) }

// Send hands f to the connection without blocking. A full buffer is resolved
// through the Policy.
func (r *Registry) Send(id domain.ConnID, f core.Frame) error {
	e, ok := r.conns[id]
	if !ok {
		return ErrUnknownConn
	}
	return r.deliver(id, e, e.Conn.TrySend(f))
}

// SendBatch hands all frames to the connection as one buffered unit, so a
// long batch never counts as a slow consumer.
func (r *Registry) SendBatch(id domain.ConnID, fs []core.Frame) error {
	e, ok := r.conns[id]
	if !ok {
		return ErrUnknownConn
	}
	if len(fs) == 0 {
		return nil
	}
	return r.deliver(id, e, e.Conn.TrySendBatch(fs))
}

func (r *Registry) deliver(id domain.ConnID, e *connEntry, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, core.ErrClosed) {
		return fmt.Errorf("send to %s: %w", id, err)
	}
	switch r.policy.OnBackPressure(id) {
	case KickMember:
		log.Warn().Str("module", "app.registry").Str("conn", string(id)).Msg("slow consumer, closing")
		e.Conn.Close()
	case DropFrame:
		log.Debug().Str("module", "app.registry").Str("conn", string(id)).Msg("slow consumer, frame dropped")
	case NoAction:
	}
	return fmt.Errorf("send to %s: %w", id, err)
}

// SendJSON encodes v and sends it to id.
func (r *Registry) SendJSON(id domain.ConnID, v any) error {
	f, err := core.Encode(v)
	if err != nil {
		return err
	}
	return r.Send(id, f)
}

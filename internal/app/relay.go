package app

import (
	"encoding/json"
	"errors"

	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrUnknownTarget = errors.New("signal target not connected")

// Relay forwards signaling payloads point to point. Room membership of either
// side is irrelevant.
type Relay struct {
	Registry *Registry
}

func (r *Relay) Forward(target, from domain.ConnID, payload json.RawMessage) error {
	if !r.Registry.Has(target) {
		log.Debug().Str("module", "app.relay").Str("from", string(from)).Str("to", string(target)).Msg("target gone")
		return ErrUnknownTarget
	}
	return r.Registry.SendJSON(target, core.NewSignal(from, payload))
}

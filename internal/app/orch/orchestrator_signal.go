package orch

import (
	"encoding/json"

	"github.com/dkeye/Meet/internal/domain"
)

// Signal forwards payload to target regardless of either side's room.
func (o *Orchestrator) Signal(from, target domain.ConnID, payload json.RawMessage) error {
	return o.Relay.Forward(target, from, payload)
}

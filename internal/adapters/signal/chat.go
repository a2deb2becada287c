package signal

import (
	"context"
	"encoding/json"

	"github.com/dkeye/Meet/internal/app/orch"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleChat(
	ctx context.Context,
	id domain.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	type chatPayload struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
		Sender  string          `json:"sender"`
	}
	var p chatPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad chat payload")
		ctl.sendError(conn, codeBadPayload)
		return
	}
	ctl.do(ctx, conn, func(o *orch.Orchestrator) error { return o.Chat(id, p.Payload, p.Sender) })
}

func (ctl *SignalWSController) handleRelay(
	ctx context.Context,
	id domain.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	type relayPayload struct {
		Type    string          `json:"type"`
		To      string          `json:"to"`
		Payload json.RawMessage `json:"payload"`
	}
	var p relayPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad signal payload")
		ctl.sendError(conn, codeBadPayload)
		return
	}
	target, err := domain.ParseConnID(p.To)
	if err != nil {
		ctl.sendError(conn, errorCode(err))
		return
	}
	ctl.do(ctx, conn, func(o *orch.Orchestrator) error { return o.Signal(id, target, p.Payload) })
}

package signal

import (
	"context"
	"encoding/json"

	"github.com/dkeye/Meet/internal/app/orch"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(
	ctx context.Context,
	id domain.ConnID,
	conn *WsSignalConn,
	data []byte,
) {
	type joinPayload struct {
		Type string `json:"type"`
		Room string `json:"room"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Debug().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(conn, codeBadPayload)
		return
	}
	key, err := domain.NewRoomKey(p.Room)
	if err != nil {
		ctl.sendError(conn, errorCode(err))
		return
	}

	log.Info().Str("module", "signal").Str("conn", string(id)).Str("room", string(key)).Msg("join")
	ctl.do(ctx, conn, func(o *orch.Orchestrator) error { return o.Join(id, key) })
}

// handleLeave leaves the current room, the connection stays open.
func (ctl *SignalWSController) handleLeave(
	ctx context.Context,
	id domain.ConnID,
	conn *WsSignalConn,
) {
	log.Info().Str("module", "signal").Str("conn", string(id)).Msg("leave")
	if ctl.do(ctx, conn, func(o *orch.Orchestrator) error { return o.Leave(id) }) {
		ctl.sendJSON(conn, map[string]any{
			"type": "left",
		})
	}
}

package signal

import (
	"context"

	"github.com/dkeye/Meet/internal/app/orch"
	"github.com/dkeye/Meet/internal/domain"
)

func (ctl *SignalWSController) handlePing(
	conn *WsSignalConn,
) {
	resp := struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	}
	ctl.sendJSON(conn, resp)
}

func (ctl *SignalWSController) handleWhoAmI(
	ctx context.Context,
	id domain.ConnID,
	conn *WsSignalConn,
) {
	resp := struct {
		Type string         `json:"type"`
		ID   domain.ConnID  `json:"id"`
		Room domain.RoomKey `json:"room,omitempty"`
	}{
		Type: "whoami",
		ID:   id,
	}
	ctl.do(ctx, conn, func(o *orch.Orchestrator) error {
		resp.Room, _ = o.RoomOf(id)
		return nil
	})
	ctl.sendJSON(conn, resp)
}

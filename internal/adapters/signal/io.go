package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dkeye/Meet/internal/app/orch"
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	ticker := time.NewTicker(ctl.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Msg("writePump ctx done")
			return
		case batch, ok := <-c.send:
			if !ok {
				return
			}
			for _, data := range batch {
				if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.opts.WriteWait)); err != nil {
					log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
					return
				}
				if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
					log.Debug().Err(err).Str("module", "signal").Msg("writePump write error")
					return
				}
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ctl.opts.WriteWait)); err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("writePump ping error")
				return
			}
		}
	}
}

// readPump owns the disconnect: whatever ends the read loop (peer close,
// missed pongs, kick, shutdown) results in exactly one Disconnect event.
func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, id domain.ConnID, c *WsSignalConn) {
	defer func() {
		err := ctl.Loop.Do(context.Background(), func(o *orch.Orchestrator) { o.Disconnect(id) })
		if err != nil {
			log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("disconnect not processed")
		}
		cancel()
		c.Close()
		log.Info().Str("module", "signal").Str("conn", string(id)).Msg("readPump closing")
	}()

	c.conn.SetReadLimit(ctl.opts.ReadLimit)
	extend := func() { _ = c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait)) }
	extend()
	c.conn.SetPongHandler(func(string) error {
		extend()
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("readPump read error")
			}
			return
		}
		extend()
		ctl.handleSignal(ctx, id, c, data)
	}
}

func (ctl *SignalWSController) handleSignal(ctx context.Context, id domain.ConnID, c *WsSignalConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Debug().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("bad json")
		ctl.sendError(c, codeBadPayload)
		return
	}

	switch env.Type {
	case "join-call":
		ctl.handleJoin(ctx, id, c, data)
	case "leave":
		ctl.handleLeave(ctx, id, c)
	case "signal":
		ctl.handleRelay(ctx, id, c, data)
	case "chat-message":
		ctl.handleChat(ctx, id, c, data)
	case "ping":
		ctl.handlePing(c)
	case "whoami":
		ctl.handleWhoAmI(ctx, id, c)
	default:
		log.Debug().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
		ctl.sendError(c, codeUnknownType)
	}
}

// do runs fn on the orchestrator loop and reports its result to the client.
func (ctl *SignalWSController) do(ctx context.Context, c *WsSignalConn, fn func(o *orch.Orchestrator) error) bool {
	var opErr error
	if err := ctl.Loop.Do(ctx, func(o *orch.Orchestrator) { opErr = fn(o) }); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("event dropped")
		return false
	}
	if opErr != nil {
		ctl.sendError(c, errorCode(opErr))
		return false
	}
	return true
}

func (ctl *SignalWSController) sendJSON(c *WsSignalConn, v any) {
	b, err := core.Encode(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

func (ctl *SignalWSController) sendError(c *WsSignalConn, code string) {
	ctl.sendJSON(c, core.NewErrorEvent(code))
}

package signal

import (
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/dkeye/Meet/internal/app/orch"
	"github.com/dkeye/Meet/internal/core"
	"github.com/dkeye/Meet/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type Options struct {
	ReadLimit      int64
	PingPeriod     time.Duration
	PongWait       time.Duration
	WriteWait      time.Duration
	SendBuffer     int
	AllowedOrigins []string
}

type SignalWSController struct {
	Loop     *orch.Loop
	opts     Options
	upgrader websocket.Upgrader
}

func NewSignalWSController(loop *orch.Loop, opts Options) *SignalWSController {
	ctl := &SignalWSController{Loop: loop, opts: opts}
	ctl.upgrader = websocket.Upgrader{CheckOrigin: ctl.checkOrigin}
	return ctl
}

// checkOrigin allows every origin unless a list is configured.
func (ctl *SignalWSController) checkOrigin(r *http.Request) bool {
	if len(ctl.opts.AllowedOrigins) == 0 {
		return true
	}
	return slices.Contains(ctl.opts.AllowedOrigins, r.Header.Get("Origin"))
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan []core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	return c.TrySendBatch([]core.Frame{f})
}

func (c *WsSignalConn) TrySendBatch(fs []core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrClosed
	}
	select {
	case c.send <- fs:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}

// HandleSignal upgrades the request and runs the connection until either side
// goes away. ctx is the server lifetime, not the request.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	clientToken := c.GetString("client_token")

	// Headers set by middleware (the session cookie) are not part of the
	// hijacked response unless passed explicitly.
	var respHeader http.Header
	if cookies := c.Writer.Header().Values("Set-Cookie"); len(cookies) > 0 {
		respHeader = http.Header{"Set-Cookie": cookies}
	}
	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, respHeader)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	id := domain.NewConnID()
	conn := &WsSignalConn{
		conn: ws,
		send: make(chan []core.Frame, ctl.opts.SendBuffer),
	}

	ctx, cancel := context.WithCancel(ctx)
	if err := ctl.Loop.Do(ctx, func(o *orch.Orchestrator) { o.Connect(id, conn, clientToken) }); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("conn", string(id)).Msg("register connection")
		cancel()
		conn.Close()
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(id)).Str("client", clientToken).Msg("new WS connection")

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, id, conn)
}

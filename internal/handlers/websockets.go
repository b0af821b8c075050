package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"arduino_agent/internal/logger"
	"arduino_agent/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxClientMsg    = 1 << 12
	defaultInterval = 1 * time.Second
	maxInterval     = 10 * time.Second
)

// Why a status frame was sent.
const (
	pushInitial = "initial"
	pushChange  = "change"
	pushRefresh = "refresh"
)

type statusFrame struct {
	Type   string `json:"type"` // always "status"
	Reason string `json:"reason"`
	Data   any    `json:"data"`
}

// Origins are open like the REST routes.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// statusStream feeds one client: a snapshot on connect, one after every
// status change (phase, upload result, board) and a refresh whenever the
// status stayed quiet for a full interval.
type statusStream struct {
	conn     *websocket.Conn
	monitor  service.Monitoring
	interval time.Duration
	log      *logger.Logger
}

// @Summary      Agent status stream
// @Description  Upgrades to a WebSocket and pushes {"type":"status","reason":"initial|change|refresh","data":AgentStatus}. Every phase change of an upload is pushed as it happens; a quiet stream is refreshed every interval (?interval=500ms or ?interval_ms=500, at most 10s).
// @Tags         status
// @Param        interval     query  string  false  "Refresh interval as a Go duration"
// @Param        interval_ms  query  int     false  "Refresh interval in milliseconds"
// @Success      101  {string}  string  "Switching Protocols"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	s := &statusStream{conn: conn, monitor: h.services.Monitoring, interval: interval, log: h.log}
	s.run(c.Request.Context())
}

func (s *statusStream) run(ctx context.Context) {
	// subscribe first so a change racing the initial snapshot is not lost
	changes, release := s.monitor.Subscribe()
	defer release()

	gone := make(chan struct{})
	go s.readUntilClosed(gone)

	if err := s.push(ctx, pushInitial); err != nil {
		s.debugw("ws_initial_push_failed", "err", err)
		return
	}

	refresh := time.NewTimer(s.interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		refresh.Stop()
		ping.Stop()
	}()

	for {
		reason := ""
		select {
		case <-gone:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.debugw("ws_ping_failed", "err", err)
				return
			}
			continue
		case <-changes:
			reason = pushChange
		case <-refresh.C:
			reason = pushRefresh
		}

		if err := s.push(ctx, reason); err != nil {
			s.debugw("ws_push_failed", "reason", reason, "err", err)
			return
		}
		if !refresh.Stop() {
			select {
			case <-refresh.C:
			default:
			}
		}
		refresh.Reset(s.interval)
	}
}

// push writes the current status snapshot.
func (s *statusStream) push(ctx context.Context, reason string) error {
	st, err := s.monitor.GetStatus(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Errorw("ws_get_status_failed", "err", err)
		}
		return err
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(statusFrame{Type: "status", Reason: reason, Data: st})
}

// readUntilClosed services control frames and closes gone once the client
// disconnects or stops answering pings. Clients send nothing else.
func (s *statusStream) readUntilClosed(gone chan<- struct{}) {
	defer close(gone)
	s.conn.SetReadLimit(maxClientMsg)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.debugw("ws_client_gone", "err", err)
			return
		}
	}
}

func (s *statusStream) debugw(msg string, kv ...interface{}) {
	if s.log != nil {
		s.log.Debugw(msg, kv...)
	}
}

// parseInterval reads ?interval=2s, falling back to ?interval_ms=2000, then
// to the default. Values outside (0, 10s] are ignored.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if d, err := time.ParseDuration(c.Query("interval")); err == nil && d > 0 && d <= maxInterval {
		return d
	}
	if ms, err := strconv.Atoi(c.Query("interval_ms")); err == nil && ms > 0 {
		if d := time.Duration(ms) * time.Millisecond; d <= maxInterval {
			return d
		}
	}
	return defaultInterval
}

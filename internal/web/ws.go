package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/termcastio/termcast-server/internal/metrics"
	"github.com/termcastio/termcast-server/internal/session"
)

const (
	// writeTimeout bounds every frame write so a dead peer cannot wedge
	// the writer goroutine.
	writeTimeout = 10 * time.Second

	// ctlBuffer is the queue of out-of-band frames (pongs, errors) between
	// the reader and the writer goroutine. Overflow drops; both are
	// best-effort.
	ctlBuffer = 8
)

// Server-to-client frame types. Live session events pass through with
// their own type strings (output, shell-opened, shell-closed, resize).
const (
	msgHello = "hello"
	msgBye   = "bye"
	msgPong  = "pong"
	msgError = "error"
)

// Client-to-server frame types.
const (
	msgInput     = "input"
	msgResize    = "resize"
	msgOpenShell = "open-shell"
	msgPing      = "ping"
)

// ServerMessage is one JSON frame sent to a viewer. Data is
// base64-encoded on the wire, per encoding/json []byte handling.
type ServerMessage struct {
	Type    string              `json:"type"`
	Session string              `json:"session,omitempty"`
	Shells  []session.ShellInfo `json:"shells,omitempty"`
	Replays []ShellReplay       `json:"replays,omitempty"`
	ShellID uint32              `json:"shell_id,omitempty"`
	Data    []byte              `json:"data,omitempty"`
	Seq     uint64              `json:"seq,omitempty"`
	Rows    uint32              `json:"rows,omitempty"`
	Cols    uint32              `json:"cols,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// ShellReplay carries the buffered scrollback of one shell inside the
// hello frame. Seq is the write position the replay ends at; later output
// frames continue from there.
type ShellReplay struct {
	ShellID uint32 `json:"shell_id"`
	Data    []byte `json:"data,omitempty"`
	Seq     uint64 `json:"seq"`
}

// ClientMessage is one JSON frame received from a viewer.
type ClientMessage struct {
	Type    string `json:"type"`
	ShellID uint32 `json:"shell_id,omitempty"`
	Data    []byte `json:"data,omitempty"`
	Rows    uint32 `json:"rows,omitempty"`
	Cols    uint32 `json:"cols,omitempty"`
}

// Hub serves viewer WebSocket connections and tracks them for draining.
// Upgraded connections are hijacked from the HTTP server, so
// http.Server.Shutdown never covers them; Drain does.
type Hub struct {
	registry *session.Registry
	logger   *zap.Logger
	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[*viewer]struct{}
	draining  bool
	wg        sync.WaitGroup
}

// viewer is one connected WebSocket client attached to a session.
type viewer struct {
	conn *websocket.Conn
	sess *session.Session

	ctl  chan ServerMessage
	quit chan struct{}
	stop sync.Once
}

func (v *viewer) shutdown() {
	v.stop.Do(func() { close(v.quit) })
}

func (v *viewer) write(msg ServerMessage) error {
	_ = v.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return v.conn.WriteJSON(msg)
}

// control queues an out-of-band frame for the writer goroutine. Frames
// are dropped when the writer is saturated.
func (v *viewer) control(msg ServerMessage) {
	select {
	case v.ctl <- msg:
	default:
	}
}

func (v *viewer) goodbye(reason string) {
	_ = v.write(ServerMessage{Type: msgBye})
	_ = v.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
		time.Now().Add(writeTimeout))
}

// NewHub creates a viewer hub bound to the session registry.
func NewHub(registry *session.Registry, logger *zap.Logger) *Hub {
	return &Hub{
		registry: registry,
		logger:   logger.Named("ws"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Viewer pages may be hosted anywhere; access control is
				// the session name itself plus the CORS policy on /api.
				return true
			},
		},
		clients: make(map[*viewer]struct{}),
	}
}

// HandleSession upgrades a viewer connection to the named session and
// serves the JSON protocol: a hello frame with per-shell replay, then
// live events, with input/resize/open-shell relayed back to the sharer.
func (h *Hub) HandleSession(c *gin.Context) {
	name := c.Param("name")
	sess, err := h.registry.Get(name)
	if err != nil {
		c.JSON(404, gin.H{"error": "session not found"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed",
			zap.String("session", name), zap.Error(err))
		return
	}

	v := &viewer{
		conn: conn,
		sess: sess,
		ctl:  make(chan ServerMessage, ctlBuffer),
		quit: make(chan struct{}),
	}
	if !h.add(v) {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		_ = conn.Close()
		return
	}

	metrics.WSClientConnected()
	h.logger.Info("Viewer connected",
		zap.String("session", name), zap.String("remote", c.ClientIP()))

	go h.serveViewer(v)
}

func (h *Hub) add(v *viewer) bool {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	if h.draining {
		return false
	}
	h.clients[v] = struct{}{}
	h.wg.Add(1)
	return true
}

func (h *Hub) remove(v *viewer) {
	h.clientsMu.Lock()
	delete(h.clients, v)
	h.clientsMu.Unlock()
	h.wg.Done()
}

// ClientCount returns the number of connected viewers.
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// serveViewer is the writer goroutine: replay snapshot first, then live
// events. All frame writes happen here; the reader goroutine hands pongs
// and errors over via the ctl channel.
func (h *Hub) serveViewer(v *viewer) {
	defer func() {
		_ = v.conn.Close()
		metrics.WSClientDisconnected()
		h.remove(v)
		h.logger.Info("Viewer disconnected", zap.String("session", v.sess.Name()))
	}()

	subID, events := v.sess.Subscribe()
	defer v.sess.Unsubscribe(subID)

	hello := ServerMessage{Type: msgHello, Session: v.sess.Name(), Shells: v.sess.Shells()}
	lastSeq := make(map[uint32]uint64, len(hello.Shells))
	for _, sh := range hello.Shells {
		data, seq, err := v.sess.Replay(sh.ID)
		if err != nil {
			continue
		}
		hello.Replays = append(hello.Replays, ShellReplay{ShellID: sh.ID, Data: data, Seq: seq})
		lastSeq[sh.ID] = seq
	}
	if err := v.write(hello); err != nil {
		return
	}

	go h.readViewer(v)

	for {
		select {
		case <-v.quit:
			v.goodbye("server shutting down")
			return

		case msg := <-v.ctl:
			if err := v.write(msg); err != nil {
				return
			}

		case ev, ok := <-events:
			if !ok {
				// Unsubscribed by the session for falling behind. The
				// client reconnects and gets a fresh replay.
				h.logger.Warn("Viewer lagged, dropping",
					zap.String("session", v.sess.Name()))
				v.goodbye("stream lagged")
				return
			}
			if ev.Type == session.EventClosed {
				v.goodbye("session closed")
				return
			}
			if ev.Type == session.EventOutput {
				// Output already covered by the replay snapshot is
				// skipped; events queued between Subscribe and Replay
				// would otherwise deliver those bytes twice.
				if ev.Seq <= lastSeq[ev.ShellID] {
					continue
				}
				lastSeq[ev.ShellID] = ev.Seq
			}
			msg := ServerMessage{
				Type:    string(ev.Type),
				ShellID: ev.ShellID,
				Data:    ev.Data,
				Seq:     ev.Seq,
				Rows:    ev.Rows,
				Cols:    ev.Cols,
			}
			if err := v.write(msg); err != nil {
				return
			}
		}
	}
}

// readViewer is the reader goroutine: client frames are relayed to the
// session's input queue. Closing quit tears the writer down with us.
func (h *Hub) readViewer(v *viewer) {
	defer v.shutdown()
	for {
		_, raw, err := v.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Debug("Viewer read failed",
					zap.String("session", v.sess.Name()), zap.Error(err))
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			v.control(ServerMessage{Type: msgError, Error: "malformed message"})
			continue
		}
		h.handleClientMessage(v, msg)
	}
}

func (h *Hub) handleClientMessage(v *viewer, msg ClientMessage) {
	var err error
	switch msg.Type {
	case msgPing:
		v.control(ServerMessage{Type: msgPong})
		return
	case msgInput:
		err = v.sess.SendInput(msg.ShellID, msg.Data)
	case msgResize:
		err = v.sess.RequestResize(msg.ShellID, msg.Rows, msg.Cols)
	case msgOpenShell:
		err = v.sess.RequestShell()
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}
	if err != nil {
		v.control(ServerMessage{Type: msgError, ShellID: msg.ShellID, Error: err.Error()})
	}
}

// Drain refuses new viewers, says goodbye to connected ones and blocks
// until their goroutines exit or ctx expires, at which point lingering
// connections are closed outright.
func (h *Hub) Drain(ctx context.Context) {
	h.clientsMu.Lock()
	h.draining = true
	viewers := make([]*viewer, 0, len(h.clients))
	for v := range h.clients {
		viewers = append(viewers, v)
	}
	h.clientsMu.Unlock()

	for _, v := range viewers {
		v.shutdown()
	}

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		h.logger.Info("All viewers disconnected")
	case <-ctx.Done():
		h.clientsMu.Lock()
		n := len(h.clients)
		for v := range h.clients {
			_ = v.conn.Close()
		}
		h.clientsMu.Unlock()
		h.logger.Warn("Forcibly closed lingering viewers", zap.Int("count", n))
	}
}

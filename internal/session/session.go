package session

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/termcastio/termcast-server/pkg/config"
)

// EventType identifies a session event delivered to subscribed viewers.
type EventType string

const (
	EventOutput      EventType = "output"
	EventShellOpened EventType = "shell-opened"
	EventShellClosed EventType = "shell-closed"
	EventResized     EventType = "resize"
	EventClosed      EventType = "closed"
)

// Event is a state change broadcast to every subscribed viewer.
type Event struct {
	Type    EventType `json:"type"`
	ShellID uint32    `json:"shell_id,omitempty"`
	Data    []byte    `json:"data,omitempty"`
	Seq     uint64    `json:"seq,omitempty"`
	Rows    uint32    `json:"rows,omitempty"`
	Cols    uint32    `json:"cols,omitempty"`
}

// InputKind identifies a viewer request relayed to the sharing client.
type InputKind string

const (
	InputData      InputKind = "data"
	InputResize    InputKind = "resize"
	InputOpenShell InputKind = "open-shell"
)

// Input is a viewer request consumed by the sharing client's stream.
type Input struct {
	Kind    InputKind
	ShellID uint32
	Data    []byte
	Rows    uint32
	Cols    uint32
}

// ShellInfo describes one shell's current state.
type ShellInfo struct {
	ID   uint32 `json:"id"`
	Rows uint32 `json:"rows"`
	Cols uint32 `json:"cols"`
	Seq  uint64 `json:"seq"`
}

// shell holds per-terminal state: the replay buffer, the last known size
// and the cumulative output byte count.
type shell struct {
	buffer *ringBuffer
	rows   uint32
	cols   uint32
	seq    uint64
}

// subscriberBuffer bounds each viewer's event channel. A viewer that falls
// this far behind is dropped rather than blocking the writer.
const subscriberBuffer = 256

// Session is the live state for one shared terminal session. It is written
// by exactly one sharing client (through the RPC stream) and observed by any
// number of viewers (through WebSocket subscriptions). All methods are safe
// for concurrent use.
type Session struct {
	name      string
	origin    string
	createdAt time.Time
	logger    *zap.Logger

	maxShells int
	bufSize   int

	mu          sync.Mutex
	shells      map[uint32]*shell
	subscribers map[uint64]chan Event
	nextSubID   uint64
	bytesTotal  uint64
	shellsTotal int
	closed      bool

	input chan Input
	done  chan struct{}
}

func newSession(name, origin string, cfg config.SessionConfig, logger *zap.Logger) *Session {
	backlog := cfg.InputBacklog
	if backlog < 1 {
		backlog = 1
	}
	return &Session{
		name:        name,
		origin:      origin,
		createdAt:   time.Now(),
		logger:      logger,
		maxShells:   cfg.MaxShells,
		bufSize:     cfg.BufferSize,
		shells:      make(map[uint32]*shell),
		subscribers: make(map[uint64]chan Event),
		input:       make(chan Input, backlog),
		done:        make(chan struct{}),
	}
}

// Name returns the session's URL name.
func (s *Session) Name() string { return s.name }

// Origin returns the origin reported by the sharing client.
func (s *Session) Origin() string { return s.origin }

// CreatedAt returns the session creation time.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Done is closed when the session has been closed.
func (s *Session) Done() <-chan struct{} { return s.done }

// OpenShell registers a new shell with the given id and size.
func (s *Session) OpenShell(id, rows, cols uint32) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if _, ok := s.shells[id]; ok {
		s.mu.Unlock()
		return ErrShellExists
	}
	if len(s.shells) >= s.maxShells {
		s.mu.Unlock()
		return ErrTooManyShells
	}
	s.shells[id] = &shell{
		buffer: newRingBuffer(s.bufSize),
		rows:   rows,
		cols:   cols,
	}
	s.shellsTotal++
	s.broadcastLocked(Event{Type: EventShellOpened, ShellID: id, Rows: rows, Cols: cols})
	s.mu.Unlock()
	return nil
}

// CloseShell removes a shell.
func (s *Session) CloseShell(id uint32) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if _, ok := s.shells[id]; !ok {
		s.mu.Unlock()
		return ErrShellNotFound
	}
	delete(s.shells, id)
	s.broadcastLocked(Event{Type: EventShellClosed, ShellID: id})
	s.mu.Unlock()
	return nil
}

// Write appends terminal output to a shell. seq is the cumulative byte
// count after data; writes at or before the shell's current sequence are
// replays and are dropped (wholly or in their overlapping prefix), making
// retransmission after reconnect safe. Returns the acknowledged sequence.
func (s *Session) Write(id uint32, seq uint64, data []byte) (uint64, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, ErrSessionClosed
	}
	sh, ok := s.shells[id]
	if !ok {
		s.mu.Unlock()
		return 0, ErrShellNotFound
	}
	if seq <= sh.seq {
		ack := sh.seq
		s.mu.Unlock()
		return ack, nil
	}
	fresh := data
	if delta := seq - sh.seq; delta < uint64(len(data)) {
		fresh = data[uint64(len(data))-delta:]
	}
	_, _ = sh.buffer.Write(fresh)
	sh.seq = seq
	s.bytesTotal += uint64(len(fresh))
	if len(fresh) > 0 {
		out := make([]byte, len(fresh))
		copy(out, fresh)
		s.broadcastLocked(Event{Type: EventOutput, ShellID: id, Data: out, Seq: seq})
	}
	ack := sh.seq
	s.mu.Unlock()
	return ack, nil
}

// Resize records a shell's new size and notifies viewers.
func (s *Session) Resize(id, rows, cols uint32) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	sh, ok := s.shells[id]
	if !ok {
		s.mu.Unlock()
		return ErrShellNotFound
	}
	sh.rows, sh.cols = rows, cols
	s.broadcastLocked(Event{Type: EventResized, ShellID: id, Rows: rows, Cols: cols})
	s.mu.Unlock()
	return nil
}

// Shells returns the open shells ordered by id.
func (s *Session) Shells() []ShellInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]ShellInfo, 0, len(s.shells))
	for id, sh := range s.shells {
		infos = append(infos, ShellInfo{ID: id, Rows: sh.rows, Cols: sh.cols, Seq: sh.seq})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Replay returns a copy of a shell's buffered output and its sequence.
func (s *Session) Replay(id uint32) ([]byte, uint64, error) {
	s.mu.Lock()
	sh, ok := s.shells[id]
	if !ok {
		s.mu.Unlock()
		return nil, 0, ErrShellNotFound
	}
	seq := sh.seq
	buf := sh.buffer
	s.mu.Unlock()
	return buf.Bytes(), seq, nil
}

// Subscribe registers a viewer and returns its id and event channel. The
// channel is closed when the viewer is dropped or the session closes.
func (s *Session) Subscribe() (uint64, <-chan Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan Event, subscriberBuffer)
	if s.closed {
		close(ch)
		return id, ch
	}
	s.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a viewer.
func (s *Session) Unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.subscribers[id]; ok {
		delete(s.subscribers, id)
		close(ch)
	}
}

// Viewers returns the number of subscribed viewers.
func (s *Session) Viewers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// broadcastLocked fans ev out to all subscribers. A subscriber with a full
// channel is dropped; it can re-subscribe and replay. Caller holds s.mu.
func (s *Session) broadcastLocked(ev Event) {
	for id, ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
			delete(s.subscribers, id)
			close(ch)
			s.logger.Debug("Dropped slow viewer",
				zap.String("session", s.name),
				zap.Uint64("subscriber", id),
			)
		}
	}
}

// SendInput relays viewer keystrokes to the sharing client.
func (s *Session) SendInput(shellID uint32, data []byte) error {
	return s.relay(Input{Kind: InputData, ShellID: shellID, Data: data})
}

// RequestResize asks the sharing client to resize a shell.
func (s *Session) RequestResize(shellID, rows, cols uint32) error {
	return s.relay(Input{Kind: InputResize, ShellID: shellID, Rows: rows, Cols: cols})
}

// RequestShell asks the sharing client to open a new shell. The proposed id
// is one past the highest seen.
func (s *Session) RequestShell() error {
	s.mu.Lock()
	var next uint32
	for id := range s.shells {
		if id >= next {
			next = id + 1
		}
	}
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}
	return s.relay(Input{Kind: InputOpenShell, ShellID: next})
}

func (s *Session) relay(in Input) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}
	select {
	case s.input <- in:
		return nil
	default:
		return ErrInputBacklog
	}
}

// Input returns the channel of pending viewer requests, consumed by the
// sharing client's stream handler.
func (s *Session) Input() <-chan Input { return s.input }

// close marks the session closed, notifies viewers and releases
// subscriptions. Idempotent; called by the registry.
func (s *Session) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.broadcastLocked(Event{Type: EventClosed})
	for id, ch := range s.subscribers {
		delete(s.subscribers, id)
		close(ch)
	}
	s.mu.Unlock()
	close(s.done)
}

// stats reports totals for the closure record.
func (s *Session) stats() (shells int, bytes uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shellsTotal, s.bytesTotal
}

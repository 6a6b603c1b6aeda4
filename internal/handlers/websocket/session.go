package websocket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/looplab/fsm"
	"github.com/xpanvictor/rehearse/pkg/Logger"
)

// Session lifecycle states.
const (
	StateIdle         = "idle"
	StateTranscribing = "transcribing"
	StateResponding   = "responding"
	StateReviewing    = "reviewing"
	StateClosed       = "closed"
)

// Session lifecycle events.
const (
	evTranscribe = "transcribe"
	evRespond    = "respond"
	evReview     = "review"
	evSettle     = "settle"
	evClose      = "close"
)

const writeWait = 10 * time.Second

// Session is one live connection. It carries no conversation state; the
// client sends the history with every event.
type Session struct {
	SessionID   uuid.UUID
	Conn        *websocket.Conn
	ConnectedAt time.Time

	ctx    context.Context
	cancel context.CancelFunc
	state  *fsm.FSM
	logger *Logger.Logger

	writeMu    sync.Mutex
	mutex      sync.RWMutex
	lastActive time.Time
	isActive   bool
}

// NewSession creates a new WebSocket session. The session context is
// canceled on Close, aborting any in-flight upstream call.
func NewSession(conn *websocket.Conn, logger *Logger.Logger) *Session {
	id := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		SessionID:   id,
		Conn:        conn,
		ConnectedAt: time.Now(),
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger.With("session_id", id.String()),
		lastActive:  time.Now(),
		isActive:    true,
	}
	s.state = newLifecycle(s.logger)
	return s
}

func newLifecycle(logger *Logger.Logger) *fsm.FSM {
	return fsm.NewFSM(
		StateIdle,
		fsm.Events{
			{Name: evTranscribe, Src: []string{StateIdle}, Dst: StateTranscribing},
			{Name: evRespond, Src: []string{StateTranscribing}, Dst: StateResponding},
			{Name: evReview, Src: []string{StateIdle}, Dst: StateReviewing},
			{Name: evSettle, Src: []string{StateTranscribing, StateResponding, StateReviewing}, Dst: StateIdle},
			{Name: evClose, Src: []string{StateIdle, StateTranscribing, StateResponding, StateReviewing}, Dst: StateClosed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debugf("session state %s -> %s (%s)", e.Src, e.Dst, e.Event)
			},
		},
	)
}

// Context is canceled when the client goes away.
func (s *Session) Context() context.Context {
	return s.ctx
}

// State returns the current lifecycle state.
func (s *Session) State() string {
	return s.state.Current()
}

// transition moves the lifecycle along. It runs on a background context so a
// canceled session can still settle or close.
func (s *Session) transition(event string) error {
	if err := s.state.Event(context.Background(), event); err != nil {
		return fmt.Errorf("session %s: %w", s.SessionID, err)
	}
	return nil
}

// settle returns to idle from any busy state. It is a no-op when the
// session is already idle or closed.
func (s *Session) settle() {
	if s.state.Can(evSettle) {
		_ = s.transition(evSettle)
	}
}

// Send writes one event frame. Writes are serialised per connection.
func (s *Session) Send(event EventName, data any) error {
	if !s.IsAlive() {
		return fmt.Errorf("session not active")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	_ = s.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.Conn.WriteJSON(WSEvent{Event: event, Data: data})
}

// SendError sends an error message to the client
func (s *Session) SendError(message, code string) error {
	return s.Send(EventError, ErrorMessage{
		Message: message,
		Code:    code,
	})
}

// Touch updates the last activity timestamp
func (s *Session) Touch() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.lastActive = time.Now()
}

// LastActive returns the last activity timestamp
func (s *Session) LastActive() time.Time {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.lastActive
}

// IsExpired checks if the session has expired based on inactivity
func (s *Session) IsExpired(timeout time.Duration) bool {
	return time.Since(s.LastActive()) > timeout
}

// IsAlive checks if the session is active
func (s *Session) IsAlive() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.isActive
}

// Close cancels in-flight work and closes the socket. Safe to call twice.
func (s *Session) Close() error {
	s.mutex.Lock()
	if !s.isActive {
		s.mutex.Unlock()
		return nil
	}
	s.isActive = false
	s.mutex.Unlock()

	s.cancel()
	if s.state.Can(evClose) {
		_ = s.transition(evClose)
	}
	return s.Conn.Close()
}

package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xpanvictor/rehearse/pkg/Logger"
)

const maxCleanupInterval = 5 * time.Minute

// ConnectionManager tracks live sessions and reaps idle ones.
type ConnectionManager struct {
	logger         *Logger.Logger
	sessions       map[uuid.UUID]*Session
	mutex          sync.RWMutex
	cleanupTicker  *time.Ticker
	stopCleanup    chan struct{}
	closeOnce      sync.Once
	sessionTimeout time.Duration
}

type SessionStats struct {
	SessionID   string    `json:"session_id"`
	State       string    `json:"state"`
	ConnectedAt time.Time `json:"connected_at"`
	LastActive  time.Time `json:"last_active"`
}

type Stats struct {
	ActiveSessions int            `json:"active_sessions"`
	SessionTimeout string         `json:"session_timeout"`
	Sessions       []SessionStats `json:"sessions"`
}

// NewConnectionManager creates a new connection manager. A non-positive
// timeout disables reaping.
func NewConnectionManager(logger *Logger.Logger, sessionTimeout time.Duration) *ConnectionManager {
	cm := &ConnectionManager{
		logger:         logger.Named("connections"),
		sessions:       make(map[uuid.UUID]*Session),
		stopCleanup:    make(chan struct{}),
		sessionTimeout: sessionTimeout,
	}

	if sessionTimeout > 0 {
		cm.startCleanupRoutine()
	}

	return cm
}

// RegisterConnection registers a new session
func (cm *ConnectionManager) RegisterConnection(session *Session) {
	cm.mutex.Lock()
	cm.sessions[session.SessionID] = session
	cm.mutex.Unlock()

	cm.logger.Infof("Registered session %s (%d active)", session.SessionID, cm.GetSessionCount())
}

// UnregisterConnection closes and removes a session
func (cm *ConnectionManager) UnregisterConnection(sessionID uuid.UUID) {
	cm.mutex.Lock()
	session, exists := cm.sessions[sessionID]
	delete(cm.sessions, sessionID)
	cm.mutex.Unlock()

	if !exists {
		return
	}
	if err := session.Close(); err != nil {
		cm.logger.Debugf("Error closing session %s: %v", sessionID, err)
	}
	cm.logger.Infof("Unregistered session %s (connected for %v)", sessionID, time.Since(session.ConnectedAt))
}

// GetSessionCount returns the number of active sessions
func (cm *ConnectionManager) GetSessionCount() int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	return len(cm.sessions)
}

func (cm *ConnectionManager) startCleanupRoutine() {
	interval := cm.sessionTimeout
	if interval > maxCleanupInterval {
		interval = maxCleanupInterval
	}
	cm.cleanupTicker = time.NewTicker(interval)

	go func() {
		for {
			select {
			case <-cm.cleanupTicker.C:
				cm.cleanupExpiredSessions()
			case <-cm.stopCleanup:
				cm.cleanupTicker.Stop()
				return
			}
		}
	}()
}

// cleanupExpiredSessions closes sessions idle for longer than the timeout.
// The read loop of each closed session then unregisters it.
func (cm *ConnectionManager) cleanupExpiredSessions() {
	cm.mutex.RLock()
	expired := make([]*Session, 0)
	for _, session := range cm.sessions {
		if session.IsExpired(cm.sessionTimeout) {
			expired = append(expired, session)
		}
	}
	cm.mutex.RUnlock()

	for _, session := range expired {
		cm.logger.Infof("Cleaning up expired session %s", session.SessionID)
		cm.UnregisterConnection(session.SessionID)
	}

	if len(expired) > 0 {
		cm.logger.Infof("Cleaned up %d expired sessions", len(expired))
	}
}

// Close shuts down the connection manager and every live session.
func (cm *ConnectionManager) Close() error {
	cm.closeOnce.Do(func() { close(cm.stopCleanup) })

	cm.mutex.Lock()
	sessions := cm.sessions
	cm.sessions = make(map[uuid.UUID]*Session)
	cm.mutex.Unlock()

	for id, session := range sessions {
		if err := session.Close(); err != nil {
			cm.logger.Debugf("Error closing session %s: %v", id, err)
		}
	}

	cm.logger.Infof("Connection manager closed (%d sessions)", len(sessions))
	return nil
}

// GetStats returns connection manager statistics
func (cm *ConnectionManager) GetStats() Stats {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	stats := Stats{
		ActiveSessions: len(cm.sessions),
		SessionTimeout: cm.sessionTimeout.String(),
		Sessions:       make([]SessionStats, 0, len(cm.sessions)),
	}
	for _, session := range cm.sessions {
		stats.Sessions = append(stats.Sessions, SessionStats{
			SessionID:   session.SessionID.String(),
			State:       session.State(),
			ConnectedAt: session.ConnectedAt,
			LastActive:  session.LastActive(),
		})
	}

	return stats
}

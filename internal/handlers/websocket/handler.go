package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/xpanvictor/rehearse/internal/config"
	"github.com/xpanvictor/rehearse/pkg/Logger"
)

// inboundQueue bounds frames read ahead of the one being processed.
const inboundQueue = 16

// WebSocketHandler upgrades clients and runs one relay loop per connection.
type WebSocketHandler struct {
	logger            *Logger.Logger
	relay             *Relay
	connectionManager *ConnectionManager
	upgrader          websocket.Upgrader
	maxMessageBytes   int64
}

func NewWebSocketHandler(
	logger *Logger.Logger,
	relay *Relay,
	connectionManager *ConnectionManager,
	cfg config.RelayConfig,
) *WebSocketHandler {
	return &WebSocketHandler{
		logger:            logger.Named("ws"),
		relay:             relay,
		connectionManager: connectionManager,
		maxMessageBytes:   cfg.MaxMessageBytes,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers WebSocket routes
func (h *WebSocketHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/ws", h.HandleWebSocket)
	router.GET("/ws/stats", h.HandleStats)
}

// HandleWebSocket handles a practice session connection
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("WebSocket upgrade failed: %v", err)
		return
	}
	if h.maxMessageBytes > 0 {
		conn.SetReadLimit(h.maxMessageBytes)
	}

	session := NewSession(conn, h.logger)
	h.connectionManager.RegisterConnection(session)
	defer h.connectionManager.UnregisterConnection(session.SessionID)

	h.logger.Infof("Client connected: %s (%s)", session.SessionID, c.ClientIP())
	h.handleConnection(session)
	h.logger.Infof("Client disconnected: %s", session.SessionID)
}

// HandleStats provides connection statistics
// @Summary Relay statistics
// @Description Live practice sessions and their lifecycle state
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ws/stats [get]
func (h *WebSocketHandler) HandleStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"data":   h.connectionManager.GetStats(),
	})
}

// handleConnection reads frames and hands them to a single worker, so events
// from one client are processed in order while a disconnect is still seen
// promptly and cancels in-flight work.
func (h *WebSocketHandler) handleConnection(session *Session) {
	frames := make(chan []byte, inboundQueue)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for raw := range frames {
			h.relay.Dispatch(session, raw)
		}
	}()

	for {
		messageType, data, err := session.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) && session.IsAlive() {
				h.logger.Warnf("WebSocket read error for session %s: %v", session.SessionID, err)
			}
			break
		}

		session.Touch()

		if messageType != websocket.TextMessage {
			h.relay.emitError(session, MsgInvalidFormat, "")
			continue
		}

		select {
		case frames <- data:
		case <-session.Context().Done():
		}
	}

	_ = session.Close()
	close(frames)
	<-done
}

// Close shuts down the WebSocket handler
func (h *WebSocketHandler) Close() error {
	return h.connectionManager.Close()
}

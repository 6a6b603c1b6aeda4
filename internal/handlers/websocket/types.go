package websocket

import (
	"encoding/json"

	"github.com/xpanvictor/rehearse/internal/types"
)

// EventName identifies a frame on the wire. Every frame is
// {"event": <name>, "data": {...}}.
type EventName string

const (
	// client -> server
	EventAudioData  EventName = "audio_data"
	EventEndSession EventName = "end_session"

	// server -> client
	EventTranscription   EventName = "transcription"
	EventAIResponse      EventName = "ai_response"
	EventSessionFeedback EventName = "session_feedback"
	EventError           EventName = "error"
)

// WSMessage is an inbound frame. Data is decoded once the event is known.
type WSMessage struct {
	Event EventName       `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// WSEvent is an outbound frame.
type WSEvent struct {
	Event EventName `json:"event"`
	Data  any       `json:"data"`
}

// AudioDataMessage carries one base64 encoded recording chunk.
type AudioDataMessage struct {
	Audio               string                    `json:"audio"`
	Scenario            string                    `json:"scenario"`
	ConversationHistory types.ConversationHistory `json:"conversation_history"`
	IsFinal             bool                      `json:"is_final"`
}

type EndSessionMessage struct {
	Scenario            string                    `json:"scenario"`
	ConversationHistory types.ConversationHistory `json:"conversation_history"`
}

type TranscriptionMessage struct {
	Text    string `json:"text"`
	IsFinal bool   `json:"is_final"`
}

type AIResponseMessage struct {
	Text                string                    `json:"text"`
	ConversationHistory types.ConversationHistory `json:"conversation_history"`
}

type SessionFeedbackMessage struct {
	Feedback string `json:"feedback"`
}

// ErrorMessage contains error information
type ErrorMessage struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

const (
	MsgInvalidFormat      = "Invalid message format"
	MsgInvalidScenario    = "Invalid scenario"
	MsgTranscribeFailed   = "Failed to transcribe audio"
	MsgMissingAudio       = "Missing audio data"
	MsgInvalidAudio       = "Invalid audio encoding"
	MsgInternal           = "Internal server error"
	MsgModelUnavailable   = "Model unavailable"
	MsgUnknownEventPrefix = "Unknown event: "
)

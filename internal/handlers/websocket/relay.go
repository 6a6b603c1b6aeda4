package websocket

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/xpanvictor/rehearse/internal/domains/conversation"
	"github.com/xpanvictor/rehearse/internal/domains/scenario"
	"github.com/xpanvictor/rehearse/pkg/Logger"
	"github.com/xpanvictor/rehearse/pkg/io/stt"
)

// Relay turns inbound events into transcription and model calls and emits
// the results on the same session. Handler failures never close the
// connection; each one becomes a single error event.
type Relay struct {
	transcriber     stt.Transcriber
	conversation    conversation.ConversationService
	scenarios       scenario.Registry
	surfaceUpstream bool
	logger          *Logger.Logger
}

func NewRelay(
	transcriber stt.Transcriber,
	conversationService conversation.ConversationService,
	scenarios scenario.Registry,
	surfaceUpstreamErrors bool,
	logger *Logger.Logger,
) *Relay {
	return &Relay{
		transcriber:     transcriber,
		conversation:    conversationService,
		scenarios:       scenarios,
		surfaceUpstream: surfaceUpstreamErrors,
		logger:          logger.Named("relay"),
	}
}

// Dispatch handles one inbound frame.
func (r *Relay) Dispatch(s *Session, raw []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Errorf("Panic recovered in session %s: %v", s.SessionID, rec)
			s.settle()
			r.emitError(s, MsgInternal, "")
		}
	}()

	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		r.logger.Debugf("Failed to unmarshal WebSocket message: %v", err)
		r.emitError(s, MsgInvalidFormat, "")
		return
	}

	switch msg.Event {
	case EventAudioData:
		var payload AudioDataMessage
		if err := decodeData(msg.Data, &payload); err != nil {
			r.emitError(s, MsgInvalidFormat, "")
			return
		}
		if !hasField(msg.Data, "audio") {
			r.emitError(s, MsgMissingAudio, "")
			return
		}
		r.HandleAudioData(s, payload)

	case EventEndSession:
		var payload EndSessionMessage
		if err := decodeData(msg.Data, &payload); err != nil {
			r.emitError(s, MsgInvalidFormat, "")
			return
		}
		r.HandleEndSession(s, payload)

	default:
		r.logger.Warnf("Unknown event %q in session %s", msg.Event, s.SessionID)
		r.emitError(s, MsgUnknownEventPrefix+string(msg.Event), "")
	}
}

// HandleAudioData transcribes one chunk and, for the final chunk, asks the
// persona for its reply. An empty audio string is an empty chunk and still
// reaches the transcriber.
func (r *Relay) HandleAudioData(s *Session, msg AudioDataMessage) {
	audio, err := decodeAudio(msg.Audio)
	if err != nil {
		r.logger.Debugf("bad audio payload in session %s: %v", s.SessionID, err)
		r.emitError(s, MsgInvalidAudio, "")
		return
	}

	if err := s.transition(evTranscribe); err != nil {
		r.logger.Debugf("dropping audio: %v", err)
		return
	}
	defer s.settle()

	out, err := r.transcriber.Transcribe(s.Context(), stt.NewAudioInput(audio, "audio/webm"))
	text := strings.TrimSpace(out.Content)
	if err != nil || text == "" {
		if err == nil {
			err = stt.ErrNoTranscript
		}
		r.logger.Warnf("transcription failed in session %s (%s): %v", s.SessionID, r.transcriber.Name(), err)
		r.emitError(s, MsgTranscribeFailed, "")
		return
	}

	r.emit(s, EventTranscription, TranscriptionMessage{Text: text, IsFinal: msg.IsFinal})
	if !msg.IsFinal {
		return
	}

	sc, err := r.scenarios.Resolve(msg.Scenario)
	if err != nil {
		r.emitError(s, MsgInvalidScenario, "")
		return
	}

	if err := s.transition(evRespond); err != nil {
		r.logger.Debugf("dropping reply: %v", err)
		return
	}

	reply, err := r.conversation.Respond(s.Context(), text, sc.ID, msg.ConversationHistory)
	answer, ok := r.resolve(s, conversation.OpReply, reply, err)
	if !ok {
		return
	}

	r.emit(s, EventAIResponse, AIResponseMessage{
		Text:                answer,
		ConversationHistory: msg.ConversationHistory.Extend(text, answer),
	})
}

// HandleEndSession produces exactly one session_feedback or one error.
func (r *Relay) HandleEndSession(s *Session, msg EndSessionMessage) {
	sc, err := r.scenarios.Resolve(msg.Scenario)
	if err != nil {
		r.emitError(s, MsgInvalidScenario, "")
		return
	}

	if err := s.transition(evReview); err != nil {
		r.logger.Debugf("dropping end_session: %v", err)
		return
	}
	defer s.settle()

	reply, err := r.conversation.Feedback(s.Context(), sc.ID, msg.ConversationHistory)
	feedback, ok := r.resolve(s, conversation.OpFeedback, reply, err)
	if !ok {
		return
	}

	r.emit(s, EventSessionFeedback, SessionFeedbackMessage{Feedback: feedback})
}

// resolve decides what the client sees for a model result. On false an
// error has already been emitted, or the client is gone.
func (r *Relay) resolve(s *Session, op conversation.Op, reply conversation.Reply, err error) (string, bool) {
	if err == nil {
		r.logger.Debugf("%s from %s in %v for session %s", op, reply.Provider, reply.Latency, s.SessionID)
		return reply.Text, true
	}
	if s.Context().Err() != nil {
		return "", false
	}
	if errors.Is(err, scenario.ErrInvalidScenario) {
		r.emitError(s, MsgInvalidScenario, "")
		return "", false
	}

	var ue *conversation.UpstreamError
	if errors.As(err, &ue) {
		if r.surfaceUpstream {
			r.emitError(s, MsgModelUnavailable, ue.Kind.Code())
			return "", false
		}
		return r.conversation.Fallback(op), true
	}

	r.logger.Errorf("%s failed in session %s: %v", op, s.SessionID, err)
	r.emitError(s, MsgInternal, "")
	return "", false
}

func (r *Relay) emit(s *Session, event EventName, data any) {
	if err := s.Send(event, data); err != nil {
		r.logger.Debugf("send %s to session %s failed: %v", event, s.SessionID, err)
	}
}

func (r *Relay) emitError(s *Session, message, code string) {
	if err := s.SendError(message, code); err != nil {
		r.logger.Debugf("send error to session %s failed: %v", s.SessionID, err)
	}
}

func decodeData(raw json.RawMessage, v any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// hasField reports whether the data object carries key, even when its value
// is empty.
func hasField(raw json.RawMessage, key string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	_, ok := fields[key]
	return ok
}

// decodeAudio accepts padded or unpadded standard base64, with or without a
// data URL prefix.
func decodeAudio(encoded string) ([]byte, error) {
	if i := strings.Index(encoded, ";base64,"); i >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[i+len(";base64,"):]
	}
	if b, err := base64.StdEncoding.DecodeString(encoded); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(encoded)
}

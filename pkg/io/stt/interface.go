package stt

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoTranscript    = errors.New("no transcript produced")
	ErrUnknownProvider = errors.New("unknown transcription provider")
)

// AudioInput is one opaque client chunk. It is never buffered or reassembled.
type AudioInput struct {
	ID         uuid.UUID
	Data       []byte
	MimeType   string
	ReceivedAt time.Time
}

func NewAudioInput(data []byte, mimeType string) *AudioInput {
	return &AudioInput{
		ID:         uuid.New(),
		Data:       data,
		MimeType:   mimeType,
		ReceivedAt: time.Now(),
	}
}

type STTOutput struct {
	Content        string
	ID             uuid.UUID // uuid from input
	STTGeneratedAt time.Time
	Language       string
}

// Transcriber turns audio bytes into text. An empty Content or a non-nil
// error both mean no text is available for the chunk.
type Transcriber interface {
	Transcribe(ctx context.Context, in *AudioInput) (STTOutput, error)
	Name() string
}

package stt

import (
	"context"
	"time"
)

// PlaceholderTranscript is what the stub returns for every chunk.
const PlaceholderTranscript = "This is a placeholder for the transcribed text. " +
	"In the actual implementation, this would be the result of processing the audio data through speech recognition."

// StubTranscriber is NOT a speech recognizer. It ignores the audio, waits a
// fixed delay and returns PlaceholderTranscript. Swap it for whisper, openai
// or cloudspeech to get real transcripts.
type StubTranscriber struct {
	delay time.Duration
	text  string
}

func NewStubTranscriber(delay time.Duration) *StubTranscriber {
	return &StubTranscriber{delay: delay, text: PlaceholderTranscript}
}

func (s *StubTranscriber) Name() string { return "stub" }

func (s *StubTranscriber) Transcribe(ctx context.Context, in *AudioInput) (STTOutput, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return STTOutput{}, ctx.Err()
		case <-timer.C:
		}
	}
	return STTOutput{
		Content:        s.text,
		ID:             in.ID,
		STTGeneratedAt: time.Now(),
		Language:       "en",
	}, nil
}

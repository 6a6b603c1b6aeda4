package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sdk "github.com/sashabaranov/go-openai"
	"github.com/xpanvictor/rehearse/pkg/io/stt"
)

type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	Language string
}

// Transcriber sends each chunk to the hosted OpenAI transcription endpoint.
type Transcriber struct {
	client   *sdk.Client
	model    string
	language string
}

func New(cfg Config) (*Transcriber, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is not configured")
	}
	conf := sdk.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = sdk.Whisper1
	}
	return &Transcriber{
		client:   sdk.NewClientWithConfig(conf),
		model:    model,
		language: cfg.Language,
	}, nil
}

func (t *Transcriber) Name() string { return "openai" }

func (t *Transcriber) Transcribe(ctx context.Context, in *stt.AudioInput) (stt.STTOutput, error) {
	if in == nil || len(in.Data) == 0 {
		return stt.STTOutput{}, stt.ErrNoTranscript
	}

	resp, err := t.client.CreateTranscription(ctx, sdk.AudioRequest{
		Model: t.model,
		// the filename extension tells the endpoint how to decode the chunk
		FilePath: "audio.webm",
		Reader:   bytes.NewReader(in.Data),
		Language: t.language,
		Format:   sdk.AudioResponseFormatJSON,
	})
	if err != nil {
		var apiErr *sdk.APIError
		if errors.As(err, &apiErr) {
			return stt.STTOutput{}, fmt.Errorf("openai transcription failed (status %d): %w", apiErr.HTTPStatusCode, err)
		}
		return stt.STTOutput{}, fmt.Errorf("openai transcription failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return stt.STTOutput{}, stt.ErrNoTranscript
	}
	lang := resp.Language
	if lang == "" {
		lang = t.language
	}

	return stt.STTOutput{
		Content:        text,
		ID:             in.ID,
		STTGeneratedAt: time.Now(),
		Language:       lang,
	}, nil
}

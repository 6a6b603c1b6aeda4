package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/xpanvictor/rehearse/pkg/Logger"
	"github.com/xpanvictor/rehearse/pkg/io/stt"
)

// TranscriptionResponse represents the response from Whisper STT service
type TranscriptionResponse struct {
	Text     string                 `json:"text"`
	Language string                 `json:"language"`
	Segments []TranscriptionSegment `json:"segments,omitempty"`
}

// TranscriptionSegment represents a timed segment of transcription
type TranscriptionSegment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	ID    int     `json:"id"`
}

// WhisperClient posts chunks to a self-hosted whisper-asr-webservice.
// The chunk is forwarded as-is; ffmpeg on the server side decodes webm/opus.
type WhisperClient struct {
	baseURL    string
	language   string
	httpClient *http.Client
	logger     *Logger.Logger
}

func NewWhisperClient(baseURL, language string, logger *Logger.Logger) *WhisperClient {
	if language == "" {
		language = "en"
	}
	return &WhisperClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (w *WhisperClient) Name() string { return "whisper" }

// Transcribe implements stt.Transcriber.
func (w *WhisperClient) Transcribe(ctx context.Context, in *stt.AudioInput) (stt.STTOutput, error) {
	if in == nil || len(in.Data) == 0 {
		return stt.STTOutput{}, stt.ErrNoTranscript
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("audio_file", "audio.webm")
	if err != nil {
		return stt.STTOutput{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(in.Data); err != nil {
		return stt.STTOutput{}, fmt.Errorf("failed to write audio data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return stt.STTOutput{}, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	q := url.Values{}
	q.Set("encode", "true")
	q.Set("task", "transcribe")
	q.Set("language", w.language)
	q.Set("output", "json")
	requestURL := w.baseURL + "/asr?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, &body)
	if err != nil {
		return stt.STTOutput{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return stt.STTOutput{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return stt.STTOutput{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		w.logger.Errorf("Whisper service error (status %d): %s", resp.StatusCode, string(responseBody))
		return stt.STTOutput{}, fmt.Errorf("whisper service returned status %d", resp.StatusCode)
	}

	var transcription TranscriptionResponse
	if err := json.Unmarshal(responseBody, &transcription); err != nil {
		// some deployments answer with plain text even when json is requested
		transcription = TranscriptionResponse{Text: string(responseBody), Language: w.language}
	}

	text := strings.TrimSpace(transcription.Text)
	if text == "" {
		return stt.STTOutput{}, stt.ErrNoTranscript
	}
	if transcription.Language == "" {
		transcription.Language = w.language
	}

	w.logger.Debugf("Whisper transcription: %s (language: %s)", text, transcription.Language)

	return stt.STTOutput{
		Content:        text,
		ID:             in.ID,
		STTGeneratedAt: time.Now(),
		Language:       transcription.Language,
	}, nil
}

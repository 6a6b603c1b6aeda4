package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xpanvictor/rehearse/pkg/io/stt"
)

func TestTranscribe(t *testing.T) {
	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			t.Errorf("Expected /v1/audio/transcriptions, got %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("Expected multipart body: %v", err)
		}
		gotModel = r.FormValue("model")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"I led the migration project."}`))
	}))
	defer srv.Close()

	tr, err := New(Config{APIKey: "test", BaseURL: srv.URL + "/v1", Language: "en"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	in := stt.NewAudioInput([]byte("chunk"), "audio/webm")
	out, err := tr.Transcribe(context.Background(), in)
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if out.Content != "I led the migration project." {
		t.Errorf("Unexpected transcript %q", out.Content)
	}
	if out.Language != "en" {
		t.Errorf("Expected configured language fallback, got %q", out.Language)
	}
	if gotModel != "whisper-1" {
		t.Errorf("Expected default model whisper-1, got %q", gotModel)
	}
}

func TestTranscribeEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":""}`))
	}))
	defer srv.Close()

	tr, _ := New(Config{APIKey: "test", BaseURL: srv.URL + "/v1"})
	_, err := tr.Transcribe(context.Background(), stt.NewAudioInput([]byte("chunk"), "audio/webm"))
	if !errors.Is(err, stt.ErrNoTranscript) {
		t.Errorf("Expected ErrNoTranscript, got %v", err)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("Expected error without API key")
	}
}

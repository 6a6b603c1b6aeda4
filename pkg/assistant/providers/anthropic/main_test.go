package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xpanvictor/rehearse/pkg/assistant"
)

func TestProcessPrompt(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Expected /v1/messages, got %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-sonnet-20240229",
			"content":[{"type":"text","text":"Tell me more."}],"stop_reason":"end_turn",
			"usage":{"input_tokens":10,"output_tokens":4}}`))
	}))
	defer srv.Close()

	p := New(Config{APIKey: "test", BaseURL: srv.URL})
	out, err := p.ProcessPrompt(context.Background(), assistant.NewAssistantInput(
		[]assistant.AssistantMessage{
			assistant.NewMessage(assistant.SYSTEM, "You are a team lead."),
			assistant.NewMessage(assistant.USER, "I shipped the fix."),
		},
		"claude-3-sonnet-20240229", 1000, 0.7,
	))
	if err != nil {
		t.Fatalf("ProcessPrompt returned error: %v", err)
	}
	if out.Response.Content != "Tell me more." {
		t.Errorf("Unexpected reply %q", out.Response.Content)
	}

	if _, ok := body["system"]; !ok {
		t.Error("Expected system prompt to be sent out of band")
	}
	if msgs, ok := body["messages"].([]any); !ok || len(msgs) != 1 {
		t.Errorf("Expected one dialogue message, got %v", body["messages"])
	}
	if body["max_tokens"] != float64(1000) {
		t.Errorf("Expected max_tokens 1000, got %v", body["max_tokens"])
	}
}

func TestProcessPromptRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad"}}`))
	}))
	defer srv.Close()

	p := New(Config{APIKey: "test", BaseURL: srv.URL})
	_, err := p.ProcessPrompt(context.Background(), assistant.NewAssistantInput(
		[]assistant.AssistantMessage{assistant.NewMessage(assistant.USER, "hi")}, "m", 10, 0,
	))

	var pe *assistant.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if pe.StatusCode != http.StatusBadRequest || !pe.Refused() {
		t.Errorf("Expected refused 400, got %d", pe.StatusCode)
	}
}

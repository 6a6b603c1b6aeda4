package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/xpanvictor/rehearse/pkg/assistant"
)

func TestConvertHistoryRoles(t *testing.T) {
	history := convertHistory([]assistant.AssistantMessage{
		assistant.NewMessage(assistant.ASSISTANT, "What did you ship?"),
		assistant.NewMessage(assistant.USER, "The login fix."),
		assistant.NewMessage(assistant.SYSTEM, "client note"),
	})

	want := []string{"model", "user", "user"}
	if len(history) != len(want) {
		t.Fatalf("Expected %d entries, got %d", len(want), len(history))
	}
	for i, role := range want {
		if history[i].Role != role {
			t.Errorf("Entry %d: expected role %q, got %q", i, role, history[i].Role)
		}
	}
	if txt, ok := history[1].Parts[0].(genai.Text); !ok || string(txt) != "The login fix." {
		t.Errorf("Unexpected parts %+v", history[1].Parts)
	}
}

func TestFirstText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{
				genai.Blob{MIMEType: "image/png"},
				genai.Text("Tell me more."),
				genai.Text("ignored"),
			}}},
		},
	}

	if got := firstText(resp); got != "Tell me more." {
		t.Errorf("Expected first text part, got %q", got)
	}
	if got := firstText(nil); got != "" {
		t.Errorf("Expected empty text for nil response, got %q", got)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Error("Expected error without API key")
	}
}

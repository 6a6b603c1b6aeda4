package ollama

import (
	"context"
	"errors"
	"testing"

	"github.com/xpanvictor/rehearse/pkg/Logger"
	"github.com/xpanvictor/rehearse/pkg/assistant"
)

func TestConvertMsgs(t *testing.T) {
	msgs := []assistant.AssistantMessage{
		assistant.NewMessage(assistant.SYSTEM, "be a team lead"),
		assistant.NewMessage(assistant.ASSISTANT, "status?"),
		assistant.NewMessage(assistant.USER, "done"),
	}

	converted := convertMsgs(msgs)

	if len(converted) != len(msgs) {
		t.Fatalf("Expected %d messages, got %d", len(msgs), len(converted))
	}
	for i, m := range msgs {
		if converted[i].Role != string(m.MsgRole) || converted[i].Content != m.Content {
			t.Errorf("Message %d: expected %s/%q, got %s/%q", i, m.MsgRole, m.Content, converted[i].Role, converted[i].Content)
		}
	}
}

func TestProcessPromptNoServer(t *testing.T) {
	p := New(Config{}, Logger.NewNop())

	_, err := p.ProcessPrompt(context.Background(), assistant.NewAssistantInput(
		[]assistant.AssistantMessage{assistant.NewMessage(assistant.USER, "hi")}, "llama3", 100, 0.7,
	))

	var pe *assistant.ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ProviderError, got %v", err)
	}
	if pe.Refused() {
		t.Error("Expected missing server to count as unreachable")
	}
}

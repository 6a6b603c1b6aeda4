package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xpanvictor/rehearse/internal/config"
	"github.com/xpanvictor/rehearse/internal/constants/prompts"
	"github.com/xpanvictor/rehearse/internal/domains/scenario"
	"github.com/xpanvictor/rehearse/internal/types"
	"github.com/xpanvictor/rehearse/pkg/Logger"
	"github.com/xpanvictor/rehearse/pkg/assistant"
)

type fakeAssistant struct {
	calls []assistant.AssistantInput
	reply string
	err   error
	block bool
}

func (f *fakeAssistant) Name() string { return "fake" }

func (f *fakeAssistant) ProcessPrompt(ctx context.Context, input assistant.AssistantInput) (*assistant.AssistantOutput, error) {
	f.calls = append(f.calls, input)
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return &assistant.AssistantOutput{
		Model:    input.Model,
		Response: assistant.NewMessage(assistant.ASSISTANT, f.reply),
	}, nil
}

func newTestService(llm assistant.Assistant) ConversationService {
	return New(scenario.NewRegistry(), llm, Options{
		Model:        "test-model",
		Conversation: config.GenerationConfig{MaxTokens: 1000, Temperature: 0.7},
		Feedback:     config.GenerationConfig{MaxTokens: 1500, Temperature: 0.2},
		Timeout:      time.Second,
	}, Logger.NewNop())
}

func TestRespondMessageLayout(t *testing.T) {
	llm := &fakeAssistant{reply: "What blocked you?"}
	svc := newTestService(llm)

	history := types.ConversationHistory{
		{Role: assistant.ASSISTANT, Content: "Hi there"},
		{Role: assistant.USER, Content: "Hello"},
	}
	reply, err := svc.Respond(context.Background(), "I fixed the build", scenario.SoftwareEngineer, history)
	if err != nil {
		t.Fatalf("Respond returned error: %v", err)
	}
	if reply.Text != "What blocked you?" {
		t.Errorf("Expected reply text, got %q", reply.Text)
	}
	if reply.Provider != "fake" || reply.Model != "test-model" {
		t.Errorf("Unexpected reply metadata %+v", reply)
	}

	if len(llm.calls) != 1 {
		t.Fatalf("Expected 1 model call, got %d", len(llm.calls))
	}
	in := llm.calls[0]
	if len(in.Msgs) != 4 {
		t.Fatalf("Expected 4 messages, got %d", len(in.Msgs))
	}
	sc, _ := scenario.NewRegistry().Get(scenario.SoftwareEngineer)
	if in.Msgs[0].MsgRole != assistant.SYSTEM || in.Msgs[0].Content != sc.SystemPrompt {
		t.Errorf("Expected system prompt first, got %+v", in.Msgs[0])
	}
	if in.Msgs[1].Content != "Hi there" || in.Msgs[2].Content != "Hello" {
		t.Errorf("Expected history verbatim, got %+v", in.Msgs[1:3])
	}
	if in.Msgs[3].MsgRole != assistant.USER || in.Msgs[3].Content != "I fixed the build" {
		t.Errorf("Expected user text last, got %+v", in.Msgs[3])
	}
	if in.MaxTokens != 1000 || in.Temperature != 0.7 {
		t.Errorf("Expected conversation generation settings, got %d/%v", in.MaxTokens, in.Temperature)
	}
}

func TestFeedbackInstruction(t *testing.T) {
	llm := &fakeAssistant{reply: "Good clarity."}
	svc := newTestService(llm)

	if _, err := svc.Feedback(context.Background(), scenario.InsuranceAgent, nil); err != nil {
		t.Fatalf("Feedback returned error: %v", err)
	}
	in := llm.calls[0]
	last := in.Msgs[len(in.Msgs)-1]
	want := prompts.FEEDBACK_REQUEST.GetCurrentPrompt().Render("insurance_agent")
	if last.Content != want {
		t.Errorf("Expected feedback instruction %q, got %q", want, last.Content)
	}
	if in.MaxTokens != 1500 || in.Temperature != 0.2 {
		t.Errorf("Expected feedback generation settings, got %d/%v", in.MaxTokens, in.Temperature)
	}
}

func TestRespondUnknownScenario(t *testing.T) {
	llm := &fakeAssistant{reply: "x"}
	svc := newTestService(llm)

	_, err := svc.Respond(context.Background(), "hi", scenario.ID("pilot"), nil)
	if !errors.Is(err, scenario.ErrInvalidScenario) {
		t.Errorf("Expected ErrInvalidScenario, got %v", err)
	}
	if len(llm.calls) != 0 {
		t.Errorf("Expected no model call, got %d", len(llm.calls))
	}
}

func TestUpstreamErrorKinds(t *testing.T) {
	cases := map[UpstreamKind]error{
		Refused:     &assistant.ProviderError{Provider: "fake", StatusCode: 400, Err: errors.New("bad request")},
		Unreachable: &assistant.ProviderError{Provider: "fake", Err: errors.New("dial tcp: refused")},
		Empty:       &assistant.ProviderError{Provider: "fake", Err: assistant.ErrEmptyResponse},
	}
	for kind, cause := range cases {
		svc := newTestService(&fakeAssistant{err: cause})
		_, err := svc.Respond(context.Background(), "hi", scenario.SoftwareEngineer, nil)

		var ue *UpstreamError
		if !errors.As(err, &ue) {
			t.Errorf("Expected UpstreamError for %s, got %v", kind, err)
			continue
		}
		if ue.Kind != kind {
			t.Errorf("Expected kind %s, got %s", kind, ue.Kind)
		}
	}
}

func TestBlankReplyIsEmpty(t *testing.T) {
	svc := newTestService(&fakeAssistant{reply: "   "})
	_, err := svc.Feedback(context.Background(), scenario.SoftwareEngineer, nil)

	var ue *UpstreamError
	if !errors.As(err, &ue) || ue.Kind != Empty {
		t.Errorf("Expected empty upstream error, got %v", err)
	}
}

func TestRespondTimeout(t *testing.T) {
	llm := &fakeAssistant{block: true}
	svc := New(scenario.NewRegistry(), llm, Options{Model: "m", Timeout: 10 * time.Millisecond}, Logger.NewNop())

	_, err := svc.Respond(context.Background(), "hi", scenario.SoftwareEngineer, nil)
	var ue *UpstreamError
	if !errors.As(err, &ue) || ue.Kind != Unreachable {
		t.Errorf("Expected unreachable after timeout, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected DeadlineExceeded in chain, got %v", err)
	}
}

func TestFallbackText(t *testing.T) {
	svc := newTestService(&fakeAssistant{})
	if svc.Fallback(OpReply) != prompts.REPLY_FALLBACK {
		t.Errorf("Unexpected reply fallback %q", svc.Fallback(OpReply))
	}
	if svc.Fallback(OpFeedback) != prompts.FEEDBACK_FALLBACK {
		t.Errorf("Unexpected feedback fallback %q", svc.Fallback(OpFeedback))
	}
}

func TestUpstreamKindCode(t *testing.T) {
	if Refused.Code() != "upstream_refused" {
		t.Errorf("Unexpected code %q", Refused.Code())
	}
}

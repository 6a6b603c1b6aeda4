package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/xpanvictor/rehearse/pkg/assistant"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const providerName = "gemini"

type Config struct {
	APIKey string
}

// GeminiProvider talks to the Gemini API.
type GeminiProvider struct {
	client *genai.Client
}

// New creates a new GeminiProvider instance.
func New(ctx context.Context, cfg Config) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini API client: %w", err)
	}

	return &GeminiProvider{
		client: client,
	}, nil
}

func (gp *GeminiProvider) Name() string { return providerName }

func (gp *GeminiProvider) Close() error {
	return gp.client.Close()
}

// ProcessPrompt implements assistant.Assistant. The final user message is sent
// through a chat session whose history holds every earlier turn.
func (gp *GeminiProvider) ProcessPrompt(ctx context.Context, input assistant.AssistantInput) (*assistant.AssistantOutput, error) {
	system, dialogue := assistant.SplitSystem(input.Msgs)
	if len(dialogue) == 0 {
		return nil, fmt.Errorf("gemini: no messages to send")
	}

	model := gp.client.GenerativeModel(input.Model)
	if system != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(system))
	}
	if input.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(input.MaxTokens))
	}
	model.SetTemperature(float32(input.Temperature))

	last := dialogue[len(dialogue)-1]
	cs := model.StartChat()
	cs.History = convertHistory(dialogue[:len(dialogue)-1])

	resp, err := cs.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		pe := &assistant.ProviderError{Provider: providerName, Err: err}
		var gErr *googleapi.Error
		if errors.As(err, &gErr) {
			pe.StatusCode = gErr.Code
		}
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			// safety block is a refusal, not an outage
			pe.StatusCode = 400
		}
		return nil, pe
	}

	text := firstText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, &assistant.ProviderError{Provider: providerName, Err: assistant.ErrEmptyResponse}
	}

	return &assistant.AssistantOutput{
		Model: input.Model,
		Response: assistant.AssistantMessage{
			Content:   text,
			CreatedAt: time.Now(),
			MsgRole:   assistant.ASSISTANT,
		},
	}, nil
}

func convertHistory(msgs []assistant.AssistantMessage) []*genai.Content {
	history := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := "user"
		if m.MsgRole == assistant.ASSISTANT {
			role = "model"
		}
		history = append(history, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return history
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				return string(txt)
			}
		}
	}
	return ""
}

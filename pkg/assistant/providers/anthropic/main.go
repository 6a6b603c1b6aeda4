package anthropic

import (
	"context"
	"errors"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/xpanvictor/rehearse/pkg/assistant"
)

const providerName = "anthropic"

type Config struct {
	APIKey string
	// BaseURL overrides the API endpoint; empty uses the SDK default.
	BaseURL string
}

type AnthropicProvider struct {
	client sdk.Client
}

func New(cfg Config) *AnthropicProvider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &AnthropicProvider{
		client: sdk.NewClient(opts...),
	}
}

func (p *AnthropicProvider) Name() string { return providerName }

// ProcessPrompt implements assistant.Assistant.
func (p *AnthropicProvider) ProcessPrompt(ctx context.Context, input assistant.AssistantInput) (*assistant.AssistantOutput, error) {
	system, dialogue := assistant.SplitSystem(input.Msgs)

	params := sdk.MessageNewParams{
		Model:     sdk.Model(input.Model),
		MaxTokens: input.MaxTokens,
		Messages:  convertMsgs(dialogue),
	}
	if system != "" {
		params.System = []sdk.TextBlockParam{{Text: system}}
	}
	if input.Temperature > 0 {
		params.Temperature = sdk.Float(input.Temperature)
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, wrapErr(err)
	}

	// first text segment only
	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &assistant.ProviderError{Provider: providerName, Err: assistant.ErrEmptyResponse}
	}

	return &assistant.AssistantOutput{
		Id:    resp.ID,
		Model: string(resp.Model),
		Response: assistant.AssistantMessage{
			Content:   text,
			CreatedAt: time.Now(),
			MsgRole:   assistant.ASSISTANT,
		},
	}, nil
}

func convertMsgs(msgs []assistant.AssistantMessage) []sdk.MessageParam {
	out := make([]sdk.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		switch m.MsgRole {
		case assistant.ASSISTANT:
			out = append(out, sdk.NewAssistantMessage(sdk.NewTextBlock(m.Content)))
		default:
			out = append(out, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
		}
	}
	return out
}

func wrapErr(err error) error {
	pe := &assistant.ProviderError{Provider: providerName, Err: err}
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		pe.StatusCode = apiErr.StatusCode
	}
	return pe
}

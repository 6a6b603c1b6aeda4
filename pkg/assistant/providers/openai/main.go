package openai

import (
	"context"
	"errors"
	"strings"
	"time"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/xpanvictor/rehearse/pkg/assistant"
)

const providerName = "openai"

type Config struct {
	APIKey  string
	BaseURL string
}

type openAIAssistant struct {
	client sdk.Client
}

func New(cfg Config) assistant.Assistant {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &openAIAssistant{
		client: sdk.NewClient(opts...),
	}
}

func (o *openAIAssistant) Name() string { return providerName }

// ProcessPrompt implements assistant.Assistant.
func (o *openAIAssistant) ProcessPrompt(
	ctx context.Context,
	input assistant.AssistantInput,
) (*assistant.AssistantOutput, error) {
	convertedMsgs := make([]sdk.ChatCompletionMessageParamUnion, 0, len(input.Msgs))
	for _, msg := range input.Msgs {
		convertedMsgs = append(convertedMsgs, convertToOpenaiMsg(msg))
	}

	params := sdk.ChatCompletionNewParams{
		Messages: convertedMsgs,
		Model:    sdk.ChatModel(input.Model),
	}
	if input.MaxTokens > 0 {
		params.MaxTokens = sdk.Int(input.MaxTokens)
	}
	if input.Temperature > 0 {
		params.Temperature = sdk.Float(input.Temperature)
	}

	chatCompletion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		pe := &assistant.ProviderError{Provider: providerName, Err: err}
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			pe.StatusCode = apiErr.StatusCode
		}
		return nil, pe
	}
	if len(chatCompletion.Choices) == 0 || strings.TrimSpace(chatCompletion.Choices[0].Message.Content) == "" {
		return nil, &assistant.ProviderError{Provider: providerName, Err: assistant.ErrEmptyResponse}
	}

	return &assistant.AssistantOutput{
		Id:    chatCompletion.ID,
		Model: chatCompletion.Model,
		Response: assistant.AssistantMessage{
			Content:   chatCompletion.Choices[0].Message.Content,
			CreatedAt: time.Now(),
			MsgRole:   assistant.ASSISTANT,
		},
	}, nil
}

func convertToOpenaiMsg(msg assistant.AssistantMessage) sdk.ChatCompletionMessageParamUnion {
	switch msg.MsgRole {
	case assistant.ASSISTANT:
		return sdk.AssistantMessage(msg.Content)
	case assistant.USER:
		return sdk.UserMessage(msg.Content)
	case assistant.SYSTEM:
		return sdk.SystemMessage(msg.Content)
	}
	return sdk.UserMessage(msg.Content)
}

package ollama

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/presbrey/ollamafarm"
	"github.com/xpanvictor/rehearse/pkg/Logger"
	"github.com/xpanvictor/rehearse/pkg/assistant"
)

const providerName = "ollama"

type Config struct {
	Urls []string
}

// OllamaProvider spreads requests over a farm of ollama servers.
type OllamaProvider struct {
	ollamafarm *ollamafarm.Farm
}

func New(cfg Config, logger *Logger.Logger) *OllamaProvider {
	farm := ollamafarm.New()

	// register servers
	for _, u := range cfg.Urls {
		if err := farm.RegisterURL(u, nil); err != nil {
			logger.Warnf("ollama server %s not registered: %v", u, err)
		}
	}

	return &OllamaProvider{
		ollamafarm: farm,
	}
}

func (o *OllamaProvider) Name() string { return providerName }

// ProcessPrompt implements assistant.Assistant.
func (o *OllamaProvider) ProcessPrompt(ctx context.Context, input assistant.AssistantInput) (*assistant.AssistantOutput, error) {
	// pick first available client
	server := o.ollamafarm.First(&ollamafarm.Where{Offline: false})
	if server == nil {
		return nil, &assistant.ProviderError{Provider: providerName, Err: fmt.Errorf("no online server for model %s", input.Model)}
	}

	stream := false
	req := api.ChatRequest{
		Model:    input.Model,
		Messages: convertMsgs(input.Msgs),
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": input.Temperature,
		},
	}
	if input.MaxTokens > 0 {
		req.Options["num_predict"] = input.MaxTokens
	}

	var sb strings.Builder
	err := server.Client().Chat(ctx, &req, func(cr api.ChatResponse) error {
		sb.WriteString(cr.Message.Content)
		return nil
	})
	if err != nil {
		pe := &assistant.ProviderError{Provider: providerName, Err: err}
		if se, ok := err.(api.StatusError); ok {
			pe.StatusCode = se.StatusCode
		}
		return nil, pe
	}

	text := sb.String()
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

func convertMsgs(msgs []assistant.AssistantMessage) []api.Message {
	converted := make([]api.Message, 0, len(msgs))
	for _, msg := range msgs {
		converted = append(converted, api.Message{
			Role:    string(msg.MsgRole),
			Content: msg.Content,
		})
	}
	return converted
}

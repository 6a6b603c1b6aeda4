package app

import (
	"context"
	"fmt"

	"github.com/xpanvictor/rehearse/internal/config"
	"github.com/xpanvictor/rehearse/pkg/Logger"
	"github.com/xpanvictor/rehearse/pkg/assistant"
	"github.com/xpanvictor/rehearse/pkg/assistant/providers/anthropic"
	"github.com/xpanvictor/rehearse/pkg/assistant/providers/gemini"
	"github.com/xpanvictor/rehearse/pkg/assistant/providers/ollama"
	"github.com/xpanvictor/rehearse/pkg/assistant/providers/openai"
)

// AssistantFactory builds the chat backend selected by assistant.provider.
type AssistantFactory struct {
	config config.AssistantConfig
	logger *Logger.Logger
}

func NewAssistantFactory(cfg config.AssistantConfig, logger *Logger.Logger) *AssistantFactory {
	return &AssistantFactory{
		config: cfg,
		logger: logger,
	}
}

// Create returns the configured provider. Providers holding a client that
// must be released also implement io.Closer.
func (f *AssistantFactory) Create(ctx context.Context) (assistant.Assistant, error) {
	var (
		a   assistant.Assistant
		err error
	)

	switch f.config.Provider {
	case "anthropic":
		a = anthropic.New(anthropic.Config{APIKey: f.config.AnthropicApiKey})
	case "openai":
		a = openai.New(openai.Config{APIKey: f.config.OpenAiApiKey})
	case "gemini":
		a, err = gemini.New(ctx, gemini.Config{APIKey: f.config.GeminiApiKey})
	case "ollama":
		a = ollama.New(ollama.Config{Urls: f.config.Ollama.Urls}, f.logger)
	default:
		return nil, fmt.Errorf("unknown assistant provider %q", f.config.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s assistant: %w", f.config.Provider, err)
	}

	f.logger.Infof("Assistant created: provider=%s model=%s", a.Name(), f.config.Model)
	return a, nil
}

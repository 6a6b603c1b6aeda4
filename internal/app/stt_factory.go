package app

import (
	"context"
	"fmt"

	"github.com/xpanvictor/rehearse/internal/config"
	"github.com/xpanvictor/rehearse/pkg/Logger"
	"github.com/xpanvictor/rehearse/pkg/io/stt"
	"github.com/xpanvictor/rehearse/pkg/io/stt/cloudspeech"
	sttopenai "github.com/xpanvictor/rehearse/pkg/io/stt/openai"
	"github.com/xpanvictor/rehearse/pkg/io/stt/whisper"
)

// TranscriberFactory builds the transcriber selected by stt.provider.
type TranscriberFactory struct {
	config       config.STTConfig
	openAiApiKey string
	logger       *Logger.Logger
}

func NewTranscriberFactory(cfg *config.Settings, logger *Logger.Logger) *TranscriberFactory {
	return &TranscriberFactory{
		config:       cfg.STT,
		openAiApiKey: cfg.Assistant.OpenAiApiKey,
		logger:       logger,
	}
}

func (f *TranscriberFactory) Create(ctx context.Context) (stt.Transcriber, error) {
	var (
		t   stt.Transcriber
		err error
	)

	switch f.config.Provider {
	case "stub":
		t = stt.NewStubTranscriber(f.config.StubDelay)
		f.logger.Warn("Using stub transcriber: every chunk yields placeholder text")
	case "whisper":
		t = whisper.NewWhisperClient(f.config.WhisperURL, f.config.Language, f.logger.Named("whisper"))
	case "openai":
		t, err = sttopenai.New(sttopenai.Config{
			APIKey:   f.openAiApiKey,
			Model:    f.config.OpenAiModel,
			Language: f.config.Language,
		})
	case "cloudspeech":
		cs := f.config.CloudSpeech
		t, err = cloudspeech.New(ctx, cloudspeech.Config{
			ProjectID:       cs.ProjectID,
			CredentialsJSON: cs.CredentialsJSON,
			Language:        f.config.Language,
			Location:        cs.Location,
			Model:           cs.Model,
		})
	default:
		return nil, fmt.Errorf("%w: %q", stt.ErrUnknownProvider, f.config.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s transcriber: %w", f.config.Provider, err)
	}

	f.logger.Infof("Transcriber created: provider=%s", t.Name())
	return t, nil
}

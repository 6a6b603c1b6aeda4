package cloudspeech

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/auth/credentials"
	speech "cloud.google.com/go/speech/apiv2"
	speechpb "cloud.google.com/go/speech/apiv2/speechpb"
	"github.com/xpanvictor/rehearse/pkg/io/stt"
	"google.golang.org/api/option"
)

const speechAPIEndpointPort = 443

type Config struct {
	ProjectID       string
	CredentialsJSON string
	Language        string
	Location        string
	Model           string
}

type recognizeFunc func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error)

// Transcriber runs one synchronous Recognize call per chunk. Decoding is
// left to auto-detection so webm/opus chunks need no conversion.
type Transcriber struct {
	recognizer string
	language   string
	model      string
	recognize  recognizeFunc
	closeFn    func() error
}

func New(ctx context.Context, cfg Config) (*Transcriber, error) {
	location := strings.TrimSpace(cfg.Location)
	if location == "" {
		location = "global"
	}
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("cloud speech project id is not configured")
	}

	detect := &credentials.DetectOptions{
		Scopes: []string{"https://www.googleapis.com/auth/cloud-platform"},
	}
	if cfg.CredentialsJSON != "" {
		detect.CredentialsJSON = []byte(cfg.CredentialsJSON)
	}
	creds, err := credentials.DetectDefault(detect)
	if err != nil {
		return nil, fmt.Errorf("detect credentials: %w", err)
	}

	opts := []option.ClientOption{
		option.WithAuthCredentials(creds),
	}
	if location != "global" {
		opts = append(opts, option.WithEndpoint(fmt.Sprintf("%s-speech.googleapis.com:%d", location, speechAPIEndpointPort)))
	}

	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create speech client: %w", err)
	}

	t := newTranscriber(cfg, location, func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		return client.Recognize(ctx, req)
	})
	t.closeFn = client.Close
	return t, nil
}

func newTranscriber(cfg Config, location string, fn recognizeFunc) *Transcriber {
	lang := cfg.Language
	if lang == "" {
		lang = "en-US"
	}
	return &Transcriber{
		recognizer: fmt.Sprintf("projects/%s/locations/%s/recognizers/_", cfg.ProjectID, location),
		language:   lang,
		model:      strings.TrimSpace(cfg.Model),
		recognize:  fn,
		closeFn:    func() error { return nil },
	}
}

func (t *Transcriber) Name() string { return "cloudspeech" }

func (t *Transcriber) Close() error { return t.closeFn() }

func (t *Transcriber) Transcribe(ctx context.Context, in *stt.AudioInput) (stt.STTOutput, error) {
	if in == nil || len(in.Data) == 0 {
		return stt.STTOutput{}, stt.ErrNoTranscript
	}

	resp, err := t.recognize(ctx, &speechpb.RecognizeRequest{
		Recognizer: t.recognizer,
		Config: &speechpb.RecognitionConfig{
			Model:         t.model,
			LanguageCodes: []string{t.language},
			DecodingConfig: &speechpb.RecognitionConfig_AutoDecodingConfig{
				AutoDecodingConfig: &speechpb.AutoDetectDecodingConfig{},
			},
			Features: &speechpb.RecognitionFeatures{EnableAutomaticPunctuation: true},
		},
		AudioSource: &speechpb.RecognizeRequest_Content{Content: in.Data},
	})
	if err != nil {
		return stt.STTOutput{}, fmt.Errorf("cloud speech recognize: %w", err)
	}

	parts := make([]string, 0, len(resp.GetResults()))
	lang := t.language
	for _, result := range resp.GetResults() {
		if len(result.GetAlternatives()) == 0 {
			continue
		}
		if txt := strings.TrimSpace(result.GetAlternatives()[0].GetTranscript()); txt != "" {
			parts = append(parts, txt)
		}
		if code := result.GetLanguageCode(); code != "" {
			lang = code
		}
	}
	if len(parts) == 0 {
		return stt.STTOutput{}, stt.ErrNoTranscript
	}

	return stt.STTOutput{
		Content:        strings.Join(parts, " "),
		ID:             in.ID,
		STTGeneratedAt: time.Now(),
		Language:       lang,
	}, nil
}

package cloudspeech

import (
	"context"
	"errors"
	"testing"

	speechpb "cloud.google.com/go/speech/apiv2/speechpb"
	"github.com/xpanvictor/rehearse/pkg/io/stt"
)

func TestTranscribeJoinsResults(t *testing.T) {
	var got *speechpb.RecognizeRequest
	tr := newTranscriber(Config{ProjectID: "demo", Model: "long"}, "global",
		func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			got = req
			return &speechpb.RecognizeResponse{
				Results: []*speechpb.SpeechRecognitionResult{
					{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "I have five years "}}},
					{Alternatives: nil},
					{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "of experience."}}, LanguageCode: "en-us"},
				},
			}, nil
		})

	out, err := tr.Transcribe(context.Background(), stt.NewAudioInput([]byte("chunk"), "audio/webm"))
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if out.Content != "I have five years of experience." {
		t.Errorf("Unexpected transcript %q", out.Content)
	}
	if out.Language != "en-us" {
		t.Errorf("Expected detected language, got %q", out.Language)
	}
	if got.GetRecognizer() != "projects/demo/locations/global/recognizers/_" {
		t.Errorf("Unexpected recognizer %q", got.GetRecognizer())
	}
	if string(got.GetContent()) != "chunk" {
		t.Errorf("Expected raw chunk content, got %q", got.GetContent())
	}
	if got.GetConfig().GetAutoDecodingConfig() == nil {
		t.Error("Expected auto decoding config")
	}
}

func TestLanguageDefaultsToBCP47(t *testing.T) {
	var langs []string
	fn := func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
		langs = req.GetConfig().GetLanguageCodes()
		return &speechpb.RecognizeResponse{
			Results: []*speechpb.SpeechRecognitionResult{
				{Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: "hello"}}},
			},
		}, nil
	}

	tr := newTranscriber(Config{ProjectID: "demo"}, "global", fn)
	if _, err := tr.Transcribe(context.Background(), stt.NewAudioInput([]byte("chunk"), "audio/webm")); err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if len(langs) != 1 || langs[0] != "en-US" {
		t.Errorf("Expected en-US by default, got %v", langs)
	}

	tr = newTranscriber(Config{ProjectID: "demo", Language: "fr-FR"}, "global", fn)
	if _, err := tr.Transcribe(context.Background(), stt.NewAudioInput([]byte("chunk"), "audio/webm")); err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if len(langs) != 1 || langs[0] != "fr-FR" {
		t.Errorf("Expected configured language, got %v", langs)
	}
}

func TestTranscribeNoResults(t *testing.T) {
	tr := newTranscriber(Config{ProjectID: "demo"}, "global",
		func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			return &speechpb.RecognizeResponse{}, nil
		})

	_, err := tr.Transcribe(context.Background(), stt.NewAudioInput([]byte("chunk"), "audio/webm"))
	if !errors.Is(err, stt.ErrNoTranscript) {
		t.Errorf("Expected ErrNoTranscript, got %v", err)
	}
}

func TestTranscribeUpstreamError(t *testing.T) {
	boom := errors.New("unavailable")
	tr := newTranscriber(Config{ProjectID: "demo"}, "global",
		func(ctx context.Context, req *speechpb.RecognizeRequest) (*speechpb.RecognizeResponse, error) {
			return nil, boom
		})

	_, err := tr.Transcribe(context.Background(), stt.NewAudioInput([]byte("chunk"), "audio/webm"))
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped upstream error, got %v", err)
	}
}

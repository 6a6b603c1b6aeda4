package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type OllamaConfig struct {
	Urls []string `mapstructure:"urls"`
}

type AssistantConfig struct {
	// Provider selects the chat backend: anthropic, openai, gemini or ollama.
	Provider        string        `mapstructure:"provider"`
	Model           string        `mapstructure:"model"`
	AnthropicApiKey string        `mapstructure:"anthropic_api_key"`
	OpenAiApiKey    string        `mapstructure:"open_ai_api_key"`
	GeminiApiKey    string        `mapstructure:"gemini_api_key"`
	Ollama          OllamaConfig  `mapstructure:"ollama"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
}

// GenerationConfig bounds a single model call.
type GenerationConfig struct {
	MaxTokens   int64   `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type CloudSpeechConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsJSON string `mapstructure:"credentials_json"`
	Location        string `mapstructure:"location"`
	Model           string `mapstructure:"model"`
}

type STTConfig struct {
	// Provider selects the transcriber: stub, whisper, openai or cloudspeech.
	Provider    string            `mapstructure:"provider"`
	// Language is passed through as-is. Empty lets each transcriber pick its
	// default: en for whisper, auto-detect for openai, en-US for cloudspeech,
	// which expects a BCP-47 code.
	Language    string            `mapstructure:"language"`
	StubDelay   time.Duration     `mapstructure:"stub_delay"`
	WhisperURL  string            `mapstructure:"whisper_url"`
	OpenAiModel string            `mapstructure:"open_ai_model"`
	CloudSpeech CloudSpeechConfig `mapstructure:"cloud_speech"`
}

type RelayConfig struct {
	// SurfaceUpstreamErrors emits error events for model failures instead of
	// the fallback apology text.
	SurfaceUpstreamErrors bool          `mapstructure:"surface_upstream_errors"`
	SessionTimeout        time.Duration `mapstructure:"session_timeout"`
	MaxMessageBytes       int64         `mapstructure:"max_message_bytes"`
}

type Settings struct {
	Server       ServerConfig     `mapstructure:"server"`
	Assistant    AssistantConfig  `mapstructure:"assistant"`
	Conversation GenerationConfig `mapstructure:"conversation"`
	Feedback     GenerationConfig `mapstructure:"feedback"`
	STT          STTConfig        `mapstructure:"stt"`
	Relay        RelayConfig      `mapstructure:"relay"`
	Env          string           `mapstructure:"env"`
	Debug        bool             `mapstructure:"debug"`
}

var ErrMissingApiKey = errors.New("model api key is not configured")

func Load() (*Settings, error) {
	return LoadWith(viper.New())
}

// LoadWith reads settings into the given viper instance. The config file is
// optional; environment variables always win.
func LoadWith(v *viper.Viper) (*Settings, error) {
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	v.SetConfigName("config_" + genEnv(v))
	v.AddConfigPath(".")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks that the selected model provider can be reached.
func (s *Settings) Validate() error {
	a := s.Assistant
	switch a.Provider {
	case "anthropic":
		if a.AnthropicApiKey == "" {
			return fmt.Errorf("%w: set ANTHROPIC_API_KEY", ErrMissingApiKey)
		}
	case "openai":
		if a.OpenAiApiKey == "" {
			return fmt.Errorf("%w: set OPENAI_API_KEY", ErrMissingApiKey)
		}
	case "gemini":
		if a.GeminiApiKey == "" {
			return fmt.Errorf("%w: set GEMINI_API_KEY", ErrMissingApiKey)
		}
	case "ollama":
		if len(a.Ollama.Urls) == 0 {
			return errors.New("assistant.ollama.urls must list at least one server")
		}
	default:
		return fmt.Errorf("unknown assistant provider %q", a.Provider)
	}
	switch s.STT.Provider {
	case "stub", "whisper":
	case "openai":
		if a.OpenAiApiKey == "" {
			return fmt.Errorf("%w: openai transcription needs OPENAI_API_KEY", ErrMissingApiKey)
		}
	case "cloudspeech":
		if s.STT.CloudSpeech.ProjectID == "" {
			return errors.New("stt.cloud_speech.project_id is required for cloudspeech")
		}
	default:
		return fmt.Errorf("unknown stt provider %q", s.STT.Provider)
	}
	if s.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", s.Server.Port)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("debug", false)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5001)

	v.SetDefault("assistant.provider", "anthropic")
	v.SetDefault("assistant.model", "claude-3-sonnet-20240229")
	v.SetDefault("assistant.request_timeout", 60*time.Second)
	v.SetDefault("assistant.ollama.urls", []string{"http://ollama:11434"})

	v.SetDefault("conversation.max_tokens", 1000)
	v.SetDefault("conversation.temperature", 0.7)
	v.SetDefault("feedback.max_tokens", 1500)
	v.SetDefault("feedback.temperature", 0.2)

	v.SetDefault("stt.provider", "stub")
	v.SetDefault("stt.language", "")
	v.SetDefault("stt.stub_delay", 100*time.Millisecond)
	v.SetDefault("stt.whisper_url", "http://whisper:9000")
	v.SetDefault("stt.open_ai_model", "whisper-1")
	v.SetDefault("stt.cloud_speech.location", "global")
	v.SetDefault("stt.cloud_speech.model", "long")

	v.SetDefault("relay.surface_upstream_errors", false)
	v.SetDefault("relay.session_timeout", 30*time.Minute)
	v.SetDefault("relay.max_message_bytes", 8<<20)
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("assistant.anthropic_api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("assistant.open_ai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("assistant.gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("server.host", "HOST")
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("stt.cloud_speech.credentials_json", "GOOGLE_CLOUD_CREDENTIALS_JSON")
	_ = v.BindEnv("stt.cloud_speech.project_id", "GOOGLE_CLOUD_PROJECT_ID")
}

func genEnv(v *viper.Viper) string {
	env := v.GetString("ENV")
	if env == "" {
		return "dev"
	}
	return env
}

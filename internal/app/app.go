package app

import (
	"context"
	"io"

	"github.com/xpanvictor/rehearse/internal/config"
	"github.com/xpanvictor/rehearse/internal/domains/conversation"
	"github.com/xpanvictor/rehearse/internal/domains/scenario"
	"github.com/xpanvictor/rehearse/internal/handlers"
	"github.com/xpanvictor/rehearse/internal/handlers/websocket"
	"github.com/xpanvictor/rehearse/internal/server"
	"github.com/xpanvictor/rehearse/pkg/Logger"
	"github.com/xpanvictor/rehearse/pkg/assistant"
	"github.com/xpanvictor/rehearse/pkg/io/stt"
)

// App represents the application with all its dependencies
type App struct {
	Config              *config.Settings
	Logger              *Logger.Logger
	Scenarios           scenario.Registry
	Assistant           assistant.Assistant
	Transcriber         stt.Transcriber
	ConversationService conversation.ConversationService
	Connections         *websocket.ConnectionManager
	ServerDeps          server.Dependencies
}

// NewApp creates a new application instance with all dependencies properly wired
func NewApp(ctx context.Context, cfg *config.Settings, logger *Logger.Logger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.setupDependencies(ctx); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// setupDependencies initializes all application dependencies
func (a *App) setupDependencies(ctx context.Context) error {
	// 1. scenarios and upstream clients
	a.Scenarios = scenario.NewRegistry()

	llm, err := NewAssistantFactory(a.Config.Assistant, a.Logger.Named("assistant")).Create(ctx)
	if err != nil {
		return err
	}
	a.Assistant = llm

	transcriber, err := NewTranscriberFactory(a.Config, a.Logger.Named("stt")).Create(ctx)
	if err != nil {
		return err
	}
	a.Transcriber = transcriber

	// 2. services
	a.ConversationService = conversation.New(
		a.Scenarios,
		a.Assistant,
		conversation.OptionsFromSettings(a.Config),
		a.Logger,
	)

	// 3. transport
	a.Connections = websocket.NewConnectionManager(a.Logger, a.Config.Relay.SessionTimeout)
	relay := websocket.NewRelay(
		a.Transcriber,
		a.ConversationService,
		a.Scenarios,
		a.Config.Relay.SurfaceUpstreamErrors,
		a.Logger,
	)

	a.ServerDeps = server.NewServerDependencies(
		handlers.NewScenarioHandler(a.Scenarios, a.Logger.Named("http")),
		websocket.NewWebSocketHandler(a.Logger, relay, a.Connections, a.Config.Relay),
		a.Logger,
		a.Config,
	)

	return nil
}

// GetServerDependencies returns the server dependencies
func (a *App) GetServerDependencies() server.Dependencies {
	return a.ServerDeps
}

// Close drops live sessions and releases upstream clients.
func (a *App) Close() {
	if a.Connections != nil {
		_ = a.Connections.Close()
	}
	for _, c := range []any{a.Assistant, a.Transcriber} {
		if closer, ok := c.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				a.Logger.Warnf("close: %v", err)
			}
		}
	}
}

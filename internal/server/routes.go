package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/xpanvictor/rehearse/docs"
	"github.com/xpanvictor/rehearse/internal/config"
	"github.com/xpanvictor/rehearse/internal/handlers"
	"github.com/xpanvictor/rehearse/internal/handlers/websocket"
	"github.com/xpanvictor/rehearse/pkg/Logger"
)

type Dependencies struct {
	ScenarioHandler  *handlers.ScenarioHandler
	WebSocketHandler *websocket.WebSocketHandler
	Logger           *Logger.Logger
	Configs          *config.Settings
}

func NewServerDependencies(
	scenarioHandler *handlers.ScenarioHandler,
	webSocketHandler *websocket.WebSocketHandler,
	logger *Logger.Logger,
	config *config.Settings,
) Dependencies {
	return Dependencies{
		ScenarioHandler:  scenarioHandler,
		WebSocketHandler: webSocketHandler,
		Logger:           logger,
		Configs:          config,
	}
}

// NewRouter builds the gin engine with the shared middleware stack.
func NewRouter(cfg *config.Settings, logger *Logger.Logger) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		handlers.ErrorHandlerMiddleware(logger),
		handlers.RequestLoggerMiddleware(logger.Named("http")),
		handlers.CORSMiddleware(),
	)
	return r
}

func InitializeRoutes(r *gin.Engine, dep Dependencies) {
	r.GET("/", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"message": "Server healthy"}) })
	r.GET("/health", handlers.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.GET("/scenarios", dep.ScenarioHandler.ListScenarios)
		api.POST("/start_session", dep.ScenarioHandler.StartSession)
	}

	dep.WebSocketHandler.RegisterRoutes(r)
}

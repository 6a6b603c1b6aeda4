package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/rehearse/internal/domains/scenario"
	"github.com/xpanvictor/rehearse/pkg/Logger"
)

// ScenarioHandler serves the scenario catalogue and session openers.
type ScenarioHandler struct {
	scenarios scenario.Registry
	logger    *Logger.Logger
}

func NewScenarioHandler(scenarios scenario.Registry, logger *Logger.Logger) *ScenarioHandler {
	return &ScenarioHandler{
		scenarios: scenarios,
		logger:    logger,
	}
}

// ListScenarios handles listing the available role-play scenarios
// @Summary List scenarios
// @Description Returns every registered scenario in a stable order
// @Tags Scenarios
// @Produce json
// @Success 200 {object} ScenariosResponse "Available scenarios"
// @Router /api/scenarios [get]
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	c.JSON(http.StatusOK, ScenariosResponse{
		Scenarios: h.scenarios.List(),
	})
}

// StartSession handles fetching the opening line for a scenario
// @Summary Start a practice session
// @Description Returns the persona's opening line. An omitted scenario defaults to software_engineer
// @Tags Scenarios
// @Accept json
// @Produce json
// @Param request body StartSessionRequest true "Scenario to start"
// @Success 200 {object} StartSessionResponse "Opening line"
// @Failure 400 {object} ErrorResponse "Invalid scenario or request data"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/start_session [post]
func (h *ScenarioHandler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	sc, err := h.scenarios.Resolve(req.Scenario)
	if err != nil {
		switch {
		case errors.Is(err, scenario.ErrInvalidScenario):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid scenario"})
		default:
			h.logger.Errorf("start session error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	h.logger.Debugf("session started for scenario %s", sc.ID)
	c.JSON(http.StatusOK, StartSessionResponse{
		InitialPrompt: sc.InitialPrompt,
	})
}

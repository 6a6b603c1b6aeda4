package handlers

import (
	"github.com/xpanvictor/rehearse/internal/domains/scenario"
)

// Response wrapper types for Swagger documentation

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid scenario"`
	Details string `json:"details,omitempty" example:"Validation error details"`
}

// ScenariosResponse represents the scenario listing
type ScenariosResponse struct {
	Scenarios []scenario.Summary `json:"scenarios"`
}

// StartSessionRequest selects the scenario to practise
type StartSessionRequest struct {
	Scenario string `json:"scenario" example:"software_engineer"`
}

// StartSessionResponse carries the persona's opening line
type StartSessionResponse struct {
	InitialPrompt string `json:"initial_prompt" example:"Hi there, it's time for our team status update."`
}

// HealthResponse represents a liveness probe answer
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

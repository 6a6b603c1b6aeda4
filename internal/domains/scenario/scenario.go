package scenario

import (
	"errors"
)

var (
	ErrInvalidScenario = errors.New("invalid scenario")
)

// ID is the closed set of role-play scenarios.
type ID string

const (
	SoftwareEngineer ID = "software_engineer"
	InsuranceAgent   ID = "insurance_agent"
)

// Default is used when a client omits the scenario field.
const Default = SoftwareEngineer

// Parse converts a wire value to an ID. An empty value maps to Default.
func Parse(raw string) (ID, error) {
	if raw == "" {
		return Default, nil
	}
	switch id := ID(raw); id {
	case SoftwareEngineer, InsuranceAgent:
		return id, nil
	}
	return "", ErrInvalidScenario
}

// Label is how the scenario is referred to inside generated prompts.
func (id ID) Label() string {
	return string(id)
}

// Scenario is a role-play persona configuration.
// @Description Role-play scenario
type Scenario struct {
	ID            ID     `json:"id" example:"software_engineer"`
	SystemPrompt  string `json:"-"`
	InitialPrompt string `json:"-"`
	Title         string `json:"title" example:"Software Engineer Status Update"`
	Description   string `json:"description" example:"Practice giving a status update in a sprint meeting"`
}

// Summary is the public listing shape of a scenario.
// @Description Scenario listing entry
type Summary struct {
	ID          ID     `json:"id" example:"software_engineer"`
	Title       string `json:"title" example:"Software Engineer Status Update"`
	Description string `json:"description" example:"Practice giving a status update in a sprint meeting"`
}

func (s Scenario) Summary() Summary {
	return Summary{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
	}
}

package scenario

import (
	"github.com/xpanvictor/rehearse/internal/constants/prompts"
)

type Registry interface {
	List() []Summary
	Get(id ID) (Scenario, error)
	// Resolve parses a wire value and looks it up in one step.
	Resolve(raw string) (Scenario, error)
}

type staticRegistry struct {
	order []ID
	byID  map[ID]Scenario
}

// NewRegistry builds the registry of built-in scenarios. The listing order is
// the order given here.
func NewRegistry() Registry {
	return newStaticRegistry([]Scenario{
		{
			ID:            SoftwareEngineer,
			SystemPrompt:  prompts.SOFTWARE_ENGINEER_PERSONA.GetCurrentPrompt().Content,
			InitialPrompt: prompts.SOFTWARE_ENGINEER_OPENING.GetCurrentPrompt().Content,
			Title:         "Software Engineer Status Update",
			Description:   "Practice giving a status update in a sprint meeting",
		},
		{
			ID:            InsuranceAgent,
			SystemPrompt:  prompts.INSURANCE_AGENT_PERSONA.GetCurrentPrompt().Content,
			InitialPrompt: prompts.INSURANCE_AGENT_OPENING.GetCurrentPrompt().Content,
			Title:         "Insurance Sales Pitch",
			Description:   "Practice selling insurance to a potential client",
		},
	})
}

func newStaticRegistry(scenarios []Scenario) *staticRegistry {
	r := &staticRegistry{
		order: make([]ID, 0, len(scenarios)),
		byID:  make(map[ID]Scenario, len(scenarios)),
	}
	for _, s := range scenarios {
		r.order = append(r.order, s.ID)
		r.byID[s.ID] = s
	}
	return r
}

func (r *staticRegistry) List() []Summary {
	out := make([]Summary, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].Summary())
	}
	return out
}

func (r *staticRegistry) Get(id ID) (Scenario, error) {
	s, ok := r.byID[id]
	if !ok {
		return Scenario{}, ErrInvalidScenario
	}
	return s, nil
}

func (r *staticRegistry) Resolve(raw string) (Scenario, error) {
	id, err := Parse(raw)
	if err != nil {
		return Scenario{}, err
	}
	return r.Get(id)
}

package contract

// ActionStep is a single tool invocation inside an action plan. Immutable
// once built.
type ActionStep struct {
	StepID      string
	Tool        string
	Description string
	Parameters  map[string]any
}

// ActionPlan is an ordered remediation plan for one ticket. Step order is
// execution order.
type ActionPlan struct {
	TicketID int
	Summary  string
	Steps    []ActionStep
}

// NewActionPlan validates every step's parameters and returns the plan.
func NewActionPlan(ticketID int, summary string, steps []ActionStep) (ActionPlan, error) {
	for _, step := range steps {
		if err := validateJSONValue(step.Parameters, "steps."+step.StepID+".parameters"); err != nil {
			return ActionPlan{}, err
		}
	}
	return ActionPlan{TicketID: ticketID, Summary: summary, Steps: steps}, nil
}

// Serialize renders the plan as a JSON-compatible map.
func (p ActionPlan) Serialize() map[string]any {
	steps := make([]any, 0, len(p.Steps))
	for _, step := range p.Steps {
		params := step.Parameters
		if params == nil {
			params = map[string]any{}
		}
		steps = append(steps, map[string]any{
			"step_id":     step.StepID,
			"tool":        step.Tool,
			"description": step.Description,
			"parameters":  params,
		})
	}
	return map[string]any{
		"ticket_id": p.TicketID,
		"summary":   p.Summary,
		"steps":     steps,
	}
}

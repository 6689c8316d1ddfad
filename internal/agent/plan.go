package agent

import (
	"socagents/internal/backend"
	"socagents/internal/contract"
)

// BuildActionPlan produces the fixed two-step remediation template for a
// ticket: move it to IN_PROGRESS, then record an operator note. The
// template is deliberately static so plan output is reproducible.
func BuildActionPlan(ticket backend.Ticket) contract.ActionPlan {
	steps := []contract.ActionStep{
		{
			StepID:      "step-1",
			Tool:        "ticket.update",
			Description: "Set ticket status to IN_PROGRESS",
			Parameters:  map[string]any{"status": "IN_PROGRESS"},
		},
		{
			StepID:      "step-2",
			Tool:        "ticket.note",
			Description: "Add operator note",
			Parameters:  map[string]any{"note": "VICTOR v0 prepared this plan"},
		},
	}
	return contract.ActionPlan{
		TicketID: ticket.ID,
		Summary:  "Mock action plan for automated remediation",
		Steps:    steps,
	}
}

package agent

import (
	"testing"

	"socagents/internal/backend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildActionPlan(t *testing.T) {
	plan := BuildActionPlan(backend.Ticket{ID: 42, Subject: "X", Status: "OPEN"})

	assert.Equal(t, 42, plan.TicketID)
	require.Len(t, plan.Steps, 2)

	assert.Equal(t, "step-1", plan.Steps[0].StepID)
	assert.Equal(t, "ticket.update", plan.Steps[0].Tool)
	assert.Equal(t, map[string]any{"status": "IN_PROGRESS"}, plan.Steps[0].Parameters)

	assert.Equal(t, "step-2", plan.Steps[1].StepID)
	assert.Equal(t, "ticket.note", plan.Steps[1].Tool)
}

func TestBuildActionPlan_Deterministic(t *testing.T) {
	ticket := backend.Ticket{ID: 7, Subject: "Y", Status: "OPEN"}
	assert.Equal(t, BuildActionPlan(ticket), BuildActionPlan(ticket))
}

package contract

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAgentInput_Valid(t *testing.T) {
	raw := map[string]any{
		"message":   "please isolate host-9",
		"ticket_id": float64(77),
		"thread_id": "thread-1",
		"metadata":  map[string]any{"source": "portal", "priority": 2},
	}

	in, err := ParseAgentInput(raw)
	require.NoError(t, err)
	require.NotNil(t, in.Message)
	assert.Equal(t, "please isolate host-9", *in.Message)
	require.NotNil(t, in.TicketID)
	assert.Equal(t, 77, *in.TicketID)
	require.NotNil(t, in.ThreadID)
	assert.Equal(t, "thread-1", *in.ThreadID)
	assert.Equal(t, "portal", in.Metadata["source"])
}

func TestParseAgentInput_Empty(t *testing.T) {
	in, err := ParseAgentInput(map[string]any{})
	require.NoError(t, err)
	assert.Nil(t, in.Message)
	assert.Nil(t, in.TicketID)
	assert.Nil(t, in.ThreadID)
	assert.NotNil(t, in.Metadata)
}

func TestParseAgentInput_TypeErrors(t *testing.T) {
	cases := []struct {
		name  string
		raw   map[string]any
		field string
	}{
		{"message not string", map[string]any{"message": 5}, "message"},
		{"ticket_id not integer", map[string]any{"ticket_id": "77"}, "ticket_id"},
		{"ticket_id fractional", map[string]any{"ticket_id": 7.5}, "ticket_id"},
		{"thread_id not string", map[string]any{"thread_id": 9}, "thread_id"},
		{"metadata not object", map[string]any{"metadata": []any{"x"}}, "metadata"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseAgentInput(tc.raw)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestNewAgentInput_RejectsNonJSONMetadata(t *testing.T) {
	_, err := NewAgentInput(nil, nil, nil, map[string]any{
		"nested": map[string]any{"bad": make(chan int)},
	})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "metadata.nested.bad", verr.Field)
}

func TestNewAgentOutput_RequiresText(t *testing.T) {
	_, err := NewAgentOutput("   \t\n", nil, nil, nil)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "text", verr.Field)
}

func TestAgentOutput_SerializeRoundTrip(t *testing.T) {
	threadID := "thread-9"
	plan, err := NewActionPlan(42, "remediate", []ActionStep{
		{StepID: "step-1", Tool: "ticket.update", Description: "move", Parameters: map[string]any{"status": "IN_PROGRESS"}},
	})
	require.NoError(t, err)

	out, err := NewAgentOutput("done", &threadID, &plan, map[string]any{"classification": "AUTOMATED"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(out.Serialize()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "done", decoded["text"])
	assert.Equal(t, "thread-9", decoded["thread_id"])
	assert.Equal(t, "AUTOMATED", decoded["metadata"].(map[string]any)["classification"])

	decodedPlan := decoded["action_plan"].(map[string]any)
	assert.Equal(t, float64(42), decodedPlan["ticket_id"])
	steps := decodedPlan["steps"].([]any)
	require.Len(t, steps, 1)
	assert.Equal(t, "ticket.update", steps[0].(map[string]any)["tool"])
}

func TestAgentOutput_SerializeNullSafe(t *testing.T) {
	out, err := NewAgentOutput("hola", nil, nil, nil)
	require.NoError(t, err)

	raw, err := json.Marshal(out.Serialize())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Nil(t, decoded["thread_id"])
	assert.Nil(t, decoded["action_plan"])
	assert.Equal(t, map[string]any{}, decoded["metadata"])
}

func TestNewActionPlan_RejectsInvalidParameters(t *testing.T) {
	_, err := NewActionPlan(1, "bad", []ActionStep{
		{StepID: "step-1", Tool: "ticket.update", Parameters: map[string]any{"fn": func() {}}},
	})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "steps.step-1.parameters.fn", verr.Field)
}

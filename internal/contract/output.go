package contract

import "strings"

// AgentOutput is the immutable result of a workflow run. It is constructed
// exactly once at the end of a workflow and serialized to the response
// body.
type AgentOutput struct {
	Text       string
	ThreadID   *string
	ActionPlan *ActionPlan
	Metadata   map[string]any
}

// NewAgentOutput validates the text and metadata and returns the output.
// Text must be non-empty after trimming whitespace.
func NewAgentOutput(text string, threadID *string, plan *ActionPlan, metadata map[string]any) (AgentOutput, error) {
	if strings.TrimSpace(text) == "" {
		return AgentOutput{}, &ValidationError{Field: "text", Reason: "must be a non-empty string"}
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	if err := validateJSONValue(metadata, "metadata"); err != nil {
		return AgentOutput{}, err
	}
	return AgentOutput{
		Text:       text,
		ThreadID:   threadID,
		ActionPlan: plan,
		Metadata:   metadata,
	}, nil
}

// Serialize renders the output as a JSON-compatible map. Absent optional
// fields are explicit nulls so the response shape is stable.
func (o AgentOutput) Serialize() map[string]any {
	var threadID any
	if o.ThreadID != nil {
		threadID = *o.ThreadID
	}
	var plan any
	if o.ActionPlan != nil {
		plan = o.ActionPlan.Serialize()
	}
	return map[string]any{
		"text":        o.Text,
		"thread_id":   threadID,
		"action_plan": plan,
		"metadata":    o.Metadata,
	}
}

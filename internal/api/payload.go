package api

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// agentPayloadSchema constrains the inbound payload to the declared field
// types before the contract layer builds the typed input. Unknown fields
// pass through untouched.
const agentPayloadSchema = `{
	"type": "object",
	"properties": {
		"message":   {"type": ["string", "null"]},
		"text":      {"type": ["string", "null"]},
		"ticket_id": {"type": ["integer", "null"]},
		"ticketId":  {"type": ["integer", "null"]},
		"thread_id": {"type": ["string", "null"]},
		"threadId":  {"type": ["string", "null"]},
		"metadata":  {"type": "object"}
	}
}`

var compiledAgentPayload = jsonschema.MustCompileString("agent-payload.json", agentPayloadSchema)

// validatePayload checks a decoded request body against the payload
// schema.
func validatePayload(payload map[string]any) error {
	if err := compiledAgentPayload.Validate(payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

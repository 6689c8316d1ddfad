package contract

import (
	"encoding/json"
	"math"
)

// AgentInput is the immutable inbound payload for one agent run. It is
// constructed once per request and never mutated.
type AgentInput struct {
	Message  *string
	TicketID *int
	ThreadID *string
	Metadata map[string]any
}

// NewAgentInput validates the metadata tree eagerly and returns the input.
func NewAgentInput(message *string, ticketID *int, threadID *string, metadata map[string]any) (AgentInput, error) {
	if metadata == nil {
		metadata = map[string]any{}
	}
	if err := validateJSONValue(metadata, "metadata"); err != nil {
		return AgentInput{}, err
	}
	return AgentInput{
		Message:  message,
		TicketID: ticketID,
		ThreadID: threadID,
		Metadata: metadata,
	}, nil
}

// ParseAgentInput type-checks a decoded JSON payload with canonical keys
// (message, ticket_id, thread_id, metadata) and constructs an AgentInput.
func ParseAgentInput(raw map[string]any) (AgentInput, error) {
	var (
		message  *string
		ticketID *int
		threadID *string
		metadata map[string]any
	)

	if v, ok := raw["message"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return AgentInput{}, &ValidationError{Field: "message", Reason: "must be a string when provided"}
		}
		message = &s
	}
	if v, ok := raw["ticket_id"]; ok && v != nil {
		id, ok := toInt(v)
		if !ok {
			return AgentInput{}, &ValidationError{Field: "ticket_id", Reason: "must be an integer when provided"}
		}
		ticketID = &id
	}
	if v, ok := raw["thread_id"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return AgentInput{}, &ValidationError{Field: "thread_id", Reason: "must be a string when provided"}
		}
		threadID = &s
	}
	if v, ok := raw["metadata"]; ok && v != nil {
		m, ok := v.(map[string]any)
		if !ok {
			return AgentInput{}, &ValidationError{Field: "metadata", Reason: "must be an object when provided"}
		}
		metadata = m
	}

	return NewAgentInput(message, ticketID, threadID, metadata)
}

// toInt accepts the numeric shapes a decoded JSON payload can carry for an
// integer field. Strings are rejected; fractional values are rejected.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

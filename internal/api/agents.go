package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"socagents/internal/agent"
	"socagents/internal/contract"

	"go.uber.org/zap"
)

func (d Dependencies) runSophia(w http.ResponseWriter, r *http.Request) {
	d.runAgent(w, r, d.Triage)
}

func (d Dependencies) runVictor(w http.ResponseWriter, r *http.Request) {
	d.runAgent(w, r, d.Execution)
}

func (d Dependencies) runAgent(w http.ResponseWriter, r *http.Request, runner AgentRunner) {
	companyID := r.Header.Get(d.CompanyHeader)
	if companyID == "" {
		WriteError(w, http.StatusBadRequest, "missing_company_header",
			fmt.Sprintf("Missing %s header", d.CompanyHeader), d.Log)
		return
	}

	payload := decodePayload(r)
	if err := validatePayload(payload); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_payload", err.Error(), d.Log)
		return
	}

	input, err := buildInput(r, payload)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "validation_failed", err.Error(), d.Log)
		return
	}

	out, err := runner.Run(r.Context(), agent.RunInput{
		Input:     input,
		CompanyID: companyID,
		Auth:      r.Header.Get("Authorization"),
	})
	if err != nil {
		var verr *contract.ValidationError
		if errors.As(err, &verr) {
			WriteError(w, http.StatusBadRequest, "validation_failed", verr.Error(), d.Log)
			return
		}
		d.Log.Error("agent run failed", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), d.Log)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out.Serialize())
}

// decodePayload parses the request body as JSON. A missing or non-JSON
// body is tolerated and treated as an empty payload.
func decodePayload(r *http.Request) map[string]any {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload == nil {
		return map[string]any{}
	}
	return payload
}

// buildInput resolves the accepted key aliases (message|text,
// ticket_id|ticketId, thread_id|threadId, with the query parameter taking
// precedence for the thread id) into the canonical contract keys.
func buildInput(r *http.Request, payload map[string]any) (contract.AgentInput, error) {
	raw := map[string]any{}
	if v := firstValue(payload, "message", "text"); v != nil {
		raw["message"] = v
	}
	if v := firstValue(payload, "ticket_id", "ticketId"); v != nil {
		raw["ticket_id"] = v
	}
	if threadID := r.URL.Query().Get("thread_id"); threadID != "" {
		raw["thread_id"] = threadID
	} else if v := firstValue(payload, "thread_id", "threadId"); v != nil {
		raw["thread_id"] = v
	}
	if v, ok := payload["metadata"]; ok && v != nil {
		raw["metadata"] = v
	}
	return contract.ParseAgentInput(raw)
}

func firstValue(payload map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := payload[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

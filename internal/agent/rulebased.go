package agent

import (
	"context"
	"strings"

	"socagents/internal/chat"
)

// RuleBasedCompleter answers deterministically when no chat collaborator
// endpoint is configured, so the service stays operable without one.
type RuleBasedCompleter struct {
	Agent string
}

func (r RuleBasedCompleter) Complete(ctx context.Context, message, threadID string) (chat.Result, error) {
	if strings.EqualFold(r.Agent, "SOPHIA") {
		return chat.Result{Text: classificationText(Classify(message)), ThreadID: threadID}, nil
	}
	return chat.Result{Text: "VICTOR listo para generar un plan de accion.", ThreadID: threadID}, nil
}

package agent

import (
	"context"
	"errors"

	"socagents/internal/auth"
	"socagents/internal/backend"
	"socagents/internal/contract"
)

// TicketGateway is the subset of the backend client the workflows use.
type TicketGateway interface {
	CreateTicket(ctx context.Context, companyID, subject, description, status, auth string) (backend.Ticket, error)
	GetTicket(ctx context.Context, companyID string, ticketID int, auth string) (backend.Ticket, error)
	PatchTicket(ctx context.Context, companyID string, ticketID int, patch map[string]any, auth string) (backend.Ticket, error)
}

// TokenSource issues service credentials for backend calls when the
// caller did not supply one.
type TokenSource interface {
	Get(ctx context.Context, companyID, agentType string) (string, error)
}

// RunInput carries the request-scoped values resolved by the trigger
// layer.
type RunInput struct {
	Input     contract.AgentInput
	CompanyID string
	// Auth is the inbound Authorization header, forwarded to backend
	// calls verbatim when present.
	Auth string
}

// TicketResult is a backend ticket read or write that may have been
// substituted locally after a backend failure. Degraded results let the
// workflow finish while the cause is kept for logging.
type TicketResult struct {
	Ticket   backend.Ticket
	Degraded bool
	Cause    error
}

func okTicket(t backend.Ticket) TicketResult {
	return TicketResult{Ticket: t}
}

func degradedTicket(t backend.Ticket, cause error) TicketResult {
	return TicketResult{Ticket: t, Degraded: true, Cause: cause}
}

// resolveAuth picks the credential for backend calls: the caller's
// passthrough header when present, otherwise a self-issued bearer token.
// A token source without an access key configured yields unauthenticated
// calls rather than an error; exhausted acquisition retries surface.
func resolveAuth(ctx context.Context, tokens TokenSource, companyID, agentType, passthrough string) (string, error) {
	if passthrough != "" {
		return passthrough, nil
	}
	if tokens == nil {
		return "", nil
	}
	token, err := tokens.Get(ctx, companyID, agentType)
	if err != nil {
		var aerr *auth.Error
		if errors.As(err, &aerr) && aerr.Reason == auth.ReasonMissingAccessKey {
			return "", nil
		}
		return "", err
	}
	return "Bearer " + token, nil
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

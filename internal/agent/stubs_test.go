package agent

import (
	"context"
	"errors"

	"socagents/internal/backend"
	"socagents/internal/chat"
)

// stubGateway implements TicketGateway with pluggable behavior per call.
type stubGateway struct {
	createFn func(companyID, subject, description, status, auth string) (backend.Ticket, error)
	getFn    func(companyID string, ticketID int, auth string) (backend.Ticket, error)
	patchFn  func(companyID string, ticketID int, patch map[string]any, auth string) (backend.Ticket, error)

	createCalls int
	getCalls    int
	patchCalls  int
	lastAuth    string
	lastPatch   map[string]any
}

func (s *stubGateway) CreateTicket(ctx context.Context, companyID, subject, description, status, auth string) (backend.Ticket, error) {
	s.createCalls++
	s.lastAuth = auth
	if s.createFn == nil {
		return backend.Ticket{}, errors.New("create not stubbed")
	}
	return s.createFn(companyID, subject, description, status, auth)
}

func (s *stubGateway) GetTicket(ctx context.Context, companyID string, ticketID int, auth string) (backend.Ticket, error) {
	s.getCalls++
	s.lastAuth = auth
	if s.getFn == nil {
		return backend.Ticket{}, errors.New("get not stubbed")
	}
	return s.getFn(companyID, ticketID, auth)
}

func (s *stubGateway) PatchTicket(ctx context.Context, companyID string, ticketID int, patch map[string]any, auth string) (backend.Ticket, error) {
	s.patchCalls++
	s.lastAuth = auth
	s.lastPatch = patch
	if s.patchFn == nil {
		return backend.Ticket{}, errors.New("patch not stubbed")
	}
	return s.patchFn(companyID, ticketID, patch, auth)
}

// stubCompleter returns a fixed reply or error.
type stubCompleter struct {
	result chat.Result
	err    error
}

func (s stubCompleter) Complete(ctx context.Context, message, threadID string) (chat.Result, error) {
	return s.result, s.err
}

// stubTokens returns a fixed token or error.
type stubTokens struct {
	token string
	err   error
	calls int
}

func (s *stubTokens) Get(ctx context.Context, companyID, agentType string) (string, error) {
	s.calls++
	return s.token, s.err
}

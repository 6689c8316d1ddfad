package agent

import (
	"context"
	"fmt"
	"strings"

	"socagents/internal/backend"
	"socagents/internal/chat"
	"socagents/internal/contract"

	"go.uber.org/zap"
)

const (
	triageTicketSubject    = "Automated security request"
	triageDefaultDesc      = "Automated request captured by SOPHIA"
	mockCreatedStatus      = "MOCK_CREATED"
	backendUnavailableNote = "Backend unavailable, using mock response"
)

// TriageService is the SOPHIA workflow: validate, classify, optionally
// open a ticket, respond.
type TriageService struct {
	gateway   TicketGateway
	chat      chat.Completer
	tokens    TokenSource
	agentType string
	log       *zap.Logger
}

// NewTriageService wires the triage workflow.
func NewTriageService(gateway TicketGateway, completer chat.Completer, tokens TokenSource, agentType string, log *zap.Logger) *TriageService {
	return &TriageService{
		gateway:   gateway,
		chat:      completer,
		tokens:    tokens,
		agentType: agentType,
		log:       log,
	}
}

// Run executes one triage request. Validation failures return a
// contract.ValidationError; a chat collaborator failure is fatal; a
// backend create failure degrades to a mock ticket so the response is
// still produced.
func (s *TriageService) Run(ctx context.Context, in RunInput) (contract.AgentOutput, error) {
	if in.CompanyID == "" {
		return contract.AgentOutput{}, &contract.ValidationError{Field: "company_id", Reason: "company identifier is required"}
	}

	message := stringValue(in.Input.Message)
	threadID := stringValue(in.Input.ThreadID)

	reply, err := s.chat.Complete(ctx, message, threadID)
	if err != nil {
		return contract.AgentOutput{}, fmt.Errorf("chat collaborator: %w", err)
	}

	classification := Classify(message)
	s.log.Info("message classified",
		zap.String("company_id", in.CompanyID),
		zap.String("classification", string(classification)))

	metadata := map[string]any{"classification": string(classification)}

	if classification == Automated {
		result, err := s.createTicket(ctx, in, message)
		if err != nil {
			return contract.AgentOutput{}, err
		}
		if result.Degraded {
			s.log.Warn("ticket create degraded to mock",
				zap.String("company_id", in.CompanyID),
				zap.Error(result.Cause))
		}
		metadata["ticket"] = result.Ticket.Serialize()
	}

	text := reply.Text
	if strings.TrimSpace(text) == "" {
		text = classificationText(classification)
	}
	resolvedThread := reply.ThreadID
	if resolvedThread == "" {
		resolvedThread = threadID
	}

	return contract.NewAgentOutput(text, optionalString(resolvedThread), nil, metadata)
}

// createTicket opens the backend ticket for an AUTOMATED request. Backend
// failures are swallowed into a Degraded result; only credential
// acquisition failures propagate.
func (s *TriageService) createTicket(ctx context.Context, in RunInput, message string) (TicketResult, error) {
	description := message
	if description == "" {
		description = triageDefaultDesc
	}

	credential, err := resolveAuth(ctx, s.tokens, in.CompanyID, s.agentType, in.Auth)
	if err != nil {
		return TicketResult{}, err
	}

	ticket, err := s.gateway.CreateTicket(ctx, in.CompanyID, triageTicketSubject, description, "", credential)
	if err != nil {
		mock := backend.Ticket{
			ID:      0,
			Subject: triageTicketSubject,
			Status:  mockCreatedStatus,
			Message: backendUnavailableNote,
		}
		return degradedTicket(mock, err), nil
	}
	return okTicket(ticket), nil
}

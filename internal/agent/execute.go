package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"socagents/internal/backend"
	"socagents/internal/chat"
	"socagents/internal/contract"

	"go.uber.org/zap"
)

const (
	preApprovedStatus  = "PREAPROBADO"
	mockTicketSubject  = "Mock Ticket"
	mockTicketStatus   = "OPEN"
	executionReplyText = "Plan generado y ticket marcado como PREAPROBADO."
)

// ExecutionService is the VICTOR workflow: resolve a ticket, build the
// remediation plan, patch the ticket to the approved state, respond.
type ExecutionService struct {
	gateway   TicketGateway
	chat      chat.Completer
	tokens    TokenSource
	agentType string
	log       *zap.Logger
}

// NewExecutionService wires the execution workflow.
func NewExecutionService(gateway TicketGateway, completer chat.Completer, tokens TokenSource, agentType string, log *zap.Logger) *ExecutionService {
	return &ExecutionService{
		gateway:   gateway,
		chat:      completer,
		tokens:    tokens,
		agentType: agentType,
		log:       log,
	}
}

// Run executes one remediation request. A missing ticket id is the one
// workflow-level hard requirement; backend read and patch failures are
// degraded locally so the caller still receives the intended outcome.
func (s *ExecutionService) Run(ctx context.Context, in RunInput) (contract.AgentOutput, error) {
	if in.CompanyID == "" {
		return contract.AgentOutput{}, &contract.ValidationError{Field: "company_id", Reason: "company identifier is required"}
	}

	message := stringValue(in.Input.Message)
	threadID := stringValue(in.Input.ThreadID)

	ticketID := 0
	if in.Input.TicketID != nil {
		ticketID = *in.Input.TicketID
	}
	if ticketID == 0 {
		ticketID = ParseTicketID(message)
	}
	if ticketID == 0 {
		return contract.AgentOutput{}, &contract.ValidationError{Field: "ticket_id", Reason: "ticket_id is required"}
	}

	prompt := message
	if prompt == "" {
		prompt = fmt.Sprintf("ticket_id=%d", ticketID)
	}
	reply, err := s.chat.Complete(ctx, prompt, threadID)
	if err != nil {
		return contract.AgentOutput{}, fmt.Errorf("chat collaborator: %w", err)
	}

	credential, err := resolveAuth(ctx, s.tokens, in.CompanyID, s.agentType, in.Auth)
	if err != nil {
		return contract.AgentOutput{}, err
	}

	fetched := s.fetchTicket(ctx, in.CompanyID, ticketID, credential)
	if fetched.Degraded {
		s.log.Warn("ticket fetch degraded to mock",
			zap.Int("ticket_id", ticketID),
			zap.Error(fetched.Cause))
	}

	plan := BuildActionPlan(fetched.Ticket)

	patch := map[string]any{
		"status":      preApprovedStatus,
		"action_plan": plan.Serialize(),
	}
	patched := s.patchTicket(ctx, in.CompanyID, ticketID, patch, credential, fetched.Ticket, plan)
	if patched.Degraded {
		s.log.Warn("ticket patch degraded to local echo",
			zap.Int("ticket_id", ticketID),
			zap.Error(patched.Cause))
	}

	resolvedThread := reply.ThreadID
	if resolvedThread == "" {
		resolvedThread = threadID
	}
	metadata := map[string]any{"ticket": patched.Ticket.Serialize()}

	return contract.NewAgentOutput(executionReplyText, optionalString(resolvedThread), &plan, metadata)
}

func (s *ExecutionService) fetchTicket(ctx context.Context, companyID string, ticketID int, credential string) TicketResult {
	ticket, err := s.gateway.GetTicket(ctx, companyID, ticketID, credential)
	if err != nil {
		mock := backend.Ticket{ID: ticketID, Subject: mockTicketSubject, Status: mockTicketStatus}
		return degradedTicket(mock, err)
	}
	return okTicket(ticket)
}

// patchTicket applies the approval patch. On failure the in-memory
// snapshot is forced to the intended state so the response stays
// consistent with what was attempted; the divergence from real backend
// state is deliberate and logged.
func (s *ExecutionService) patchTicket(ctx context.Context, companyID string, ticketID int, patch map[string]any, credential string, snapshot backend.Ticket, plan contract.ActionPlan) TicketResult {
	updated, err := s.gateway.PatchTicket(ctx, companyID, ticketID, patch, credential)
	if err != nil {
		snapshot.Status = preApprovedStatus
		snapshot.ActionPlan = plan.Serialize()
		return degradedTicket(snapshot, err)
	}
	return okTicket(updated)
}

// ParseTicketID finds the first all-digit token in free text. "#" and "="
// are treated as separators so "#77" and "ticket=77" both resolve. Zero
// means no id was found.
func ParseTicketID(message string) int {
	if message == "" {
		return 0
	}
	normalized := strings.NewReplacer("#", " ", "=", " ").Replace(message)
	for _, token := range strings.Fields(normalized) {
		if !isDigits(token) {
			continue
		}
		id, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		return id
	}
	return 0
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

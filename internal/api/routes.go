package api

import (
	"context"
	"net/http"

	"socagents/internal/agent"
	"socagents/internal/contract"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AgentRunner is one workflow entry point.
type AgentRunner interface {
	Run(ctx context.Context, in agent.RunInput) (contract.AgentOutput, error)
}

type Dependencies struct {
	Triage        AgentRunner
	Execution     AgentRunner
	CompanyHeader string
	Log           *zap.Logger
}

func Routes(d Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestLogger(d.Log))

	r.Post("/agents/sophia/run", d.runSophia)
	r.Post("/agents/victor/run", d.runVictor)

	return r
}

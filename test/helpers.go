package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"socagents/internal/agent"
	"socagents/internal/api"
	"socagents/internal/auth"
	"socagents/internal/backend"
	"socagents/internal/chat"

	"go.uber.org/zap"
)

// fakeBackend is an in-memory stand-in for the ticketing backend and its
// identity endpoint.
type fakeBackend struct {
	srv *httptest.Server

	mu      sync.Mutex
	tickets map[int]map[string]any
	nextID  int

	failCreate bool
	failGet    bool
	failPatch  bool

	tokenCalls  int
	lastAuth    string
	lastCompany string
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{
		tickets: make(map[int]map[string]any),
		nextID:  1,
	}
	b.srv = httptest.NewServer(http.HandlerFunc(b.handle))
	return b
}

func (b *fakeBackend) Close() {
	b.srv.Close()
}

func (b *fakeBackend) URL() string {
	return b.srv.URL
}

func (b *fakeBackend) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastAuth = r.Header.Get("Authorization")
	b.lastCompany = r.Header.Get("X-Company-Id")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/agents/auth/token":
		b.tokenCalls++
		json.NewEncoder(w).Encode(map[string]any{"access_token": "svc-token", "expires_in": 3600})

	case r.Method == http.MethodPost && r.URL.Path == "/tickets/agent-create":
		if b.failCreate {
			http.Error(w, "backend down", http.StatusServiceUnavailable)
			return
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		id := b.nextID
		b.nextID++
		ticket := map[string]any{
			"id":          id,
			"subject":     body["subject"],
			"description": body["description"],
			"status":      "OPEN",
		}
		b.tickets[id] = ticket
		json.NewEncoder(w).Encode(ticket)

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/tickets/"):
		if b.failGet {
			http.Error(w, "backend down", http.StatusServiceUnavailable)
			return
		}
		id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/tickets/"))
		ticket, ok := b.tickets[id]
		if !ok {
			ticket = map[string]any{"id": id, "subject": fmt.Sprintf("Ticket %d", id), "status": "OPEN"}
			b.tickets[id] = ticket
		}
		json.NewEncoder(w).Encode(ticket)

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/tickets/"):
		if b.failPatch {
			http.Error(w, "backend down", http.StatusServiceUnavailable)
			return
		}
		id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/tickets/"))
		var patch map[string]any
		json.NewDecoder(r.Body).Decode(&patch)
		ticket, ok := b.tickets[id]
		if !ok {
			ticket = map[string]any{"id": id, "subject": fmt.Sprintf("Ticket %d", id)}
			b.tickets[id] = ticket
		}
		for k, v := range patch {
			ticket[k] = v
		}
		json.NewEncoder(w).Encode(ticket)

	default:
		http.NotFound(w, r)
	}
}

// newAgentAPI assembles the full router the way main does, against the
// fake backend. accessKey may be empty to exercise unauthenticated calls.
func newAgentAPI(b *fakeBackend, accessKey string, sophiaChat, victorChat chat.Completer) http.Handler {
	logger := zap.NewNop()
	timeout := 5 * time.Second

	gateway := backend.NewClient(b.URL(), timeout, "X-Company-Id")
	tokens := auth.NewTokenCache(b.URL(), accessKey, timeout, logger)

	if sophiaChat == nil {
		sophiaChat = agent.RuleBasedCompleter{Agent: "SOPHIA"}
	}
	if victorChat == nil {
		victorChat = agent.RuleBasedCompleter{Agent: "VICTOR"}
	}

	triage := agent.NewTriageService(gateway, sophiaChat, tokens, "SOPHIA", logger)
	execution := agent.NewExecutionService(gateway, victorChat, tokens, "VICTOR", logger)

	return api.Routes(api.Dependencies{
		Triage:        triage,
		Execution:     execution,
		CompanyHeader: "X-Company-Id",
		Log:           logger,
	})
}

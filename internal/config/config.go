package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// BackendURL returns the ticketing backend base URL without a trailing
// slash. Empty when unset; the caller decides whether that is fatal.
func BackendURL() string {
	return strings.TrimRight(os.Getenv("BACKEND_URL"), "/")
}

// BackendTimeout bounds every outbound HTTP call to the backend, the
// identity endpoint and the chat collaborator.
func BackendTimeout() time.Duration {
	seconds := cast.ToInt(os.Getenv("BACKEND_TIMEOUT_SECONDS"))
	if seconds <= 0 {
		seconds = 10
	}
	return time.Duration(seconds) * time.Second
}

// CompanyHeader is the tenant-scoping header required on every inbound
// request and forwarded on every backend call.
func CompanyHeader() string {
	if h := os.Getenv("XCOMPANY_HEADER"); h != "" {
		return h
	}
	return "X-Company-Id"
}

// AgentAccessKey is the shared secret for self-issued service tokens.
// Optional: without it backend calls run unauthenticated unless the caller
// supplies an Authorization header.
func AgentAccessKey() string {
	return os.Getenv("AGENT_ACCESS_KEY")
}

// AgentType returns the agent type sent to the identity endpoint.
func AgentType(defaultType string) string {
	if v := os.Getenv("AGENT_TYPE"); v != "" {
		return v
	}
	return defaultType
}

// ChatURL is the chat-completion collaborator endpoint. Empty means the
// deterministic rule-based completer is used instead.
func ChatURL() string {
	return os.Getenv("CHAT_URL")
}

// Addr is the listen address for the HTTP server.
func Addr() string {
	if v := os.Getenv("ADDR"); v != "" {
		return v
	}
	return ":8080"
}

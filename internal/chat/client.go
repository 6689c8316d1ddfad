package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Result is the canonical shape of a collaborator reply.
type Result struct {
	Text     string
	ThreadID string
}

// Completer produces conversational text for a workflow. Implementations
// may call a remote completion service or answer deterministically.
type Completer interface {
	Complete(ctx context.Context, message, threadID string) (Result, error)
}

// Client calls a remote text-completion service over HTTP.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a chat client against the given endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

type completionRequest struct {
	Message  string `json:"message"`
	ThreadID string `json:"thread_id,omitempty"`
}

// Complete sends the message and optional thread id and normalizes
// whatever shape the service answers with.
func (c *Client) Complete(ctx context.Context, message, threadID string) (Result, error) {
	payload, err := json.Marshal(completionRequest{Message: message, ThreadID: threadID})
	if err != nil {
		return Result{}, fmt.Errorf("encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("completion service returned %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read completion response: %w", err)
	}
	return Normalize(raw, threadID)
}

// Normalize maps the collaborator's loosely specified reply shapes onto a
// canonical Result. An object is inspected in fixed priority order: text,
// message, content for the reply body and thread_id, threadId for the
// thread. A bare JSON string or a plain text body is accepted as the reply
// itself. Fails only when no text-bearing field exists.
func Normalize(raw []byte, fallbackThreadID string) (Result, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		text := firstString(obj, "text", "message", "content")
		if text == "" {
			return Result{}, errors.New("collaborator reply carries no text field")
		}
		threadID := firstString(obj, "thread_id", "threadId")
		if threadID == "" {
			threadID = fallbackThreadID
		}
		return Result{Text: text, ThreadID: threadID}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return Result{}, errors.New("collaborator reply is empty")
		}
		return Result{Text: s, ThreadID: fallbackThreadID}, nil
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		return Result{Text: text, ThreadID: fallbackThreadID}, nil
	}
	return Result{}, errors.New("collaborator reply is empty")
}

func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

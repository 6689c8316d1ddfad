package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Ticket is the backend's ticket representation as this service consumes
// it. The store is owned by the backend; this is a read snapshot.
type Ticket struct {
	ID          int            `json:"id"`
	Subject     string         `json:"subject"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status"`
	Message     string         `json:"message,omitempty"`
	ActionPlan  map[string]any `json:"action_plan,omitempty"`
}

// Serialize renders the ticket as a JSON-compatible map for response
// metadata.
func (t Ticket) Serialize() map[string]any {
	m := map[string]any{
		"id":      t.ID,
		"subject": t.Subject,
		"status":  t.Status,
	}
	if t.Description != "" {
		m["description"] = t.Description
	}
	if t.Message != "" {
		m["message"] = t.Message
	}
	if t.ActionPlan != nil {
		m["action_plan"] = t.ActionPlan
	}
	return m
}

// Error is a failed backend call. Status is the HTTP status code, zero on
// transport failures.
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Client is a typed facade over the ticketing backend's REST API. Each
// operation issues exactly one HTTP request; retry policy belongs to the
// caller.
type Client struct {
	baseURL       string
	companyHeader string
	http          *http.Client
}

// NewClient creates a backend client. baseURL must not carry a trailing
// slash; timeout bounds every request.
func NewClient(baseURL string, timeout time.Duration, companyHeader string) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		companyHeader: companyHeader,
		http:          &http.Client{Timeout: timeout},
	}
}

type createTicketRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
}

// CreateTicket opens a ticket on behalf of an agent.
func (c *Client) CreateTicket(ctx context.Context, companyID, subject, description, status, auth string) (Ticket, error) {
	body := createTicketRequest{Subject: subject, Description: description, Status: status}
	var ticket Ticket
	if err := c.do(ctx, http.MethodPost, "/tickets/agent-create", companyID, body, auth, &ticket); err != nil {
		return Ticket{}, err
	}
	return ticket, nil
}

// GetTicket fetches the current ticket snapshot.
func (c *Client) GetTicket(ctx context.Context, companyID string, ticketID int, auth string) (Ticket, error) {
	var ticket Ticket
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tickets/%d", ticketID), companyID, nil, auth, &ticket); err != nil {
		return Ticket{}, err
	}
	return ticket, nil
}

// PatchTicket applies a patch object to a ticket and returns the updated
// snapshot.
func (c *Client) PatchTicket(ctx context.Context, companyID string, ticketID int, patch map[string]any, auth string) (Ticket, error) {
	var ticket Ticket
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tickets/%d", ticketID), companyID, patch, auth, &ticket); err != nil {
		return Ticket{}, err
	}
	return ticket, nil
}

func (c *Client) do(ctx context.Context, method, path, companyID string, body any, auth string, out any) error {
	op := method + " " + path

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Err: fmt.Errorf("encode body: %w", err)}
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set(c.companyHeader, companyID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("backend returned %s", resp.Status)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return nil
}

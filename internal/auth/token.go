package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Failure reasons carried by Error.
const (
	ReasonMissingAccessKey   = "missing_access_key"
	ReasonMissingAccessToken = "missing_access_token"
	ReasonAcquireFailed      = "acquire_failed"
)

// Error is a failed credential acquisition. It maps to a 500-class
// response when a self-issued token is required.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth %s: %v", e.Reason, e.Err)
	}
	return "auth " + e.Reason
}

func (e *Error) Unwrap() error {
	return e.Err
}

// tokenSlotCapacity bounds the number of (company, agent type) pairs whose
// tokens are held at once.
const tokenSlotCapacity = 128

// expirySafetyMargin is subtracted from the issuer-reported lifetime so a
// token is never used in its last moments of validity.
const expirySafetyMargin = 30 * time.Second

const defaultExpiresIn = 3600

type cacheKey struct {
	companyID string
	agentType string
}

type cachedToken struct {
	value     string
	expiresAt time.Time
}

// TokenCache acquires and caches short-lived service tokens per
// (company, agent type) pair. Concurrent callers racing on a miss may each
// issue a refresh request; tokens are interchangeable, so the redundant
// calls are tolerated rather than serialized.
type TokenCache struct {
	url         string
	accessKey   string
	http        *http.Client
	cache       *lru.Cache[cacheKey, cachedToken]
	log         *zap.Logger
	now         func() time.Time
	backoffBase time.Duration
}

// NewTokenCache creates a token cache against the identity endpoint under
// backendURL. accessKey may be empty; Get then fails with
// ReasonMissingAccessKey.
func NewTokenCache(backendURL, accessKey string, timeout time.Duration, log *zap.Logger) *TokenCache {
	cache, _ := lru.New[cacheKey, cachedToken](tokenSlotCapacity)
	return &TokenCache{
		url:         backendURL + "/agents/auth/token",
		accessKey:   accessKey,
		http:        &http.Client{Timeout: timeout},
		cache:       cache,
		log:         log,
		now:         time.Now,
		backoffBase: 500 * time.Millisecond,
	}
}

type tokenRequest struct {
	CompanyID      string `json:"companyId"`
	AgentType      string `json:"agentType"`
	AgentAccessKey string `json:"agentAccessKey"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// Get returns a usable token for the pair, from cache when one is still
// valid, otherwise acquiring a fresh one from the identity endpoint with
// up to 3 attempts and exponential backoff.
func (c *TokenCache) Get(ctx context.Context, companyID, agentType string) (string, error) {
	key := cacheKey{companyID: companyID, agentType: agentType}
	if tok, ok := c.cache.Get(key); ok && c.now().Before(tok.expiresAt) {
		return tok.value, nil
	}

	if c.accessKey == "" {
		return "", &Error{Reason: ReasonMissingAccessKey, Err: errors.New("AGENT_ACCESS_KEY is not configured")}
	}

	payload, err := json.Marshal(tokenRequest{
		CompanyID:      companyID,
		AgentType:      agentType,
		AgentAccessKey: c.accessKey,
	})
	if err != nil {
		return "", &Error{Reason: ReasonAcquireFailed, Err: err}
	}

	var parsed tokenResponse
	backoff := retry.WithMaxRetries(2, retry.NewExponential(c.backoffBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := c.requestToken(ctx, payload, &parsed); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		c.log.Warn("token acquisition exhausted retries",
			zap.String("company_id", companyID),
			zap.String("agent_type", agentType),
			zap.Error(err))
		return "", &Error{Reason: ReasonAcquireFailed, Err: err}
	}

	if parsed.AccessToken == "" {
		return "", &Error{Reason: ReasonMissingAccessToken, Err: errors.New("identity endpoint returned no access_token")}
	}

	expiresIn := parsed.ExpiresIn
	if expiresIn == 0 {
		expiresIn = defaultExpiresIn
	}
	ttl := time.Duration(expiresIn)*time.Second - expirySafetyMargin
	if ttl < 0 {
		ttl = 0
	}
	c.cache.Add(key, cachedToken{value: parsed.AccessToken, expiresAt: c.now().Add(ttl)})
	return parsed.AccessToken, nil
}

func (c *TokenCache) requestToken(ctx context.Context, payload []byte, out *tokenResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("identity endpoint returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

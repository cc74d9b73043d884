// Package paypal is the REST capability backend: an OAuth2 HTTP client plus
// the catalog of chat-invokable tools built on top of it.
//
// The error contract mirrors what the rest of the system expects from a tool
// result. A request that reached the API but was rejected comes back as a
// normal payload carrying an "error" field and a nil Go error; only transport
// failures (connection refused, timeout, unreadable body) surface as Go
// errors. Nothing here retries.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/TariqH19/agent-toolkit/common/version"
	"github.com/TariqH19/agent-toolkit/internal/observability"
)

// API hosts per environment.
const (
	sandboxBase = "https://api-m.sandbox.paypal.com"
	liveBase    = "https://api-m.paypal.com"
)

// tokenSafetyWindow is subtracted from the token lifetime so a token is
// refreshed before it can expire mid-request.
const tokenSafetyWindow = 60 * time.Second

// Config configures the REST client.
type Config struct {
	// ClientID and ClientSecret are the REST app credentials.
	ClientID     string
	ClientSecret string
	// Environment selects the API host: "sandbox" (default) or "live".
	Environment string
	// Timeout for each HTTP request. Defaults to 30s.
	Timeout time.Duration
}

// Client is an authenticated PayPal REST client. It caches the OAuth2 access
// token and refreshes it transparently; safe for concurrent use.
type Client struct {
	cfg     Config
	baseURL string
	http    *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
	now       func() time.Time
}

// NewClient builds a Client for the configured environment.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	base := sandboxBase
	if strings.EqualFold(cfg.Environment, "live") {
		base = liveBase
	}
	return &Client{
		cfg:     cfg,
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
		now:     time.Now,
	}
}

// BaseURL reports the API host the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns a valid cached token, fetching a fresh one via the
// client-credentials grant when the cache is empty or near expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt) {
		return c.token, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		// The token endpoint may echo request parameters back in its error
		// body; scrub the credentials before they reach an error string.
		detail := observability.Redact(strings.TrimSpace(string(body)), c.cfg.ClientID, c.cfg.ClientSecret)
		return "", fmt.Errorf("token request: status %d: %s", resp.StatusCode, detail)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("token response carried no access_token")
	}

	c.token = tok.AccessToken
	c.expiresAt = c.now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenSafetyWindow)
	return c.token, nil
}

// do performs one authenticated API call. A non-2xx response is not a Go
// error: the response body (or status text) is wrapped into a payload with an
// "error" field so the caller renders it as a backend-reported failure.
func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The rendered failure text reaches the chat user; make sure a body
		// that echoes the Authorization header cannot leak the token.
		raw = []byte(observability.Redact(string(raw), token))
		return errorPayload(resp.StatusCode, raw)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		// 204 from send/cancel style endpoints.
		return json.RawMessage(`{}`), nil
	}
	return raw, nil
}

// errorPayload folds a rejected API response into an {"error": ...} object.
// The API's own message is preferred; the status code is the fallback.
func errorPayload(status int, body []byte) (json.RawMessage, error) {
	msg := fmt.Sprintf("status %d", status)
	var parsed struct {
		Message string `json:"message"`
		Details []struct {
			Description string `json:"description"`
		} `json:"details"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case len(parsed.Details) > 0 && parsed.Details[0].Description != "":
			msg = parsed.Details[0].Description
		case parsed.Message != "":
			msg = parsed.Message
		}
	}
	encoded, err := json.Marshal(map[string]any{"error": msg})
	if err != nil {
		return nil, fmt.Errorf("encode error payload: %w", err)
	}
	return encoded, nil
}

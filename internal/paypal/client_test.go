package paypal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/TariqH19/agent-toolkit/common/version"
)

// testClient points a Client at a stub API server.
func testClient(srv *httptest.Server) *Client {
	c := NewClient(Config{ClientID: "id", ClientSecret: "secret"})
	c.baseURL = srv.URL
	return c
}

func TestAccessTokenCaching(t *testing.T) {
	var tokenCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			tokenCalls.Add(1)
			user, pass, ok := r.BasicAuth()
			if !ok || user != "id" || pass != "secret" {
				t.Errorf("basic auth = %q/%q", user, pass)
			}
			json.NewEncoder(w).Encode(tokenResponse{AccessToken: "tok-1", TokenType: "Bearer", ExpiresIn: 3600})
		case "/v2/checkout/orders/O1":
			if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
				t.Errorf("Authorization = %q", got)
			}
			if got := r.Header.Get("User-Agent"); got != version.UserAgent() {
				t.Errorf("User-Agent = %q, want %q", got, version.UserAgent())
			}
			w.Write([]byte(`{"id":"O1"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := testClient(srv)
	for i := 0; i < 3; i++ {
		if _, err := c.do(context.Background(), "GET", "/v2/checkout/orders/O1", nil); err != nil {
			t.Fatalf("do: %v", err)
		}
	}
	if got := tokenCalls.Load(); got != 1 {
		t.Errorf("token endpoint hit %d times, want 1", got)
	}
}

func TestAccessTokenRefreshAfterExpiry(t *testing.T) {
	var tokenCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			tokenCalls.Add(1)
			json.NewEncoder(w).Encode(tokenResponse{AccessToken: "tok", ExpiresIn: 3600})
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(srv)
	now := time.Now()
	c.now = func() time.Time { return now }

	if _, err := c.do(context.Background(), "GET", "/v1/catalogs/products", nil); err != nil {
		t.Fatalf("do: %v", err)
	}
	// Jump past the token lifetime; the next call must fetch a fresh token.
	now = now.Add(2 * time.Hour)
	if _, err := c.do(context.Background(), "GET", "/v1/catalogs/products", nil); err != nil {
		t.Fatalf("do: %v", err)
	}
	if got := tokenCalls.Load(); got != 2 {
		t.Errorf("token endpoint hit %d times, want 2", got)
	}
}

func TestDoErrorMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/oauth2/token":
			json.NewEncoder(w).Encode(tokenResponse{AccessToken: "tok", ExpiresIn: 3600})
		case "/rejected-with-message":
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"message":"INVALID_CURRENCY_CODE"}`))
		case "/rejected-with-detail":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"top","details":[{"description":"amount.value is malformed"}]}`))
		case "/rejected-opaque":
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`upstream unavailable`))
		case "/empty-success":
			w.WriteHeader(http.StatusAccepted)
		}
	}))
	defer srv.Close()

	c := testClient(srv)

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"api message", "/rejected-with-message", "INVALID_CURRENCY_CODE"},
		{"detail description wins", "/rejected-with-detail", "amount.value is malformed"},
		{"opaque body falls back to status", "/rejected-opaque", "status 502"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := c.do(context.Background(), "POST", tt.path, map[string]any{})
			if err != nil {
				t.Fatalf("rejected responses are payloads, not Go errors: %v", err)
			}
			var payload struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(raw, &payload); err != nil {
				t.Fatalf("decode payload: %v", err)
			}
			if payload.Error != tt.wantErr {
				t.Errorf("error = %q, want %q", payload.Error, tt.wantErr)
			}
		})
	}

	t.Run("empty success body becomes empty object", func(t *testing.T) {
		raw, err := c.do(context.Background(), "POST", "/empty-success", nil)
		if err != nil {
			t.Fatalf("do: %v", err)
		}
		if string(raw) != "{}" {
			t.Errorf("raw = %s", raw)
		}
	})
}

// A rejected token request must not echo the app credentials into the error
// string; the token endpoint reflects request parameters in some failure modes.
func TestTokenErrorRedactsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client","error_description":"secret sk-sandbox-0123 rejected for client-4567"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{ClientID: "client-4567", ClientSecret: "sk-sandbox-0123"})
	c.baseURL = srv.URL

	_, err := c.accessToken(context.Background())
	if err == nil {
		t.Fatal("expected token error")
	}
	for _, credential := range []string{"sk-sandbox-0123", "client-4567"} {
		if strings.Contains(err.Error(), credential) {
			t.Errorf("error %q leaks %q", err, credential)
		}
	}
	if !strings.Contains(err.Error(), "[REDACTED]") {
		t.Errorf("error %q carries no redaction marker", err)
	}
	if !strings.Contains(err.Error(), "status 401") {
		t.Errorf("error %q lost the status code", err)
	}
}

// A rejected API response that echoes the Authorization header must not leak
// the bearer token into the renderable error payload.
func TestDoErrorRedactsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/oauth2/token" {
			json.NewEncoder(w).Encode(tokenResponse{AccessToken: "tok-abcdef", ExpiresIn: 3600})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"access token tok-abcdef expired"}`))
	}))
	defer srv.Close()

	raw, err := testClient(srv).do(context.Background(), "GET", "/v2/checkout/orders/O1", nil)
	if err != nil {
		t.Fatalf("rejected responses are payloads, not Go errors: %v", err)
	}
	if strings.Contains(string(raw), "tok-abcdef") {
		t.Errorf("payload %s leaks the access token", raw)
	}
	if !strings.Contains(string(raw), "[REDACTED]") {
		t.Errorf("payload %s carries no redaction marker", raw)
	}
}

func TestDoTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(tokenResponse{AccessToken: "tok", ExpiresIn: 3600})
	}))
	c := testClient(srv)
	// Prime the token, then kill the server so the API call itself fails.
	if _, err := c.accessToken(context.Background()); err != nil {
		t.Fatalf("accessToken: %v", err)
	}
	srv.Close()

	if _, err := c.do(context.Background(), "GET", "/v1/catalogs/products", nil); err == nil {
		t.Error("expected transport error after server shutdown")
	}
}

func TestNewClientEnvironment(t *testing.T) {
	if got := NewClient(Config{}).BaseURL(); got != sandboxBase {
		t.Errorf("default base = %q", got)
	}
	if got := NewClient(Config{Environment: "live"}).BaseURL(); got != liveBase {
		t.Errorf("live base = %q", got)
	}
	if got := NewClient(Config{Environment: "SANDBOX"}).BaseURL(); got != sandboxBase {
		t.Errorf("sandbox base = %q", got)
	}
}

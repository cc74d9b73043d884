// Package server exposes the chat service over HTTP.
//
// Endpoints:
//
//	POST /chat    → {"message": ...} → {"response": ...}
//	GET  /health  → {"status": "healthy", "timestamp": ...}
//	GET  /tools   → {"tools": [...], "descriptions": {...}, "count": N, "status": "available"}
//	GET  /        → service banner with endpoint index and a usage example
//
// A chat turn that fails inside an operation handler still returns 200: the
// failure rendering is the response. Only a missing message field is a client
// error.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/TariqH19/agent-toolkit/common/trace"
	"github.com/TariqH19/agent-toolkit/common/version"
	"github.com/TariqH19/agent-toolkit/internal/agent"
	"github.com/TariqH19/agent-toolkit/internal/audit"
	"github.com/TariqH19/agent-toolkit/internal/observability"
)

// maxChatBodyBytes caps the inbound chat request body.
const maxChatBodyBytes = 64 * 1024

// Handlers carries the dependencies of the HTTP surface.
type Handlers struct {
	// Agent processes chat messages.
	Agent *agent.Agent
	// ToolNames is the registered capability list served by GET /tools.
	ToolNames []string
	// ToolDescriptions maps each capability name to its one-line summary,
	// served alongside the names by GET /tools.
	ToolDescriptions map[string]string
	// Audit records completed chat turns. Required; use audit.Noop when no
	// database is configured.
	Audit audit.Recorder
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Routes builds the HTTP handler with all endpoints registered.
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", h.handleChat)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /tools", h.handleTools)
	mux.HandleFunc("GET /{$}", h.handleIndex)
	return withRequestContext(mux)
}

// withRequestContext assigns every request a fresh request ID, propagates it
// via the context, and logs the request line on completion.
func withRequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := trace.NewRequestID()
		ctx := trace.WithRequestID(r.Context(), requestID)

		// Browser clients talk to the endpoint directly.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		slog.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (h *Handlers) handleChat(w http.ResponseWriter, r *http.Request) {
	log := observability.WithRequest(r.Context())

	var req chatRequest
	body := http.MaxBytesReader(w, r.Body, maxChatBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil || req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Message is required"})
		return
	}

	log.Info("processing chat message", "message_len", len(req.Message))
	reply := h.Agent.Process(r.Context(), req.Message)

	h.recordTurn(r.Context(), req.Message, reply)
	writeJSON(w, http.StatusOK, chatResponse{Response: reply.Text()})
}

// recordTurn persists the turn best-effort; the response has already been
// produced, so a failed write is only logged.
func (h *Handlers) recordTurn(ctx context.Context, message string, reply agent.Reply) {
	turn := audit.Turn{
		RequestID: trace.FromContext(ctx),
		Message:   message,
		Operation: string(reply.Operation),
		Response:  reply.Text(),
	}
	if err := h.Audit.RecordTurn(ctx, turn); err != nil {
		observability.WithRequest(ctx).Warn("audit record failed", "error", err)
	}
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handlers) handleTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tools":        h.ToolNames,
		"descriptions": h.ToolDescriptions,
		"count":        len(h.ToolNames),
		"status":       "available",
	})
}

func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "PayPal Agent Toolkit API",
		"version": version.Info(),
		"endpoints": map[string]string{
			"chat":   "POST /chat",
			"health": "GET /health",
			"tools":  "GET /tools",
		},
		"example": map[string]any{
			"url":    "/chat",
			"method": "POST",
			"body":   map[string]string{"message": "Create a payment for $50"},
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

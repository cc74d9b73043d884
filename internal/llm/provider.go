// Package llm defines the narration provider interface and its Ollama-backed
// implementation.
//
// The agent treats narration as strictly optional: a Provider failure of any
// kind is recovered locally with static fallback text and never surfaced to
// the user.
package llm

import "context"

// Provider is the interface all narration backends must implement.
type Provider interface {
	// Complete sends a prompt to the language model and returns its text
	// response. Connection failures and non-2xx statuses are returned as
	// errors for the caller to recover from.
	Complete(ctx context.Context, prompt string) (string, error)
}

// Package trace provides request ID generation and context propagation so a
// single chat turn can be correlated across the HTTP layer, the operation
// handler, any chained capability calls, and the audit log.
package trace

import (
	"context"

	"github.com/google/uuid"
)

// requestKey is the unexported context key used to store the request ID.
type requestKey struct{}

// NewRequestID generates a unique request ID for one chat turn.
func NewRequestID() string {
	return "req_" + uuid.NewString()
}

// WithRequestID returns a child context carrying the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestKey{}, id)
}

// FromContext extracts the request ID from ctx, returning "" if absent.
func FromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestKey{}).(string); ok {
		return v
	}
	return ""
}

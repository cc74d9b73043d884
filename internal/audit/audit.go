// Package audit records completed chat turns for later inspection.
package audit

import (
	"context"
	"time"
)

// Turn is one completed chat exchange.
type Turn struct {
	RequestID string
	Message   string
	Operation string
	Response  string
	CreatedAt time.Time
}

// Recorder persists chat turns. Recording is best-effort: the chat response
// has already been produced when a turn is recorded, so failures are logged
// by the caller and never surfaced to the user.
type Recorder interface {
	RecordTurn(ctx context.Context, t Turn) error
}

// Noop is the Recorder used when no database is configured.
type Noop struct{}

func (Noop) RecordTurn(ctx context.Context, t Turn) error { return nil }

package trace_test

import (
	"context"
	"strings"
	"testing"

	"github.com/TariqH19/agent-toolkit/common/trace"
)

func TestNewRequestID_Unique(t *testing.T) {
	a := trace.NewRequestID()
	b := trace.NewRequestID()

	if !strings.HasPrefix(a, "req_") {
		t.Errorf("request ID %q missing req_ prefix", a)
	}
	if a == b {
		t.Errorf("expected unique request IDs, got %q twice", a)
	}
}

func TestFromContext_RoundTrip(t *testing.T) {
	ctx := trace.WithRequestID(context.Background(), "req_test123")
	if got := trace.FromContext(ctx); got != "req_test123" {
		t.Errorf("FromContext = %q, want req_test123", got)
	}
}

func TestFromContext_Absent(t *testing.T) {
	if got := trace.FromContext(context.Background()); got != "" {
		t.Errorf("FromContext on empty context = %q, want empty", got)
	}
}

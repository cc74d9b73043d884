package agent

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/TariqH19/agent-toolkit/internal/tools"
)

// stubTool builds a schema-less capability that records its requests and
// returns a fixed payload.
func stubTool(name, result string, calls *[]map[string]any) tools.Tool {
	return tools.New(name, "stub", "", func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
		if calls != nil {
			*calls = append(*calls, req)
		}
		return json.RawMessage(result), nil
	})
}

func mustRegistry(t *testing.T, ts ...tools.Tool) *tools.Registry {
	t.Helper()
	r, err := tools.NewRegistry(ts...)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

type fakeNarrator struct {
	text string
	err  error
}

func (f fakeNarrator) Complete(ctx context.Context, prompt string) (string, error) {
	return f.text, f.err
}

func TestProcessCreateOrder(t *testing.T) {
	var calls []map[string]any
	reg := mustRegistry(t, stubTool(tools.CreateOrder,
		`{"id":"5O190127TN364715T","status":"CREATED","links":[{"rel":"approve","href":"https://approve/5O1"}]}`,
		&calls))
	a := New(reg, nil)

	reply := a.Process(context.Background(), "Create a payment for $29.99")
	if reply.Operation != OpCreateOrder {
		t.Fatalf("Operation = %q", reply.Operation)
	}
	if reply.Narration != "" {
		t.Errorf("routed operations carry no narration, got %q", reply.Narration)
	}

	text := reply.Text()
	for _, want := range []string{
		"Order ID: 5O190127TN364715T",
		"Amount: 29.99 USD",
		"Status: CREATED",
		"Approval URL: https://approve/5O1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("response missing %q:\n%s", want, text)
		}
	}

	if len(calls) != 1 {
		t.Fatalf("expected 1 tool call, got %d", len(calls))
	}
	if calls[0]["currency_code"] != "USD" {
		t.Errorf("currency_code = %v", calls[0]["currency_code"])
	}
}

func TestProcessGetOrderUsageError(t *testing.T) {
	var calls []map[string]any
	reg := mustRegistry(t, stubTool(tools.GetOrder, `{}`, &calls))
	a := New(reg, nil)

	reply := a.Process(context.Background(), "Get details for order NOTLONGENOUGH")
	if !strings.Contains(reply.Text(), "Please provide a valid order ID") {
		t.Errorf("expected usage error, got:\n%s", reply.Text())
	}
	if len(calls) != 0 {
		t.Errorf("tool must not be invoked on a usage error, got %d calls", len(calls))
	}
}

func TestProcessCreateInvoiceChain(t *testing.T) {
	var createCalls, sendCalls, getCalls []map[string]any
	reg := mustRegistry(t,
		// Create returns a double-encoded payload, which must unwrap cleanly.
		stubTool(tools.CreateInvoice, `"{\"id\":\"INV-1\"}"`, &createCalls),
		stubTool(tools.SendInvoice, `{}`, &sendCalls),
		stubTool(tools.GetInvoice,
			`{"id":"INV-1","status":"SENT","links":[{"rel":"payer-view","href":"https://pay/INV-1"}]}`,
			&getCalls),
	)
	a := New(reg, nil)
	a.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	reply := a.Process(context.Background(), "Create an invoice for $75 for alice@example.org")
	text := reply.Text()
	for _, want := range []string{
		"Invoice Created and Sent Successfully",
		"Invoice ID: INV-1",
		"Amount: 75.00 USD",
		"Recipient: alice@example.org",
		"✅ Invoice sent successfully to recipient",
		"https://pay/INV-1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("response missing %q:\n%s", want, text)
		}
	}

	if len(createCalls) != 1 || len(sendCalls) != 1 || len(getCalls) != 1 {
		t.Fatalf("call counts = %d/%d/%d, want 1/1/1", len(createCalls), len(sendCalls), len(getCalls))
	}
	if sendCalls[0]["invoice_id"] != "INV-1" {
		t.Errorf("send used invoice_id %v", sendCalls[0]["invoice_id"])
	}
}

func TestProcessCreateInvoiceSendFails(t *testing.T) {
	reg := mustRegistry(t,
		stubTool(tools.CreateInvoice, `{"id":"INV-2"}`, nil),
		stubTool(tools.SendInvoice, `{"error":"recipient rejected"}`, nil),
		stubTool(tools.GetInvoice, `{"id":"INV-2","status":"DRAFT"}`, nil),
	)
	a := New(reg, nil)

	text := a.Process(context.Background(), "Create an invoice for $10").Text()
	for _, want := range []string{
		"Invoice Created Successfully",
		"Status: DRAFT",
		"Auto-send failed",
		`Send the invoice: "Send invoice INV-2"`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("response missing %q:\n%s", want, text)
		}
	}
}

func TestProcessToolUnavailable(t *testing.T) {
	a := New(mustRegistry(t), nil)

	text := a.Process(context.Background(), "Create a payment for $50").Text()
	if text != "❌ Create order tool not available" {
		t.Errorf("got %q", text)
	}
}

func TestProcessBackendError(t *testing.T) {
	reg := mustRegistry(t, stubTool(tools.CreateOrder, `{"error":"INVALID_CURRENCY"}`, nil))
	a := New(reg, nil)

	text := a.Process(context.Background(), "Create a payment for $50").Text()
	if text != "❌ Error creating order: INVALID_CURRENCY" {
		t.Errorf("got %q", text)
	}
}

func TestProcessTransportError(t *testing.T) {
	boom := tools.New(tools.CreateOrder, "stub", "", func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
		return nil, errors.New("connection refused")
	})
	a := New(mustRegistry(t, boom), nil)

	text := a.Process(context.Background(), "Create a payment for $50").Text()
	if !strings.Contains(text, "❌ Error creating order") || !strings.Contains(text, "connection refused") {
		t.Errorf("got %q", text)
	}
}

func TestProcessUnroutedNarration(t *testing.T) {
	reg := mustRegistry(t, stubTool(tools.CreateOrder, `{}`, nil))

	t.Run("narrator success", func(t *testing.T) {
		a := New(reg, fakeNarrator{text: "Happy to help with payments."})
		reply := a.Process(context.Background(), "Hello there")
		if reply.Operation != OpNone {
			t.Fatalf("Operation = %q", reply.Operation)
		}
		if reply.Narration != "Happy to help with payments." {
			t.Errorf("Narration = %q", reply.Narration)
		}
		if reply.OperationResult != genericHelpText {
			t.Errorf("OperationResult = %q", reply.OperationResult)
		}
		if !strings.HasPrefix(reply.Text(), reply.Narration+"\n\n") {
			t.Errorf("Text() must join narration and result with a blank line:\n%s", reply.Text())
		}
	})

	t.Run("narrator failure falls back to rule-based text", func(t *testing.T) {
		a := New(reg, fakeNarrator{err: errors.New("model offline")})
		reply := a.Process(context.Background(), "What tools are available?")
		if !strings.Contains(reply.Narration, tools.CreateOrder) {
			t.Errorf("fallback narration should enumerate capabilities, got %q", reply.Narration)
		}
	})

	t.Run("nil narrator uses rule-based text", func(t *testing.T) {
		a := New(reg, nil)
		reply := a.Process(context.Background(), "Hello there")
		if reply.Narration == "" {
			t.Error("expected rule-based narration")
		}
	})
}

func TestRuleBasedNarration(t *testing.T) {
	names := []string{"create-order", "get-order"}
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"order", "make a payment", "I'll help you create a PayPal order"},
		{"invoice create", "invoice please", "I'll create an invoice for you"},
		{"invoice list", "show my invoices", "I'll list your invoices"},
		{"tracking", "where is my shipment", "I'll track the shipment"},
		{"tool enumeration", "what tools do you have", "create-order, get-order"},
		{"fallback", "zzz", "comprehensive PayPal assistant"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RuleBasedNarration(tt.message, names)
			if !strings.Contains(got, tt.want) {
				t.Errorf("RuleBasedNarration(%q) = %q, want substring %q", tt.message, got, tt.want)
			}
		})
	}
}

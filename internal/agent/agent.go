// Package agent implements the intent-dispatch and response-normalization
// engine behind the chat endpoint.
//
// A chat turn flows: Route picks at most one operation from the ordered rule
// table; the operation handler extracts parameters, invokes one or more
// registered capabilities, normalizes each result, and renders user-facing
// text. When no rule matches, the agent attempts a narration sentence from
// the language model and falls back to static rule-based text; the generic
// help text becomes the operation result.
//
// The agent holds no cross-request state: the capability registry is
// injected at construction and read-only, so concurrent chat turns are safe.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/TariqH19/agent-toolkit/internal/llm"
	"github.com/TariqH19/agent-toolkit/internal/observability"
	"github.com/TariqH19/agent-toolkit/internal/tools"
)

// Agent routes chat messages to commerce operations.
type Agent struct {
	registry *tools.Registry
	narrator llm.Provider
	now      func() time.Time
}

// New creates an Agent over the given capability registry. narrator may be
// nil, in which case narration always uses the static rule-based text.
func New(registry *tools.Registry, narrator llm.Provider) *Agent {
	return &Agent{
		registry: registry,
		narrator: narrator,
		now:      time.Now,
	}
}

// Reply is the outcome of one chat turn. Narration and OperationResult are
// kept separate so the transport layer owns their presentation; either may
// be empty, never both.
type Reply struct {
	// Operation is the routed operation, or OpNone when nothing matched.
	Operation Operation
	// Narration is the optional conversational sentence. Populated only when
	// no operation matched.
	Narration string
	// OperationResult is the rendered operation text, or the generic help
	// text when no operation matched.
	OperationResult string
}

// Text renders the reply as the single response string of the chat contract:
// narration first, then a blank line, then the operation result.
func (r Reply) Text() string {
	switch {
	case r.Narration == "":
		return r.OperationResult
	case r.OperationResult == "":
		return r.Narration
	default:
		return r.Narration + "\n\n" + r.OperationResult
	}
}

// Process handles one chat message. It never returns an error: every failure
// mode renders as user-facing text inside the Reply.
func (a *Agent) Process(ctx context.Context, message string) Reply {
	log := observability.WithRequest(ctx)

	op := Route(message)
	if op == OpNone {
		log.Debug("no operation matched, narrating", "message_len", len(message))
		return Reply{
			Operation:       OpNone,
			Narration:       a.narrate(ctx, message),
			OperationResult: genericHelpText,
		}
	}

	log.Info("operation routed", "operation", string(op))
	return Reply{
		Operation:       op,
		OperationResult: a.dispatch(ctx, op, message),
	}
}

// narrate obtains the conversational sentence for an unrouted message: the
// language model when available, the static rule-based text otherwise.
// Provider failures are always recovered here and never surfaced.
func (a *Agent) narrate(ctx context.Context, message string) string {
	if a.narrator != nil {
		text, err := a.narrator.Complete(ctx, fmt.Sprintf(narrationPrompt, message))
		if err == nil {
			return text
		}
		observability.WithRequest(ctx).Debug("narration provider unavailable, using rule-based text", "error", err)
	}
	return RuleBasedNarration(message, a.registry.Names())
}

// dispatch runs the handler for op. Handlers render their own failures, so
// dispatch always produces user-facing text.
func (a *Agent) dispatch(ctx context.Context, op Operation, message string) string {
	switch op {
	case OpCreateOrder:
		return a.createOrder(ctx, message)
	case OpGetOrder:
		return a.getOrder(ctx, message)
	case OpCaptureOrder:
		return a.captureOrder(ctx, message)
	case OpListTransactions:
		return a.listTransactions(ctx)
	case OpCreateInvoice:
		return a.createInvoice(ctx, message)
	case OpListInvoices:
		return a.listInvoices(ctx)
	case OpGetInvoicePaymentLink:
		return a.getInvoicePaymentLink(ctx, message)
	case OpGetInvoiceDetails:
		return a.getInvoiceDetails(ctx, message)
	case OpSendInvoice:
		return a.sendInvoice(ctx, message)
	case OpSendInvoiceReminder:
		return a.sendInvoiceReminder(ctx, message)
	case OpCancelInvoice:
		return a.cancelInvoice(ctx, message)
	case OpGenerateInvoiceQR:
		return a.generateInvoiceQR(ctx, message)
	case OpTrackShipment:
		return a.trackShipment(ctx, message)
	case OpCreateProduct:
		return a.createProduct(ctx, message)
	case OpListProducts:
		return a.listProducts(ctx)
	case OpGetProduct:
		return a.getProduct(ctx, message)
	case OpCreateSubscriptionPlan:
		return a.createSubscriptionPlan(ctx, message)
	case OpListSubscriptionPlans:
		return a.listSubscriptionPlans(ctx)
	case OpGetSubscriptionPlan:
		return a.getSubscriptionPlan(ctx, message)
	case OpCreateSubscription:
		return a.createSubscription(ctx, message)
	case OpGetSubscription:
		return a.getSubscription(ctx, message)
	case OpUpdateSubscription:
		return a.updateSubscription(ctx, message)
	case OpCancelSubscription:
		return a.cancelSubscription(ctx, message)
	case OpListDisputes:
		return a.listDisputes(ctx)
	case OpGetDispute:
		return a.getDispute(ctx, message)
	case OpAcceptDispute:
		return a.acceptDispute(ctx, message)
	default:
		return genericHelpText
	}
}

// prettyJSON renders v as indented JSON for the "full details" sections of
// rendered responses.
func prettyJSON(v any) string {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(encoded)
}

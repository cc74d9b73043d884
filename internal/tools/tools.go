// Package tools defines the capability interface and registry through which
// the agent reaches the commerce backend.
//
// A capability is identified by a stable string name (e.g. "create-order"),
// accepts a JSON-serializable request, and returns a JSON-serializable
// response. Backend-reported failures travel in-band as an {"error": ...}
// payload; only transport-level failures are returned as Go errors. A lookup
// for an unregistered name is a normal, renderable condition signalled with
// ErrUnavailable, never a panic.
//
// The registry is constructed once at startup and treated as read-only
// thereafter, so concurrent chat requests can share it without locking.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Capability names for every commerce operation the agent can perform.
const (
	CreateOrder  = "create-order"
	GetOrder     = "get-order"
	CaptureOrder = "capture-order"

	CreateInvoice       = "create-invoice"
	GetInvoice          = "get-invoice"
	SendInvoice         = "send-invoice"
	SendInvoiceReminder = "send-invoice-reminder"
	CancelInvoice       = "cancel-invoice"
	GenerateInvoiceQR   = "generate-invoice-qr"
	ListInvoices        = "list-invoices"

	ListTransactions = "list-transactions"

	CreateProduct = "create-product"
	ListProducts  = "list-products"
	GetProduct    = "get-product"

	CreateSubscriptionPlan = "create-subscription-plan"
	ListSubscriptionPlans  = "list-subscription-plans"
	GetSubscriptionPlan    = "get-subscription-plan"
	CreateSubscription     = "create-subscription"
	GetSubscription        = "get-subscription"
	UpdateSubscription     = "update-subscription"
	CancelSubscription     = "cancel-subscription"

	ListDisputes  = "list-disputes"
	GetDispute    = "get-dispute"
	AcceptDispute = "accept-dispute"

	CreateShipmentTracking = "create-shipment-tracking"
)

// ErrUnavailable is returned by Registry.Invoke when the named capability is
// not registered. Callers should use errors.Is to distinguish this expected
// case from real errors and render it as a "tool not available" message.
var ErrUnavailable = errors.New("capability not available")

// Func executes a capability call. req is the JSON-decoded request payload.
type Func func(ctx context.Context, req map[string]any) (json.RawMessage, error)

// Tool is one named capability implementing a single commerce operation.
type Tool interface {
	// Name returns the stable capability name.
	Name() string

	// Description returns a one-line human-readable summary.
	Description() string

	// Schema returns the JSON Schema for the request payload, or "" when the
	// capability accepts any payload.
	Schema() string

	// Invoke runs the capability. A backend-reported failure is returned as
	// an {"error": ...} payload with a nil error; a non-nil error means the
	// call itself failed at the transport level.
	Invoke(ctx context.Context, req map[string]any) (json.RawMessage, error)
}

// tool is the standard Tool implementation returned by New.
type tool struct {
	name        string
	description string
	schema      string
	fn          Func
}

// New builds a Tool from its parts.
func New(name, description, schema string, fn Func) Tool {
	return &tool{name: name, description: description, schema: schema, fn: fn}
}

func (t *tool) Name() string        { return t.name }
func (t *tool) Description() string { return t.description }
func (t *tool) Schema() string      { return t.schema }

func (t *tool) Invoke(ctx context.Context, req map[string]any) (json.RawMessage, error) {
	return t.fn(ctx, req)
}

// Registry holds the immutable set of registered capabilities. It is built
// once with NewRegistry and never mutated, so it is safe for concurrent use.
type Registry struct {
	tools   map[string]Tool
	schemas map[string]*jsonschema.Schema
	order   []string
}

// NewRegistry builds a Registry from the given tools, compiling each tool's
// request schema up front. Duplicate names and malformed schemas are
// programming errors and fail construction.
func NewRegistry(ts ...Tool) (*Registry, error) {
	r := &Registry{
		tools:   make(map[string]Tool, len(ts)),
		schemas: make(map[string]*jsonschema.Schema, len(ts)),
	}
	for _, t := range ts {
		name := t.Name()
		if _, dup := r.tools[name]; dup {
			return nil, fmt.Errorf("duplicate capability registration: %s", name)
		}
		if s := t.Schema(); s != "" {
			compiled, err := jsonschema.CompileString(name+".schema.json", s)
			if err != nil {
				return nil, fmt.Errorf("compile schema for %s: %w", name, err)
			}
			r.schemas[name] = compiled
		}
		r.tools[name] = t
		r.order = append(r.order, name)
	}
	return r, nil
}

// Has reports whether name is a registered capability.
func (r *Registry) Has(name string) bool {
	_, ok := r.tools[name]
	return ok
}

// Names returns all registered capability names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Descriptions returns the one-line summary of every registered capability,
// keyed by name.
func (r *Registry) Descriptions() map[string]string {
	out := make(map[string]string, len(r.tools))
	for name, t := range r.tools {
		out[name] = t.Description()
	}
	return out
}

// Invoke validates req against the capability's schema and executes it.
// An unregistered name returns an error wrapping ErrUnavailable.
func (r *Registry) Invoke(ctx context.Context, name string, req map[string]any) (json.RawMessage, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, name)
	}
	if schema, ok := r.schemas[name]; ok {
		// The schema library validates decoded JSON values, so round-trip the
		// request through encoding/json to erase Go-specific types.
		encoded, err := json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("encode request for %s: %w", name, err)
		}
		var decoded any
		if err := json.Unmarshal(encoded, &decoded); err != nil {
			return nil, fmt.Errorf("decode request for %s: %w", name, err)
		}
		if err := schema.Validate(decoded); err != nil {
			return nil, fmt.Errorf("invalid request for %s: %w", name, err)
		}
	}
	return t.Invoke(ctx, req)
}

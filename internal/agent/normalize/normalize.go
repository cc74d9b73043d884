// Package normalize converts heterogeneous commerce-API responses into the
// canonical shape the renderers work with.
//
// Tool results arrive in inconsistent shapes: the identifier may live in a
// direct id field, be buried in an href, or hang off an entry in a links
// array; the whole payload may additionally be double-encoded (a JSON string
// containing JSON). All of that defensiveness lives here, once, instead of
// being repeated at every call site. Absence of information is always
// representable as UnknownID or an empty string, never an exception.
package normalize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// UnknownID is the identifier used when no resolution strategy succeeds.
const UnknownID = "Unknown"

// Default statuses substituted when the response carries none.
const (
	DefaultOrderStatus   = "CREATED"
	DefaultInvoiceStatus = "DRAFT"
)

// Link is one hypermedia entry in a response's links array.
type Link struct {
	Rel  string
	Href string
}

// Result is the canonical normalized shape of a single-resource response.
type Result struct {
	// ID is the resolved identifier, or UnknownID.
	ID string
	// Status is the resource status, defaulted per resource type when absent.
	Status string
	// Amount and Currency are populated when the response carries an amount.
	Amount   string
	Currency string
	// Links preserves the response's links array in order.
	Links []Link
	// Raw is the decoded response object for renderers that need more fields.
	Raw map[string]any
}

var (
	orderHrefPattern   = regexp.MustCompile(`/orders/([A-Z0-9-]+)`)
	invoiceHrefPattern = regexp.MustCompile(`(?i)/invoices/(INV[A-Z0-9-]+)`)
)

// Unwrap decodes a raw tool result, transparently unwrapping a single level
// of double-encoding: when the payload is a JSON string containing JSON, it
// is parsed once more. It never recurses deeper.
func Unwrap(raw json.RawMessage) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode tool result: %w", err)
	}
	if s, ok := v.(string); ok {
		var inner any
		if err := json.Unmarshal([]byte(s), &inner); err != nil {
			// A plain string that is not JSON stays a string.
			return v, nil
		}
		return inner, nil
	}
	return v, nil
}

// Object unwraps raw and returns it as a JSON object. Non-object payloads
// yield an empty map so callers can probe fields without nil checks.
func Object(raw json.RawMessage) (map[string]any, error) {
	v, err := Unwrap(raw)
	if err != nil {
		return nil, err
	}
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	return map[string]any{}, nil
}

// ErrorMessage returns the backend-reported error in obj, or "" when the
// response is not an error payload. The error field may be a bare string or
// an object carrying a message field.
func ErrorMessage(obj map[string]any) string {
	v, ok := obj["error"]
	if !ok || v == nil {
		return ""
	}
	switch e := v.(type) {
	case string:
		return e
	case map[string]any:
		if msg, ok := e["message"].(string); ok && msg != "" {
			return msg
		}
		encoded, err := json.Marshal(e)
		if err != nil {
			return "unknown error"
		}
		return string(encoded)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Order normalizes an order response: identifier via id → href → self link,
// status defaulting to CREATED, amount from purchase_units when present.
func Order(raw json.RawMessage) (Result, error) {
	obj, err := Object(raw)
	if err != nil {
		return Result{}, err
	}
	r := Result{
		ID:     resolveID(obj, orderHrefPattern),
		Status: stringField(obj, "status", DefaultOrderStatus),
		Links:  links(obj),
		Raw:    obj,
	}
	r.Amount = DigString(obj, "purchase_units", 0, "amount", "value")
	r.Currency = DigString(obj, "purchase_units", 0, "amount", "currency_code")
	return r, nil
}

// Invoice normalizes an invoice response: identifier via id → href → link
// whose href matches the invoice resource pattern, status defaulting to
// DRAFT, amount from the top-level amount object.
func Invoice(raw json.RawMessage) (Result, error) {
	obj, err := Object(raw)
	if err != nil {
		return Result{}, err
	}
	r := Result{
		ID:     resolveID(obj, invoiceHrefPattern),
		Status: stringField(obj, "status", DefaultInvoiceStatus),
		Links:  links(obj),
		Raw:    obj,
	}
	r.Amount = DigString(obj, "amount", "value")
	r.Currency = DigString(obj, "amount", "currency_code")
	return r, nil
}

// ApprovalURL returns the href of the first link with rel "approve", the
// buyer-approval URL on a freshly created order. Empty when absent.
func ApprovalURL(r Result) string {
	for _, l := range r.Links {
		if l.Rel == "approve" {
			return l.Href
		}
	}
	return ""
}

// PaymentLink returns the payer-facing payment URL of an invoice: the first
// link with rel "payer-view" or "paypal_invoice_payment", or whose href
// contains an invoice-payment path. For an already-sent invoice with no such
// link, the top-level href is used as a last resort.
func PaymentLink(r Result) string {
	for _, l := range r.Links {
		if l.Rel == "payer-view" || l.Rel == "paypal_invoice_payment" {
			return l.Href
		}
		if strings.Contains(l.Href, "invoice/pay") || strings.Contains(l.Href, "invoices/pay") {
			return l.Href
		}
	}
	if r.Status == "SENT" || r.Status == "UNPAID" {
		if href, ok := r.Raw["href"].(string); ok && href != "" {
			return href
		}
	}
	return ""
}

// resolveID applies the identifier resolution chain: a direct id field, then
// the top-level href matched against hrefPattern, then the first links entry
// whose rel is "self" or whose href matches hrefPattern. First success wins.
func resolveID(obj map[string]any, hrefPattern *regexp.Regexp) string {
	if id, ok := obj["id"].(string); ok && id != "" {
		return id
	}
	if href, ok := obj["href"].(string); ok {
		if id := idFromHref(href, hrefPattern); id != "" {
			return id
		}
	}
	for _, l := range links(obj) {
		if l.Rel == "self" || hrefPattern.MatchString(l.Href) {
			if id := idFromHref(l.Href, hrefPattern); id != "" {
				return id
			}
		}
	}
	return UnknownID
}

func idFromHref(href string, pattern *regexp.Regexp) string {
	m := pattern.FindStringSubmatch(href)
	if m == nil {
		return ""
	}
	return m[1]
}

func links(obj map[string]any) []Link {
	raw, ok := obj["links"].([]any)
	if !ok {
		return nil
	}
	out := make([]Link, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		l := Link{}
		l.Rel, _ = m["rel"].(string)
		l.Href, _ = m["href"].(string)
		if l.Rel != "" || l.Href != "" {
			out = append(out, l)
		}
	}
	return out
}

func stringField(obj map[string]any, key, def string) string {
	if v, ok := obj[key].(string); ok && v != "" {
		return v
	}
	return def
}

// DigString walks a mixed map/slice path (string keys index maps, int keys
// index slices) and returns the string at the end, or "".
func DigString(v any, path ...any) string {
	cur := v
	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := cur.(map[string]any)
			if !ok {
				return ""
			}
			cur = m[key]
		case int:
			s, ok := cur.([]any)
			if !ok || key < 0 || key >= len(s) {
				return ""
			}
			cur = s[key]
		default:
			return ""
		}
	}
	if s, ok := cur.(string); ok {
		return s
	}
	return ""
}

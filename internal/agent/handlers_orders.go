package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/TariqH19/agent-toolkit/internal/agent/extract"
	"github.com/TariqH19/agent-toolkit/internal/agent/normalize"
	"github.com/TariqH19/agent-toolkit/internal/tools"
)

// call invokes a capability and applies the shared failure renderings:
// unregistered capability, transport failure, and backend-reported error
// payload. errText is non-empty exactly when the call failed; it is already
// user-facing and terminal for the current request (no retries).
func (a *Agent) call(ctx context.Context, capability, toolLabel, verb string, req map[string]any) (json.RawMessage, string) {
	raw, err := a.registry.Invoke(ctx, capability, req)
	if errors.Is(err, tools.ErrUnavailable) {
		return nil, fmt.Sprintf("❌ %s tool not available", toolLabel)
	}
	if err != nil {
		return nil, fmt.Sprintf("❌ Error %s: %v", verb, err)
	}
	obj, err := normalize.Object(raw)
	if err != nil {
		return nil, fmt.Sprintf("❌ Error %s: %v", verb, err)
	}
	if msg := normalize.ErrorMessage(obj); msg != "" {
		return nil, fmt.Sprintf("❌ Error %s: %s", verb, msg)
	}
	return raw, ""
}

func (a *Agent) createOrder(ctx context.Context, message string) string {
	amount := extract.Amount(message, extract.DefaultOrderAmount)

	req := map[string]any{
		"currency_code": extract.DefaultCurrency,
		"items": []any{
			map[string]any{
				"name":        "Payment via PayPal Agent",
				"description": "Payment via PayPal Agent",
				"quantity":    1,
				"unit_amount": extract.FormatAmount(amount),
			},
		},
	}

	raw, errText := a.call(ctx, tools.CreateOrder, "Create order", "creating order", req)
	if errText != "" {
		return errText
	}
	norm, err := normalize.Order(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error creating order: %v", err)
	}

	text := fmt.Sprintf(`💳 **Order Created Successfully!**
- Order ID: %s
- Amount: %s %s
- Status: %s`,
		norm.ID, extract.FormatAmount(amount), extract.DefaultCurrency, norm.Status)
	if url := normalize.ApprovalURL(norm); url != "" {
		text += "\n- Approval URL: " + url
	}
	return text
}

func (a *Agent) getOrder(ctx context.Context, message string) string {
	orderID, ok := extract.OrderID(message)
	if !ok {
		return "❌ Please provide a valid order ID (e.g., 'Get details for order 1AB23456CD789012E')"
	}

	raw, errText := a.call(ctx, tools.GetOrder, "Get order", "getting order", map[string]any{"id": orderID})
	if errText != "" {
		return errText
	}
	norm, err := normalize.Order(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error getting order: %v", err)
	}

	amount := norm.Amount
	if amount == "" {
		amount = "N/A"
	}
	currency := norm.Currency
	if currency == "" {
		currency = extract.DefaultCurrency
	}
	created, _ := norm.Raw["create_time"].(string)
	if created == "" {
		created = "N/A"
	}

	return fmt.Sprintf(`📄 **Order Details**
- Order ID: %s
- Status: %s
- Amount: %s %s
- Created: %s
- Details: %s`,
		orderID, norm.Status, amount, currency, created, prettyJSON(norm.Raw))
}

func (a *Agent) captureOrder(ctx context.Context, message string) string {
	orderID, ok := extract.OrderID(message)
	if !ok {
		return "❌ Please provide a valid order ID (e.g., 'Capture payment for order 1AB23456CD789012E')"
	}

	raw, errText := a.call(ctx, tools.CaptureOrder, "Capture order", "capturing order", map[string]any{"id": orderID})
	if errText != "" {
		return errText
	}
	norm, err := normalize.Order(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error capturing order: %v", err)
	}

	captureID := digCaptureID(norm.Raw)
	if captureID == "" {
		captureID = "N/A"
	}

	return fmt.Sprintf(`💰 **Order Capture Successful**
- Order ID: %s
- Status: %s
- Capture ID: %s
- Details: %s`,
		orderID, norm.Status, captureID, prettyJSON(norm.Raw))
}

// digCaptureID pulls purchase_units[0].payments.captures[0].id.
func digCaptureID(obj map[string]any) string {
	units, ok := obj["purchase_units"].([]any)
	if !ok || len(units) == 0 {
		return ""
	}
	unit, ok := units[0].(map[string]any)
	if !ok {
		return ""
	}
	payments, ok := unit["payments"].(map[string]any)
	if !ok {
		return ""
	}
	captures, ok := payments["captures"].([]any)
	if !ok || len(captures) == 0 {
		return ""
	}
	capture, ok := captures[0].(map[string]any)
	if !ok {
		return ""
	}
	id, _ := capture["id"].(string)
	return id
}

func (a *Agent) listTransactions(ctx context.Context) string {
	raw, errText := a.call(ctx, tools.ListTransactions, "List transactions", "listing transactions", map[string]any{})
	if errText != "" {
		return errText
	}
	v, err := normalize.Unwrap(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error listing transactions: %v", err)
	}
	return "📊 **Recent Transactions:**\n" + prettyJSON(v)
}

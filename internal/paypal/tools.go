package paypal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/TariqH19/agent-toolkit/internal/tools"
)

// transactionWindow is how far back the transaction listing reaches.
const transactionWindow = 31 * 24 * time.Hour

// Tools builds the capability set for every group enabled in actions. The
// returned slice feeds tools.NewRegistry directly.
func Tools(c *Client, actions Actions) []tools.Tool {
	var ts []tools.Tool
	if actions.Orders {
		ts = append(ts, orderTools(c)...)
	}
	if actions.Invoices {
		ts = append(ts, invoiceTools(c)...)
	}
	if actions.Transactions {
		ts = append(ts, transactionTools(c)...)
	}
	if actions.Catalog {
		ts = append(ts, catalogTools(c)...)
	}
	if actions.Subscriptions {
		ts = append(ts, subscriptionTools(c)...)
	}
	if actions.Disputes {
		ts = append(ts, disputeTools(c)...)
	}
	if actions.Shipment {
		ts = append(ts, shipmentTools(c)...)
	}
	return ts
}

func orderTools(c *Client) []tools.Tool {
	return []tools.Tool{
		tools.New(tools.CreateOrder, "Create a checkout order",
			`{"type":"object","properties":{"currency_code":{"type":"string"},"items":{"type":"array"}},"required":["currency_code","items"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "POST", "/v2/checkout/orders", orderBody(req))
			}),
		tools.New(tools.GetOrder, "Fetch order details by ID",
			`{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "GET", "/v2/checkout/orders/"+pathSegment(req, "id"), nil)
			}),
		tools.New(tools.CaptureOrder, "Capture payment for an approved order",
			`{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "POST", "/v2/checkout/orders/"+pathSegment(req, "id")+"/capture", nil)
			}),
	}
}

// orderBody translates the agent's flat order request into the checkout API
// shape. The first item's unit amount doubles as the purchase unit total
// because the agent always sends exactly one item.
func orderBody(req map[string]any) map[string]any {
	currency := stringValue(req, "currency_code")
	var items []any
	value := "0.00"
	if list, ok := req["items"].([]any); ok {
		for _, entry := range list {
			item, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			unit := map[string]any{
				"currency_code": currency,
				"value":         fmt.Sprintf("%v", item["unit_amount"]),
			}
			if value == "0.00" {
				value = unit["value"].(string)
			}
			items = append(items, map[string]any{
				"name":        item["name"],
				"description": item["description"],
				"quantity":    fmt.Sprintf("%v", item["quantity"]),
				"unit_amount": unit,
			})
		}
	}
	return map[string]any{
		"intent": "CAPTURE",
		"purchase_units": []any{
			map[string]any{
				"amount": map[string]any{
					"currency_code": currency,
					"value":         value,
					"breakdown": map[string]any{
						"item_total": map[string]any{"currency_code": currency, "value": value},
					},
				},
				"items": items,
			},
		},
	}
}

func invoiceTools(c *Client) []tools.Tool {
	return []tools.Tool{
		tools.New(tools.CreateInvoice, "Create a draft invoice",
			`{"type":"object","properties":{"detail":{"type":"object"},"primary_recipients":{"type":"array"},"items":{"type":"array"}},"required":["detail"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "POST", "/v2/invoicing/invoices", req)
			}),
		tools.New(tools.GetInvoice, "Fetch invoice details by ID",
			`{"type":"object","properties":{"invoice_id":{"type":"string"}},"required":["invoice_id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "GET", "/v2/invoicing/invoices/"+pathSegment(req, "invoice_id"), nil)
			}),
		tools.New(tools.ListInvoices, "List invoices",
			`{"type":"object"}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "GET", "/v2/invoicing/invoices?total_required=true", nil)
			}),
		tools.New(tools.SendInvoice, "Send an invoice to its recipient",
			`{"type":"object","properties":{"invoice_id":{"type":"string"},"note":{"type":"string"},"send_to_recipient":{"type":"boolean"}},"required":["invoice_id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				body := map[string]any{
					"note":              req["note"],
					"send_to_recipient": req["send_to_recipient"],
				}
				return c.do(ctx, "POST", "/v2/invoicing/invoices/"+pathSegment(req, "invoice_id")+"/send", body)
			}),
		tools.New(tools.SendInvoiceReminder, "Send a payment reminder for an invoice",
			`{"type":"object","properties":{"invoice_id":{"type":"string"},"note":{"type":"string"}},"required":["invoice_id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				body := map[string]any{"note": req["note"], "send_to_recipient": true}
				return c.do(ctx, "POST", "/v2/invoicing/invoices/"+pathSegment(req, "invoice_id")+"/remind", body)
			}),
		tools.New(tools.CancelInvoice, "Cancel a sent invoice",
			`{"type":"object","properties":{"invoice_id":{"type":"string"},"note":{"type":"string"}},"required":["invoice_id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				body := map[string]any{
					"note":              req["note"],
					"send_to_invoicer":  false,
					"send_to_recipient": true,
				}
				return c.do(ctx, "POST", "/v2/invoicing/invoices/"+pathSegment(req, "invoice_id")+"/cancel", body)
			}),
		tools.New(tools.GenerateInvoiceQR, "Generate a QR code for an invoice",
			`{"type":"object","properties":{"invoice_id":{"type":"string"},"width":{"type":"integer"},"height":{"type":"integer"}},"required":["invoice_id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				body := map[string]any{"width": req["width"], "height": req["height"]}
				return c.do(ctx, "POST", "/v2/invoicing/invoices/"+pathSegment(req, "invoice_id")+"/generate-qr-code", body)
			}),
	}
}

func transactionTools(c *Client) []tools.Tool {
	return []tools.Tool{
		tools.New(tools.ListTransactions, "List recent account transactions",
			`{"type":"object"}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				end := time.Now()
				start := end.Add(-transactionWindow)
				q := url.Values{
					"start_date": {start.Format("2006-01-02T15:04:05-0700")},
					"end_date":   {end.Format("2006-01-02T15:04:05-0700")},
				}
				return c.do(ctx, "GET", "/v1/reporting/transactions?"+q.Encode(), nil)
			}),
	}
}

func catalogTools(c *Client) []tools.Tool {
	return []tools.Tool{
		tools.New(tools.CreateProduct, "Create a catalog product",
			`{"type":"object","properties":{"name":{"type":"string"},"type":{"type":"string"}},"required":["name","type"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "POST", "/v1/catalogs/products", req)
			}),
		tools.New(tools.ListProducts, "List catalog products",
			`{"type":"object"}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "GET", "/v1/catalogs/products", nil)
			}),
		tools.New(tools.GetProduct, "Fetch product details by ID",
			`{"type":"object","properties":{"product_id":{"type":"string"}},"required":["product_id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "GET", "/v1/catalogs/products/"+pathSegment(req, "product_id"), nil)
			}),
	}
}

func subscriptionTools(c *Client) []tools.Tool {
	return []tools.Tool{
		tools.New(tools.CreateSubscriptionPlan, "Create a billing plan",
			`{"type":"object","properties":{"product_id":{"type":"string"},"name":{"type":"string"},"billing_cycles":{"type":"array"}},"required":["name","billing_cycles"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "POST", "/v1/billing/plans", req)
			}),
		tools.New(tools.ListSubscriptionPlans, "List billing plans",
			`{"type":"object"}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "GET", "/v1/billing/plans", nil)
			}),
		tools.New(tools.GetSubscriptionPlan, "Fetch billing plan details by ID",
			`{"type":"object","properties":{"plan_id":{"type":"string"}},"required":["plan_id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "GET", "/v1/billing/plans/"+pathSegment(req, "plan_id"), nil)
			}),
		tools.New(tools.CreateSubscription, "Create a subscription to a plan",
			`{"type":"object","properties":{"plan_id":{"type":"string"},"subscriber":{"type":"object"}},"required":["plan_id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "POST", "/v1/billing/subscriptions", req)
			}),
		tools.New(tools.GetSubscription, "Fetch subscription details by ID",
			`{"type":"object","properties":{"subscription_id":{"type":"string"}},"required":["subscription_id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "GET", "/v1/billing/subscriptions/"+pathSegment(req, "subscription_id"), nil)
			}),
		tools.New(tools.UpdateSubscription, "Update a subscription",
			`{"type":"object","properties":{"subscription_id":{"type":"string"},"patch":{"type":"array"}},"required":["subscription_id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				ops, _ := req["patch"].([]any)
				if ops == nil {
					ops = []any{}
				}
				return c.do(ctx, "PATCH", "/v1/billing/subscriptions/"+pathSegment(req, "subscription_id"), ops)
			}),
		tools.New(tools.CancelSubscription, "Cancel a subscription",
			`{"type":"object","properties":{"subscription_id":{"type":"string"},"reason":{"type":"string"}},"required":["subscription_id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				body := map[string]any{"reason": req["reason"]}
				return c.do(ctx, "POST", "/v1/billing/subscriptions/"+pathSegment(req, "subscription_id")+"/cancel", body)
			}),
	}
}

func disputeTools(c *Client) []tools.Tool {
	return []tools.Tool{
		tools.New(tools.ListDisputes, "List customer disputes",
			`{"type":"object"}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "GET", "/v1/customer/disputes", nil)
			}),
		tools.New(tools.GetDispute, "Fetch dispute details by ID",
			`{"type":"object","properties":{"dispute_id":{"type":"string"}},"required":["dispute_id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				return c.do(ctx, "GET", "/v1/customer/disputes/"+pathSegment(req, "dispute_id"), nil)
			}),
		tools.New(tools.AcceptDispute, "Accept a dispute claim",
			`{"type":"object","properties":{"dispute_id":{"type":"string"},"note":{"type":"string"}},"required":["dispute_id"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				body := map[string]any{"note": req["note"]}
				return c.do(ctx, "POST", "/v1/customer/disputes/"+pathSegment(req, "dispute_id")+"/accept-claim", body)
			}),
	}
}

func shipmentTools(c *Client) []tools.Tool {
	return []tools.Tool{
		tools.New(tools.CreateShipmentTracking, "Add shipment tracking for a capture",
			`{"type":"object","properties":{"tracking_number":{"type":"string"}},"required":["tracking_number"]}`,
			func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
				body := map[string]any{
					"trackers": []any{
						map[string]any{
							"tracking_number": req["tracking_number"],
							"status":          "SHIPPED",
						},
					},
				}
				return c.do(ctx, "POST", "/v1/shipping/trackers-batch", body)
			}),
	}
}

func stringValue(req map[string]any, key string) string {
	v, _ := req[key].(string)
	return v
}

// pathSegment escapes a request field for embedding in a URL path.
func pathSegment(req map[string]any, key string) string {
	return url.PathEscape(stringValue(req, key))
}

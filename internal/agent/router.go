package agent

import "strings"

// Operation identifies one discrete commerce action the agent can perform.
type Operation string

// The full operation set. OpNone means no rule matched and the generic help
// text plus a narration attempt is the right response.
const (
	OpNone Operation = ""

	OpCreateInvoice         Operation = "create-invoice"
	OpCreateOrder           Operation = "create-order"
	OpGetOrder              Operation = "get-order"
	OpCaptureOrder          Operation = "capture-order"
	OpListTransactions      Operation = "list-transactions"
	OpListInvoices          Operation = "list-invoices"
	OpGetInvoicePaymentLink Operation = "get-invoice-payment-link"
	OpGetInvoiceDetails     Operation = "get-invoice-details"
	OpSendInvoice           Operation = "send-invoice"
	OpTrackShipment         Operation = "track-shipment"

	OpCreateProduct Operation = "create-product"
	OpListProducts  Operation = "list-products"
	OpGetProduct    Operation = "get-product"

	OpCreateSubscriptionPlan Operation = "create-subscription-plan"
	OpListSubscriptionPlans  Operation = "list-subscription-plans"
	OpGetSubscriptionPlan    Operation = "get-subscription-plan"
	OpCreateSubscription     Operation = "create-subscription"
	OpGetSubscription        Operation = "get-subscription"
	OpUpdateSubscription     Operation = "update-subscription"
	OpCancelSubscription     Operation = "cancel-subscription"

	OpListDisputes  Operation = "list-disputes"
	OpGetDispute    Operation = "get-dispute"
	OpAcceptDispute Operation = "accept-dispute"

	OpSendInvoiceReminder Operation = "send-invoice-reminder"
	OpCancelInvoice       Operation = "cancel-invoice"
	OpGenerateInvoiceQR   Operation = "generate-invoice-qr"
)

// routeRule pairs an operation with its keyword predicate. Predicates see the
// lower-cased message.
type routeRule struct {
	op    Operation
	match func(msg string) bool
}

// routes is the authoritative precedence table, evaluated top to bottom with
// first-match-wins and no backtracking. The ordering is load-bearing where
// one rule's keyword set overlaps another's:
//
//   - invoice creation precedes order creation so "create an invoice for an
//     order" is never misread as an order;
//   - payment-link fetch precedes invoice details so "pay invoice X" is not
//     routed to a status lookup;
//   - subscription-plan rules precede bare subscription rules, and
//     cancel-subscription precedes cancel-invoice.
var routes = []routeRule{
	{OpCreateInvoice, func(m string) bool {
		return has(m, "invoice") && (has(m, "create") || has(m, "for"))
	}},
	{OpCreateOrder, func(m string) bool {
		return (has(m, "create") || has(m, "make")) &&
			(has(m, "order") || has(m, "payment")) &&
			!has(m, "invoice")
	}},
	{OpGetOrder, func(m string) bool {
		return (has(m, "get") || has(m, "details") || has(m, "check")) && has(m, "order")
	}},
	{OpCaptureOrder, func(m string) bool {
		return (has(m, "capture") || has(m, "pay")) && has(m, "order")
	}},
	{OpListTransactions, func(m string) bool {
		return has(m, "list") && has(m, "transaction")
	}},
	{OpListInvoices, func(m string) bool {
		return has(m, "list") && has(m, "invoice")
	}},
	{OpGetInvoicePaymentLink, func(m string) bool {
		return (has(m, "payment") && has(m, "link")) ||
			(has(m, "pay") && has(m, "invoice")) ||
			(has(m, "payment") && has(m, "url"))
	}},
	{OpGetInvoiceDetails, func(m string) bool {
		return (has(m, "get") && has(m, "details") && has(m, "invoice")) ||
			(has(m, "check") && has(m, "invoice")) ||
			(has(m, "invoice") && has(m, "status")) ||
			(has(m, "get") && has(m, "invoice") && !has(m, "payment"))
	}},
	{OpSendInvoice, func(m string) bool {
		return has(m, "send") && has(m, "invoice")
	}},
	{OpTrackShipment, func(m string) bool {
		return has(m, "track") || has(m, "shipment")
	}},

	{OpCreateProduct, func(m string) bool {
		return has(m, "create") && has(m, "product")
	}},
	{OpListProducts, func(m string) bool {
		return has(m, "list") && has(m, "product")
	}},
	{OpGetProduct, func(m string) bool {
		return (has(m, "get") || has(m, "show")) && has(m, "product")
	}},

	{OpCreateSubscriptionPlan, func(m string) bool {
		return has(m, "create") && has(m, "subscription") && has(m, "plan")
	}},
	{OpListSubscriptionPlans, func(m string) bool {
		return has(m, "list") && has(m, "subscription") && has(m, "plan")
	}},
	{OpGetSubscriptionPlan, func(m string) bool {
		return (has(m, "get") || has(m, "show")) && has(m, "subscription") && has(m, "plan")
	}},
	{OpCreateSubscription, func(m string) bool {
		return has(m, "create") && has(m, "subscription") && !has(m, "plan")
	}},
	{OpGetSubscription, func(m string) bool {
		return (has(m, "get") || has(m, "show")) && has(m, "subscription") && !has(m, "plan")
	}},
	{OpUpdateSubscription, func(m string) bool {
		return has(m, "update") && has(m, "subscription")
	}},
	{OpCancelSubscription, func(m string) bool {
		return has(m, "cancel") && has(m, "subscription")
	}},

	{OpListDisputes, func(m string) bool {
		return has(m, "list") && has(m, "dispute")
	}},
	{OpGetDispute, func(m string) bool {
		return (has(m, "get") || has(m, "show")) && has(m, "dispute")
	}},
	{OpAcceptDispute, func(m string) bool {
		return has(m, "accept") && has(m, "dispute")
	}},

	{OpSendInvoiceReminder, func(m string) bool {
		return has(m, "reminder") && has(m, "invoice")
	}},
	{OpCancelInvoice, func(m string) bool {
		return has(m, "cancel") && has(m, "invoice")
	}},
	{OpGenerateInvoiceQR, func(m string) bool {
		return has(m, "qr") && has(m, "invoice")
	}},
}

// Route returns the first operation whose predicate matches the lower-cased
// message, or OpNone. It never fails: absence of a match is a normal outcome.
func Route(message string) Operation {
	m := strings.ToLower(message)
	for _, r := range routes {
		if r.match(m) {
			return r.op
		}
	}
	return OpNone
}

func has(msg, keyword string) bool {
	return strings.Contains(msg, keyword)
}

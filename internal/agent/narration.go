package agent

import "strings"

// narrationPrompt is the template sent to the language model when a message
// needs a conversational reply instead of (or in addition to) a tool result.
const narrationPrompt = `
You are a comprehensive PayPal commerce assistant. You help users with complete PayPal operations including:

PAYMENT OPERATIONS:
- Creating orders/payments and capturing them
- Processing refunds and checking payment status
- Listing transactions and payment history

INVOICE MANAGEMENT:
- Creating, sending, and managing invoices
- Generating payment links and QR codes
- Sending reminders and cancelling invoices

PRODUCT CATALOG:
- Creating and managing products
- Listing products and viewing details

SUBSCRIPTION MANAGEMENT:
- Creating and managing subscription plans
- Creating, updating, and cancelling subscriptions
- Viewing subscription details and status

DISPUTE MANAGEMENT:
- Listing and viewing dispute details
- Accepting dispute claims

SHIPMENT TRACKING:
- Creating and tracking shipments
- Managing delivery information

Based on the user's request, determine what PayPal operation they want and provide a helpful response.

User request: %s

Provide a clear, helpful response about what you would do with their PayPal request.
`

// genericHelpText is the handler of last resort, returned when no routing
// rule matches the message.
const genericHelpText = "I can help you with comprehensive PayPal operations including: " +
	"orders, invoices, products, subscriptions, disputes, transactions, refunds, " +
	"and shipment tracking. Please specify what you'd like to do!"

// RuleBasedNarration produces a short descriptive sentence for a message
// without consulting the language model. It uses the same lower-cased keyword
// tests as the router but is deliberately independent of which handler
// actually ran, so it stays available even when routing found nothing.
// toolNames is the registered capability list, enumerated when the user asks
// what the agent can do.
func RuleBasedNarration(message string, toolNames []string) string {
	m := strings.ToLower(message)

	if (has(m, "create") || has(m, "make")) && (has(m, "order") || has(m, "payment")) {
		return "I'll help you create a PayPal order. Let me extract the amount and currency from your request."
	}
	if has(m, "check") && has(m, "status") {
		return "I'll check the payment status for you. Let me look up the payment details."
	}
	if has(m, "invoice") {
		if has(m, "list") || has(m, "show") || has(m, "get") {
			return "I'll list your invoices for you."
		}
		return "I'll create an invoice for you. Let me extract the recipient email and amount from your request."
	}
	if has(m, "track") || has(m, "shipment") {
		return "I'll track the shipment for you. Let me look up the tracking information."
	}
	if has(m, "refund") {
		return "I'll process the refund for you. Let me extract the payment ID and refund amount."
	}
	if has(m, "transaction") || has(m, "history") {
		return "I'll list your recent transactions."
	}
	if has(m, "tool") || has(m, "available") || has(m, "can you do") {
		return "I have access to the following PayPal tools: " + strings.Join(toolNames, ", ") +
			". I can help you with orders, invoices, transactions, refunds, shipment tracking, " +
			"subscriptions, products, and disputes."
	}
	if has(m, "product") {
		switch {
		case has(m, "create"):
			return "I'll help you create a new product in your PayPal catalog."
		case has(m, "list"):
			return "I'll list all products in your PayPal catalog."
		default:
			return "I can help you manage products - create, list, or get details."
		}
	}
	if has(m, "subscription") {
		switch {
		case has(m, "plan"):
			return "I'll help you manage subscription plans - create, list, or get details."
		case has(m, "create"):
			return "I'll help you create a new subscription for a customer."
		case has(m, "cancel"):
			return "I'll help you cancel an existing subscription."
		default:
			return "I can help you with subscription management - plans, subscriptions, updates, and cancellations."
		}
	}
	if has(m, "dispute") {
		switch {
		case has(m, "list"):
			return "I'll list all open disputes in your account."
		case has(m, "accept"):
			return "I'll help you accept a dispute claim."
		default:
			return "I can help you manage disputes - list, view details, or accept claims."
		}
	}
	if has(m, "reminder") && has(m, "invoice") {
		return "I'll send a payment reminder for the specified invoice."
	}
	if has(m, "qr") && has(m, "invoice") {
		return "I'll generate a QR code for the specified invoice."
	}

	return "I'm a comprehensive PayPal assistant that can help you with payments, invoices, " +
		"tracking, refunds, subscriptions, products, and dispute management. What would you like to do?"
}

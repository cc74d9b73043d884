package agent

import (
	"context"
	"fmt"

	"github.com/TariqH19/agent-toolkit/internal/agent/extract"
	"github.com/TariqH19/agent-toolkit/internal/agent/normalize"
	"github.com/TariqH19/agent-toolkit/internal/observability"
	"github.com/TariqH19/agent-toolkit/internal/tools"
)

// createInvoice is the one multi-step handler: create, then attempt an
// automatic send, then attempt a payment-link fetch. A failure at any step
// renders inline and is terminal; no step is retried.
func (a *Agent) createInvoice(ctx context.Context, message string) string {
	email := extract.Email(message)
	amount := extract.Amount(message, extract.DefaultInvoiceAmount)
	description := extract.Description(message)
	value := extract.FormatAmount(amount)

	req := map[string]any{
		"detail": map[string]any{
			"invoice_number": fmt.Sprintf("INV-%d", a.now().UnixMilli()),
			"currency_code":  extract.DefaultCurrency,
			"note":           description,
			"invoice_date":   a.now().Format("2006-01-02"),
			"payment_term":   map[string]any{"term_type": "NET_30"},
		},
		"invoicer": map[string]any{
			"name":          map[string]any{"given_name": "PayPal", "surname": "Merchant"},
			"email_address": "merchant@business.example.com",
			"website":       "https://example.com",
		},
		"primary_recipients": []any{
			map[string]any{
				"billing_info": map[string]any{
					"name":          map[string]any{"given_name": "Customer", "surname": "Name"},
					"email_address": email,
				},
			},
		},
		"items": []any{
			map[string]any{
				"name":            description,
				"description":     description,
				"quantity":        "1",
				"unit_amount":     map[string]any{"currency_code": extract.DefaultCurrency, "value": value},
				"unit_of_measure": "QUANTITY",
			},
		},
		"configuration": map[string]any{
			"partial_payment":               map[string]any{"allow_partial_payment": false},
			"allow_tip":                     false,
			"tax_calculated_after_discount": true,
			"tax_inclusive":                 false,
		},
		"amount": map[string]any{
			"breakdown": map[string]any{
				"item_total": map[string]any{"currency_code": extract.DefaultCurrency, "value": value},
			},
		},
	}

	raw, errText := a.call(ctx, tools.CreateInvoice, "Create invoice", "creating invoice", req)
	if errText != "" {
		return errText
	}
	norm, err := normalize.Invoice(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error creating invoice: %v", err)
	}
	invoiceID := norm.ID

	// Some backends send on create and return the payer link immediately.
	if linkFromCreation := normalize.DigString(norm.Raw, "sendResult", "href"); invoiceID != normalize.UnknownID && linkFromCreation != "" {
		return fmt.Sprintf(`📄 **Invoice Created and Sent Successfully!**
- Invoice ID: %s
- Amount: %s USD
- Recipient: %s
- Description: %s
- Status: SENT

💳 **Payment Link Ready!**
%s

📧 Share this link with your customer to collect payment!
✅ Customers can pay without a PayPal account!`,
			invoiceID, value, email, description, linkFromCreation)
	}

	observability.WithRequest(ctx).Info("auto-sending created invoice", "invoice_id", invoiceID)
	sendNote, sent := a.sendInvoiceByID(ctx, invoiceID)
	paymentLink := a.lookupPaymentLink(ctx, invoiceID)

	if sent {
		linkBlock := "\n⚠️ Payment link extraction pending - try: \"Get payment link for invoice " + invoiceID + "\""
		if paymentLink != "" {
			linkBlock = "\n💳 **Payment Link Ready!**\n" + paymentLink + "\n\n📧 Share this link with your customer to collect payment!"
		}
		return fmt.Sprintf(`📄 **Invoice Created and Sent Successfully!**
- Invoice ID: %s
- Amount: %s USD
- Recipient: %s
- Description: %s
- Status: SENT
- 📧 %s
%s`,
			invoiceID, value, email, description, sendNote, linkBlock)
	}

	return fmt.Sprintf(`📄 **Invoice Created Successfully!**
- Invoice ID: %s
- Amount: %s USD
- Recipient: %s
- Description: %s
- Status: DRAFT
- ⚠️ Auto-send failed: %s

💡 **Next Steps to Get Payment Link:**
1. Send the invoice: "Send invoice %s"
2. Then fetch the link: "Get payment link for invoice %s"

📧 Once sent, customers can pay without a PayPal account!`,
		invoiceID, value, email, description, sendNote, invoiceID, invoiceID)
}

// sendInvoiceByID attempts the send step of the invoice chain. The returned
// note is user-facing; sent reports whether the invoice reached SENT.
func (a *Agent) sendInvoiceByID(ctx context.Context, invoiceID string) (note string, sent bool) {
	req := map[string]any{
		"invoice_id":        invoiceID,
		"note":              "Thank you for choosing us. If there are any issues, feel free to contact us.",
		"send_to_recipient": true,
	}
	_, errText := a.call(ctx, tools.SendInvoice, "Send invoice", "sending invoice", req)
	if errText != "" {
		return "⚠️ Invoice created but failed to send: " + errText, false
	}
	return "✅ Invoice sent successfully to recipient", true
}

// lookupPaymentLink fetches the invoice and resolves its payer-facing link.
// All failures collapse to "": link absence is a normal, renderable state.
func (a *Agent) lookupPaymentLink(ctx context.Context, invoiceID string) string {
	raw, errText := a.call(ctx, tools.GetInvoice, "Get invoice", "getting invoice", map[string]any{"invoice_id": invoiceID})
	if errText != "" {
		observability.WithRequest(ctx).Debug("payment link lookup failed", "invoice_id", invoiceID, "result", errText)
		return ""
	}
	norm, err := normalize.Invoice(raw)
	if err != nil {
		return ""
	}
	return normalize.PaymentLink(norm)
}

func (a *Agent) listInvoices(ctx context.Context) string {
	raw, errText := a.call(ctx, tools.ListInvoices, "List invoices", "listing invoices", map[string]any{})
	if errText != "" {
		return errText
	}
	v, err := normalize.Unwrap(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error listing invoices: %v", err)
	}
	return "📄 **Your Invoices:**\n" + prettyJSON(v)
}

func (a *Agent) getInvoicePaymentLink(ctx context.Context, message string) string {
	invoiceID, ok := extract.InvoiceIDOrLong(message)
	if !ok {
		return "❌ Please provide a valid invoice ID (e.g., 'Get payment link for invoice INV-1234567890' or 'Get payment link for invoice INV2-XXXX-XXXX-XXXX-XXXX')"
	}

	paymentLink := a.lookupPaymentLink(ctx, invoiceID)
	if paymentLink == "" {
		return fmt.Sprintf(`❌ **Payment Link Not Available**
- Invoice ID: %s

🔍 **Possible reasons:**
- Invoice is still in DRAFT status (not sent yet)
- Invoice needs to be sent first

💡 **To get the payment link:**
1. Send the invoice: "Send invoice %s"
2. Once sent, try this command again
3. Or ask: "Get details for invoice %s" to check status`,
			invoiceID, invoiceID, invoiceID)
	}

	return fmt.Sprintf(`💳 **Invoice Payment Link Ready!**
- Invoice ID: %s
- Payment URL: %s

📧 **Share this link with your customer:**
%s

✅ Customers can pay directly without a PayPal account!
💡 The link is secure and handles the complete payment process.`,
		invoiceID, paymentLink, paymentLink)
}

func (a *Agent) getInvoiceDetails(ctx context.Context, message string) string {
	invoiceID, ok := extract.InvoiceID(message)
	if !ok {
		return "❌ Please provide a valid invoice ID (e.g., 'Get details for invoice INV2-XXXX-XXXX-XXXX-XXXX' or 'Check invoice INV-1234567890')"
	}

	raw, errText := a.call(ctx, tools.GetInvoice, "Get invoice", "getting invoice details", map[string]any{"invoice_id": invoiceID})
	if errText != "" {
		return errText
	}
	norm, err := normalize.Invoice(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error getting invoice details: %v", err)
	}

	amount := "Unknown"
	if norm.Amount != "" {
		amount = norm.Amount + " " + norm.Currency
	}
	recipient := normalize.DigString(norm.Raw, "primary_recipients", 0, "billing_info", "email_address")
	if recipient == "" {
		recipient = "Unknown"
	}
	dueDate := normalize.DigString(norm.Raw, "detail", "due_date")
	if dueDate == "" {
		dueDate = "Not set"
	}
	created := normalize.DigString(norm.Raw, "detail", "metadata", "create_time")
	if created == "" {
		created = "Unknown"
	}

	statusEmoji, statusMessage := invoiceStatusLine(norm.Status)

	linkBlock := "\n⚠️ Payment link not available - invoice may need to be sent first"
	if paymentLink := normalize.PaymentLink(norm); paymentLink != "" {
		linkBlock = "\n🔗 **Payment Link:**\n" + paymentLink + "\n\n📧 Share this link with your customer to collect payment!"
	}

	return fmt.Sprintf(`📄 **Invoice Details**
%s **Status:** %s
🆔 **Invoice ID:** %s
📧 **Recipient:** %s
💰 **Amount:** %s
📅 **Created:** %s
📅 **Due Date:** %s
%s

📊 **Full Details:** %s`,
		statusEmoji, statusMessage, invoiceID, recipient, amount, created, dueDate, linkBlock, prettyJSON(norm.Raw))
}

// invoiceStatusLine maps an invoice status to its emoji and summary line.
func invoiceStatusLine(status string) (emoji, message string) {
	switch status {
	case "DRAFT":
		return "📝", "Invoice is in draft - not yet sent"
	case "SENT":
		return "📧", "Invoice sent - awaiting payment"
	case "PAID", "COMPLETED":
		return "💰", "Invoice has been paid!"
	case "CANCELLED":
		return "❌", "Invoice has been cancelled"
	case "PARTIALLY_PAID":
		return "💵", "Invoice partially paid"
	default:
		return "❓", "Invoice status: " + status
	}
}

func (a *Agent) sendInvoice(ctx context.Context, message string) string {
	invoiceID, ok := extract.InvoiceIDOrLong(message)
	if !ok {
		return "❌ Please provide a valid invoice ID (e.g., 'Send invoice INV-1234567890' or 'Send invoice INV2-XXXX-XXXX-XXXX-XXXX')"
	}

	sendNote, _ := a.sendInvoiceByID(ctx, invoiceID)
	paymentLink := a.lookupPaymentLink(ctx, invoiceID)

	linkBlock := "\n⚠️ Payment link not available - check invoice status"
	if paymentLink != "" {
		linkBlock = "\n💳 **Payment Link Ready!**\n" + paymentLink + "\n\n📧 Share this link with your customer to collect payment!"
	}

	return fmt.Sprintf(`📧 **Invoice Sending Result**
- Invoice ID: %s
- %s
%s`,
		invoiceID, sendNote, linkBlock)
}

func (a *Agent) sendInvoiceReminder(ctx context.Context, message string) string {
	invoiceID, ok := extract.InvoiceID(message)
	if !ok {
		return "❌ Please provide a valid invoice ID (e.g., 'Send reminder for invoice INV2-XXXX-XXXX-XXXX-XXXX')"
	}

	req := map[string]any{
		"invoice_id": invoiceID,
		"note":       "Friendly payment reminder sent via PayPal Agent",
	}
	raw, errText := a.call(ctx, tools.SendInvoiceReminder, "Send invoice reminder", "sending reminder", req)
	if errText != "" {
		return errText
	}
	norm, err := normalize.Invoice(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error sending reminder: %v", err)
	}
	status := norm.Status
	if status == normalize.DefaultInvoiceStatus {
		status = "SENT"
	}

	return fmt.Sprintf(`📧 **Invoice Reminder Sent Successfully!**
- Invoice ID: %s
- Reminder sent to customer
- Status: %s`,
		invoiceID, status)
}

func (a *Agent) cancelInvoice(ctx context.Context, message string) string {
	invoiceID, ok := extract.InvoiceID(message)
	if !ok {
		return "❌ Please provide a valid invoice ID (e.g., 'Cancel invoice INV2-XXXX-XXXX-XXXX-XXXX')"
	}

	req := map[string]any{
		"invoice_id": invoiceID,
		"note":       "Invoice cancelled via PayPal Agent",
	}
	if _, errText := a.call(ctx, tools.CancelInvoice, "Cancel invoice", "cancelling invoice", req); errText != "" {
		return errText
	}

	return fmt.Sprintf(`❌ **Invoice Cancelled Successfully!**
- Invoice ID: %s
- Status: CANCELLED
- The invoice has been cancelled and is no longer payable.`,
		invoiceID)
}

func (a *Agent) generateInvoiceQR(ctx context.Context, message string) string {
	invoiceID, ok := extract.InvoiceID(message)
	if !ok {
		return "❌ Please provide a valid invoice ID (e.g., 'Generate QR code for invoice INV2-XXXX-XXXX-XXXX-XXXX')"
	}

	req := map[string]any{
		"invoice_id": invoiceID,
		"width":      200,
		"height":     200,
	}
	raw, errText := a.call(ctx, tools.GenerateInvoiceQR, "Generate QR code", "generating QR code", req)
	if errText != "" {
		return errText
	}
	obj, err := normalize.Object(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error generating QR code: %v", err)
	}
	qrURL, _ := obj["href"].(string)
	if qrURL == "" {
		qrURL = "Generated"
	}

	return fmt.Sprintf(`📱 **Invoice QR Code Generated Successfully!**
- Invoice ID: %s
- QR Code URL: %s
- Customers can scan this QR code to pay the invoice directly
- QR Code Details: %s`,
		invoiceID, qrURL, prettyJSON(obj))
}

// Package extract turns free-text chat messages into typed parameter values.
//
// Every extractor is a pure, total function: when the message does not
// contain the expected shape, a documented default is substituted and
// processing continues. The one exception is the identifier extractors,
// which report absence to the caller so the handler can surface a usage
// error instead of invoking a tool with a fabricated ID.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Defaults substituted when extraction finds nothing in the message.
const (
	// DefaultOrderAmount is used when an order request carries no amount.
	DefaultOrderAmount = 50
	// DefaultInvoiceAmount is used when an invoice request carries no amount.
	DefaultInvoiceAmount = 100
	// DefaultCurrency is the fixed system-wide currency. Currency symbols in
	// the message are matched but deliberately not interpreted.
	DefaultCurrency = "USD"
	// DefaultEmail is the sentinel recipient when no address is present.
	DefaultEmail = "customer@example.com"
	// DefaultDescription is the sentinel line-item description.
	DefaultDescription = "Service Invoice"
	// DefaultTrackingNumber is the sentinel shipment tracking number.
	DefaultTrackingNumber = "1Z999AA1234567890"
)

var (
	amountPattern      = regexp.MustCompile(`[£$€]?(\d+(?:\.\d{2})?)`)
	emailPattern       = regexp.MustCompile(`([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
	quotedPattern      = regexp.MustCompile(`'([^']*)'|"([^"]*)"`)
	forClausePattern   = regexp.MustCompile(`(?i)for\s+(.+?)(?:\s+for|\s*$)`)
	orderIDPattern     = regexp.MustCompile(`\b([A-Z0-9]{17})\b`)
	invoiceIDPattern   = regexp.MustCompile(`(INV2?-[A-Z0-9-]+)`)
	invoiceOrLongID    = regexp.MustCompile(`(INV2?-[A-Z0-9-]+|[A-Z0-9]{17,})`)
	productIDPattern   = regexp.MustCompile(`(PROD-[A-Z0-9]+|[A-Z0-9]{17,})`)
	planIDPattern      = regexp.MustCompile(`(P-[A-Z0-9]+)`)
	planOrLongID       = regexp.MustCompile(`(P-[A-Z0-9]+|[A-Z0-9]{17,})`)
	subscriptionIDPat  = regexp.MustCompile(`(I-[A-Z0-9]+|[A-Z0-9]{17,})`)
	disputeIDPattern   = regexp.MustCompile(`(PP-D-[A-Z0-9]+|[A-Z0-9]{10,})`)
	trackingNumPattern = regexp.MustCompile(`([A-Z0-9]{10,})`)
	productNamePattern = regexp.MustCompile(`(?i)'([^']*)'|"([^"]*)"|create product (.+?)(?:\s|$)`)
	planNamePattern    = regexp.MustCompile(`(?i)'([^']*)'|"([^"]*)"|plan (.+?)(?:\s|$)`)
)

// Name defaults for catalog and billing creation flows.
const (
	DefaultProductName = "New Product"
	DefaultPlanName    = "Monthly Subscription"
)

// Amount returns the first money amount in the message, or def when absent.
// An optional currency symbol before the digits is tolerated and ignored.
func Amount(message string, def float64) float64 {
	m := amountPattern.FindStringSubmatch(message)
	if m == nil {
		return def
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return def
	}
	return v
}

// FormatAmount renders an amount with exactly two decimal places, the shape
// used in every rendered response and every tool request.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Email returns the first email address in the message, or DefaultEmail.
func Email(message string) string {
	m := emailPattern.FindStringSubmatch(message)
	if m == nil {
		return DefaultEmail
	}
	return m[1]
}

// Description returns a free-text description: a single- or double-quoted
// substring wins, then the text following "for" up to the next "for" or end
// of message, then DefaultDescription.
func Description(message string) string {
	if m := quotedPattern.FindStringSubmatch(message); m != nil {
		if m[1] != "" {
			return strings.TrimSpace(m[1])
		}
		if m[2] != "" {
			return strings.TrimSpace(m[2])
		}
	}
	if m := forClausePattern.FindStringSubmatch(message); m != nil {
		if d := strings.TrimSpace(m[1]); d != "" {
			return d
		}
	}
	return DefaultDescription
}

// OrderID returns the order identifier in the message: exactly 17 uppercase
// alphanumeric characters. ok is false when no such token exists.
func OrderID(message string) (id string, ok bool) {
	return firstMatch(orderIDPattern, message)
}

// InvoiceID returns an invoice identifier with an INV or INV2 prefix.
func InvoiceID(message string) (id string, ok bool) {
	return firstMatch(invoiceIDPattern, message)
}

// InvoiceIDOrLong matches an INV/INV2-prefixed identifier or a generic
// 17+-character token. Used where the original accepted either shape
// (send-invoice and payment-link lookups).
func InvoiceIDOrLong(message string) (id string, ok bool) {
	return firstMatch(invoiceOrLongID, message)
}

// ProductID matches a PROD-prefixed identifier or a 17+-character token.
func ProductID(message string) (id string, ok bool) {
	return firstMatch(productIDPattern, message)
}

// PlanID matches a P-prefixed subscription plan identifier only. Creation
// flows require the prefix because a bare token cannot be distinguished from
// an order ID.
func PlanID(message string) (id string, ok bool) {
	return firstMatch(planIDPattern, message)
}

// PlanIDOrLong matches a P-prefixed identifier or a 17+-character token.
func PlanIDOrLong(message string) (id string, ok bool) {
	return firstMatch(planOrLongID, message)
}

// SubscriptionID matches an I-prefixed identifier or a 17+-character token.
func SubscriptionID(message string) (id string, ok bool) {
	return firstMatch(subscriptionIDPat, message)
}

// DisputeID matches a PP-D-prefixed identifier or a 10+-character token.
func DisputeID(message string) (id string, ok bool) {
	return firstMatch(disputeIDPattern, message)
}

// TrackingNumber returns the first 10+-character uppercase alphanumeric
// token, or DefaultTrackingNumber when none is present.
func TrackingNumber(message string) string {
	if id, ok := firstMatch(trackingNumPattern, message); ok {
		return id
	}
	return DefaultTrackingNumber
}

// ProductName returns a quoted substring, the word after "create product",
// or DefaultProductName.
func ProductName(message string) string {
	return nameOrDefault(productNamePattern, message, DefaultProductName)
}

// PlanName returns a quoted substring, the word after "plan", or
// DefaultPlanName.
func PlanName(message string) string {
	return nameOrDefault(planNamePattern, message, DefaultPlanName)
}

func nameOrDefault(re *regexp.Regexp, message, def string) string {
	m := re.FindStringSubmatch(message)
	if m == nil {
		return def
	}
	for _, group := range m[1:] {
		if v := strings.TrimSpace(group); v != "" {
			return v
		}
	}
	return def
}

func firstMatch(re *regexp.Regexp, message string) (string, bool) {
	m := re.FindStringSubmatch(message)
	if m == nil {
		return "", false
	}
	return m[1], true
}

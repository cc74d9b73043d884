package extract

import "testing"

func TestAmount(t *testing.T) {
	tests := []struct {
		name    string
		message string
		def     float64
		want    float64
	}{
		{"dollar amount", "Create a payment for $29.99", 50, 29.99},
		{"pound amount", "Invoice for £15.50 please", 100, 15.50},
		{"euro amount", "Charge €7.25", 50, 7.25},
		{"bare number", "Create an order for 42", 50, 42},
		{"no amount", "Create an order", 50, 50},
		{"integer with symbol", "$100 payment", 50, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Amount(tt.message, tt.def); got != tt.want {
				t.Errorf("Amount(%q) = %v, want %v", tt.message, got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{29.99, "29.99"},
		{50, "50.00"},
		{7.5, "7.50"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"present", "Send invoice to alice@example.org", "alice@example.org"},
		{"absent", "Send an invoice", DefaultEmail},
		{"with plus tag", "Bill bob+billing@shop.co.uk now", "bob+billing@shop.co.uk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Email(tt.message); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"single quoted", "Invoice for 'Web Design' work", "Web Design"},
		{"double quoted", `Invoice for "Consulting Services"`, "Consulting Services"},
		{"for clause", "Create an invoice for plumbing repairs", "plumbing repairs"},
		{"for clause stops at next for", "Invoice for consulting for alice@example.org", "consulting"},
		{"default", "Create an invoice", DefaultDescription},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Description(tt.message); got != tt.want {
				t.Errorf("Description(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestOrderID(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		wantOK  bool
	}{
		{"valid 17 chars", "Get details for order 1AB23456CD789012E", "1AB23456CD789012E", true},
		{"too short", "Get order NOTLONGENOUGH", "", false},
		{"too long is not 17", "Get order 1AB23456CD789012E99", "", false},
		{"absent", "Get my order", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := OrderID(tt.message)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("OrderID(%q) = (%q, %v), want (%q, %v)", tt.message, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestInvoiceID(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		wantOK  bool
	}{
		{"INV prefix", "Check invoice INV-1234567890", "INV-1234567890", true},
		{"INV2 prefix", "Check invoice INV2-ABCD-EFGH-IJKL-MNOP", "INV2-ABCD-EFGH-IJKL-MNOP", true},
		{"absent", "Check my invoice", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InvoiceID(tt.message)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("InvoiceID(%q) = (%q, %v), want (%q, %v)", tt.message, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestInvoiceIDOrLong(t *testing.T) {
	if got, ok := InvoiceIDOrLong("Send invoice INV-42"); !ok || got != "INV-42" {
		t.Errorf("prefixed form = (%q, %v)", got, ok)
	}
	if got, ok := InvoiceIDOrLong("Send invoice ABCDEFGH123456789"); !ok || got != "ABCDEFGH123456789" {
		t.Errorf("long token form = (%q, %v)", got, ok)
	}
	if _, ok := InvoiceIDOrLong("Send the invoice"); ok {
		t.Error("expected no match for message without ID")
	}
}

func TestPlanID(t *testing.T) {
	if got, ok := PlanID("Create subscription for P-5ML4271244454362WXNWU5NQ"); !ok || got != "P-5ML4271244454362WXNWU5NQ" {
		t.Errorf("PlanID = (%q, %v)", got, ok)
	}
	// A bare long token is not enough for creation flows.
	if _, ok := PlanID("Create subscription for ABCDEFGH123456789"); ok {
		t.Error("PlanID matched a token without the P- prefix")
	}
	if got, ok := PlanIDOrLong("Get plan ABCDEFGH123456789"); !ok || got != "ABCDEFGH123456789" {
		t.Errorf("PlanIDOrLong = (%q, %v)", got, ok)
	}
}

func TestSubscriptionAndDisputeIDs(t *testing.T) {
	if got, ok := SubscriptionID("Cancel subscription I-BW452GLLEP1G"); !ok || got != "I-BW452GLLEP1G" {
		t.Errorf("SubscriptionID = (%q, %v)", got, ok)
	}
	if got, ok := DisputeID("Accept dispute PP-D-4012"); !ok || got != "PP-D-4012" {
		t.Errorf("DisputeID = (%q, %v)", got, ok)
	}
	if got, ok := DisputeID("Get dispute ABCDEFGHIJ"); !ok || got != "ABCDEFGHIJ" {
		t.Errorf("DisputeID long form = (%q, %v)", got, ok)
	}
}

func TestTrackingNumber(t *testing.T) {
	if got := TrackingNumber("Track 1Z999AA1234567891"); got != "1Z999AA1234567891" {
		t.Errorf("TrackingNumber = %q", got)
	}
	if got := TrackingNumber("Track my shipment"); got != DefaultTrackingNumber {
		t.Errorf("TrackingNumber default = %q", got)
	}
}

func TestProductName(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"quoted", "Create product 'Gift Card'", "Gift Card"},
		{"after keyword", "create product Widget now", "Widget"},
		{"default", "Make me something", DefaultProductName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProductName(tt.message); got != tt.want {
				t.Errorf("ProductName(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestPlanName(t *testing.T) {
	if got := PlanName(`Create plan "Pro Tier" for $20`); got != "Pro Tier" {
		t.Errorf("PlanName quoted = %q", got)
	}
	if got := PlanName("Create a subscription thing"); got != DefaultPlanName {
		t.Errorf("PlanName default = %q", got)
	}
}

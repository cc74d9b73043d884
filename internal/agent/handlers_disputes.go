package agent

import (
	"context"
	"fmt"

	"github.com/TariqH19/agent-toolkit/internal/agent/extract"
	"github.com/TariqH19/agent-toolkit/internal/agent/normalize"
	"github.com/TariqH19/agent-toolkit/internal/tools"
)

func (a *Agent) listDisputes(ctx context.Context) string {
	raw, errText := a.call(ctx, tools.ListDisputes, "List disputes", "listing disputes", map[string]any{})
	if errText != "" {
		return errText
	}
	v, err := normalize.Unwrap(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error listing disputes: %v", err)
	}
	return "⚖️ **Your Disputes:**\n" + prettyJSON(v)
}

func (a *Agent) getDispute(ctx context.Context, message string) string {
	disputeID, ok := extract.DisputeID(message)
	if !ok {
		return "❌ Please provide a valid dispute ID (e.g., 'Get dispute PP-D-XXXXXXXXXX')"
	}

	raw, errText := a.call(ctx, tools.GetDispute, "Get dispute", "getting dispute", map[string]any{"dispute_id": disputeID})
	if errText != "" {
		return errText
	}
	obj, err := normalize.Object(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error getting dispute: %v", err)
	}

	transaction := normalize.DigString(obj, "disputed_transactions", 0, "seller_transaction_id")
	if transaction == "" {
		transaction = normalize.UnknownID
	}

	return fmt.Sprintf(`⚖️ **Dispute Details:**
- Dispute ID: %s
- Status: %s
- Reason: %s
- Amount: %s
- Full Details: %s`,
		stringOr(obj, "dispute_id", disputeID),
		stringOr(obj, "status", normalize.UnknownID),
		stringOr(obj, "reason", normalize.UnknownID),
		transaction, prettyJSON(obj))
}

func (a *Agent) acceptDispute(ctx context.Context, message string) string {
	disputeID, ok := extract.DisputeID(message)
	if !ok {
		return "❌ Please provide a valid dispute ID (e.g., 'Accept dispute PP-D-XXXXXXXXXX')"
	}

	_, errText := a.call(ctx, tools.AcceptDispute, "Accept dispute", "accepting dispute", map[string]any{
		"dispute_id": disputeID,
		"note":       "Accepted via PayPal Agent",
	})
	if errText != "" {
		return errText
	}

	return fmt.Sprintf(`✅ **Dispute Accepted Successfully!**
- Dispute ID: %s
- Status: ACCEPTED
- The dispute claim has been accepted and will be processed accordingly.`,
		disputeID)
}

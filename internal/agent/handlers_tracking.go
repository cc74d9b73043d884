package agent

import (
	"context"
	"fmt"

	"github.com/TariqH19/agent-toolkit/internal/agent/extract"
	"github.com/TariqH19/agent-toolkit/internal/agent/normalize"
	"github.com/TariqH19/agent-toolkit/internal/tools"
)

func (a *Agent) trackShipment(ctx context.Context, message string) string {
	trackingNumber := extract.TrackingNumber(message)

	raw, errText := a.call(ctx, tools.CreateShipmentTracking, "Shipment tracking", "tracking shipment", map[string]any{
		"tracking_number": trackingNumber,
	})
	if errText != "" {
		return errText
	}
	obj, err := normalize.Object(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error tracking shipment: %v", err)
	}

	status := stringOr(obj, "status", "IN_TRANSIT")
	lastUpdate := stringOr(obj, "last_updated_time", "N/A")
	carrier := stringOr(obj, "carrier", "Unknown")

	return fmt.Sprintf(`📦 **Shipment Tracking:**
- Tracking Number: %s
- Status: %s
- Last Update: %s
- Carrier: %s`,
		trackingNumber, status, lastUpdate, carrier)
}

// stringOr reads a top-level string field, substituting def when the field is
// absent or empty.
func stringOr(obj map[string]any, key, def string) string {
	if v, ok := obj[key].(string); ok && v != "" {
		return v
	}
	return def
}

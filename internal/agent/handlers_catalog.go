package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/TariqH19/agent-toolkit/internal/agent/extract"
	"github.com/TariqH19/agent-toolkit/internal/agent/normalize"
	"github.com/TariqH19/agent-toolkit/internal/tools"
)

func (a *Agent) createProduct(ctx context.Context, message string) string {
	name := strings.TrimSpace(extract.ProductName(message))

	req := map[string]any{
		"name":        name,
		"description": name + " - Created via PayPal Agent",
		"type":        "PHYSICAL",
		"category":    "SOFTWARE",
		"home_url":    "https://example.com",
	}

	raw, errText := a.call(ctx, tools.CreateProduct, "Create product", "creating product", req)
	if errText != "" {
		return errText
	}
	obj, err := normalize.Object(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error creating product: %v", err)
	}

	return fmt.Sprintf(`📦 **Product Created Successfully!**
- Product ID: %s
- Name: %s
- Type: %s
- Status: %s`,
		stringOr(obj, "id", normalize.UnknownID), name,
		stringOr(obj, "type", "PHYSICAL"), stringOr(obj, "status", "ACTIVE"))
}

func (a *Agent) listProducts(ctx context.Context) string {
	raw, errText := a.call(ctx, tools.ListProducts, "List products", "listing products", map[string]any{})
	if errText != "" {
		return errText
	}
	v, err := normalize.Unwrap(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error listing products: %v", err)
	}
	return "📦 **Your Products:**\n" + prettyJSON(v)
}

func (a *Agent) getProduct(ctx context.Context, message string) string {
	productID, ok := extract.ProductID(message)
	if !ok {
		return "❌ Please provide a valid product ID (e.g., 'Get product PROD-XXXXXXXXXXXXXXXX')"
	}

	raw, errText := a.call(ctx, tools.GetProduct, "Get product", "getting product", map[string]any{"product_id": productID})
	if errText != "" {
		return errText
	}
	obj, err := normalize.Object(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error getting product: %v", err)
	}

	return fmt.Sprintf(`📦 **Product Details:**
- Product ID: %s
- Name: %s
- Description: %s
- Type: %s
- Status: %s
- Full Details: %s`,
		stringOr(obj, "id", productID),
		stringOr(obj, "name", normalize.UnknownID),
		stringOr(obj, "description", "No description"),
		stringOr(obj, "type", normalize.UnknownID),
		stringOr(obj, "status", normalize.UnknownID),
		prettyJSON(obj))
}

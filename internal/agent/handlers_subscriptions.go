package agent

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/TariqH19/agent-toolkit/internal/agent/extract"
	"github.com/TariqH19/agent-toolkit/internal/agent/normalize"
	"github.com/TariqH19/agent-toolkit/internal/tools"
)

// defaultPlanPrice is the monthly price used when a plan request carries no
// amount.
const defaultPlanPrice = 9.99

func (a *Agent) createSubscriptionPlan(ctx context.Context, message string) string {
	name := strings.TrimSpace(extract.PlanName(message))
	price := extract.Amount(message, defaultPlanPrice)

	req := map[string]any{
		"product_id":  "PROD-XXXXXXXXXXXX",
		"name":        name,
		"description": name + " - Created via PayPal Agent",
		"billing_cycles": []any{
			map[string]any{
				"frequency": map[string]any{
					"interval_unit":  "MONTH",
					"interval_count": 1,
				},
				"tenure_type":  "REGULAR",
				"sequence":     1,
				"total_cycles": 0,
				"pricing_scheme": map[string]any{
					"fixed_price": map[string]any{
						"value":         extract.FormatAmount(price),
						"currency_code": extract.DefaultCurrency,
					},
				},
			},
		},
		"payment_preferences": map[string]any{
			"auto_bill_outstanding":     true,
			"setup_fee_failure_action":  "CONTINUE",
			"payment_failure_threshold": 3,
		},
	}

	raw, errText := a.call(ctx, tools.CreateSubscriptionPlan, "Create subscription plan", "creating subscription plan", req)
	if errText != "" {
		return errText
	}
	obj, err := normalize.Object(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error creating subscription plan: %v", err)
	}

	return fmt.Sprintf(`📋 **Subscription Plan Created Successfully!**
- Plan ID: %s
- Name: %s
- Price: $%s/month
- Status: %s`,
		stringOr(obj, "id", normalize.UnknownID), name,
		strconv.FormatFloat(price, 'f', -1, 64),
		stringOr(obj, "status", "ACTIVE"))
}

func (a *Agent) listSubscriptionPlans(ctx context.Context) string {
	raw, errText := a.call(ctx, tools.ListSubscriptionPlans, "List subscription plans", "listing subscription plans", map[string]any{})
	if errText != "" {
		return errText
	}
	v, err := normalize.Unwrap(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error listing subscription plans: %v", err)
	}
	return "📋 **Your Subscription Plans:**\n" + prettyJSON(v)
}

func (a *Agent) getSubscriptionPlan(ctx context.Context, message string) string {
	planID, ok := extract.PlanIDOrLong(message)
	if !ok {
		return "❌ Please provide a valid plan ID (e.g., 'Get subscription plan P-XXXXXXXXXXXXXXXX')"
	}

	raw, errText := a.call(ctx, tools.GetSubscriptionPlan, "Get subscription plan", "getting subscription plan", map[string]any{"plan_id": planID})
	if errText != "" {
		return errText
	}
	obj, err := normalize.Object(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error getting subscription plan: %v", err)
	}

	return fmt.Sprintf(`📋 **Subscription Plan Details:**
- Plan ID: %s
- Name: %s
- Status: %s
- Full Details: %s`,
		stringOr(obj, "id", planID),
		stringOr(obj, "name", normalize.UnknownID),
		stringOr(obj, "status", normalize.UnknownID),
		prettyJSON(obj))
}

func (a *Agent) createSubscription(ctx context.Context, message string) string {
	planID, ok := extract.PlanID(message)
	if !ok {
		return "❌ Please provide a plan ID (e.g., 'Create subscription for P-XXXXXXXXXXXXXXXX for user@example.com')"
	}
	email := extract.Email(message)
	if email == extract.DefaultEmail {
		email = "subscriber@example.com"
	}

	req := map[string]any{
		"plan_id": planID,
		"subscriber": map[string]any{
			"email_address": email,
			"name":          map[string]any{"given_name": "John", "surname": "Doe"},
		},
		"application_context": map[string]any{
			"brand_name":          "PayPal Agent",
			"locale":              "en-US",
			"shipping_preference": "NO_SHIPPING",
			"user_action":         "SUBSCRIBE_NOW",
			"payment_method": map[string]any{
				"payer_selected":  "PAYPAL",
				"payee_preferred": "IMMEDIATE_PAYMENT_REQUIRED",
			},
			"return_url": "https://example.com/success",
			"cancel_url": "https://example.com/cancel",
		},
	}

	raw, errText := a.call(ctx, tools.CreateSubscription, "Create subscription", "creating subscription", req)
	if errText != "" {
		return errText
	}
	obj, err := normalize.Object(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error creating subscription: %v", err)
	}

	return fmt.Sprintf(`🔄 **Subscription Created Successfully!**
- Subscription ID: %s
- Plan ID: %s
- Subscriber: %s
- Status: %s`,
		stringOr(obj, "id", normalize.UnknownID), planID, email,
		stringOr(obj, "status", "APPROVAL_PENDING"))
}

func (a *Agent) getSubscription(ctx context.Context, message string) string {
	subscriptionID, ok := extract.SubscriptionID(message)
	if !ok {
		return "❌ Please provide a valid subscription ID (e.g., 'Get subscription I-XXXXXXXXXXXXXXXX')"
	}

	raw, errText := a.call(ctx, tools.GetSubscription, "Get subscription", "getting subscription", map[string]any{"subscription_id": subscriptionID})
	if errText != "" {
		return errText
	}
	obj, err := normalize.Object(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error getting subscription: %v", err)
	}

	subscriber := normalize.DigString(obj, "subscriber", "email_address")
	if subscriber == "" {
		subscriber = normalize.UnknownID
	}

	return fmt.Sprintf(`🔄 **Subscription Details:**
- Subscription ID: %s
- Status: %s
- Plan ID: %s
- Subscriber: %s
- Full Details: %s`,
		stringOr(obj, "id", subscriptionID),
		stringOr(obj, "status", normalize.UnknownID),
		stringOr(obj, "plan_id", normalize.UnknownID),
		subscriber, prettyJSON(obj))
}

func (a *Agent) updateSubscription(ctx context.Context, message string) string {
	subscriptionID, ok := extract.SubscriptionID(message)
	if !ok {
		return "❌ Please provide a valid subscription ID (e.g., 'Update subscription I-XXXXXXXXXXXXXXXX')"
	}

	raw, errText := a.call(ctx, tools.UpdateSubscription, "Update subscription", "updating subscription", map[string]any{
		"subscription_id": subscriptionID,
	})
	if errText != "" {
		return errText
	}
	v, err := normalize.Unwrap(raw)
	if err != nil {
		return fmt.Sprintf("❌ Error updating subscription: %v", err)
	}

	return fmt.Sprintf(`🔄 **Subscription Updated Successfully!**
- Subscription ID: %s
- Update Details: %s`,
		subscriptionID, prettyJSON(v))
}

func (a *Agent) cancelSubscription(ctx context.Context, message string) string {
	subscriptionID, ok := extract.SubscriptionID(message)
	if !ok {
		return "❌ Please provide a valid subscription ID (e.g., 'Cancel subscription I-XXXXXXXXXXXXXXXX')"
	}

	_, errText := a.call(ctx, tools.CancelSubscription, "Cancel subscription", "cancelling subscription", map[string]any{
		"subscription_id": subscriptionID,
		"reason":          "User requested cancellation via PayPal Agent",
	})
	if errText != "" {
		return errText
	}

	return fmt.Sprintf(`❌ **Subscription Cancelled Successfully!**
- Subscription ID: %s
- Status: CANCELLED
- Cancellation processed via PayPal Agent`,
		subscriptionID)
}

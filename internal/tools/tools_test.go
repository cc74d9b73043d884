package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func echoTool(name, schema string) Tool {
	return New(name, "echo", schema, func(ctx context.Context, req map[string]any) (json.RawMessage, error) {
		return json.Marshal(req)
	})
}

func TestRegistryInvoke(t *testing.T) {
	r, err := NewRegistry(echoTool(CreateOrder, ""))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	raw, err := r.Invoke(context.Background(), CreateOrder, map[string]any{"currency_code": "USD"})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if got["currency_code"] != "USD" {
		t.Errorf("result = %v", got)
	}
}

func TestRegistryUnavailable(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	_, err = r.Invoke(context.Background(), CreateOrder, nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestRegistrySchemaValidation(t *testing.T) {
	schema := `{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}`
	r, err := NewRegistry(echoTool(GetOrder, schema))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if _, err := r.Invoke(context.Background(), GetOrder, map[string]any{"id": "O1"}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if _, err := r.Invoke(context.Background(), GetOrder, map[string]any{}); err == nil {
		t.Error("request missing required field must fail validation")
	}
}

func TestRegistryDuplicateName(t *testing.T) {
	if _, err := NewRegistry(echoTool(CreateOrder, ""), echoTool(CreateOrder, "")); err == nil {
		t.Error("duplicate registration must fail")
	}
}

func TestRegistryMalformedSchema(t *testing.T) {
	if _, err := NewRegistry(echoTool(CreateOrder, `{"type":`)); err == nil {
		t.Error("malformed schema must fail construction")
	}
}

func TestRegistryNamesOrder(t *testing.T) {
	r, err := NewRegistry(echoTool(CreateOrder, ""), echoTool(GetOrder, ""), echoTool(CaptureOrder, ""))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	names := r.Names()
	want := []string{CreateOrder, GetOrder, CaptureOrder}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
	if !r.Has(GetOrder) {
		t.Error("Has(GetOrder) = false")
	}
	if r.Has("no-such-capability") {
		t.Error("Has(no-such-capability) = true")
	}
}

func TestRegistryDescriptions(t *testing.T) {
	r, err := NewRegistry(
		New(CreateOrder, "Create a checkout order", "", nil),
		New(GetOrder, "Fetch an order by ID", "", nil),
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	got := r.Descriptions()
	if len(got) != 2 {
		t.Fatalf("Descriptions() = %v", got)
	}
	if got[CreateOrder] != "Create a checkout order" || got[GetOrder] != "Fetch an order by ID" {
		t.Errorf("Descriptions() = %v", got)
	}
}

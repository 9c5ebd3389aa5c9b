package order

import (
	"encoding/json"
	"testing"
)

func TestProductIDsDedup(t *testing.T) {
	o := Order{Items: []LineItem{
		{ProductID: 1},
		{ProductID: 2},
		{ProductID: 1},
		{ProductID: 2},
	}}
	ids := o.ProductIDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("expected deduplicated [1 2], got %v", ids)
	}
}

func TestProductIDsAltFieldNames(t *testing.T) {
	raw := `{"order_items": [
		{"productId": "7"},
		{"product_id": 3},
		{"productId": "oops"}
	]}`
	var o Order
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	ids := o.ProductIDs()
	if len(ids) != 2 || ids[0] != 7 || ids[1] != 3 {
		t.Fatalf("expected [7 3], got %v", ids)
	}
}

func TestLineItemsPreferItems(t *testing.T) {
	o := Order{
		Items:      []LineItem{{ProductID: 1}},
		OrderItems: []LineItem{{ProductID: 2}},
	}
	ids := o.ProductIDs()
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("expected items to win over order_items, got %v", ids)
	}
}

func TestProductIDsEmptyOrder(t *testing.T) {
	if ids := (Order{}).ProductIDs(); len(ids) != 0 {
		t.Fatalf("expected no ids, got %v", ids)
	}
}
